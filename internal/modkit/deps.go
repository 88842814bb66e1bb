package modkit

import (
	"github.com/cloudwego/eino/components/model"
	"github.com/redis/go-redis/v9"

	"shopguide/internal/modkit/repokit"
	"shopguide/internal/platform/config"
	"shopguide/internal/platform/logger"
	"shopguide/internal/platform/store"
)

// Deps holds the shared backends handed to every module; any of them may
// be nil and modules degrade accordingly
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	CH    store.Clickhouse
	Redis *redis.Client

	// Chat backs the interview capabilities; nil selects the keyword fallbacks
	Chat model.BaseChatModel
}

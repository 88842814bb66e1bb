// @title         Shopguide API
// @version       0.1.0
// @description   Conversational product discovery: clarifying interview, specificity scoring and relaxed catalog search

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/go-chi/chi/v5"

	"shopguide/internal/platform/config"
	"shopguide/internal/platform/logger"
	phttp "shopguide/internal/platform/net/http"
	"shopguide/internal/platform/net/middleware"
	"shopguide/internal/platform/store"

	"shopguide/internal/services/api"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Get().Warn().Err(err).Msg("dotenv load failed")
	}

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // product catalog
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // search telemetry
	rdsCfg := root.Prefix("SERVICE_REDIS_")     // interview sessions
	llmCfg := root.Prefix("LLM_")

	// bring up logging early
	l := logger.Get()

	// every store is optional; the API falls back to the in process catalog
	// and session cache when one is disabled
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "shopguide-api",
			PG: store.PGConfig{
				Enabled:        pgCfg.MayString("DBURL", "") != "",
				URL:            pgCfg.MayString("DBURL", ""),
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:         pgCfg.MayBool("LOG_SQL", false),
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 0),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 0),
			},
			CH: store.CHConfig{
				Enabled: chCfg.MayString("DBURL", "") != "",
				URL:     chCfg.MayString("DBURL", ""),
			},
			RDS: store.RedisConfig{
				Enabled:  rdsCfg.MayString("ADDR", "") != "",
				Addr:     rdsCfg.MayString("ADDR", ""),
				Password: rdsCfg.MayString("PASSWORD", ""),
				DB:       rdsCfg.MayInt("DB", 0),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT, CORE_API_READ_HEADER_TIMEOUT, CORE_API_SHUTDOWN_TIMEOUT)
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(middleware.Heartbeat("/health"))
	})

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Chat:           chatModel(llmCfg),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}

// chatModel returns nil unless LLM_API_KEY and LLM_MODEL are set, which
// leaves the interview on its keyword capabilities
func chatModel(cfg config.Conf) model.BaseChatModel {
	key, name := cfg.MayString("API_KEY", ""), cfg.MayString("MODEL", "")
	if key == "" || name == "" {
		logger.Get().Info().Msg("no language model configured; using keyword capabilities")
		return nil
	}
	cm, err := ark.NewChatModel(context.Background(), &ark.ChatModelConfig{
		BaseURL: cfg.MayURL("BASE_URL", ""),
		APIKey:  key,
		Model:   name,
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("init chat model failed; using keyword capabilities")
		return nil
	}
	logger.Get().Info().Str("model", name).Msg("chat model initialized")
	return cm
}

package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"shopguide/internal/platform/logger"
)

// LoadDotEnv loads KEY=VALUE files into the process env without overriding
// variables already set; missing files are skipped
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		err := godotenv.Load(p)
		if err == nil {
			logger.Get().Debug().Str("file", p).Msg("dotenv loaded")
			continue
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return err
	}
	return nil
}

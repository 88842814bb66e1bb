// Command shopguide scores queries and runs local discovery interviews
package main

import (
	"os"

	"shopguide/internal/cli"
	"shopguide/internal/platform/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("shopguide failed")
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/bbaxromov14/eduhelper/internal/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Default().Error("%v", err)
		os.Exit(1)
	}
}

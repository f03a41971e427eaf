// Package common provides shared utilities used across all features
package common

import (
	"strings"

	"github.com/rs/zerolog"
)

// InitLogger applies the configured log level to the global zerolog logger.
func InitLogger(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

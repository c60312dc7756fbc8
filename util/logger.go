package util

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs the global zerolog logger. Development gets a human
// readable console writer, every other environment gets JSON lines.
func InitLogger(appName, env, level string) {
	InitLoggerWithWriter(os.Stdout, appName, env, level)
}

// InitLoggerWithWriter is InitLogger with an explicit destination.
func InitLoggerWithWriter(w io.Writer, appName, env, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if env == "development" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Str("service", appName).
			Logger()
		return
	}

	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Str("service", appName).
		Str("env", env).
		Logger()
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Initialize sets up the global logger on stdout. Local environments get
// pretty console output, everything else JSON lines.
func Initialize(level, appEnv string) {
	InitializeTo(os.Stdout, level, appEnv)
}

// InitializeTo is Initialize with an explicit destination.
func InitializeTo(w io.Writer, level, appEnv string) {
	if appEnv == "production" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

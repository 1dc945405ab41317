package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds a zerolog logger for the given level and installs it as the global logger.
// console switches to the human readable writer.
func New(level string, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if console {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).
		With().
		Timestamp().
		Str("service", "lovematch").
		Logger().
		Level(lvl)

	zerolog.SetGlobalLevel(lvl)
	log.Logger = l
	return l, nil
}

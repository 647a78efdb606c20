package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to w at the given level. Components
// receive the logger by injection rather than reaching for a global.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Default returns the stderr logger used by the CLI and hook adapters.
func Default() zerolog.Logger {
	return New(os.Stderr, zerolog.InfoLevel)
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

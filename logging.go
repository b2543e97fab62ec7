package ecscore

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the structured logger used for structural events: table
// creation, merge-cycle boundaries, and dropped stage operations. It is
// a thin alias over zerolog.Logger, configured once via the
// package-level Config (see config.go) rather than threaded through
// every call.
type Logger = zerolog.Logger

// NewDiscardLogger returns a Logger that drops everything, the default
// until a caller opts in via Config.SetLogger.
func NewDiscardLogger() Logger {
	return zerolog.New(io.Discard)
}

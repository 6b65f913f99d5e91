// Package logging wraps go.uber.org/zap to give every package in this
// module one consistently-configured structured logger, switched between
// debug and production encoders by Options.Debug the way the "app"
// variant of the bot in this corpus wires zap in for the same purpose.
package logging

import "go.uber.org/zap"

// New builds a *zap.SugaredLogger. debug selects the development
// encoder (human-readable, caller info, debug level); otherwise the
// production JSON encoder at the given level is used.
func New(debug bool, level string) *zap.SugaredLogger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		if lvl, err := zap.ParseAtomicLevel(level); err == nil {
			cfg.Level = lvl
		}
	}
	logger, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op logger rather than failing library
		// construction over a logging misconfiguration.
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// Noop returns a logger that discards everything, used as the default
// when the embedder supplies none.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Package mibtext parses MIB module text, resolves OBJECT IDENTIFIER
// chains into dotted OID paths, and exposes the combined object metadata
// as a flat list for snippet and diagnostic consumers.
//
// A Store is initialized once with the bundled base module set and grows
// as callers load additional .mib files:
//
//	store, err := mibtext.New(mibtext.WithLogger(slog.Default()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := store.LoadFile("CUSTOM-MIB.mib"); err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range store.Flatten() {
//	    fmt.Println(rec.OID, rec.ObjectType)
//	}
package mibtext

import (
	"log/slog"

	"github.com/golangsnmp/mibtext/internal/types"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-token and per-OID-node logging.
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures a Store.
type Option func(*storeConfig)

type storeConfig struct {
	logger  *slog.Logger
	baseDir string
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *storeConfig) { c.logger = logger }
}

// WithBaseDir sets a directory searched for base module files before
// falling back to the embedded copies. Useful for shipping updated
// standard modules without rebuilding.
func WithBaseDir(dir string) Option {
	return func(c *storeConfig) { c.baseDir = dir }
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

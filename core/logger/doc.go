// Package logger provides the slog construction helper and attribute
// helpers for consistent structured logging across the rendering pipeline.
//
// New builds a logger from functional options:
//
//	log := logger.New(logger.WithDevelopment("postcard"))
//
// All attribute helpers follow the empty Attr pattern: passing a zero value
// (nil error, empty string) produces an empty attribute that slog silently
// drops, so call sites never need nil checks:
//
//	log.Warn("component skipped",
//		logger.Component(name),
//		logger.Error(err),
//	)
//
// Renderers log progress notices at Debug level when verbose mode is enabled
// and failures at Warn/Error level unconditionally; the helpers here keep the
// attribute keys identical across both paths so log aggregation stays simple.
package logger

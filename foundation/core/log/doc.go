// Package log provides structured logging for mcalc.
//
// Package: log
// Title: mcalc Structured Logging
// Description: Leveled, structured logger with JSON, text, console and logfmt
//              output, persistent context fields, request IDs, performance
//              timers and integration with the mcalc error type.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Removed async buffering and user/correlation context
//
// Usage:
//
//	import mdwlog "github.com/msto63/mcalc/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatText).
//		WithField("component", "calc-engine")
//
//	logger.Debug("Evaluating expression", mdwlog.Fields{"input": "1 + 2"})
//	logger.LogError(err)
//
//	timer := logger.StartTimer("evaluate")
//	defer timer.Stop()
package log

// Package error provides structured error handling for mcalc.
//
// Package: error
// Title: mcalc Error Handling Framework
// Description: Structured errors with codes, severities, details and stack
//              traces. Lexer and parser failures are wrapped in this type at the
//              engine boundary so that loggers and drivers can classify them
//              without losing the underlying typed error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Calculator error codes, removed localization fields
//
// Usage:
//
//	import mdwerror "github.com/msto63/mcalc/foundation/core/error"
//
//	err := mdwerror.Wrap(lexErr, "lexing failed").
//		WithCode(mdwerror.CodeInvalidCharacter).
//		WithOperation("calc.Lex").
//		WithDetail("position", 9)
//
//	if mdwerror.HasCode(err, mdwerror.CodeInvalidCharacter) {
//		// react to the bad character
//	}
package error

// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the calculator engine and its
//              collaborators. Codes classify failures into lexing, parsing,
//              evaluation and infrastructure categories.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Replaced service codes with calculator codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Lexing
	CodeInvalidCharacter Code = "CALC_INVALID_CHARACTER"

	// Parsing
	CodeUnexpectedEnd Code = "CALC_UNEXPECTED_END"
	CodeInvalidToken  Code = "CALC_INVALID_TOKEN"

	// Evaluation
	CodeDivisionByZero Code = "CALC_DIVISION_BY_ZERO"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeInvalidCharacter, CodeUnexpectedEnd, CodeInvalidToken, CodeDivisionByZero,
		CodeDatabaseError, CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInvalidCharacter:
		return "lex"
	case CodeUnexpectedEnd, CodeInvalidToken:
		return "parse"
	case CodeDivisionByZero:
		return "evaluation"
	case CodeDatabaseError:
		return "database"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// IsInputError reports whether the code describes a problem with the
// expression text rather than with the program or its environment.
func (c Code) IsInputError() bool {
	switch c.Category() {
	case "lex", "parse", "evaluation":
		return true
	}
	return c == CodeInvalidInput
}

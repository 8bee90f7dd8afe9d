// File: calc.go
// Title: Calculator Engine
// Description: High-level API over the lexer and parser. Adds input
//              validation, structured errors with codes and positions,
//              logging with timings and an optional result cache.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine implementation

package calc

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/msto63/mcalc/foundation/calc/lexer"
	"github.com/msto63/mcalc/foundation/calc/parser"
	"github.com/msto63/mcalc/foundation/calc/result"
	"github.com/msto63/mcalc/foundation/calc/token"
	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/pkg/core/cache"
)

// DefaultMaxInputLength is used when Options.MaxInputLength is not set
const DefaultMaxInputLength = 4096

// ErrorKind classifies a failure by the stage that produced it
type ErrorKind int

const (
	// KindNone is returned for nil and unrelated errors
	KindNone ErrorKind = iota
	// KindInput marks input rejected before lexing
	KindInput
	// KindLex marks an invalid character
	KindLex
	// KindParse marks an unexpected end of input or an invalid token
	KindParse
	// KindEvaluation marks a division by zero
	KindEvaluation
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindLex:
		return "lex"
	case KindParse:
		return "parse"
	case KindEvaluation:
		return "evaluation"
	default:
		return "none"
	}
}

// Options configures the engine
type Options struct {
	// Logger for engine operations (optional, defaults to the default logger)
	Logger *mdwlog.Logger

	// MaxInputLength limits the input length in characters (default: 4096)
	MaxInputLength int

	// Cache stores evaluation outcomes keyed by input (optional)
	Cache *cache.Cache[result.Result[int]]
}

// Engine evaluates integer expressions. It is safe for concurrent use;
// every call works on its own lexer and parser.
type Engine struct {
	logger  *mdwlog.Logger
	cache   *cache.Cache[result.Result[int]]
	options Options
}

// New creates an engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.MaxInputLength < 0 {
		return nil, mdwerror.New(fmt.Sprintf("invalid max input length %d", opts.MaxInputLength)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("calc.New")
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	logger := opts.Logger.WithField("component", "calc-engine")

	engine := &Engine{
		logger:  logger,
		cache:   opts.Cache,
		options: opts,
	}

	logger.Debug("Calculator engine initialized", mdwlog.Fields{
		"maxInputLength": opts.MaxInputLength,
		"cacheEnabled":   opts.Cache != nil,
	})

	return engine, nil
}

// MaxInputLength returns the configured input limit
func (e *Engine) MaxInputLength() int {
	return e.options.MaxInputLength
}

// Lex converts input into tokens
func (e *Engine) Lex(input string) ([]token.Token, error) {
	if err := e.validateInput(input, "calc.Lex"); err != nil {
		return nil, err
	}

	tokens, err := lexer.Lex(input)
	if err != nil {
		return nil, e.fail(err, "calc.Lex", input)
	}

	e.logger.Trace("Input lexed", mdwlog.Fields{"tokens": len(tokens)})
	return tokens, nil
}

// Evaluate parses and evaluates tokens. Error positions are token indices.
func (e *Engine) Evaluate(tokens []token.Token) (int, error) {
	value, err := parser.Evaluate(tokens)
	if err != nil {
		return 0, e.fail(err, "calc.Evaluate", token.Format(tokens))
	}
	return value, nil
}

// EvaluateString lexes and evaluates input. Error positions are character
// indices into input.
func (e *Engine) EvaluateString(input string) (int, error) {
	timer := e.logger.StartTimer("calc_evaluate").WithLevel(mdwlog.LevelDebug)

	value, err := e.evaluateString(input)
	if err != nil {
		// Rejected input is a normal outcome; LogError already reported it
		timer.WithField("error_code", mdwerror.GetCode(err).String()).Stop()
		return 0, err
	}

	timer.WithField("value", value).Stop()
	return value, nil
}

// EvaluateResult is the deferred form of EvaluateString. Outcomes are served
// from and stored in the cache when one is configured.
func (e *Engine) EvaluateResult(input string) result.Result[int] {
	if e.cache == nil {
		return result.Of(e.EvaluateString(input))
	}

	if cached, ok := e.cache.Get(input); ok {
		e.logger.Trace("Cache hit", mdwlog.Fields{"input": input})
		return cached
	}

	r := result.Of(e.EvaluateString(input))
	e.cache.Set(input, r)
	return r
}

func (e *Engine) evaluateString(input string) (int, error) {
	if err := e.validateInput(input, "calc.EvaluateString"); err != nil {
		return 0, err
	}

	tokens, positions, err := lexer.LexWithPositions(input)
	if err != nil {
		return 0, e.fail(err, "calc.EvaluateString", input)
	}

	value, err := parser.New(tokens).WithPositions(positions).Parse()
	if err != nil {
		return 0, e.fail(err, "calc.EvaluateString", input)
	}

	return value, nil
}

func (e *Engine) validateInput(input, operation string) error {
	length := utf8.RuneCountInString(input)
	if length <= e.options.MaxInputLength {
		return nil
	}

	err := mdwerror.New(fmt.Sprintf("input exceeds maximum length of %d characters", e.options.MaxInputLength)).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation(operation).
		WithDetail("length", length).
		WithDetail("max_length", e.options.MaxInputLength)
	e.logger.LogError(err)
	return err
}

// fail wraps a lexer or parser error with code, operation and position
func (e *Engine) fail(err error, operation, input string) error {
	code, position := classify(err)

	wrapped := mdwerror.Wrap(err, Kind(err).String()+" failed").
		WithCode(code).
		WithOperation(operation).
		WithDetail("position", position).
		WithDetail("input", input)

	e.logger.LogError(wrapped)
	return wrapped
}

func classify(err error) (mdwerror.Code, int) {
	var invalidChar *lexer.InvalidCharacterError
	var unexpectedEnd *parser.UnexpectedEndOfInputError
	var invalidToken *parser.InvalidTokenError
	var divByZero *parser.DivisionByZeroError

	switch {
	case errors.As(err, &invalidChar):
		return mdwerror.CodeInvalidCharacter, invalidChar.Position
	case errors.As(err, &unexpectedEnd):
		return mdwerror.CodeUnexpectedEnd, unexpectedEnd.Position
	case errors.As(err, &invalidToken):
		return mdwerror.CodeInvalidToken, invalidToken.Position
	case errors.As(err, &divByZero):
		return mdwerror.CodeDivisionByZero, divByZero.Position
	default:
		return mdwerror.CodeInternal, -1
	}
}

// Kind classifies err by the stage that produced it
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var invalidChar *lexer.InvalidCharacterError
	var unexpectedEnd *parser.UnexpectedEndOfInputError
	var invalidToken *parser.InvalidTokenError
	var divByZero *parser.DivisionByZeroError

	switch {
	case errors.As(err, &invalidChar):
		return KindLex
	case errors.As(err, &unexpectedEnd), errors.As(err, &invalidToken):
		return KindParse
	case errors.As(err, &divByZero):
		return KindEvaluation
	case mdwerror.HasCode(err, mdwerror.CodeInvalidInput):
		return KindInput
	default:
		return KindNone
	}
}

// Position returns the character or token index carried by err, or -1
func Position(err error) int {
	if err == nil {
		return -1
	}
	if mdwErr, ok := mdwerror.As(err); ok {
		if pos, ok := mdwErr.Detail("position"); ok {
			if p, ok := pos.(int); ok {
				return p
			}
		}
	}
	if _, pos := classify(err); pos >= 0 {
		return pos
	}
	return -1
}

// Message returns the user facing message of err without wrapping context
func Message(err error) string {
	if err == nil {
		return ""
	}
	if mdwErr, ok := mdwerror.As(err); ok {
		return mdwErr.RootCause().Error()
	}
	return err.Error()
}

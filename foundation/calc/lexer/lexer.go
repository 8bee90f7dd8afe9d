// File: lexer.go
// Title: Calculator Lexical Analyzer
// Description: Converts an expression string into a sequence of tokens in a
//              single forward pass. Positions are counted in characters and
//              reported in errors and in the Positions side table.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial lexer implementation

package lexer

import (
	"fmt"
	"math"

	"github.com/msto63/mcalc/foundation/calc/token"
)

// InvalidCharacterError reports a character that is not a digit, an
// operator symbol or whitespace.
type InvalidCharacterError struct {
	Char     rune
	Position int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("Invalid character at index %d: '%c'", e.Position, e.Char)
}

// Lexer performs lexical analysis of a single input. It is used once and
// then discarded.
type Lexer struct {
	input    []rune // Input characters
	position int    // Current offset; only ever advances
	offsets  []int  // Start offset of every emitted token
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Peek returns the character at the current offset without advancing.
// It reports false at end of input.
func (l *Lexer) Peek() (rune, bool) {
	if l.position >= len(l.input) {
		return 0, false
	}
	return l.input[l.position], true
}

// Advance moves forward by exactly one character. Advancing past the end is
// a bug in the scanner and panics.
func (l *Lexer) Advance() {
	if l.position >= len(l.input) {
		panic("lexer: cannot advance past end of input")
	}
	l.position++
}

// Position returns the current offset in characters
func (l *Lexer) Position() int {
	return l.position
}

// ScanNumber consumes a run of decimal digits and returns its value. It
// stops without consuming at the first non-digit. Values above math.MaxInt
// saturate at math.MaxInt; the whole digit run is still consumed.
func (l *Lexer) ScanNumber() int {
	value := 0
	for {
		ch, ok := l.Peek()
		if !ok || !isDigit(ch) {
			return value
		}
		digit := int(ch - '0')
		if value > (math.MaxInt-digit)/10 {
			value = math.MaxInt
		} else {
			value = value*10 + digit
		}
		l.Advance()
	}
}

// Lex returns all tokens of the input. On failure no tokens are returned.
func (l *Lexer) Lex() ([]token.Token, error) {
	var tokens []token.Token
	l.offsets = l.offsets[:0]

	for {
		ch, ok := l.Peek()
		if !ok {
			return tokens, nil
		}

		start := l.position
		switch {
		case isDigit(ch):
			tokens = append(tokens, token.NewNumber(l.ScanNumber()))
			l.offsets = append(l.offsets, start)
		case isWhitespace(ch):
			l.Advance()
		default:
			kind, isSymbol := token.LookupSymbol(ch)
			if !isSymbol {
				l.offsets = nil
				return nil, &InvalidCharacterError{Char: ch, Position: start}
			}
			tokens = append(tokens, token.NewSymbol(kind))
			l.offsets = append(l.offsets, start)
			l.Advance()
		}
	}
}

// Positions returns the start offset of every token produced by Lex and the
// input length.
func (l *Lexer) Positions() token.Positions {
	offsets := make([]int, len(l.offsets))
	copy(offsets, l.offsets)
	return token.Positions{Offsets: offsets, End: len(l.input)}
}

// Lex is a convenience function that tokenizes input with a fresh lexer
func Lex(input string) ([]token.Token, error) {
	return New(input).Lex()
}

// LexWithPositions tokenizes input and also returns the token positions
func LexWithPositions(input string) ([]token.Token, token.Positions, error) {
	l := New(input)
	tokens, err := l.Lex()
	if err != nil {
		return nil, token.Positions{}, err
	}
	return tokens, l.Positions(), nil
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

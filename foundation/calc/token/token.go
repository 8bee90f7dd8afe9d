// File: token.go
// Title: Calculator Token Model
// Description: Defines the closed set of lexical units produced by the lexer:
//              integer literals and the four arithmetic operator symbols.
//              Tokens carry no position; the lexer records positions in a
//              separate Positions table.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial token model

package token

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a token
type Kind int

const (
	Number Kind = iota // integer literal
	Plus               // +
	Minus              // -
	Star               // *
	Slash              // /
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Star:
		return "Star"
	case Slash:
		return "Slash"
	default:
		return "Unknown"
	}
}

// Symbol returns the source character of an operator kind
func (k Kind) Symbol() rune {
	switch k {
	case Plus:
		return '+'
	case Minus:
		return '-'
	case Star:
		return '*'
	case Slash:
		return '/'
	default:
		return 0
	}
}

// Token is a single lexical unit. Value is only meaningful for Number.
// Tokens are comparable with ==.
type Token struct {
	Kind  Kind
	Value int
}

// NewNumber creates a Number token
func NewNumber(value int) Token {
	return Token{Kind: Number, Value: value}
}

// NewSymbol creates an operator token of the given kind
func NewSymbol(kind Kind) Token {
	return Token{Kind: kind}
}

// LookupSymbol maps an operator character to its kind
func LookupSymbol(r rune) (Kind, bool) {
	switch r {
	case '+':
		return Plus, true
	case '-':
		return Minus, true
	case '*':
		return Star, true
	case '/':
		return Slash, true
	default:
		return 0, false
	}
}

// IsOperator reports whether the token is one of + - * /
func (t Token) IsOperator() bool {
	return t.Kind != Number
}

// String renders the token as "Number: 10" or "Symbol: +"
func (t Token) String() string {
	if t.Kind == Number {
		return fmt.Sprintf("Number: %d", t.Value)
	}
	return fmt.Sprintf("Symbol: %c", t.Kind.Symbol())
}

// Format renders a token sequence as "[Number: 10, Symbol: +, Number: 3]"
func Format(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Positions records where each token of a sequence starts in the source
// text, counted in characters. End is the length of the source.
type Positions struct {
	Offsets []int
	End     int
}

// At returns the character offset of token i, or End when i is past the
// last token.
func (p Positions) At(i int) int {
	if i >= 0 && i < len(p.Offsets) {
		return p.Offsets[i]
	}
	return p.End
}

// File: parser.go
// Title: Calculator Recursive Descent Parser
// Description: Consumes a token sequence and computes its integer value.
//              Two precedence tiers are resolved structurally:
//
//                expression := term (('+' | '-') term)*
//                term       := number (('*' | '/') number)*
//
//              Both tiers associate left to right. The first violation stops
//              the parse with a positioned error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"

	"github.com/msto63/mcalc/foundation/calc/token"
)

// UnexpectedEndOfInputError reports that the grammar needed another token
// but the sequence was exhausted.
type UnexpectedEndOfInputError struct {
	Position int
}

func (e *UnexpectedEndOfInputError) Error() string {
	return fmt.Sprintf("Unexpected end of input at index %d", e.Position)
}

// InvalidTokenError reports a token that is not allowed at its place
type InvalidTokenError struct {
	Token    token.Token
	Position int
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("Invalid token at index %d: %s", e.Position, e.Token)
}

// DivisionByZeroError reports a '/' whose right operand is zero. Position
// is that of the operator.
type DivisionByZeroError struct {
	Position int
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("Division by zero at index %d", e.Position)
}

// Parser evaluates one token sequence. It is used once and then discarded.
type Parser struct {
	tokens    []token.Token
	position  int // Read index; only ever advances
	positions *token.Positions
}

// New creates a parser over tokens. Without positions, error positions are
// token indices.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// WithPositions makes errors report character offsets from the lexer
func (p *Parser) WithPositions(positions token.Positions) *Parser {
	p.positions = &positions
	return p
}

// NextToken returns the token at the read index and advances. It reports
// false when the sequence is exhausted.
func (p *Parser) NextToken() (token.Token, bool) {
	if p.position >= len(p.tokens) {
		return token.Token{}, false
	}
	tok := p.tokens[p.position]
	p.position++
	return tok, true
}

// peek returns the token at the read index without advancing
func (p *Parser) peek() (token.Token, bool) {
	if p.position >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.position], true
}

// offset maps a token index to the position reported in errors
func (p *Parser) offset(index int) int {
	if p.positions != nil {
		return p.positions.At(index)
	}
	return index
}

// ParseNumber requires the next token to be a Number and returns its value
func (p *Parser) ParseNumber() (int, error) {
	index := p.position
	tok, ok := p.NextToken()
	if !ok {
		return 0, &UnexpectedEndOfInputError{Position: p.offset(index)}
	}

	if tok.Kind != token.Number {
		return 0, &InvalidTokenError{Token: tok, Position: p.offset(index)}
	}
	return tok.Value, nil
}

// ParseTerm parses number (('*' | '/') number)*
func (p *Parser) ParseTerm() (int, error) {
	value, err := p.ParseNumber()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.Kind != token.Star && tok.Kind != token.Slash) {
			return value, nil
		}
		operator := p.position
		p.NextToken()

		operand, err := p.ParseNumber()
		if err != nil {
			return 0, err
		}

		switch tok.Kind {
		case token.Star:
			value *= operand
		case token.Slash:
			if operand == 0 {
				return 0, &DivisionByZeroError{Position: p.offset(operator)}
			}
			value /= operand
		}
	}
}

// ParseExpression parses term (('+' | '-') term)*
func (p *Parser) ParseExpression() (int, error) {
	value, err := p.ParseTerm()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.Kind != token.Plus && tok.Kind != token.Minus) {
			return value, nil
		}
		p.NextToken()

		operand, err := p.ParseTerm()
		if err != nil {
			return 0, err
		}

		switch tok.Kind {
		case token.Plus:
			value += operand
		case token.Minus:
			value -= operand
		}
	}
}

// Parse evaluates the whole sequence. Tokens left over after a complete
// expression are rejected.
func (p *Parser) Parse() (int, error) {
	value, err := p.ParseExpression()
	if err != nil {
		return 0, err
	}

	if tok, ok := p.peek(); ok {
		return 0, &InvalidTokenError{Token: tok, Position: p.offset(p.position)}
	}
	return value, nil
}

// Evaluate is a convenience function that parses tokens with a fresh parser
func Evaluate(tokens []token.Token) (int, error) {
	return New(tokens).Parse()
}

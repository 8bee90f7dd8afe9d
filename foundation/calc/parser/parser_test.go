// File: parser_test.go
// Title: Calculator Parser Unit Tests
// Description: Tests evaluation, precedence, associativity, error kinds and
//              error positions of the recursive descent parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial test suite

package parser

import (
	"errors"
	"testing"

	"github.com/msto63/mcalc/foundation/calc/lexer"
	"github.com/msto63/mcalc/foundation/calc/token"
)

func parseString(t *testing.T, input string) (int, error) {
	t.Helper()
	tokens, positions, err := lexer.LexWithPositions(input)
	if err != nil {
		t.Fatalf("LexWithPositions(%q) error = %v", input, err)
	}
	return New(tokens).WithPositions(positions).Parse()
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"Single number", "42", 42},
		{"Addition chain", "10 + 3 + 5", 18},
		{"Addition and subtraction", "10 + 5 - 3 - 1", 11},
		{"Subtraction is left associative", "10 - 3 - 1", 6},
		{"Subtraction chain", "10 - 3 - 2", 5},
		{"Negative result", "3 - 10", -7},
		{"Products then sum", "10 * 3 + 5 * 3", 45},
		{"Product in the middle", "10 + 3 * 5 + 3", 28},
		{"Product chain after sum", "10 + 3 * 5 * 3", 55},
		{"Integer division truncates", "7 / 2", 3},
		{"Division is left associative", "100 / 10 / 5", 2},
		{"Multiply then divide", "2 * 3 / 4", 1},
		{"Divide then multiply", "2 / 4 * 3", 0},
		{"Both tiers with subtraction", "1 - 8 / 3 * 1 - 1", -2},
		{"No spaces", "2+3*4-6/2", 11},
		{"Zero dividend", "0 / 5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseString(t, tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		check    func(t *testing.T, err error)
		position int
		message  string
	}{
		{
			name:     "Empty input",
			input:    "",
			check:    isUnexpectedEnd,
			position: 0,
			message:  "Unexpected end of input at index 0",
		},
		{
			name:     "Whitespace only",
			input:    "   ",
			check:    isUnexpectedEnd,
			position: 3,
		},
		{
			name:     "Trailing plus",
			input:    "1 +",
			check:    isUnexpectedEnd,
			position: 3,
		},
		{
			name:     "Trailing star",
			input:    "1 + 2 *",
			check:    isUnexpectedEnd,
			position: 7,
		},
		{
			name:     "Two numbers",
			input:    "10 3 + 7",
			check:    isInvalidToken(token.NewNumber(3)),
			position: 3,
			message:  "Invalid token at index 3: Number: 3",
		},
		{
			name:     "Two numbers after operator",
			input:    "10 + 3 3 + 7",
			check:    isInvalidToken(token.NewNumber(3)),
			position: 7,
			message:  "Invalid token at index 7: Number: 3",
		},
		{
			name:     "Leading operator",
			input:    "+ 1",
			check:    isInvalidToken(token.NewSymbol(token.Plus)),
			position: 0,
			message:  "Invalid token at index 0: Symbol: +",
		},
		{
			name:     "Doubled operator",
			input:    "1 + + 2",
			check:    isInvalidToken(token.NewSymbol(token.Plus)),
			position: 4,
		},
		{
			name:     "Operator after star",
			input:    "2 * - 3",
			check:    isInvalidToken(token.NewSymbol(token.Minus)),
			position: 4,
		},
		{
			name:     "Division by zero",
			input:    "4 / 0",
			check:    isDivisionByZero,
			position: 2,
			message:  "Division by zero at index 2",
		},
		{
			name:     "Division by zero inside expression",
			input:    "1 + 8 / 0 * 2",
			check:    isDivisionByZero,
			position: 6,
		},
		{
			name:     "Division by zero reported before later errors",
			input:    "4 / 0 +",
			check:    isDivisionByZero,
			position: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseString(t, tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %d, want error", tt.input, got)
			}
			tt.check(t, err)

			if pos := errorPosition(err); pos != tt.position {
				t.Errorf("position = %d, want %d", pos, tt.position)
			}
			if tt.message != "" && err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestParser_TokenIndexPositions(t *testing.T) {
	tokens := []token.Token{
		token.NewNumber(10),
		token.NewNumber(3),
		token.NewSymbol(token.Plus),
		token.NewNumber(7),
	}

	_, err := Evaluate(tokens)

	var invalid *InvalidTokenError
	if !errors.As(err, &invalid) {
		t.Fatalf("Evaluate() error = %v, want *InvalidTokenError", err)
	}
	if invalid.Token != token.NewNumber(3) || invalid.Position != 1 {
		t.Errorf("got %v at %d, want Number: 3 at 1", invalid.Token, invalid.Position)
	}

	_, err = Evaluate([]token.Token{token.NewNumber(1), token.NewSymbol(token.Minus)})
	var end *UnexpectedEndOfInputError
	if !errors.As(err, &end) || end.Position != 2 {
		t.Errorf("Evaluate() error = %v, want end of input at token 2", err)
	}
}

func TestParser_NextToken(t *testing.T) {
	p := New([]token.Token{token.NewNumber(1), token.NewSymbol(token.Plus)})

	if tok, ok := p.NextToken(); !ok || tok != token.NewNumber(1) {
		t.Errorf("NextToken() = %v, %v", tok, ok)
	}
	if tok, ok := p.NextToken(); !ok || tok != token.NewSymbol(token.Plus) {
		t.Errorf("NextToken() = %v, %v", tok, ok)
	}
	for i := 0; i < 3; i++ {
		if _, ok := p.NextToken(); ok {
			t.Error("NextToken() on exhausted parser reported a token")
		}
	}
}

func TestParser_ParseNumber(t *testing.T) {
	if v, err := New([]token.Token{token.NewNumber(9)}).ParseNumber(); err != nil || v != 9 {
		t.Errorf("ParseNumber() = %d, %v; want 9, nil", v, err)
	}

	_, err := New([]token.Token{token.NewSymbol(token.Star)}).ParseNumber()
	isInvalidToken(token.NewSymbol(token.Star))(t, err)

	_, err = New(nil).ParseNumber()
	isUnexpectedEnd(t, err)
}

func TestParser_ParseTermStopsAtAdditive(t *testing.T) {
	p := New([]token.Token{
		token.NewNumber(2), token.NewSymbol(token.Star), token.NewNumber(3),
		token.NewSymbol(token.Plus), token.NewNumber(4),
	})

	v, err := p.ParseTerm()
	if err != nil || v != 6 {
		t.Fatalf("ParseTerm() = %d, %v; want 6, nil", v, err)
	}
	if tok, ok := p.NextToken(); !ok || tok.Kind != token.Plus {
		t.Errorf("ParseTerm() consumed past the term, next = %v", tok)
	}
}

func TestParser_ParseExpressionLeavesTrailing(t *testing.T) {
	p := New([]token.Token{token.NewNumber(1), token.NewSymbol(token.Plus), token.NewNumber(2), token.NewNumber(5)})

	v, err := p.ParseExpression()
	if err != nil || v != 3 {
		t.Fatalf("ParseExpression() = %d, %v; want 3, nil", v, err)
	}
}

func TestParser_AdditionOnlySubset(t *testing.T) {
	inputs := map[string]int{
		"1":             1,
		"1 + 2":         3,
		"1 + 3 + 3 + 7": 14,
		"0 + 0":         0,
	}
	for input, want := range inputs {
		got, err := parseString(t, input)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %d, %v; want %d", input, got, err, want)
		}
	}
}

func FuzzLexParse(f *testing.F) {
	for _, seed := range []string{"", "1", "10 + 3 * 5", "4 / 0", "1 + + 2", "10 3", "* / - +", "99999999999999999999 * 9"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tokens, positions, err := lexer.LexWithPositions(input)
		if err != nil {
			var invalid *lexer.InvalidCharacterError
			if !errors.As(err, &invalid) {
				t.Fatalf("lex error %T is not classified", err)
			}
			return
		}

		_, err = New(tokens).WithPositions(positions).Parse()
		if err == nil {
			return
		}

		var end *UnexpectedEndOfInputError
		var invalid *InvalidTokenError
		var div *DivisionByZeroError
		if !errors.As(err, &end) && !errors.As(err, &invalid) && !errors.As(err, &div) {
			t.Fatalf("parse error %T is not classified", err)
		}
		if pos := errorPosition(err); pos < 0 || pos > positions.End {
			t.Fatalf("position %d outside input of length %d", pos, positions.End)
		}
	})
}

func BenchmarkParser_Parse(b *testing.B) {
	tokens, err := lexer.Lex("10 + 3 * 5 * 3 - 144 / 12 + 7 * 7 * 7 - 1")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(tokens); err != nil {
			b.Fatal(err)
		}
	}
}

func isUnexpectedEnd(t *testing.T, err error) {
	t.Helper()
	var target *UnexpectedEndOfInputError
	if !errors.As(err, &target) {
		t.Fatalf("error = %v (%T), want *UnexpectedEndOfInputError", err, err)
	}
}

func isDivisionByZero(t *testing.T, err error) {
	t.Helper()
	var target *DivisionByZeroError
	if !errors.As(err, &target) {
		t.Fatalf("error = %v (%T), want *DivisionByZeroError", err, err)
	}
}

func isInvalidToken(want token.Token) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		var target *InvalidTokenError
		if !errors.As(err, &target) {
			t.Fatalf("error = %v (%T), want *InvalidTokenError", err, err)
		}
		if target.Token != want {
			t.Errorf("Token = %v, want %v", target.Token, want)
		}
	}
}

func errorPosition(err error) int {
	var end *UnexpectedEndOfInputError
	var invalid *InvalidTokenError
	var div *DivisionByZeroError
	switch {
	case errors.As(err, &end):
		return end.Position
	case errors.As(err, &invalid):
		return invalid.Position
	case errors.As(err, &div):
		return div.Position
	}
	return -1
}

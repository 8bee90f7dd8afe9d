package token

import "testing"

func TestToken_String(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{NewNumber(10), "Number: 10"},
		{NewNumber(0), "Number: 0"},
		{NewSymbol(Plus), "Symbol: +"},
		{NewSymbol(Minus), "Symbol: -"},
		{NewSymbol(Star), "Symbol: *"},
		{NewSymbol(Slash), "Symbol: /"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToken_Equality(t *testing.T) {
	if NewNumber(3) != NewNumber(3) {
		t.Error("equal numbers compare unequal")
	}
	if NewNumber(3) == NewNumber(4) {
		t.Error("different numbers compare equal")
	}
	if NewSymbol(Plus) == NewSymbol(Minus) {
		t.Error("different symbols compare equal")
	}
	if NewSymbol(Star).IsOperator() != true || NewNumber(1).IsOperator() {
		t.Error("IsOperator() misclassifies tokens")
	}
}

func TestLookupSymbol(t *testing.T) {
	for _, kind := range []Kind{Plus, Minus, Star, Slash} {
		got, ok := LookupSymbol(kind.Symbol())
		if !ok || got != kind {
			t.Errorf("LookupSymbol(%q) = %v, %v; want %v", kind.Symbol(), got, ok, kind)
		}
	}
	if _, ok := LookupSymbol('%'); ok {
		t.Error("LookupSymbol('%') should fail")
	}
}

func TestFormat(t *testing.T) {
	tokens := []Token{NewNumber(10), NewSymbol(Plus), NewNumber(3)}
	want := "[Number: 10, Symbol: +, Number: 3]"
	if got := Format(tokens); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if got := Format(nil); got != "[]" {
		t.Errorf("Format(nil) = %q, want []", got)
	}
}

func TestPositions_At(t *testing.T) {
	p := Positions{Offsets: []int{0, 3, 5}, End: 6}

	tests := []struct {
		i    int
		want int
	}{
		{0, 0}, {1, 3}, {2, 5}, {3, 6}, {10, 6}, {-1, 6},
	}
	for _, tt := range tests {
		if got := p.At(tt.i); got != tt.want {
			t.Errorf("At(%d) = %d, want %d", tt.i, got, tt.want)
		}
	}
}

package domain

import "fmt"

// Symbol is one letter of the numeral alphabet.
type Symbol rune

const (
	SymbolI Symbol = 'I'
	SymbolV Symbol = 'V'
	SymbolX Symbol = 'X'
	SymbolL Symbol = 'L'
)

// Alphabet lists the supported symbols in canonical order.
var Alphabet = []Symbol{SymbolI, SymbolV, SymbolX, SymbolL}

// ParseSymbol maps a rune to its Symbol. Lowercase input is not folded here;
// case normalization belongs to the caller.
func ParseSymbol(r rune) (Symbol, bool) {
	switch Symbol(r) {
	case SymbolI, SymbolV, SymbolX, SymbolL:
		return Symbol(r), true
	}
	return 0, false
}

// Value returns the numeral value of the symbol, or 0 for an unknown symbol.
func (s Symbol) Value() int {
	switch s {
	case SymbolI:
		return 1
	case SymbolV:
		return 5
	case SymbolX:
		return 10
	case SymbolL:
		return 50
	}
	return 0
}

func (s Symbol) String() string {
	return string(rune(s))
}

// MarshalText encodes the symbol as its letter.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a single-letter symbol.
func (s *Symbol) UnmarshalText(text []byte) error {
	r := []rune(string(text))
	if len(r) != 1 {
		return fmt.Errorf("symbol must be a single character, got %q", text)
	}
	sym, ok := ParseSymbol(r[0])
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCharacter, r[0])
	}
	*s = sym
	return nil
}

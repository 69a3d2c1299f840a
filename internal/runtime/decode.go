package runtime

import "github.com/aretw0/romandfa/pkg/domain"

// Decode converts symbols to their decimal value, scanning right to left:
// a value strictly smaller than the previous one is subtracted, otherwise added.
// It does not check membership in any automaton's language.
func Decode(symbols []domain.Symbol) int {
	total, prev := 0, 0
	for i := len(symbols) - 1; i >= 0; i-- {
		v := symbols[i].Value()
		if v < prev {
			total -= v
		} else {
			total += v
		}
		prev = v
	}
	return total
}

// DecodeString decodes text without running the automaton.
// Input is normalized first; a non-symbol yields a Rejection.
func DecodeString(text string) (int, error) {
	normalized := Normalize(text)
	symbols := make([]domain.Symbol, 0, len(normalized))
	position := 0
	for _, r := range normalized {
		sym, ok := domain.ParseSymbol(r)
		if !ok {
			return 0, domain.InvalidCharacter(r, position)
		}
		symbols = append(symbols, sym)
		position++
	}
	return Decode(symbols), nil
}

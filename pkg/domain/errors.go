package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCharacter is matched by rejections caused by a symbol outside the alphabet.
var ErrInvalidCharacter = errors.New("invalid character")

// ErrNotAccepting is matched by rejections where the run ended in a non-accepting state.
var ErrNotAccepting = errors.New("not accepting")

// ErrMalformedDefinition is returned when static automaton data is inconsistent.
var ErrMalformedDefinition = errors.New("malformed automaton definition")

// ErrRecordNotFound is returned when a record ID cannot be found in the store.
var ErrRecordNotFound = errors.New("record not found")

// DefinitionError collects every problem found while building an Automaton.
type DefinitionError struct {
	Name     string
	Problems []string
}

func (e *DefinitionError) Error() string {
	prefix := ErrMalformedDefinition.Error()
	if e.Name != "" {
		prefix = fmt.Sprintf("%s %q", prefix, e.Name)
	}
	if len(e.Problems) == 1 {
		return prefix + ": " + e.Problems[0]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d problems:\n", prefix, len(e.Problems))
	for i, p := range e.Problems {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, p)
	}
	return sb.String()
}

func (e *DefinitionError) Unwrap() error {
	return ErrMalformedDefinition
}

func (e *DefinitionError) addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

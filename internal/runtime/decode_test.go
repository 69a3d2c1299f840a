package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/romandfa/internal/runtime"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"I", 1},
		{"III", 3},
		{"IV", 4},
		{"IX", 9},
		{"XIV", 14},
		{"XL", 40},
		{"XLIX", 49},
		{"L", 50},
		// Not in the accepted language; the arithmetic still applies.
		{"VX", 5},
		{"IL", 49},
		{"IIX", 10},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := runtime.DecodeString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeString_InvalidCharacter(t *testing.T) {
	_, err := runtime.DecodeString("xic")
	assert.ErrorIs(t, err, domain.ErrInvalidCharacter)

	var rej *domain.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "C", rej.Char)
	assert.Equal(t, 2, rej.Position)
}

func TestValidateAll(t *testing.T) {
	engine := newRomanEngine(runtime.WithBatchConcurrency(3))
	inputs := []string{"I", "II", "IIII", "XW", "L", "xlix", ""}

	verdicts, err := engine.ValidateAll(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, verdicts, len(inputs))

	for i, in := range inputs {
		assert.Equal(t, engine.Validate(context.Background(), in), verdicts[i], in)
	}
}

func TestValidateAll_Canceled(t *testing.T) {
	engine := newRomanEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	verdicts, err := engine.ValidateAll(ctx, []string{"I", "V"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, verdicts)
}

package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/romandfa/pkg/adapters/file"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefinition_Roman(t *testing.T) {
	def, err := file.LoadDefinition(filepath.Join("testdata", "roman.yaml"))
	require.NoError(t, err)

	assert.Equal(t, domain.RomanDefinition(), def)

	a, err := domain.NewAutomaton(def)
	require.NoError(t, err)
	to, ok := a.Transition("q16", domain.SymbolX)
	require.True(t, ok)
	assert.Equal(t, domain.StateID("q18"), to)
}

func TestEncodeDefinition_RoundTrip(t *testing.T) {
	for _, format := range []file.Format{file.FormatYAML, file.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := file.EncodeDefinition(domain.RomanDefinition(), format)
			require.NoError(t, err)

			def, err := file.ParseDefinition(data, format)
			require.NoError(t, err)
			assert.Equal(t, domain.RomanDefinition(), def)
		})
	}
}

func TestLoadDefinition_JSONByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"name": "tiny",
		"states": ["s", "a", "d"],
		"start": "s",
		"dead": "d",
		"accepting": ["a"],
		"transitions": {"s": {"I": "a"}}
	}`), 0644))

	def, err := file.LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny", def.Name)
	assert.Empty(t, def.Alphabet)
	assert.Equal(t, domain.StateID("a"), def.Transitions["s"][domain.SymbolI])
}

func TestParseDefinition_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
		msg  string
	}{
		{name: "Unknown key", doc: "start: q0\nstart_state: q1\n", want: domain.ErrMalformedDefinition, msg: "start_state"},
		{name: "Symbol outside alphabet", doc: "transitions:\n  q0: {C: q1}\n", want: domain.ErrMalformedDefinition, msg: "invalid character"},
		{name: "Multi-letter symbol", doc: "alphabet: [IV]\n", msg: "single character"},
		{name: "Empty document", doc: "", want: domain.ErrMalformedDefinition},
		{name: "Broken yaml", doc: "states: [q0\n", msg: "failed to parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.ParseDefinition([]byte(tt.doc), file.FormatYAML)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoadDefinition_Missing(t *testing.T) {
	_, err := file.LoadDefinition(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

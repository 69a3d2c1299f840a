package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/romandfa"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *romandfa.Engine {
	t.Helper()
	eng, err := romandfa.New()
	require.NoError(t, err)
	return eng
}

func TestRunCheck_Text(t *testing.T) {
	var out bytes.Buffer
	rejected, err := RunCheck(context.Background(), newTestEngine(t), CheckOptions{
		Inputs:  []string{"xiv", "IIII"},
		Out:     &out,
		Profile: termenv.Ascii,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rejected)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "✔ valid = 14")
	assert.Contains(t, lines[1], `not accepting: run ended in state "q_dead"`)
}

func TestRunCheck_Trace(t *testing.T) {
	var out bytes.Buffer
	_, err := RunCheck(context.Background(), newTestEngine(t), CheckOptions{
		Inputs:  []string{"IV"},
		Out:     &out,
		Trace:   true,
		Profile: termenv.Ascii,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "path: q0 -I-> q1 -V-> q4")
}

func TestRunCheck_JSON(t *testing.T) {
	var out bytes.Buffer
	rejected, err := RunCheck(context.Background(), newTestEngine(t), CheckOptions{
		Inputs: []string{"L", "XW"},
		Out:    &out,
		Format: FormatJSON,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rejected)

	dec := json.NewDecoder(&out)
	var first, second domain.Verdict
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.True(t, first.Accepted)
	assert.Equal(t, 50, first.Value)
	require.NotNil(t, second.Rejection)
	assert.Equal(t, domain.RejectInvalidCharacter, second.Rejection.Kind)
	assert.Equal(t, "W", second.Rejection.Char)
}

func TestRunCheck_MarkdownRaw(t *testing.T) {
	var out bytes.Buffer
	_, err := RunCheck(context.Background(), newTestEngine(t), CheckOptions{
		Inputs: []string{"V", "VV"},
		Out:    &out,
		Format: FormatMarkdown,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "# Numeral report")
	assert.Contains(t, out.String(), "2 checked, **1 accepted**, 1 rejected.")
}

func TestRunCheck_Stdin(t *testing.T) {
	var out bytes.Buffer
	rejected, err := RunCheck(context.Background(), newTestEngine(t), CheckOptions{
		In:      strings.NewReader("x\n\n   \nxl\nc\n"),
		Out:     &out,
		Prompt:  true,
		Profile: termenv.Ascii,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rejected)

	got := out.String()
	assert.Contains(t, got, "= 10")
	assert.Contains(t, got, "= 40")
	assert.Contains(t, got, `invalid character "C" at position 0`)
	// One prompt per line read, plus the one answered by EOF.
	assert.Equal(t, 6, strings.Count(got, "> "))
}

func TestRunCheck_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunCheck(ctx, newTestEngine(t), CheckOptions{
		In:  strings.NewReader("X\n"),
		Out: &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCheck_UnknownFormat(t *testing.T) {
	_, err := RunCheck(context.Background(), newTestEngine(t), CheckOptions{
		Inputs: []string{"I"},
		Out:    &bytes.Buffer{},
		Format: "xml",
	})
	assert.ErrorContains(t, err, "unknown format")
}

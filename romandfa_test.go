package romandfa_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/romandfa"
	"github.com/aretw0/romandfa/pkg/adapters/memory"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Facade(t *testing.T) {
	a := romandfa.BuildAutomaton()

	v := romandfa.Validate(a, "III")
	assert.True(t, v.Accepted)
	assert.Equal(t, 3, v.Value)

	v = romandfa.Validate(a, "XW")
	require.False(t, v.Accepted)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidCharacter)
	assert.Equal(t, 1, v.Rejection.Position)

	v = romandfa.Validate(a, "")
	require.False(t, v.Accepted)
	assert.Equal(t, domain.NotAccepting("q0"), v.Rejection)
}

func TestDecode_Facade(t *testing.T) {
	n, err := romandfa.Decode("xiv")
	require.NoError(t, err)
	assert.Equal(t, 14, n)

	_, err = romandfa.Decode("MMX")
	assert.ErrorIs(t, err, domain.ErrInvalidCharacter)
}

func TestEngine_DefaultsToRoman(t *testing.T) {
	eng, err := romandfa.New()
	require.NoError(t, err)

	assert.Equal(t, "roman", eng.Inspect().Name())
	assert.Equal(t, 50, eng.Validate(context.Background(), "L").Value)
	assert.Nil(t, eng.Store())
}

func TestEngine_MalformedDefinition(t *testing.T) {
	def := domain.RomanDefinition()
	def.Accepting = append(def.Accepting, "q99")

	eng, err := romandfa.New(romandfa.WithDefinition(def))
	assert.Nil(t, eng)
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)
}

func TestEngine_Submit(t *testing.T) {
	store := memory.NewStore()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	eng, err := romandfa.New(
		romandfa.WithStore(store),
		romandfa.WithClock(func() time.Time { return fixed }),
		romandfa.WithIDGenerator(func() string { n++; return "rec-" + string(rune('0'+n)) }),
	)
	require.NoError(t, err)
	ctx := context.Background()

	rec, err := eng.Submit(ctx, "xiv")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, fixed, rec.CreatedAt)
	assert.Equal(t, 14, rec.Verdict.Value)

	_, err = eng.Submit(ctx, "IIII")
	require.NoError(t, err)

	ids, err := eng.Records(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"rec-1", "rec-2"}, ids)

	loaded, err := eng.Record(ctx, "rec-2")
	require.NoError(t, err)
	assert.ErrorIs(t, loaded.Verdict.Err(), domain.ErrNotAccepting)
}

func TestEngine_SubmitWithoutStore(t *testing.T) {
	eng, err := romandfa.New()
	require.NoError(t, err)

	rec, err := eng.Submit(context.Background(), "V")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	_, err = eng.Record(context.Background(), rec.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

type failingStore struct{ *memory.Store }

func (*failingStore) Save(context.Context, *domain.Record) error { return errors.New("disk full") }

func TestEngine_SubmitStoreFailure(t *testing.T) {
	eng, err := romandfa.New(romandfa.WithStore(&failingStore{Store: memory.NewStore()}))
	require.NoError(t, err)

	rec, err := eng.Submit(context.Background(), "V")
	assert.Nil(t, rec)
	assert.ErrorContains(t, err, "disk full")
}

func TestEngine_Reload(t *testing.T) {
	eng, err := romandfa.New()
	require.NoError(t, err)
	ctx := context.Background()

	require.True(t, eng.Validate(ctx, "L").Accepted)

	def := domain.RomanDefinition()
	def.Name = "no-fifty"
	delete(def.Transitions["q0"], domain.SymbolL)
	require.NoError(t, eng.Reload(def))

	assert.Equal(t, "no-fifty", eng.Inspect().Name())
	assert.False(t, eng.Validate(ctx, "L").Accepted)

	bad := domain.RomanDefinition()
	bad.Start = "nowhere"
	assert.ErrorIs(t, eng.Reload(bad), domain.ErrMalformedDefinition)
	assert.Equal(t, "no-fifty", eng.Inspect().Name(), "failed reload keeps the previous automaton")
}

func TestEngine_Hooks(t *testing.T) {
	var got []*domain.Verdict
	eng, err := romandfa.New(romandfa.WithLifecycleHooks(domain.LifecycleHooks{
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) { got = append(got, e.Verdict) },
	}))
	require.NoError(t, err)

	_, err = eng.ValidateAll(context.Background(), []string{"I"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "I", got[0].Input)
}

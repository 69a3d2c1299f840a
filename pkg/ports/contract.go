package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunVerdictStoreContract runs a suite of tests to verify that a VerdictStore implementation
// adheres to the defined interface contract.
func RunVerdictStoreContract(t *testing.T, store VerdictStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	record := func(id string, at time.Time, v *domain.Verdict) *domain.Record {
		return &domain.Record{ID: id, Verdict: v, CreatedAt: at.UTC().Truncate(time.Millisecond)}
	}

	t.Run("Save and Load", func(t *testing.T) {
		id := prefix + "-accepted"
		rec := record(id, time.Now(), domain.Accepted("IV", 4, []domain.Step{
			{From: "q0", Symbol: domain.SymbolI, To: "q1"},
			{From: "q1", Symbol: domain.SymbolV, To: "q4"},
		}))

		require.NoError(t, store.Save(ctx, rec), "Save should not return error")
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.ID, loaded.ID)
		assert.True(t, rec.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, rec.Verdict, loaded.Verdict)
	})

	t.Run("Rejection Survives", func(t *testing.T) {
		id := prefix + "-rejected"
		rec := record(id, time.Now(), domain.Rejected("XW", domain.InvalidCharacter('W', 1), []domain.Step{
			{From: "q0", Symbol: domain.SymbolX, To: "q10"},
		}))
		require.NoError(t, store.Save(ctx, rec))
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.ErrorIs(t, loaded.Verdict.Err(), domain.ErrInvalidCharacter)
		assert.Equal(t, 1, loaded.Verdict.Rejection.Position)
	})

	t.Run("Isolation", func(t *testing.T) {
		id := prefix + "-isolated"
		rec := record(id, time.Now(), domain.Accepted("L", 50, []domain.Step{
			{From: "q0", Symbol: domain.SymbolL, To: "q14"},
		}))
		require.NoError(t, store.Save(ctx, rec))
		defer func() { _ = store.Delete(ctx, id) }()

		rec.Verdict.Value = 0
		rec.Verdict.Path[0].To = "mutated"

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 50, loaded.Verdict.Value)
		assert.Equal(t, domain.StateID("q14"), loaded.Verdict.Path[0].To)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, prefix+"-missing")
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := prefix + "-deleted"
		require.NoError(t, store.Save(ctx, record(id, time.Now(), domain.Accepted("I", 1, nil))))

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound, "Load after Delete should return ErrRecordNotFound")
		assert.NoError(t, store.Delete(ctx, id), "Deleting twice should not fail")
	})

	t.Run("List Oldest First", func(t *testing.T) {
		base := time.Now().Add(-time.Minute)
		id1, id2, id3 := prefix+"-list-1", prefix+"-list-2", prefix+"-list-3"
		// Saved out of order on purpose.
		require.NoError(t, store.Save(ctx, record(id2, base.Add(2*time.Second), domain.Accepted("II", 2, nil))))
		require.NoError(t, store.Save(ctx, record(id1, base.Add(1*time.Second), domain.Accepted("I", 1, nil))))
		require.NoError(t, store.Save(ctx, record(id3, base.Add(3*time.Second), domain.Accepted("III", 3, nil))))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
			_ = store.Delete(ctx, id3)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)

		var ours []string
		for _, id := range ids {
			if id == id1 || id == id2 || id == id3 {
				ours = append(ours, id)
			}
		}
		assert.Equal(t, []string{id1, id2, id3}, ours)
	})
}

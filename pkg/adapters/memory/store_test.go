package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/romandfa/pkg/adapters/memory"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/aretw0/romandfa/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunVerdictStoreContract(t, store)
}

func TestMemoryStore_ConcurrentSaves(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := &domain.Record{
				ID:        fmt.Sprintf("rec-%02d", i),
				Verdict:   domain.Accepted("I", 1, nil),
				CreatedAt: time.Unix(int64(i), 0),
			}
			assert.NoError(t, store.Save(ctx, rec))
		}()
	}
	wg.Wait()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 50)
	assert.Equal(t, "rec-00", ids[0])
	assert.Equal(t, "rec-49", ids[49])
}

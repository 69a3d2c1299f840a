package ports

import (
	"context"

	"github.com/aretw0/romandfa/pkg/domain"
)

// VerdictStore defines the interface for persisting validation records.
type VerdictStore interface {
	// Save persists the record under record.ID, replacing any previous value.
	Save(ctx context.Context, record *domain.Record) error

	// Load retrieves a record by ID.
	// Returns domain.ErrRecordNotFound if the record does not exist.
	Load(ctx context.Context, id string) (*domain.Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored records, oldest first.
	List(ctx context.Context) ([]string, error)
}

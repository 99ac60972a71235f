package repository

import (
	"context"

	"hda-data/internal/domain"
)

// RecordStore is the generic CRUD contract over owner-scoped collections.
//
// Store-side rules shared by every implementation:
//   - List returns only rows whose user_id equals ownerID, newest first,
//     and an empty slice (not an error) when there are none.
//   - Create returns the stored row with its generated id and timestamps.
//   - Update merges the patch; a missing id is a PersistenceError wrapping
//     domain.ErrNotFound.
//   - Delete of a missing id succeeds silently.
//
// Failures are returned as *domain.PersistenceError with the underlying
// cause attached. Nothing is retried.
type RecordStore interface {
	List(ctx context.Context, kind domain.Kind, ownerID string) ([]domain.Record, error)
	Create(ctx context.Context, rec domain.Record) (domain.Record, error)
	Update(ctx context.Context, kind domain.Kind, id string, patch map[string]any) (domain.Record, error)
	Delete(ctx context.Context, kind domain.Kind, id string) error
}

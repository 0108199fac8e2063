package plantdb

import (
	"context"
)

// PlantStore is the external, persistent plant table. It is the source of truth the index is
// rebuilt from, and the sink that insert/delete are persisted to before the index is patched.
type PlantStore interface {
	// LoadSnapshot fetches every plant row.
	LoadSnapshot(ctx context.Context) ([]*PlantRecord, error)
	// Insert persists one new row. Returns ErrRecordExists (wrapped) if the id is taken.
	Insert(ctx context.Context, rec *PlantRecord) error
	// Delete removes the row with the given id. Returns ErrRecordNotFound (wrapped) if absent.
	Delete(ctx context.Context, id UUID) error
}

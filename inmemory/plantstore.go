// Package inmemory provides a map-backed plant table for standalone runs and tests.
package inmemory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/herbverse/plantdb"
)

// PlantStore is the in-memory implementation of plantdb.PlantStore. Uses a map to manage rows in memory
// and remembers the order rows were added in, which LoadSnapshot preserves.
type PlantStore struct {
	lookup map[plantdb.UUID]plantdb.PlantRecord
	order  []plantdb.UUID
	mux    sync.Mutex
}

// NewPlantStore instantiates an empty PlantStore that keeps rows in a map.
func NewPlantStore(seed ...*plantdb.PlantRecord) *PlantStore {
	ps := &PlantStore{
		lookup: make(map[plantdb.UUID]plantdb.PlantRecord),
	}
	ps.Seed(seed...)
	return ps
}

// Seed upserts rows, assigning an id to any row without one. Nil rows are ignored.
func (ps *PlantStore) Seed(records ...*plantdb.PlantRecord) {
	ps.mux.Lock()
	defer ps.mux.Unlock()
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.ID.IsNil() {
			rec.ID = plantdb.NewUUID()
		}
		ps.put(*rec)
	}
}

func (ps *PlantStore) put(rec plantdb.PlantRecord) {
	if _, ok := ps.lookup[rec.ID]; !ok {
		ps.order = append(ps.order, rec.ID)
	}
	ps.lookup[rec.ID] = rec
}

// LoadSnapshot returns copies of every row in the order they were added.
func (ps *PlantStore) LoadSnapshot(ctx context.Context) ([]*plantdb.PlantRecord, error) {
	ps.mux.Lock()
	defer ps.mux.Unlock()
	r := make([]*plantdb.PlantRecord, 0, len(ps.order))
	for _, id := range ps.order {
		c := ps.lookup[id]
		r = append(r, &c)
	}
	return r, nil
}

// Insert adds a copy of rec keyed by its id.
func (ps *PlantStore) Insert(ctx context.Context, rec *plantdb.PlantRecord) error {
	ps.mux.Lock()
	defer ps.mux.Unlock()
	if _, ok := ps.lookup[rec.ID]; ok {
		return fmt.Errorf("inmemory insert of %s failed: %w", rec.ID, plantdb.ErrRecordExists)
	}
	ps.put(*rec)
	return nil
}

// Delete removes the row with id.
func (ps *PlantStore) Delete(ctx context.Context, id plantdb.UUID) error {
	ps.mux.Lock()
	defer ps.mux.Unlock()
	if _, ok := ps.lookup[id]; !ok {
		return fmt.Errorf("inmemory delete of %s failed: %w", id, plantdb.ErrRecordNotFound)
	}
	delete(ps.lookup, id)
	ps.order = slices.DeleteFunc(ps.order, func(x plantdb.UUID) bool { return x == id })
	return nil
}

// Count returns the number of rows.
func (ps *PlantStore) Count() int {
	ps.mux.Lock()
	defer ps.mux.Unlock()
	return len(ps.lookup)
}

package catalog

import (
	"context"
	"errors"

	"github.com/herbverse/plantdb"
	"github.com/herbverse/plantdb/inmemory"
)

var errUnavailable = errors.New("store unavailable")

// mockStore wraps the in-memory store, logs every call and fails on demand.
type mockStore struct {
	*inmemory.PlantStore
	calls []string

	// snapshot, when set, is returned by LoadSnapshot instead of the in-memory rows.
	snapshot     []*plantdb.PlantRecord
	loadFailures int
	failInserts  bool
	failDeletes  bool
}

func newMockStore(seed ...*plantdb.PlantRecord) *mockStore {
	return &mockStore{PlantStore: inmemory.NewPlantStore(seed...)}
}

func (m *mockStore) LoadSnapshot(ctx context.Context) ([]*plantdb.PlantRecord, error) {
	m.calls = append(m.calls, "load")
	if m.loadFailures > 0 {
		m.loadFailures--
		return nil, errUnavailable
	}
	if m.snapshot != nil {
		return m.snapshot, nil
	}
	return m.PlantStore.LoadSnapshot(ctx)
}

func (m *mockStore) Insert(ctx context.Context, rec *plantdb.PlantRecord) error {
	m.calls = append(m.calls, "insert")
	if m.failInserts {
		return errUnavailable
	}
	return m.PlantStore.Insert(ctx, rec)
}

func (m *mockStore) Delete(ctx context.Context, id plantdb.UUID) error {
	m.calls = append(m.calls, "delete")
	if m.failDeletes {
		return errUnavailable
	}
	return m.PlantStore.Delete(ctx, id)
}

func (m *mockStore) count(call string) int {
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

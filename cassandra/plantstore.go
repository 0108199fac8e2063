package cassandra

import (
	"context"
	"fmt"
	log "log/slog"

	"github.com/gocql/gocql"

	"github.com/herbverse/plantdb"
)

type plantStore struct {
	conn *Connection
}

// NewPlantStore returns a PlantStore over the plants table of conn's keyspace.
func NewPlantStore(conn *Connection) (plantdb.PlantStore, error) {
	if conn == nil || conn.Session == nil {
		return nil, fmt.Errorf("Cassandra connection is closed, 'call OpenConnection(config) to open it")
	}
	return &plantStore{conn: conn}, nil
}

func (ps *plantStore) query(ctx context.Context, stmt string, c gocql.Consistency, values ...interface{}) *gocql.Query {
	qry := ps.conn.Session.Query(stmt, values...).WithContext(ctx)
	if c > gocql.Any {
		qry.Consistency(c)
	}
	return qry
}

// LoadSnapshot scans every row of the plants table.
func (ps *plantStore) LoadSnapshot(ctx context.Context) ([]*plantdb.PlantRecord, error) {
	qry := ps.query(ctx, selectStatement(ps.conn.Keyspace), ps.conn.ConsistencyBook.PlantGet)

	iter := qry.Iter()
	var r []*plantdb.PlantRecord
	for {
		rec := &plantdb.PlantRecord{}
		if !iter.Scan(scanTargets(rec)...) {
			break
		}
		r = append(r, rec)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("cassandra select from %s.%s failed: %w", ps.conn.Keyspace, tableName, err)
	}
	log.Debug("cassandra plant snapshot loaded", "keyspace", ps.conn.Keyspace, "rows", len(r))
	return r, nil
}

// Insert adds rec using a lightweight transaction so an existing id is never overwritten.
func (ps *plantStore) Insert(ctx context.Context, rec *plantdb.PlantRecord) error {
	qry := ps.query(ctx, insertStatement(ps.conn.Keyspace), ps.conn.ConsistencyBook.PlantAdd, rowValues(rec)...)
	applied, err := qry.MapScanCAS(map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("cassandra insert of %s failed: %w", rec.ID, err)
	}
	if !applied {
		return fmt.Errorf("cassandra insert of %s failed: %w", rec.ID, plantdb.ErrRecordExists)
	}
	return nil
}

// Delete removes the row with id.
func (ps *plantStore) Delete(ctx context.Context, id plantdb.UUID) error {
	qry := ps.query(ctx, deleteStatement(ps.conn.Keyspace), ps.conn.ConsistencyBook.PlantRemove, gocql.UUID(id))
	applied, err := qry.MapScanCAS(map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("cassandra delete of %s failed: %w", id, err)
	}
	if !applied {
		return fmt.Errorf("cassandra delete of %s failed: %w", id, plantdb.ErrRecordNotFound)
	}
	return nil
}

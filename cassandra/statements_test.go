package cassandra

import (
	"strings"
	"testing"

	"github.com/gocql/gocql"

	"github.com/herbverse/plantdb"
)

func TestStatements(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want []string
	}{
		{"keyspace", createKeyspaceStatement("herbs", "{'class':'SimpleStrategy', 'replication_factor':1}"),
			[]string{"CREATE KEYSPACE IF NOT EXISTS herbs", "replication_factor':1}"}},
		{"table", createTableStatement("herbs"),
			[]string{"CREATE TABLE IF NOT EXISTS herbs.plants (", "id uuid PRIMARY KEY", "medicinal_uses list<text>", "max_height double", "is_featured boolean);"}},
		{"select", selectStatement("herbs"),
			[]string{"SELECT id, common_name, botanical_name", "FROM herbs.plants;"}},
		{"insert", insertStatement("herbs"),
			[]string{"INSERT INTO herbs.plants (id, common_name", "IF NOT EXISTS;"}},
		{"delete", deleteStatement("herbs"),
			[]string{"DELETE FROM herbs.plants WHERE id = ? IF EXISTS;"}},
	}
	for _, tt := range tests {
		for _, w := range tt.want {
			if !strings.Contains(tt.got, w) {
				t.Errorf("%s: %q does not contain %q", tt.name, tt.got, w)
			}
		}
	}
}

func TestInsertStatement_PlaceholderCount(t *testing.T) {
	stmt := insertStatement("herbs")
	if got := strings.Count(stmt, "?"); got != len(plantColumns) {
		t.Fatalf("got %d placeholders, want %d", got, len(plantColumns))
	}
}

func TestRowValuesAndScanTargets_FollowColumns(t *testing.T) {
	rec := &plantdb.PlantRecord{
		ID:          plantdb.NewUUID(),
		CommonName:  "Neem",
		Precautions: []string{"Avoid during pregnancy"},
		MaxHeight:   15,
		IsFeatured:  true,
	}
	vals := rowValues(rec)
	if len(vals) != len(plantColumns) {
		t.Fatalf("got %d values, want %d", len(vals), len(plantColumns))
	}
	if vals[0] != gocql.UUID(rec.ID) || vals[1] != "Neem" {
		t.Errorf("unexpected leading values %v", vals[:2])
	}
	if vals[len(vals)-1] != true {
		t.Errorf("is_featured value %v", vals[len(vals)-1])
	}

	var scanned plantdb.PlantRecord
	targets := scanTargets(&scanned)
	if len(targets) != len(plantColumns) {
		t.Fatalf("got %d targets, want %d", len(targets), len(plantColumns))
	}
	// Simulate a driver scan by copying each value through its target pointer.
	for i, v := range vals {
		switch p := targets[i].(type) {
		case *gocql.UUID:
			*p = v.(gocql.UUID)
		case *string:
			*p = v.(string)
		case *[]string:
			*p = v.([]string)
		case *float64:
			*p = v.(float64)
		case *bool:
			*p = v.(bool)
		default:
			t.Fatalf("unexpected target type %T at column %s", p, plantColumns[i].name)
		}
	}
	if scanned.ID != rec.ID || scanned.CommonName != "Neem" || scanned.Precautions[0] != "Avoid during pregnancy" ||
		scanned.MaxHeight != 15 || !scanned.IsFeatured {
		t.Fatalf("scan round trip mismatch: %+v", scanned)
	}
}

func TestWithDefaults(t *testing.T) {
	c := withDefaults(Config{})
	if c.Keyspace != DefaultKeyspace {
		t.Errorf("keyspace %q", c.Keyspace)
	}
	if c.Consistency != gocql.LocalQuorum {
		t.Errorf("consistency %v", c.Consistency)
	}
	if !strings.Contains(c.ReplicationClause, "SimpleStrategy") {
		t.Errorf("replication %q", c.ReplicationClause)
	}
	if PasswordAuthenticator("", "x") != nil {
		t.Error("blank username should yield no authenticator")
	}
}

func TestNewPlantStore_RequiresConnection(t *testing.T) {
	if _, err := NewPlantStore(nil); err == nil {
		t.Fatal("expected error for nil connection")
	}
}

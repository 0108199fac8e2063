package aws_s3

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/herbverse/plantdb"
)

func newTestStore(t *testing.T, m *mockS3, prefix string) *PlantStore {
	ps, err := newPlantStore(m, Config{Bucket: "herbs", Prefix: prefix, Region: "us-west-2"})
	if err != nil {
		t.Fatal(err)
	}
	return ps
}

func TestPlantStore_InsertLoadDelete(t *testing.T) {
	ctx := context.Background()
	m := newMockS3()
	ps := newTestStore(t, m, "/plants/")

	var ids []plantdb.UUID
	for i := 0; i < 5; i++ {
		rec := &plantdb.PlantRecord{ID: plantdb.NewUUID(), CommonName: fmt.Sprintf("plant %d", i)}
		if err := ps.Insert(ctx, rec); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, rec.ID)
	}
	// Non plant objects under the prefix are ignored.
	m.objects["plants/readme.txt"] = []byte("hi")
	m.objects["plants/exports/catalog.json"] = []byte("[]")

	if got := ps.ObjectKey(ids[0]); got != "plants/"+ids[0].String()+".json" {
		t.Errorf("object key %q", got)
	}

	snap, err := ps.LoadSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 5 {
		t.Fatalf("got %d plants, want 5", len(snap))
	}
	if m.listCalls < 3 {
		t.Errorf("expected paginated listing, got %d list calls", m.listCalls)
	}

	if err := ps.Insert(ctx, &plantdb.PlantRecord{ID: ids[0], CommonName: "dup"}); !errors.Is(err, plantdb.ErrRecordExists) {
		t.Fatalf("expected ErrRecordExists, got %v", err)
	}
	if err := ps.Delete(ctx, ids[0]); err != nil {
		t.Fatal(err)
	}
	if err := ps.Delete(ctx, ids[0]); !errors.Is(err, plantdb.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestPlantStore_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	m := newMockS3()
	ps := newTestStore(t, m, "")
	m.err = errors.New("connection reset")
	if _, err := ps.LoadSnapshot(ctx); err == nil {
		t.Error("expected load error")
	}
	if err := ps.Insert(ctx, &plantdb.PlantRecord{ID: plantdb.NewUUID(), CommonName: "Neem"}); err == nil || errors.Is(err, plantdb.ErrRecordExists) {
		t.Errorf("expected transport error, got %v", err)
	}
	if err := ps.Delete(ctx, plantdb.NewUUID()); err == nil || errors.Is(err, plantdb.ErrRecordNotFound) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestPlantStore_EnsureBucket(t *testing.T) {
	m := newMockS3()
	m.bucketExists = false
	ps := newTestStore(t, m, "")
	if err := ps.EnsureBucket(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !m.bucketExists {
		t.Fatal("bucket was not created")
	}
	// Existing bucket is left alone.
	if err := ps.EnsureBucket(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestNewPlantStore_Validation(t *testing.T) {
	if _, err := NewPlantStore(nil, Config{Bucket: "x"}); err == nil {
		t.Error("expected error for nil client")
	}
	if _, err := newPlantStore(newMockS3(), Config{}); err == nil {
		t.Error("expected error for empty bucket")
	}
}

func TestExportSnapshot(t *testing.T) {
	u := &mockUploader{}
	recs := []*plantdb.PlantRecord{{CommonName: "Neem"}, {CommonName: "Tulsi"}}
	if err := ExportSnapshot(context.Background(), u, "herbs", "dumps/catalog.json", recs); err != nil {
		t.Fatal(err)
	}
	if u.bucket != "herbs" || u.key != "dumps/catalog.json" {
		t.Fatalf("uploaded to %s/%s", u.bucket, u.key)
	}
	var got []plantdb.PlantRecord
	if err := json.Unmarshal(u.body, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].CommonName != "Tulsi" {
		t.Fatalf("unexpected export %+v", got)
	}

	if err := ExportSnapshot(context.Background(), u, "herbs", "empty.json", nil); err != nil {
		t.Fatal(err)
	}
	if string(u.body) != "[]" {
		t.Fatalf("empty export %q", u.body)
	}
}

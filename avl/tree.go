// Package avl implements the plant index: a height-balanced binary search tree over plant
// records keyed by lower-cased common name.
//
// The tree is not synchronized. Callers serialize mutating calls (package catalog does this);
// reads may run concurrently only while no mutation is in flight.
package avl

import (
	"github.com/herbverse/plantdb"
)

// InsertResult tells whether Insert created a node.
type InsertResult int

const (
	// Inserted means a new node now holds the record.
	Inserted InsertResult = iota + 1
	// DuplicateIgnored means a record with the same normalized key already existed; the
	// new record was dropped and the existing one left untouched.
	DuplicateIgnored
)

func (r InsertResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case DuplicateIgnored:
		return "duplicate ignored"
	}
	return "unknown"
}

// DeleteResult tells whether Delete removed a node.
type DeleteResult int

const (
	// Deleted means the node with the key was removed.
	Deleted DeleteResult = iota + 1
	// NotFound means no node had the key; the tree is unchanged.
	NotFound
)

func (r DeleteResult) String() string {
	switch r {
	case Deleted:
		return "deleted"
	case NotFound:
		return "not found"
	}
	return "unknown"
}

// Tree is the AVL plant index.
type Tree struct {
	root  *node
	count int
	// comparisons is reset by each Find and counts visited nodes, absent ones included.
	comparisons int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Insert adds rec to the tree. The caller guarantees a non-empty common name; see InsertChecked.
func (t *Tree) Insert(rec *plantdb.PlantRecord) InsertResult {
	var inserted bool
	t.root, inserted = insert(t.root, rec)
	if !inserted {
		return DuplicateIgnored
	}
	t.count++
	return Inserted
}

// InsertChecked validates rec before inserting it and fails fast with an InvalidRecord error.
func (t *Tree) InsertChecked(rec *plantdb.PlantRecord) (InsertResult, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	return t.Insert(rec), nil
}

// Delete removes the node whose normalized key equals commonName, case-insensitively.
func (t *Tree) Delete(commonName string) DeleteResult {
	var removed bool
	t.root, removed = remove(t.root, commonName)
	if !removed {
		return NotFound
	}
	t.count--
	return Deleted
}

// Get returns the record whose normalized key equals commonName.
func (t *Tree) Get(commonName string) (*plantdb.PlantRecord, bool) {
	key := plantdb.NormalizedKey(commonName)
	n := t.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n.rec, true
		}
	}
	return nil, false
}

// Contains reports whether a record with commonName's normalized key is indexed.
func (t *Tree) Contains(commonName string) bool {
	_, ok := t.Get(commonName)
	return ok
}

// Rebuild discards the current root and folds records in one by one. Records with an already
// seen normalized key are dropped. Returns the resulting node count.
func (t *Tree) Rebuild(records []*plantdb.PlantRecord) int {
	t.Clear()
	for _, rec := range records {
		t.Insert(rec)
	}
	return t.count
}

// Clear drops every node.
func (t *Tree) Clear() {
	t.root = nil
	t.count = 0
	t.comparisons = 0
}

// Len returns the number of indexed records.
func (t *Tree) Len() int {
	return t.count
}

// Height returns the root's height: -1 for an empty tree, 0 for a single node.
func (t *Tree) Height() int {
	return height(t.root)
}

// Comparisons returns the number of nodes the last Find visited.
func (t *Tree) Comparisons() int {
	return t.comparisons
}

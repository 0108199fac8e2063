package avl

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/herbverse/plantdb"
)

// plant builds a minimal record with the given common name.
func plant(commonName string) *plantdb.PlantRecord {
	return &plantdb.PlantRecord{
		ID:         plantdb.NewUUID(),
		CommonName: commonName,
	}
}

func buildTree(names ...string) *Tree {
	t := New()
	for _, n := range names {
		t.Insert(plant(n))
	}
	return t
}

func keysOf(entries []plantdb.Entry) []string {
	r := make([]string, len(entries))
	for i := range entries {
		r[i] = plantdb.NormalizedKey(entries[i].Key)
	}
	return r
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkInvariants verifies ordering, uniqueness, height bookkeeping, balance and count.
func checkInvariants(t *testing.T, tr *Tree) {
	t.Helper()
	var verify func(n *node) int
	verify = func(n *node) int {
		if n == nil {
			return -1
		}
		if n.key != plantdb.NormalizedKey(n.rec.CommonName) {
			t.Fatalf("node key %q does not match record name %q", n.key, n.rec.CommonName)
		}
		lh := verify(n.left)
		rh := verify(n.right)
		if n.height != max(lh, rh)+1 {
			t.Fatalf("node %q height %d, want %d", n.key, n.height, max(lh, rh)+1)
		}
		if d := lh - rh; d > 1 || d < -1 {
			t.Fatalf("node %q unbalanced, left %d right %d", n.key, lh, rh)
		}
		return n.height
	}
	verify(tr.root)

	keys := keysOf(tr.Ascending())
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys out of order at %d: %q >= %q", i, keys[i-1], keys[i])
		}
	}
	if len(keys) != tr.Len() {
		t.Fatalf("traversal yields %d nodes, Len() is %d", len(keys), tr.Len())
	}
}

// randomNames returns n names over a small alphabet so duplicates (including case variants) occur.
func randomNames(r *rand.Rand, n int) []string {
	syllables := []string{"ne", "em", "tul", "si", "Al", "oe", "Br", "ah", "mi", "Ash", "wa", "gan", "DHA"}
	names := make([]string, n)
	for i := range names {
		l := 1 + r.Intn(3)
		s := ""
		for j := 0; j < l; j++ {
			s += syllables[r.Intn(len(syllables))]
		}
		names[i] = s
	}
	return names
}

func describe(tr *Tree) string {
	var f func(n *node) string
	f = func(n *node) string {
		if n == nil {
			return "-"
		}
		return fmt.Sprintf("(%s %s %s)", f(n.left), n.key, f(n.right))
	}
	return f(tr.root)
}

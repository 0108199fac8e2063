package avl

import (
	"github.com/herbverse/plantdb"
)

// Ascending returns every record in ascending normalized-key order.
func (t *Tree) Ascending() []plantdb.Entry {
	r := make([]plantdb.Entry, 0, t.count)
	ascending(t.root, &r)
	return r
}

// Descending returns every record in descending normalized-key order.
func (t *Tree) Descending() []plantdb.Entry {
	r := make([]plantdb.Entry, 0, t.count)
	descending(t.root, &r)
	return r
}

// Where returns, in ascending order, the records pred accepts.
func (t *Tree) Where(pred func(*plantdb.PlantRecord) bool) []plantdb.Entry {
	r := []plantdb.Entry{}
	walk(t.root, func(n *node) {
		if pred(n.rec) {
			r = append(r, entryOf(n))
		}
	})
	return r
}

func ascending(n *node, r *[]plantdb.Entry) {
	if n != nil {
		ascending(n.left, r)
		*r = append(*r, entryOf(n))
		ascending(n.right, r)
	}
}

func descending(n *node, r *[]plantdb.Entry) {
	if n != nil {
		descending(n.right, r)
		*r = append(*r, entryOf(n))
		descending(n.left, r)
	}
}

func walk(n *node, visit func(*node)) {
	if n != nil {
		walk(n.left, visit)
		visit(n)
		walk(n.right, visit)
	}
}

func entryOf(n *node) plantdb.Entry {
	return plantdb.Entry{Key: n.rec.CommonName, Value: n.rec}
}

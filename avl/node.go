package avl

import (
	"github.com/herbverse/plantdb"
)

// node contains one plant record and its normalized key. A node exclusively owns its
// subtrees; there are no parent links.
type node struct {
	rec    *plantdb.PlantRecord
	key    string
	height int
	left   *node
	right  *node
}

func newNode(rec *plantdb.PlantRecord) *node {
	return &node{
		rec: rec,
		key: rec.Key(),
	}
}

// height returns -1 for an absent node, so a leaf has height 0.
func height(n *node) int {
	if n == nil {
		return -1
	}
	return n.height
}

func balanceFactor(n *node) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func (n *node) updateHeight() {
	n.height = max(height(n.left), height(n.right)) + 1
}

// rotateLeft promotes x.right to the subtree root. Used when the subtree is right heavy.
func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	x.updateHeight()
	y.updateHeight()
	return y
}

// rotateRight promotes x.left to the subtree root. Used when the subtree is left heavy.
func rotateRight(x *node) *node {
	y := x.left
	x.left = y.right
	y.right = x
	x.updateHeight()
	y.updateHeight()
	return y
}

// insert adds rec under n and returns the new subtree root. A record whose key is already
// present is dropped and inserted is false; the existing node keeps its record.
func insert(n *node, rec *plantdb.PlantRecord) (root *node, inserted bool) {
	if n == nil {
		return newNode(rec), true
	}

	key := rec.Key()
	switch {
	case key < n.key:
		n.left, inserted = insert(n.left, rec)
	case key > n.key:
		n.right, inserted = insert(n.right, rec)
	default:
		return n, false
	}
	if !inserted {
		return n, false
	}

	n.updateHeight()
	balance := balanceFactor(n)

	// left left case
	if balance > 1 && key < n.left.key {
		return rotateRight(n), true
	}
	// right right case
	if balance < -1 && key > n.right.key {
		return rotateLeft(n), true
	}
	// left right case
	if balance > 1 && key > n.left.key {
		n.left = rotateLeft(n.left)
		return rotateRight(n), true
	}
	// right left case
	if balance < -1 && key < n.right.key {
		n.right = rotateRight(n.right)
		return rotateLeft(n), true
	}
	return n, true
}

// remove deletes the node whose key equals the lower-cased key and returns the new subtree root.
// A node with two children takes over its in-order successor's record, then the successor is
// removed from the right subtree.
func remove(n *node, key string) (root *node, removed bool) {
	if n == nil {
		return nil, false
	}

	key = plantdb.NormalizedKey(key)
	switch {
	case key < n.key:
		n.left, removed = remove(n.left, key)
	case key > n.key:
		n.right, removed = remove(n.right, key)
	default:
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.rec = succ.rec
		n.key = succ.key
		n.right, _ = remove(n.right, succ.key)
		removed = true
	}

	n.updateHeight()
	return rebalance(n), removed
}

// rebalance restores the balance invariant at n after a removal, choosing single or double
// rotation from the heavy child's own balance factor.
func rebalance(n *node) *node {
	balance := balanceFactor(n)
	switch {
	case balance > 1 && balanceFactor(n.left) >= 0:
		return rotateRight(n)
	case balance > 1:
		n.left = rotateLeft(n.left)
		return rotateRight(n)
	case balance < -1 && balanceFactor(n.right) <= 0:
		return rotateLeft(n)
	case balance < -1:
		n.right = rotateRight(n.right)
		return rotateLeft(n)
	}
	return n
}

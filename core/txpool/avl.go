// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"bytes"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// avlNode is a node of the weighted, self-balancing AVL tree backing
// ReadyIndex's weighted draw. Grounded on
// ethereum-go-ethereum/core/txpool/legacypool/avl_test.go's AVLTree, whose
// uint64 key is generalized here to common.Address (compared
// lexicographically, since addresses have no other natural total order) and
// whose *big.Int payload becomes a weight plus the ready TxEntry.
type avlNode struct {
	key    common.Address
	weight *uint256.Int
	entry  *TxEntry

	left, right *avlNode
	height      int

	// subtreeSum is the sum of weight over this node and both subtrees,
	// maintained on every structural change — the augmentation that makes
	// a uniform draw over [0, total) an O(log n) walk.
	subtreeSum *uint256.Int
}

func nodeHeight(n *avlNode) int {
	if n == nil {
		return 0
	}
	return n.height
}

func nodeSum(n *avlNode) *uint256.Int {
	if n == nil {
		return uint256.NewInt(0)
	}
	return n.subtreeSum
}

func (n *avlNode) recompute() {
	n.height = 1 + max(nodeHeight(n.left), nodeHeight(n.right))
	sum := new(uint256.Int).Add(nodeSum(n.left), n.weight)
	sum.Add(sum, nodeSum(n.right))
	n.subtreeSum = sum
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func balanceFactor(n *avlNode) int {
	if n == nil {
		return 0
	}
	return nodeHeight(n.left) - nodeHeight(n.right)
}

func rotateRight(y *avlNode) *avlNode {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	y.recompute()
	x.recompute()
	return x
}

func rotateLeft(x *avlNode) *avlNode {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	x.recompute()
	y.recompute()
	return y
}

func rebalance(n *avlNode) *avlNode {
	n.recompute()
	bf := balanceFactor(n)
	if bf > 1 {
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	}
	if bf < -1 {
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func addrCmp(a, b common.Address) int { return bytes.Compare(a[:], b[:]) }

// AVLTree is a weighted, order-statistics AVL tree keyed by sender address.
type AVLTree struct {
	root *avlNode
	size int
}

// Add inserts or replaces the entry keyed at key with the given weight.
func (t *AVLTree) Add(key common.Address, weight *uint256.Int, entry *TxEntry) {
	var inserted bool
	t.root, inserted = avlInsert(t.root, key, weight, entry)
	if inserted {
		t.size++
	}
}

func avlInsert(n *avlNode, key common.Address, weight *uint256.Int, entry *TxEntry) (*avlNode, bool) {
	if n == nil {
		return &avlNode{key: key, weight: weight, entry: entry, height: 1, subtreeSum: weight}, true
	}
	cmp := addrCmp(key, n.key)
	switch {
	case cmp < 0:
		var inserted bool
		n.left, inserted = avlInsert(n.left, key, weight, entry)
		return rebalance(n), inserted
	case cmp > 0:
		var inserted bool
		n.right, inserted = avlInsert(n.right, key, weight, entry)
		return rebalance(n), inserted
	default:
		n.weight = weight
		n.entry = entry
		n.recompute()
		return n, false
	}
}

// Remove deletes the node at key, if present.
func (t *AVLTree) Remove(key common.Address) {
	var removed bool
	t.root, removed = avlRemove(t.root, key)
	if removed {
		t.size--
	}
}

func avlRemove(n *avlNode, key common.Address) (*avlNode, bool) {
	if n == nil {
		return nil, false
	}
	cmp := addrCmp(key, n.key)
	switch {
	case cmp < 0:
		var removed bool
		n.left, removed = avlRemove(n.left, key)
		if !removed {
			return n, false
		}
		return rebalance(n), true
	case cmp > 0:
		var removed bool
		n.right, removed = avlRemove(n.right, key)
		if !removed {
			return n, false
		}
		return rebalance(n), true
	default:
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}
		successor := avlMin(n.right)
		n.key, n.weight, n.entry = successor.key, successor.weight, successor.entry
		n.right, _ = avlRemove(n.right, successor.key)
		return rebalance(n), true
	}
}

func avlMin(n *avlNode) *avlNode {
	for n.left != nil {
		n = n.left
	}
	return n
}

// Search returns the node at key (nil if absent) and the cumulative weight
// sum over all keys <= key, mirroring avl_test.go's Search semantics.
func (t *AVLTree) Search(key common.Address) (*avlNode, *uint256.Int) {
	sum := uint256.NewInt(0)
	n := t.root
	var found *avlNode
	for n != nil {
		cmp := addrCmp(key, n.key)
		switch {
		case cmp < 0:
			n = n.left
		case cmp > 0:
			sum.Add(sum, nodeSum(n.left))
			sum.Add(sum, n.weight)
			n = n.right
		default:
			sum.Add(sum, nodeSum(n.left))
			sum.Add(sum, n.weight)
			found = n
			n = nil
		}
	}
	return found, sum
}

// Total returns the sum of all weights in the tree.
func (t *AVLTree) Total() *uint256.Int { return nodeSum(t.root) }

// Len returns the number of keys in the tree.
func (t *AVLTree) Len() int { return t.size }

// Pick walks the tree to find the node whose cumulative-weight interval
// contains target, where 0 <= target < Total(). Used by ReadyIndex.draw.
func (t *AVLTree) Pick(target *uint256.Int) *avlNode {
	n := t.root
	remaining := new(uint256.Int).Set(target)
	for n != nil {
		leftSum := nodeSum(n.left)
		if remaining.Cmp(leftSum) < 0 {
			n = n.left
			continue
		}
		remaining.Sub(remaining, leftSum)
		if remaining.Cmp(n.weight) < 0 {
			return n
		}
		remaining.Sub(remaining, n.weight)
		n = n.right
	}
	return nil
}

// Flatten returns every node in key order, for tests.
func (t *AVLTree) Flatten() []*avlNode {
	out := make([]*avlNode, 0, t.size)
	var walk func(n *avlNode)
	walk = func(n *avlNode) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"container/heap"

	"github.com/luxfi/geth/common"
)

// gcNode is one sender's garbage-collection bookkeeping entry, per
// SPEC_FULL.md §4.4. Grounded on the address-keyed, update-in-place shape
// of ethereum-go-ethereum/core/txpool/dbheap_test.go's dbHeap merged with
// heap_test.go's TxOverflowPoolHeap add/get/remove-by-key operations, here
// implemented over container/heap (the stdlib interface the teacher itself
// reaches for at this exact shape).
type gcNode struct {
	sender     common.Address
	staleCount int
	timestamp  uint64
	index      int // position in the heap slice, maintained by container/heap
}

// gcPriorityQueue orders by staleCount DESC, timestamp ASC.
type gcPriorityQueue []*gcNode

func (q gcPriorityQueue) Len() int { return len(q) }

func (q gcPriorityQueue) Less(i, j int) bool {
	if q[i].staleCount != q[j].staleCount {
		return q[i].staleCount > q[j].staleCount
	}
	return q[i].timestamp < q[j].timestamp
}

func (q gcPriorityQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *gcPriorityQueue) Push(x any) {
	n := x.(*gcNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *gcPriorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// GarbageCollector is the ordered set of (sender, stale_count, timestamp)
// described in SPEC_FULL.md §4.4: a sender appears at most once.
type GarbageCollector struct {
	pq       gcPriorityQueue
	bySender map[common.Address]*gcNode
}

func newGarbageCollector() *GarbageCollector {
	return &GarbageCollector{bySender: make(map[common.Address]*gcNode)}
}

// insertOrUpdate upserts sender's bookkeeping entry.
func (g *GarbageCollector) insertOrUpdate(sender common.Address, staleCount int, timestamp uint64) {
	if n, ok := g.bySender[sender]; ok {
		n.staleCount = staleCount
		n.timestamp = timestamp
		heap.Fix(&g.pq, n.index)
		return
	}
	n := &gcNode{sender: sender, staleCount: staleCount, timestamp: timestamp}
	g.bySender[sender] = n
	heap.Push(&g.pq, n)
}

// pop removes and returns the top-priority node, if any.
func (g *GarbageCollector) pop() (gcNode, bool) {
	if g.pq.Len() == 0 {
		return gcNode{}, false
	}
	n := heap.Pop(&g.pq).(*gcNode)
	delete(g.bySender, n.sender)
	return *n, true
}

// peek returns the top-priority node without removing it.
func (g *GarbageCollector) peek() (gcNode, bool) {
	if g.pq.Len() == 0 {
		return gcNode{}, false
	}
	return *g.pq[0], true
}

func (g *GarbageCollector) getTimestamp(sender common.Address) (uint64, bool) {
	n, ok := g.bySender[sender]
	if !ok {
		return 0, false
	}
	return n.timestamp, true
}

func (g *GarbageCollector) remove(sender common.Address) {
	n, ok := g.bySender[sender]
	if !ok {
		return
	}
	heap.Remove(&g.pq, n.index)
	delete(g.bySender, sender)
}

func (g *GarbageCollector) size() int     { return len(g.pq) }
func (g *GarbageCollector) isEmpty() bool { return len(g.pq) == 0 }

func (g *GarbageCollector) clear() {
	g.pq = nil
	g.bySender = make(map[common.Address]*gcNode)
}

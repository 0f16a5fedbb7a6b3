// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// DeferredPool is the thin sender -> NoncePool index described in
// SPEC_FULL.md §4.2. It creates a NoncePool on first insert for a sender
// and removes it once it drains empty.
type DeferredPool struct {
	bySender map[common.Address]*NoncePool
}

func newDeferredPool() *DeferredPool {
	return &DeferredPool{bySender: make(map[common.Address]*NoncePool)}
}

func (d *DeferredPool) get(sender common.Address) (*NoncePool, bool) {
	np, ok := d.bySender[sender]
	return np, ok
}

func (d *DeferredPool) contains(sender common.Address, nonce *uint256.Int) bool {
	np, ok := d.bySender[sender]
	if !ok {
		return false
	}
	return np.containsNonce(nonce)
}

func (d *DeferredPool) countLess(sender common.Address, n *uint256.Int) int {
	np, ok := d.bySender[sender]
	if !ok {
		return 0
	}
	return np.countLess(n)
}

func (d *DeferredPool) lowestNonce(sender common.Address) (*uint256.Int, bool) {
	np, ok := d.bySender[sender]
	if !ok {
		return nil, false
	}
	return np.getLowestNonce()
}

func (d *DeferredPool) checkPacked(sender common.Address, nonce *uint256.Int) (bool, bool) {
	np, ok := d.bySender[sender]
	if !ok {
		return false, false
	}
	entry, ok := np.getByNonce(nonce)
	if !ok {
		return false, false
	}
	return entry.Packed, true
}

// lastSuccNonce starting at from, repeatedly probes succNonce, advancing by
// one for each contiguous hit; returns the first missing nonce, per
// SPEC_FULL.md §4.2.
func (d *DeferredPool) lastSuccNonce(sender common.Address, from *uint256.Int) *uint256.Int {
	np, ok := d.bySender[sender]
	if !ok {
		return new(uint256.Int).Set(from)
	}
	cur := new(uint256.Int).Set(from)
	for {
		hit, ok := np.succNonce(cur)
		if !ok || !hit.Eq(cur) {
			return cur
		}
		cur = new(uint256.Int).AddUint64(cur, 1)
	}
}

// insert inserts entry at nonce for sender, creating the sender's NoncePool
// if this is its first transaction.
func (d *DeferredPool) insert(sender common.Address, nonce *uint256.Int, entry *TxEntry, force bool) InsertResult {
	np, ok := d.bySender[sender]
	if !ok {
		np = newNoncePool()
		d.bySender[sender] = np
	}
	result := np.insert(nonce, entry, force)
	if result.Outcome == InsertFailed && !ok {
		// Nothing was actually added; don't leave a dangling empty pool.
		delete(d.bySender, sender)
	}
	return result
}

// removeLowestNonce removes and returns the sender's lowest-nonce entry,
// pruning the sender's NoncePool if it becomes empty.
func (d *DeferredPool) removeLowestNonce(sender common.Address) *TxEntry {
	np, ok := d.bySender[sender]
	if !ok {
		return nil
	}
	entry := np.removeLowestNonce()
	if np.len() == 0 {
		delete(d.bySender, sender)
	}
	return entry
}

// removeNonce removes a specific (sender, nonce) entry if present.
func (d *DeferredPool) removeNonce(sender common.Address, nonce *uint256.Int) *TxEntry {
	np, ok := d.bySender[sender]
	if !ok {
		return nil
	}
	entry := np.removeNonce(nonce)
	if np.len() == 0 {
		delete(d.bySender, sender)
	}
	return entry
}

func (d *DeferredPool) senderCount() int { return len(d.bySender) }

func (d *DeferredPool) totalTxCount() int {
	total := 0
	for _, np := range d.bySender {
		total += np.len()
	}
	return total
}

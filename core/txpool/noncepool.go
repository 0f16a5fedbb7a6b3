// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"sort"

	"github.com/holiman/uint256"
)

// InsertOutcome reports what NoncePool.insert did.
type InsertOutcome int

const (
	InsertNewAdded InsertOutcome = iota
	InsertUpdated
	InsertFailed
)

// InsertResult is the return value of NoncePool.insert.
type InsertResult struct {
	Outcome  InsertOutcome
	Previous *TxEntry // set when Outcome == InsertUpdated
	Err      *InsertError
}

// NoncePool is the per-sender ordered map described in SPEC_FULL.md §4.1:
// nonce -> TxEntry, with a lazily recomputed ready prefix. Nonces are
// carried as uint256.Int (spec.md §3: "nonce: U256"), not truncated to a
// machine word, since uint256.Int is itself a plain [4]uint64 array and so
// is directly usable as a map key.
type NoncePool struct {
	byNonce map[uint256.Int]*TxEntry

	keys      []uint256.Int // sorted ascending; rebuilt lazily
	keysDirty bool
}

func newNoncePool() *NoncePool {
	return &NoncePool{byNonce: make(map[uint256.Int]*TxEntry)}
}

func (p *NoncePool) len() int { return len(p.byNonce) }

func (p *NoncePool) sortedKeys() []uint256.Int {
	if p.keysDirty || p.keys == nil {
		p.keys = p.keys[:0]
		for k := range p.byNonce {
			p.keys = append(p.keys, k)
		}
		sort.Slice(p.keys, func(i, j int) bool { return p.keys[i].Lt(&p.keys[j]) })
		p.keysDirty = false
	}
	return p.keys
}

func (p *NoncePool) markDirty() { p.keysDirty = true }

// insert implements §4.1: replace requires force or a strictly higher gas
// price than the incumbent.
func (p *NoncePool) insert(nonce *uint256.Int, entry *TxEntry, force bool) InsertResult {
	key := *nonce
	prev, exists := p.byNonce[key]
	if !exists {
		p.byNonce[key] = entry
		p.markDirty()
		return InsertResult{Outcome: InsertNewAdded}
	}
	if force || entry.Tx.GasPrice().Cmp(prev.Tx.GasPrice()) > 0 {
		p.byNonce[key] = entry
		return InsertResult{Outcome: InsertUpdated, Previous: prev}
	}
	return InsertResult{
		Outcome: InsertFailed,
		Err:     newReplaceUnderpricedError(prev.Tx.GasPrice()),
	}
}

func (p *NoncePool) removeLowestNonce() *TxEntry {
	keys := p.sortedKeys()
	if len(keys) == 0 {
		return nil
	}
	lowest := keys[0]
	entry := p.byNonce[lowest]
	delete(p.byNonce, lowest)
	p.markDirty()
	return entry
}

func (p *NoncePool) removeNonce(nonce *uint256.Int) *TxEntry {
	key := *nonce
	entry, ok := p.byNonce[key]
	if !ok {
		return nil
	}
	delete(p.byNonce, key)
	p.markDirty()
	return entry
}

func (p *NoncePool) getLowestNonce() (*uint256.Int, bool) {
	keys := p.sortedKeys()
	if len(keys) == 0 {
		return nil, false
	}
	lowest := keys[0]
	return &lowest, true
}

func (p *NoncePool) getByNonce(nonce *uint256.Int) (*TxEntry, bool) {
	e, ok := p.byNonce[*nonce]
	return e, ok
}

func (p *NoncePool) containsNonce(nonce *uint256.Int) bool {
	_, ok := p.byNonce[*nonce]
	return ok
}

// countLess returns the number of entries with nonce < n.
func (p *NoncePool) countLess(n *uint256.Int) int {
	count := 0
	for _, k := range p.sortedKeys() {
		if k.Cmp(n) >= 0 {
			break
		}
		count++
	}
	return count
}

// succNonce returns the smallest key >= n, if any.
func (p *NoncePool) succNonce(n *uint256.Int) (*uint256.Int, bool) {
	keys := p.sortedKeys()
	idx := sort.Search(len(keys), func(i int) bool { return keys[i].Cmp(n) >= 0 })
	if idx == len(keys) {
		return nil, false
	}
	k := keys[idx]
	return &k, true
}

// getPending returns all entries with nonce >= startNonce, in nonce order.
func (p *NoncePool) getPending(startNonce *uint256.Int) []*TxEntry {
	keys := p.sortedKeys()
	idx := sort.Search(len(keys), func(i int) bool { return keys[i].Cmp(startNonce) >= 0 })
	out := make([]*TxEntry, 0, len(keys)-idx)
	for _, k := range keys[idx:] {
		out = append(out, p.byNonce[k])
	}
	return out
}

// recalculateReadiness implements the readiness walk of SPEC_FULL.md §4.1:
// locate baseNonce, accumulate required balance along the contiguous run,
// and return the first unpacked entry within the affordable prefix.
func (p *NoncePool) recalculateReadiness(baseNonce *uint256.Int, balance *uint256.Int) *TxEntry {
	if _, ok := p.byNonce[*baseNonce]; !ok {
		return nil
	}
	cumulative := new(uint256.Int)
	nonce := new(uint256.Int).Set(baseNonce)
	for {
		entry, ok := p.byNonce[*nonce]
		if !ok {
			return nil
		}
		cumulative.Add(cumulative, entry.requiredBalance())
		if cumulative.Cmp(balance) > 0 {
			return nil
		}
		if !entry.Packed {
			return entry
		}
		nonce = new(uint256.Int).AddUint64(nonce, 1)
	}
}

// checkPendingReason implements SPEC_FULL.md §4.1: explain why a specific
// entry is not executable right now.
func (p *NoncePool) checkPendingReason(knownNonce *uint256.Int, knownBalance *uint256.Int, tx *TxEntry) PendingReason {
	txNonce := tx.Tx.Nonce()
	if txNonce.Cmp(knownNonce) > 0 {
		return PendingReasonFutureNonce
	}
	cumulative := new(uint256.Int)
	n := new(uint256.Int).Set(knownNonce)
	for {
		entry, ok := p.byNonce[*n]
		if !ok {
			return PendingReasonFutureNonce
		}
		cumulative.Add(cumulative, entry.requiredBalance())
		if n.Cmp(txNonce) >= 0 {
			break
		}
		n = new(uint256.Int).AddUint64(n, 1)
	}
	if cumulative.Cmp(knownBalance) > 0 {
		return PendingReasonNotEnoughCash
	}
	return PendingReasonNone
}

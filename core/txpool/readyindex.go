// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"math/rand"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// ReadyIndex is the weighted-random index over at most one ready
// transaction per sender, per SPEC_FULL.md §4.3.
type ReadyIndex struct {
	tree   AVLTree
	weight map[common.Address]*uint256.Int // mirrors each indexed sender's tree weight
	rng    *rand.Rand
	cfg    Config
}

func newReadyIndex(cfg Config, rng *rand.Rand) *ReadyIndex {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &ReadyIndex{
		weight: make(map[common.Address]*uint256.Int),
		rng:    rng,
		cfg:    cfg,
	}
}

// txWeight implements SPEC_FULL.md §4.3's weight function: scale gas price
// by TxWeightScaling, clamp to [1, 2^128-1] unless it scales to zero, then
// raise to TxWeightExp, saturating on overflow.
func txWeight(gasPrice *uint256.Int, cfg Config) *uint256.Int {
	scaled := new(uint256.Int).Div(gasPrice, uint256.NewInt(cfg.TxWeightScaling))
	if scaled.IsZero() {
		return uint256.NewInt(0)
	}
	maxU128 := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	maxU128.SubUint64(maxU128, 1)
	base := scaled
	if base.Cmp(maxU128) > 0 {
		base = maxU128
	}
	result := uint256.NewInt(1)
	for i := uint8(0); i < cfg.TxWeightExp; i++ {
		next, overflow := new(uint256.Int).MulOverflow(result, base)
		if overflow {
			return maxU128
		}
		if next.Cmp(maxU128) > 0 {
			return maxU128
		}
		result = next
	}
	return result
}

// update sets (or, if entry is nil, clears) the ready slot for sender.
func (r *ReadyIndex) update(sender common.Address, entry *TxEntry) {
	if entry == nil {
		r.tree.Remove(sender)
		delete(r.weight, sender)
		return
	}
	w := txWeight(entry.Tx.GasPrice(), r.cfg)
	r.tree.Add(sender, w, entry)
	r.weight[sender] = w
}

// get returns the ready entry for sender, if any.
func (r *ReadyIndex) get(sender common.Address) (*TxEntry, bool) {
	node, _ := r.tree.Search(sender)
	if node == nil {
		return nil, false
	}
	return node.entry, true
}

// len returns the number of senders currently indexed.
func (r *ReadyIndex) len() int { return r.tree.Len() }

// clear empties the index.
func (r *ReadyIndex) clear() {
	r.tree = AVLTree{}
	r.weight = make(map[common.Address]*uint256.Int)
}

// draw removes and returns a weighted-random ready transaction, or nil if
// the index is empty or every indexed sender has zero weight (all
// zero-gas-price transactions, which are never drawn per SPEC_FULL.md
// §4.3).
func (r *ReadyIndex) draw() (common.Address, *TxEntry, bool) {
	total := r.tree.Total()
	if r.tree.Len() == 0 || total.IsZero() {
		return common.Address{}, nil, false
	}
	target := randomUint256Below(r.rng, total)
	node := r.tree.Pick(target)
	if node == nil {
		return common.Address{}, nil, false
	}
	sender, entry := node.key, node.entry
	r.update(sender, nil)
	return sender, entry, true
}

// randomUint256Below draws a uniform value in [0, bound) for bound > 0.
func randomUint256Below(rng *rand.Rand, bound *uint256.Int) *uint256.Int {
	if bound.IsUint64() && bound.Uint64() < 1<<63 {
		b := bound.Uint64()
		return uint256.NewInt(uint64(rng.Int63n(int64(b))))
	}
	// Rejection sampling over the byte representation for totals too wide
	// for Int63n; each candidate is cut to bound's bit length, so at least
	// half of the candidates are accepted.
	bytes := bound.Bytes32()
	shift := uint(256 - bound.BitLen())
	for {
		var buf [32]byte
		rng.Read(buf[:])
		candidate := new(uint256.Int).SetBytes(buf[:])
		candidate.Rsh(candidate, shift)
		if candidate.Cmp(new(uint256.Int).SetBytes(bytes[:])) < 0 {
			return candidate
		}
	}
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

func TestTxWeight(t *testing.T) {
	cfg := Config{TxWeightScaling: 1, TxWeightExp: 1}
	require.Equal(t, uint64(10), txWeight(uint256.NewInt(10), cfg).Uint64())

	cfg = Config{TxWeightScaling: 1, TxWeightExp: 2}
	require.Equal(t, uint64(100), txWeight(uint256.NewInt(10), cfg).Uint64())

	// Scaling to zero yields zero weight: these transactions are never drawn.
	cfg = Config{TxWeightScaling: 100, TxWeightExp: 1}
	require.True(t, txWeight(uint256.NewInt(10), cfg).IsZero())

	// Exponentiation saturates instead of overflowing.
	cfg = Config{TxWeightScaling: 1, TxWeightExp: 32}
	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 100)
	maxU128 := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	maxU128.SubUint64(maxU128, 1)
	require.Equal(t, maxU128, txWeight(huge, cfg))
}

func TestReadyIndexUpdateGetClear(t *testing.T) {
	cfg := Config{TxWeightScaling: 1, TxWeightExp: 1}
	r := newReadyIndex(cfg, rand.New(rand.NewSource(1)))

	e := testEntry(5, 10, 21000, 0)
	r.update(addr(1), e)
	require.Equal(t, 1, r.len())

	got, ok := r.get(addr(1))
	require.True(t, ok)
	require.Same(t, e, got)

	r.update(addr(1), nil)
	require.Equal(t, 0, r.len())
	_, ok = r.get(addr(1))
	require.False(t, ok)

	r.update(addr(2), e)
	r.clear()
	require.Equal(t, 0, r.len())
}

func TestReadyIndexDrawRemovesEntry(t *testing.T) {
	cfg := Config{TxWeightScaling: 1, TxWeightExp: 1}
	r := newReadyIndex(cfg, rand.New(rand.NewSource(42)))

	r.update(addr(1), testEntry(1, 10, 21000, 0))
	r.update(addr(2), testEntry(1, 20, 21000, 0))
	r.update(addr(3), testEntry(1, 30, 21000, 0))

	drawn := make(map[common.Address]bool)
	for i := 0; i < 3; i++ {
		sender, entry, ok := r.draw()
		require.True(t, ok)
		require.NotNil(t, entry)
		require.False(t, drawn[sender], "each sender must be drawn at most once")
		drawn[sender] = true
	}
	require.Equal(t, 0, r.len())

	_, _, ok := r.draw()
	require.False(t, ok, "draw on an empty index returns false")
}

func TestReadyIndexDrawSkipsZeroWeight(t *testing.T) {
	cfg := Config{TxWeightScaling: 1, TxWeightExp: 1}
	r := newReadyIndex(cfg, rand.New(rand.NewSource(7)))

	// A zero-gas-price transaction contributes zero weight and must never be
	// drawn on its own.
	r.update(addr(1), testEntry(1, 0, 21000, 0))
	_, _, ok := r.draw()
	require.False(t, ok)
}

func TestRandomUint256BelowStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	bound := uint256.NewInt(1000)
	for i := 0; i < 1000; i++ {
		v := randomUint256Below(rng, bound)
		require.True(t, v.Cmp(bound) < 0)
	}
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestDeferredPoolInsertCreatesSenderPool(t *testing.T) {
	d := newDeferredPool()

	r := d.insert(addr(1), uint256.NewInt(5), testEntry(5, 10, 21000, 0), false)
	require.Equal(t, InsertNewAdded, r.Outcome)
	np, ok := d.get(addr(1))
	require.True(t, ok)
	require.Equal(t, 1, np.len())

	// A failed replace on an existing sender must not prune its NoncePool.
	r = d.insert(addr(1), uint256.NewInt(5), testEntry(5, 5, 21000, 0), false)
	require.Equal(t, InsertFailed, r.Outcome)
	_, ok = d.get(addr(1))
	require.True(t, ok, "sender already had a prior entry, pool must survive")
}

func TestDeferredPoolPrunesOnEmpty(t *testing.T) {
	d := newDeferredPool()
	d.insert(addr(1), uint256.NewInt(5), testEntry(5, 10, 21000, 0), false)
	require.Equal(t, 1, d.senderCount())

	d.removeLowestNonce(addr(1))
	require.Equal(t, 0, d.senderCount())
	_, ok := d.get(addr(1))
	require.False(t, ok)
}

func TestDeferredPoolLastSuccNonce(t *testing.T) {
	d := newDeferredPool()
	for _, n := range []uint64{5, 6, 7, 9} {
		d.insert(addr(1), uint256.NewInt(n), testEntry(n, 10, 21000, 0), false)
	}

	require.Equal(t, uint64(8), d.lastSuccNonce(addr(1), uint256.NewInt(5)).Uint64())
	require.Equal(t, uint64(5), d.lastSuccNonce(addr(2), uint256.NewInt(5)).Uint64(), "unknown sender returns from unchanged")
	require.Equal(t, uint64(10), d.lastSuccNonce(addr(1), uint256.NewInt(9)).Uint64())
}

func TestDeferredPoolTotalTxCount(t *testing.T) {
	d := newDeferredPool()
	d.insert(addr(1), uint256.NewInt(1), testEntry(1, 10, 21000, 0), false)
	d.insert(addr(1), uint256.NewInt(2), testEntry(2, 10, 21000, 0), false)
	d.insert(addr(2), uint256.NewInt(1), testEntry(1, 10, 21000, 0), false)

	require.Equal(t, 2, d.senderCount())
	require.Equal(t, 3, d.totalTxCount())

	d.removeNonce(addr(2), uint256.NewInt(1))
	require.Equal(t, 1, d.senderCount())
	require.Equal(t, 2, d.totalTxCount())
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func testEntry(nonce, gasPrice, gasLimit, value uint64) *TxEntry {
	tx := plainTx(addr(1), nonce, gasPrice, gasLimit, value, hash(byte(nonce)))
	return newTxEntry(tx, false, nil, 0)
}

// R1/R2 - replace-by-fee.
func TestNoncePoolReplaceByFee(t *testing.T) {
	np := newNoncePool()

	r := np.insert(uint256.NewInt(5), testEntry(5, 10, 21000, 0), false)
	require.Equal(t, InsertNewAdded, r.Outcome)

	// Strictly higher gas price succeeds.
	r = np.insert(uint256.NewInt(5), testEntry(5, 11, 21000, 0), false)
	require.Equal(t, InsertUpdated, r.Outcome)
	require.Equal(t, uint64(10), r.Previous.Tx.GasPrice().Uint64())

	// Equal gas price fails with the incumbent's price as the minimum.
	r = np.insert(uint256.NewInt(5), testEntry(5, 11, 21000, 0), false)
	require.Equal(t, InsertFailed, r.Outcome)
	require.Equal(t, uint64(11), r.Err.MinGasPrice.Uint64())

	// force=true bypasses the fee check.
	r = np.insert(uint256.NewInt(5), testEntry(5, 1, 21000, 0), true)
	require.Equal(t, InsertUpdated, r.Outcome)
	require.Equal(t, 1, np.len())
}

func TestNoncePoolCountLessAndSucc(t *testing.T) {
	np := newNoncePool()
	for _, n := range []uint64{2, 5, 6, 9} {
		np.insert(uint256.NewInt(n), testEntry(n, 10, 21000, 0), false)
	}

	require.Equal(t, 0, np.countLess(uint256.NewInt(2)))
	require.Equal(t, 1, np.countLess(uint256.NewInt(5)))
	require.Equal(t, 3, np.countLess(uint256.NewInt(9)))
	require.Equal(t, 4, np.countLess(uint256.NewInt(100)))

	n, ok := np.succNonce(uint256.NewInt(3))
	require.True(t, ok)
	require.Equal(t, uint64(5), n.Uint64())

	n, ok = np.succNonce(uint256.NewInt(10))
	require.False(t, ok)
	require.Nil(t, n)
}

func TestNoncePoolCheckPendingReason(t *testing.T) {
	np := newNoncePool()
	np.insert(uint256.NewInt(5), testEntry(5, 10, 50000, 10000), false)

	e, _ := np.getByNonce(uint256.NewInt(5))
	require.Equal(t, PendingReasonFutureNonce, np.checkPendingReason(uint256.NewInt(4), uint256.NewInt(1_000_000), e))
	require.Equal(t, PendingReasonNotEnoughCash, np.checkPendingReason(uint256.NewInt(5), uint256.NewInt(1), e))
	require.Equal(t, PendingReasonNone, np.checkPendingReason(uint256.NewInt(5), uint256.NewInt(1_000_000), e))
}

func TestNoncePoolGetPending(t *testing.T) {
	np := newNoncePool()
	for _, n := range []uint64{1, 2, 3} {
		np.insert(uint256.NewInt(n), testEntry(n, 10, 21000, 0), false)
	}
	pending := np.getPending(uint256.NewInt(2))
	require.Len(t, pending, 2)
	require.Equal(t, uint64(2), pending[0].Tx.Nonce().Uint64())
	require.Equal(t, uint64(3), pending[1].Tx.Nonce().Uint64())
}

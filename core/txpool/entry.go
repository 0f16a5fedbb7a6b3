// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"github.com/holiman/uint256"

	txtypes "github.com/luxfi/txpool/core/types"
)

// TxEntry wraps a SignedTransaction with the mutable metadata the pool
// tracks: whether a proposer has tentatively packed it, and how much of its
// gas/storage cost a contract sponsor covers (SPEC_FULL.md §3).
type TxEntry struct {
	Tx *txtypes.SignedTransaction

	Packed bool

	SponsoredGas     *uint256.Int
	SponsoredStorage uint64
}

func newTxEntry(tx *txtypes.SignedTransaction, packed bool, sponsoredGas *uint256.Int, sponsoredStorage uint64) *TxEntry {
	if sponsoredGas == nil {
		sponsoredGas = uint256.NewInt(0)
	}
	return &TxEntry{
		Tx:               tx,
		Packed:           packed,
		SponsoredGas:     sponsoredGas,
		SponsoredStorage: sponsoredStorage,
	}
}

// requiredBalance computes value + gas_price*(gas_limit-sponsored_gas) +
// STORAGE_UNIT*(storage_limit-sponsored_storage), per SPEC_FULL.md §4.1.
func (e *TxEntry) requiredBalance() *uint256.Int {
	gasLimit := e.Tx.GasLimit()
	unsponsoredGas := new(uint256.Int)
	if gasLimit.Cmp(e.SponsoredGas) > 0 {
		unsponsoredGas.Sub(gasLimit, e.SponsoredGas)
	}
	gasCost := new(uint256.Int).Mul(e.Tx.GasPrice(), unsponsoredGas)

	storageLimit := e.Tx.StorageLimit()
	var unsponsoredStorage uint64
	if storageLimit > e.SponsoredStorage {
		unsponsoredStorage = storageLimit - e.SponsoredStorage
	}
	storageCost := new(uint256.Int).Mul(uint256.NewInt(StorageUnit), uint256.NewInt(unsponsoredStorage))

	required := new(uint256.Int).Add(e.Tx.Value(), gasCost)
	required.Add(required, storageCost)
	return required
}

// PendingReason explains why a transaction is not yet ready, per
// SPEC_FULL.md §4.1 check_pending_reason.
type PendingReason int

const (
	PendingReasonNone PendingReason = iota
	PendingReasonFutureNonce
	PendingReasonNotEnoughCash
)

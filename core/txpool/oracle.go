// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	txtypes "github.com/luxfi/txpool/core/types"
)

// AccountStateOracle is the pool's read-only view of chain state. Exists to
// allow mocking the live chain out of tests, mirroring the minimal-interface
// pattern the teacher uses for its own BlockChain collaborator
// (core/txpool/txpool.go).
type AccountStateOracle interface {
	// NonceAndBalance returns the sender's on-chain nonce and balance.
	// Unknown accounts report zeros, never an error.
	NonceAndBalance(address common.Address) (nonce, balance *uint256.Int, err error)

	// SponsorInfo returns the sponsorship terms a contract offers its
	// callers, or ok=false if the contract has none.
	SponsorInfo(contract common.Address) (info SponsorInfo, ok bool, err error)

	// CommissionPrivilege reports whether user is on contract's sponsor
	// allowlist.
	CommissionPrivilege(contract, user common.Address) (bool, error)
}

// SponsorInfo is the subset of a contract's sponsorship configuration the
// pool needs to estimate how much of a call's gas/storage cost the
// contract, rather than the sender, will ultimately pay.
type SponsorInfo struct {
	GasBound             *uint256.Int
	BalanceForGas        *uint256.Int
	BalanceForCollateral *uint256.Int
}

// PackingCheckResult is the verdict PackingRecheck returns for a candidate
// transaction during pack().
type PackingCheckResult int

const (
	PackingCheckPack PackingCheckResult = iota
	PackingCheckDefer
	PackingCheckDrop
)

// PackingRecheck is consulted once per candidate during pack(), after the
// weighted draw has already chosen it, to re-verify it is still valid given
// the proposed block's height/number.
type PackingRecheck interface {
	Recheck(tx *txtypes.SignedTransaction, epochHeight, blockNumber uint64) PackingCheckResult
}

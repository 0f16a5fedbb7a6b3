// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

// Protocol constants, per SPEC_FULL.md §6.
const (
	// FurthestFutureOffset bounds how far ahead of the sender's on-chain
	// nonce an incoming transaction may sit before it is rejected outright.
	FurthestFutureOffset = 2000

	// GCCheckCount is how many garbage-collection heap nodes are drained
	// per collectGarbage pass before a victim decision is made.
	GCCheckCount = 5

	// BigTxResampleLimit bounds how many times pack() will redraw past a
	// ready transaction that doesn't fit the remaining block budget.
	BigTxResampleLimit = 10

	// StorageUnit is the amount of base currency ("drips") required per
	// unit of storage collateral when computing a sender's reserved
	// balance.
	StorageUnit = 1_000_000_000_000_000_000 // 10^18 drips per storage collateral unit, protocol constant
)

// Config holds the tunables that shape pool capacity and the weighted
// ready-index draw.
type Config struct {
	// Capacity bounds the number of transactions tracked across all
	// senders.
	Capacity uint64

	// TxWeightScaling divides a transaction's gas price before it is
	// raised to TxWeightExp to produce its draw weight.
	TxWeightScaling uint64

	// TxWeightExp sharpens priority toward high fee-paying transactions;
	// 1 is linear-in-price, higher values concentrate more probability
	// mass on the highest payers.
	TxWeightExp uint8

	// RecentlyEvictedSize bounds the LRU of hashes collectGarbage has
	// dropped, surfaced read-only via Pool.WasRecentlyEvicted. It is purely
	// diagnostic: it does not affect whether a resubmission is accepted
	// (SPEC_FULL.md §3).
	RecentlyEvictedSize int
}

// Sanitize fills in defaults for zero-valued fields and clamps obviously
// unusable settings, mirroring the classic geth-pool sanitize() pattern.
func (c Config) Sanitize() Config {
	sanitized := c
	if sanitized.Capacity == 0 {
		sanitized.Capacity = 32768
	}
	if sanitized.TxWeightScaling == 0 {
		sanitized.TxWeightScaling = 1
	}
	if sanitized.TxWeightExp == 0 {
		sanitized.TxWeightExp = 1
	}
	if sanitized.RecentlyEvictedSize <= 0 {
		sanitized.RecentlyEvictedSize = 4096
	}
	return sanitized
}

// DefaultConfig returns a sane out-of-the-box configuration.
func DefaultConfig() Config {
	return Config{}.Sanitize()
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import "github.com/luxfi/geth/metrics"

// Metric names, per SPEC_FULL.md §7: meter tx_pool::inner_insert,
// tx_pool::recalculate, counters gc_unexecuted/gc_ready, meter
// gc_txs_tps. Grounded on core/txpool/txpool.go's own
// metrics.GetOrRegisterGauge usage.
var (
	innerInsertMeter    = metrics.GetOrRegisterMeter("tx_pool/inner_insert", nil)
	recalculateMeter    = metrics.GetOrRegisterMeter("tx_pool/recalculate", nil)
	gcUnexecutedCounter = metrics.GetOrRegisterCounter("tx_pool/gc_unexecuted", nil)
	gcReadyCounter      = metrics.GetOrRegisterCounter("tx_pool/gc_ready", nil)
	gcTxsMeter          = metrics.GetOrRegisterMeter("tx_pool/gc_txs_tps", nil)
	unpackedCountGauge  = metrics.GetOrRegisterGauge("tx_pool/unpacked_count", nil)
	totalDeferredGauge  = metrics.GetOrRegisterGauge("tx_pool/total_deferred", nil)
)

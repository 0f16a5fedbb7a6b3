// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"

	txtypes "github.com/luxfi/txpool/core/types"
)

// readyInfo is the pool's latest belief about a sender's on-chain state,
// the ReadyInfo cache of SPEC_FULL.md §3.
type readyInfo struct {
	knownNonce   *uint256.Int
	knownBalance *uint256.Int
}

// drawnTx is a (sender, entry) pair drawn out of ReadyIndex during pack().
type drawnTx struct {
	sender common.Address
	entry  *TxEntry
}

// PoolInner owns C1-C4 and the pool's auxiliary maps and counters, per
// SPEC_FULL.md §4.5. It assumes the caller holds whatever lock guards
// mutation (see Pool below) — PoolInner itself is not safe for concurrent
// use, matching the coarse-grained single-mutex design spec.md §5 mandates.
type PoolInner struct {
	cfg Config

	deferred *DeferredPool
	ready    *ReadyIndex
	gc       *GarbageCollector

	readyByAddr map[common.Address]readyInfo

	byHash        map[common.Hash]*txtypes.SignedTransaction
	sponsorByHash map[common.Hash]sponsorRecord

	totalReceived uint64
	unpackedCount uint64

	// recentlyEvicted is a diagnostic record of hashes collectGarbage has
	// dropped, exposed via Pool.WasRecentlyEvicted. It is read-only from
	// the perspective of insert: eviction by gas price alone is not
	// staleness, so a resubmission once the pool has room must be allowed
	// to go through the normal §4.5.1/§4.5.2 path rather than being
	// short-circuited off of this cache.
	recentlyEvicted *lru.Cache[common.Hash, struct{}]

	oracle AccountStateOracle

	now    func() uint64
	logger log.Logger
}

type sponsorRecord struct {
	sponsoredGas     *uint256.Int
	sponsoredStorage uint64
}

func newPoolInner(cfg Config, oracle AccountStateOracle) *PoolInner {
	cfg = cfg.Sanitize()
	cache, _ := lru.New[common.Hash, struct{}](cfg.RecentlyEvictedSize)
	return &PoolInner{
		cfg:             cfg,
		deferred:        newDeferredPool(),
		ready:           newReadyIndex(cfg, nil),
		gc:              newGarbageCollector(),
		readyByAddr:     make(map[common.Address]readyInfo),
		byHash:          make(map[common.Hash]*txtypes.SignedTransaction),
		sponsorByHash:   make(map[common.Hash]sponsorRecord),
		recentlyEvicted: cache,
		oracle:          oracle,
		now:             func() uint64 { return uint64(time.Now().Unix()) },
		logger:          log.Root(),
	}
}

// Pool is the mutex-guarded public façade over PoolInner, matching
// spec.md §5's single-threaded-core-behind-one-lock model.
type Pool struct {
	mu    sync.Mutex
	inner *PoolInner
}

// NewPool constructs a Pool backed by the given account state oracle.
func NewPool(cfg Config, oracle AccountStateOracle) *Pool {
	return &Pool{inner: newPoolInner(cfg, oracle)}
}

// ---- C4.5.1 Insertion with readiness check ----

// Insert resolves sponsorship and on-chain state via the oracle, validates
// the nonce bounds, and stages tx into the pool.
func (p *Pool) Insert(tx *txtypes.SignedTransaction, packed, force bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.insertWithReadinessCheck(tx, packed, force)
}

func (p *PoolInner) insertWithReadinessCheck(tx *txtypes.SignedTransaction, packed, force bool) error {
	sponsoredGas := uint256.NewInt(0)
	var sponsoredStorage uint64

	if tx.IsContractCall() {
		callee := tx.Action().Callee
		info, ok, err := p.oracle.SponsorInfo(callee)
		if err != nil {
			return newOracleFailureError(&OracleError{Op: "sponsor_info", Cause: err})
		}
		if ok {
			privileged, err := p.oracle.CommissionPrivilege(callee, tx.Sender())
			if err != nil {
				return newOracleFailureError(&OracleError{Op: "commission_privilege", Cause: err})
			}
			if privileged {
				gasCost, overflowed := widenedGasCost(tx.GasLimit(), tx.GasPrice())
				if !overflowed && gasCost.Cmp(info.GasBound) <= 0 && gasCost.Cmp(info.BalanceForGas) <= 0 {
					sponsoredGas = tx.GasLimit()
				}
				storageCost := new(uint256.Int).Mul(uint256.NewInt(tx.StorageLimit()), uint256.NewInt(StorageUnit))
				if storageCost.Cmp(info.BalanceForCollateral) <= 0 {
					sponsoredStorage = tx.StorageLimit()
				}
			}
		}
	}

	stateNonce, stateBalance, err := p.oracle.NonceAndBalance(tx.Sender())
	if err != nil {
		return newOracleFailureError(&OracleError{Op: "nonce_and_balance", Cause: err})
	}

	// spec.md §3 declares nonces as U256; comparisons and the furthest-
	// future bound are carried out in full 256-bit arithmetic rather than
	// truncating to a machine word; uint256.Int.Uint64() would silently
	// alias any nonce beyond 2^64-1 onto an unrelated small value.
	txNonce := tx.Nonce()
	threshold, overflow := new(uint256.Int).AddOverflow(stateNonce, uint256.NewInt(FurthestFutureOffset))
	if !overflow && txNonce.Cmp(threshold) >= 0 {
		return newInsertError(ReasonTooFarFuture)
	}
	if !packed && txNonce.Cmp(stateNonce) < 0 {
		return newInsertError(ReasonStaleNonce)
	}

	entry := newTxEntry(tx, packed, sponsoredGas, sponsoredStorage)
	if ierr := p.insertWithoutReadinessCheck(tx.Sender(), entry, force); ierr != nil {
		return ierr
	}

	p.recalculateReadinessFromState(tx.Sender())
	innerInsertMeter.Mark(1)
	return nil
}

// widenedGasCost computes min(gasLimit*gasPrice, 2^128-1), reporting
// whether the raw product overflowed 256 bits (which would only happen for
// adversarially large gas*price products).
func widenedGasCost(gasLimit, gasPrice *uint256.Int) (*uint256.Int, bool) {
	product, overflow := new(uint256.Int).MulOverflow(gasLimit, gasPrice)
	maxU128 := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	maxU128.SubUint64(maxU128, 1)
	if overflow || product.Cmp(maxU128) > 0 {
		return maxU128, overflow
	}
	return product, false
}

// ---- §4.5.2 Insertion without readiness check ----

func (p *PoolInner) insertWithoutReadinessCheck(sender common.Address, entry *TxEntry, force bool) *InsertError {
	nonce := entry.Tx.Nonce()
	alreadyPresent := p.deferred.contains(sender, nonce)

	if !alreadyPresent && p.isFull() {
		p.collectGarbage(entry)
		if p.isFull() {
			return newInsertError(ReasonPoolFull)
		}
	}

	result := p.deferred.insert(sender, nonce, entry, force)
	switch result.Outcome {
	case InsertNewAdded:
		existingTimestamp, hadTimestamp := p.gc.getTimestamp(sender)
		ts := p.now()
		if hadTimestamp {
			ts = existingTimestamp
		}
		staleCount := p.deferred.countLess(sender, p.knownNonce(sender))
		p.gc.insertOrUpdate(sender, staleCount, ts)
		p.byHash[entry.Tx.Hash()] = entry.Tx
		p.sponsorByHash[entry.Tx.Hash()] = sponsorRecord{entry.SponsoredGas, entry.SponsoredStorage}
		if !entry.Packed {
			p.unpackedCount++
		}
		p.totalReceived++
	case InsertUpdated:
		prev := result.Previous
		delete(p.byHash, prev.Tx.Hash())
		delete(p.sponsorByHash, prev.Tx.Hash())
		p.byHash[entry.Tx.Hash()] = entry.Tx
		p.sponsorByHash[entry.Tx.Hash()] = sponsorRecord{entry.SponsoredGas, entry.SponsoredStorage}
		switch {
		case prev.Packed && !entry.Packed:
			p.unpackedCount++
		case !prev.Packed && entry.Packed:
			p.decrementUnpacked()
		}
		p.totalReceived++
	case InsertFailed:
		return result.Err
	}
	return nil
}

func (p *PoolInner) decrementUnpacked() {
	if p.unpackedCount == 0 {
		p.logger.Warn("unpacked_count underflow clamped to zero")
		return
	}
	p.unpackedCount--
}

func (p *PoolInner) knownNonce(sender common.Address) *uint256.Int {
	if info, ok := p.readyByAddr[sender]; ok {
		return info.knownNonce
	}
	return uint256.NewInt(0)
}

// ---- §4.5.3 Garbage collection ----

func (p *PoolInner) collectGarbage(newTx *TxEntry) {
	newSender := newTx.Tx.Sender()
	for p.isFull() && !p.gc.isEmpty() {
		type drained struct {
			node  gcNode
			valid bool
		}
		var drainedNodes []drained
		for i := 0; i < GCCheckCount && !p.gc.isEmpty(); i++ {
			n, ok := p.gc.pop()
			if !ok {
				break
			}
			_, stillPresent := p.deferred.get(n.sender)
			drainedNodes = append(drainedNodes, drained{node: n, valid: stillPresent})
		}

		var victim *common.Address
		var victimStale bool
		var victimOriginalStaleCount int
		for _, d := range drainedNodes {
			if !d.valid {
				continue
			}
			if d.node.staleCount > 0 {
				sender := d.node.sender
				victim = &sender
				victimStale = true
				victimOriginalStaleCount = d.node.staleCount
				break
			}
		}
		if victim == nil {
			bestPrice := newTx.Tx.GasPrice()
			for _, d := range drainedNodes {
				if !d.valid || d.node.sender == newSender {
					continue
				}
				np, _ := p.deferred.get(d.node.sender)
				lowestNonce, ok := np.getLowestNonce()
				if !ok {
					continue
				}
				lowestEntry, _ := np.getByNonce(lowestNonce)
				if lowestEntry.Tx.GasPrice().Cmp(bestPrice) < 0 {
					bestPrice = lowestEntry.Tx.GasPrice()
					sender := d.node.sender
					victim = &sender
					victimOriginalStaleCount = d.node.staleCount
				}
			}
		}

		for _, d := range drainedNodes {
			if !d.valid {
				continue
			}
			if victim != nil && d.node.sender == *victim {
				continue
			}
			p.gc.insertOrUpdate(d.node.sender, d.node.staleCount, d.node.timestamp)
		}

		if victim == nil {
			return
		}

		evicted := p.deferred.removeLowestNonce(*victim)
		if evicted == nil {
			continue
		}
		if readyEntry, ok := p.ready.get(*victim); ok && readyEntry == evicted {
			p.ready.update(*victim, nil)
		}
		if !evicted.Packed {
			p.decrementUnpacked()
		}
		delete(p.byHash, evicted.Tx.Hash())
		delete(p.sponsorByHash, evicted.Tx.Hash())
		p.recentlyEvicted.Add(evicted.Tx.Hash(), struct{}{})

		if _, ok := p.deferred.get(*victim); ok {
			remaining := victimOriginalStaleCount - 1
			if remaining < 0 {
				remaining = 0
			}
			p.gc.insertOrUpdate(*victim, remaining, p.now())
		} else {
			delete(p.readyByAddr, *victim)
		}

		if victimStale {
			gcUnexecutedCounter.Inc(1)
		} else {
			gcReadyCounter.Inc(1)
		}
		gcTxsMeter.Mark(1)
	}
}

func (p *PoolInner) isFull() bool {
	return uint64(p.deferred.totalTxCount()) >= p.cfg.Capacity
}

// ---- §4.5.4 Packing ----

// Pack drains ReadyIndex, consulting verifier for each candidate, and
// returns a bounded batch suitable for inclusion in a new block. The
// packed bit it sets is ephemeral: it is reverted before Pack returns
// (SPEC_FULL.md §4.5.4, §9).
func (p *Pool) Pack(numTxs int, blockGasLimit, blockSizeLimit uint64, bestEpochHeight, bestBlockNumber uint64, verifier PackingRecheck) []*txtypes.SignedTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.pack(numTxs, blockGasLimit, blockSizeLimit, bestEpochHeight, bestBlockNumber, verifier)
}

func (p *PoolInner) pack(numTxs int, blockGasLimit, blockSizeLimit uint64, bestEpochHeight, bestBlockNumber uint64, verifier PackingRecheck) []*txtypes.SignedTransaction {
	var (
		totalGas, totalSize uint64
		resampleBudget      = BigTxResampleLimit
		selected            []drawnTx
		recycle             []drawnTx
	)

	for len(selected) < numTxs {
		sender, entry, ok := p.ready.draw()
		if !ok {
			break
		}

		gas := entry.Tx.GasLimit().Uint64()
		size := entry.Tx.RLPSize()
		if totalGas+gas > blockGasLimit || totalSize+size > blockSizeLimit {
			recycle = append(recycle, drawnTx{sender, entry})
			resampleBudget--
			if resampleBudget > 0 {
				continue
			}
			break
		}

		switch verifier.Recheck(entry.Tx, bestEpochHeight, bestBlockNumber) {
		case PackingCheckDefer:
			recycle = append(recycle, drawnTx{sender, entry})
			continue
		case PackingCheckDrop:
			// Permanently discarded from this draw; the tx remains resident
			// in DeferredPool until GC or a nonce advance reclaims it
			// (SPEC_FULL.md §9) — it is deliberately NOT reinserted here.
			continue
		case PackingCheckPack:
			totalGas += gas
			totalSize += size
			if !entry.Packed {
				p.decrementUnpacked()
			}
			entry.Packed = true
			selected = append(selected, drawnTx{sender, entry})
			p.recalculateReadinessWithLocalInfo(sender)
		}
	}

	for _, c := range recycle {
		p.ready.update(c.sender, c.entry)
	}

	touchedSenders := mapset.NewThreadUnsafeSet[common.Address]()
	for i := len(selected) - 1; i >= 0; i-- {
		c := selected[i]
		c.entry.Packed = false
		p.unpackedCount++
		touchedSenders.Add(c.sender)
	}
	for sender := range touchedSenders.Iter() {
		p.recalculateReadinessWithLocalInfo(sender)
	}

	out := make([]*txtypes.SignedTransaction, 0, len(selected))
	for _, c := range selected {
		out = append(out, c.entry.Tx)
	}
	return out
}

// ---- §4.5.5 Post-execution notification ----

// NotifyModifiedAccounts applies the latest on-chain (nonce, balance) for
// each account named, advancing readiness and GC bookkeeping. Never fails.
func (p *Pool) NotifyModifiedAccounts(accounts []AccountUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, acc := range accounts {
		p.inner.recalculateReadinessWithFixedInfo(acc.Address, acc.Nonce, acc.Balance)
	}
}

// AccountUpdate is one (address, nonce, balance) tuple reported by a block
// commit.
type AccountUpdate struct {
	Address common.Address
	Nonce   *uint256.Int
	Balance *uint256.Int
}

func (p *PoolInner) recalculateReadinessFromState(sender common.Address) {
	nonce, balance, err := p.oracle.NonceAndBalance(sender)
	if err != nil {
		p.logger.Warn("recalculate readiness: oracle failure", "sender", sender, "err", err)
		return
	}
	p.refreshReady(sender, nonce, balance)
}

func (p *PoolInner) recalculateReadinessWithFixedInfo(sender common.Address, nonce, balance *uint256.Int) {
	p.refreshReady(sender, nonce, balance)
}

func (p *PoolInner) recalculateReadinessWithLocalInfo(sender common.Address) {
	info, ok := p.readyByAddr[sender]
	if !ok {
		return
	}
	p.refreshReady(sender, info.knownNonce, info.knownBalance)
}

func (p *PoolInner) refreshReady(sender common.Address, nonce *uint256.Int, balance *uint256.Int) {
	p.readyByAddr[sender] = readyInfo{knownNonce: nonce, knownBalance: balance}

	np, ok := p.deferred.get(sender)
	if !ok {
		p.ready.update(sender, nil)
		delete(p.readyByAddr, sender)
		p.gc.remove(sender)
		return
	}

	staleCount := np.countLess(nonce)
	existingTS, hadTS := p.gc.getTimestamp(sender)
	ts := p.now()
	if hadTS {
		ts = existingTS
	}
	p.gc.insertOrUpdate(sender, staleCount, ts)

	readyEntry := np.recalculateReadiness(nonce, balance)
	p.ready.update(sender, readyEntry)
	recalculateMeter.Mark(1)
}

// ---- §4.5.6 Queries ----

func (p *Pool) Get(hash common.Hash) (*txtypes.SignedTransaction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tx, ok := p.inner.byHash[hash]
	return tx, ok
}

func (p *Pool) GetBySenderNonce(sender common.Address, nonce *uint256.Int) (*TxEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	np, ok := p.inner.deferred.get(sender)
	if !ok {
		return nil, false
	}
	return np.getByNonce(nonce)
}

// IsPacked reports whether (sender, nonce) is currently resident and marked
// packed, per the §4.2 check_packed query (e.g. for a proposer re-checking
// whether it already has a candidate block's transactions staged).
func (p *Pool) IsPacked(sender common.Address, nonce *uint256.Int) (bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.deferred.checkPacked(sender, nonce)
}

// WasRecentlyEvicted reports whether hash was dropped by a recent
// collectGarbage pass. Purely informational: it has no bearing on whether
// a resubmission of hash will be accepted.
func (p *Pool) WasRecentlyEvicted(hash common.Hash) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.recentlyEvicted.Contains(hash)
}

func (p *Pool) LowestNonce(sender common.Address) (*uint256.Int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.lowestNonce(sender)
}

func (p *PoolInner) lowestNonce(sender common.Address) (*uint256.Int, bool) {
	info, hasInfo := p.readyByAddr[sender]
	poolLowest, hasPool := p.deferred.lowestNonce(sender)
	switch {
	case hasInfo && hasPool:
		if info.knownNonce.Cmp(poolLowest) < 0 {
			return info.knownNonce, true
		}
		return poolLowest, true
	case hasPool:
		return poolLowest, true
	case hasInfo:
		return info.knownNonce, true
	default:
		return nil, false
	}
}

func (p *Pool) NextNonce(sender common.Address, stateNonce *uint256.Int) *uint256.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.deferred.lastSuccNonce(sender, stateNonce)
}

// AccountPendingInfo is the §4.5.6 account_pending_info snapshot.
type AccountPendingInfo struct {
	KnownNonce        *uint256.Int
	PendingCount      int
	FirstPendingNonce *uint256.Int
	FirstPendingHash  common.Hash
	HasPending        bool
}

func (p *Pool) AccountPendingInfo(address common.Address) AccountPendingInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	info, hasInfo := p.inner.readyByAddr[address]
	knownNonce := info.knownNonce
	if !hasInfo {
		knownNonce = uint256.NewInt(0)
	}
	np, ok := p.inner.deferred.get(address)
	if !ok {
		return AccountPendingInfo{KnownNonce: knownNonce}
	}
	pending := np.getPending(knownNonce)
	if len(pending) == 0 {
		return AccountPendingInfo{KnownNonce: knownNonce}
	}
	return AccountPendingInfo{
		KnownNonce:        knownNonce,
		PendingCount:      len(pending),
		FirstPendingNonce: pending[0].Tx.Nonce(),
		FirstPendingHash:  pending[0].Tx.Hash(),
		HasPending:        true,
	}
}

// PendingTxStatus classifies a pending transaction for accountPendingTxs.
type PendingTxStatus struct {
	Ready  bool
	Reason PendingReason
}

// AccountPendingTxsResult is the §4.5.6 account_pending_txs snapshot.
type AccountPendingTxsResult struct {
	Entries      []*TxEntry
	Statuses     []PendingTxStatus
	TotalPending int
}

func (p *Pool) AccountPendingTxs(address common.Address, startNonce *uint256.Int, limit *int) AccountPendingTxsResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, hasInfo := p.inner.readyByAddr[address]
	knownNonce, knownBalance := info.knownNonce, info.knownBalance
	if !hasInfo {
		knownNonce, knownBalance = uint256.NewInt(0), uint256.NewInt(0)
	}
	np, ok := p.inner.deferred.get(address)
	if !ok {
		return AccountPendingTxsResult{}
	}

	from := knownNonce
	if startNonce != nil {
		from = startNonce
	}
	pending := np.getPending(from)
	result := AccountPendingTxsResult{TotalPending: len(pending)}

	n := len(pending)
	if limit != nil && *limit < n {
		n = *limit
	}
	readyEntry, hasReady := p.inner.ready.get(address)
	for i := 0; i < n; i++ {
		entry := pending[i]
		status := PendingTxStatus{}
		if hasReady && readyEntry == entry {
			status.Ready = true
		} else {
			status.Reason = np.checkPendingReason(knownNonce, knownBalance, entry)
		}
		result.Entries = append(result.Entries, entry)
		result.Statuses = append(result.Statuses, status)
	}
	return result
}

// ContentSnapshot is the §4.5.6 content() snapshot: ready vs. deferred.
type ContentSnapshot struct {
	Ready    map[common.Address]*TxEntry
	Deferred map[common.Address][]*TxEntry
}

func (p *Pool) Content(address *common.Address) ContentSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := ContentSnapshot{
		Ready:    make(map[common.Address]*TxEntry),
		Deferred: make(map[common.Address][]*TxEntry),
	}
	for sender, np := range p.inner.deferred.bySender {
		if address != nil && sender != *address {
			continue
		}
		snapshot.Deferred[sender] = np.getPending(uint256.NewInt(0))
	}
	for sender := range snapshot.Deferred {
		if entry, ok := p.inner.ready.get(sender); ok {
			snapshot.Ready[sender] = entry
		}
	}
	return snapshot
}

// ---- global counters, per spec.md §6 ----

func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	inner := p.inner
	inner.deferred = newDeferredPool()
	inner.ready.clear()
	inner.gc.clear()
	inner.readyByAddr = make(map[common.Address]readyInfo)
	inner.byHash = make(map[common.Hash]*txtypes.SignedTransaction)
	inner.sponsorByHash = make(map[common.Hash]sponsorRecord)
	inner.unpackedCount = 0
}

func (p *Pool) Capacity() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.cfg.Capacity
}

func (p *Pool) IsFull() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.isFull()
}

func (p *Pool) TotalDeferred() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := p.inner.deferred.totalTxCount()
	totalDeferredGauge.Update(int64(total))
	return total
}

func (p *Pool) TotalReceived() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.totalReceived
}

func (p *Pool) TotalUnpacked() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	unpackedCountGauge.Update(int64(p.inner.unpackedCount))
	return p.inner.unpackedCount
}

func (p *Pool) TotalReadyAccounts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.ready.len()
}

func (p *Pool) RemainingQuota() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	inner := p.inner
	totalDeferred := uint64(inner.deferred.totalTxCount())
	var gcEligible uint64
	for _, n := range inner.gc.pq {
		gcEligible += uint64(n.staleCount)
	}
	if inner.cfg.Capacity+gcEligible < totalDeferred {
		return 0
	}
	return inner.cfg.Capacity - totalDeferred + gcEligible
}

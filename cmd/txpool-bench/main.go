// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// txpool-bench drives the transaction pool through synthetic insert/pack
// cycles, to exercise the weighted draw and garbage collector under load
// outside of a full node.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"
	"github.com/spf13/pflag"
	"github.com/urfave/cli/v2"

	"github.com/luxfi/txpool/cmd/txpool-bench/config"
	"github.com/luxfi/txpool/core/txpool"
	txtypes "github.com/luxfi/txpool/core/types"
)

const clientIdentifier = "txpool-bench"

var app = &cli.App{
	Name:  clientIdentifier,
	Usage: "synthetic load generator for the transaction pool core",
}

func init() {
	app.Action = runBench
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: config.VersionKey, Usage: "print version and exit"},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runBench is the app's sole action: it parses the remaining arguments with
// the pflag+viper config layer (independent of urfave/cli's own flag set,
// so the benchmark's many numeric knobs don't have to be restated as
// cli.Flag values) and drives the simulation.
func runBench(ctx *cli.Context) error {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, ctx.Args().Slice())
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("couldn't configure flags: %w", err)
	}
	if ctx.Bool(config.VersionKey) || v.GetBool(config.VersionKey) {
		fmt.Println(config.Version)
		return nil
	}

	cfg, err := config.BuildConfig(v)
	if err != nil {
		return err
	}

	logger := log.Root()
	logger.Info("starting benchmark", "senders", cfg.Senders, "capacity", cfg.Capacity, "rounds", cfg.Rounds)
	return simulate(cfg, logger)
}

// simulate runs cfg.Rounds insert/pack cycles against a pool backed by a
// synthetic account universe, logging aggregate throughput at the end.
func simulate(cfg config.Config, logger log.Logger) error {
	rng := rand.New(rand.NewSource(cfg.Seed))

	oracle := newSyntheticOracle(cfg.Senders, rng)
	pool := txpool.NewPool(txpool.Config{
		Capacity:            cfg.Capacity,
		TxWeightScaling:     cfg.TxWeightScaling,
		TxWeightExp:         cfg.TxWeightExp,
		RecentlyEvictedSize: cfg.RecentlyEvictedSize,
	}, oracle)

	verifier := acceptAllVerifier{}
	var totalPacked uint64

	for round := 1; round <= cfg.Rounds; round++ {
		submitted := oracle.submitRandomBatch(pool, rng)

		packed := pool.Pack(cfg.NumTxsPerPack, cfg.BlockGasLimit, cfg.BlockSizeLimit, uint64(round), uint64(round), verifier)
		totalPacked += uint64(len(packed))
		oracle.commit(pool, packed)

		if round%10 == 0 || round == cfg.Rounds {
			logger.Info("round complete",
				"round", round,
				"submitted", submitted,
				"packed", len(packed),
				"deferred", pool.TotalDeferred(),
				"readyAccounts", pool.TotalReadyAccounts(),
				"unpacked", pool.TotalUnpacked(),
			)
		}
	}

	logger.Info("benchmark finished",
		"totalReceived", pool.TotalReceived(),
		"totalPacked", totalPacked,
		"remainingQuota", pool.RemainingQuota(),
	)
	return nil
}

// acceptAllVerifier never defers or drops a drawn candidate, so the
// benchmark measures the pool's own draw and GC behavior in isolation.
type acceptAllVerifier struct{}

func (acceptAllVerifier) Recheck(*txtypes.SignedTransaction, uint64, uint64) txpool.PackingCheckResult {
	return txpool.PackingCheckPack
}

// syntheticOracle is an in-memory AccountStateOracle over a fixed set of
// senders with no sponsorship, used to drive the pool without a live chain.
type syntheticOracle struct {
	senders  []common.Address
	nonces   map[common.Address]uint64
	balances map[common.Address]*uint256.Int
}

func newSyntheticOracle(numSenders int, rng *rand.Rand) *syntheticOracle {
	o := &syntheticOracle{
		senders:  make([]common.Address, numSenders),
		nonces:   make(map[common.Address]uint64, numSenders),
		balances: make(map[common.Address]*uint256.Int, numSenders),
	}
	for i := range o.senders {
		var a common.Address
		rng.Read(a[:])
		o.senders[i] = a
		o.nonces[a] = 0
		o.balances[a] = uint256.NewInt(1_000_000_000_000)
	}
	return o
}

func (o *syntheticOracle) NonceAndBalance(address common.Address) (*uint256.Int, *uint256.Int, error) {
	return uint256.NewInt(o.nonces[address]), o.balances[address], nil
}

func (o *syntheticOracle) SponsorInfo(common.Address) (txpool.SponsorInfo, bool, error) {
	return txpool.SponsorInfo{}, false, nil
}

func (o *syntheticOracle) CommissionPrivilege(common.Address, common.Address) (bool, error) {
	return false, nil
}

// submitRandomBatch inserts a handful of transactions for a random subset of
// senders, continuing each sender's nonce sequence from its on-chain value.
func (o *syntheticOracle) submitRandomBatch(pool *txpool.Pool, rng *rand.Rand) int {
	submitted := 0
	for _, sender := range o.senders {
		if rng.Intn(4) != 0 {
			continue
		}
		nonce := o.nonces[sender]
		count := rng.Intn(3) + 1
		for i := 0; i < count; i++ {
			gasPrice := uint64(rng.Intn(100) + 1)
			var h common.Hash
			rng.Read(h[:])
			tx := txtypes.NewSignedTransaction(
				h, sender,
				uint256.NewInt(nonce+uint64(i)), uint256.NewInt(gasPrice), uint256.NewInt(21000), uint256.NewInt(0),
				0, txtypes.Action{Kind: txtypes.ActionCall, Callee: sender}, 128,
			)
			if err := pool.Insert(tx, false, false); err == nil {
				submitted++
			}
		}
	}
	return submitted
}

// commit advances each packed transaction's sender past its nonce and
// reports the update to the pool, mimicking a block's post-execution state
// change.
func (o *syntheticOracle) commit(pool *txpool.Pool, packed []*txtypes.SignedTransaction) {
	touched := make(map[common.Address]uint64)
	for _, tx := range packed {
		n := tx.Nonce().Uint64() + 1
		if cur, ok := touched[tx.Sender()]; !ok || n > cur {
			touched[tx.Sender()] = n
		}
	}
	if len(touched) == 0 {
		return
	}
	updates := make([]txpool.AccountUpdate, 0, len(touched))
	for sender, nonce := range touched {
		o.nonces[sender] = nonce
		updates = append(updates, txpool.AccountUpdate{
			Address: sender,
			Nonce:   uint256.NewInt(nonce),
			Balance: o.balances[sender],
		})
	}
	pool.NotifyModifiedAccounts(updates)
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config builds the txpool-bench configuration from flags and
// environment variables, following the same pflag+viper shape as
// cmd/simulator/main in this module's teacher repo.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is reported by the --version flag.
const Version = "0.1.0"

// Flag keys, also usable as viper lookup keys.
const (
	VersionKey             = "version"
	LogLevelKey            = "log-level"
	SendersKey             = "senders"
	CapacityKey            = "capacity"
	TxWeightScalingKey     = "tx-weight-scaling"
	TxWeightExpKey         = "tx-weight-exp"
	NumTxsPerPackKey       = "num-txs-per-pack"
	BlockGasLimitKey       = "block-gas-limit"
	BlockSizeLimitKey      = "block-size-limit"
	RoundsKey              = "rounds"
	SeedKey                = "seed"
	RecentlyEvictedSizeKey = "recently-evicted-size"
)

// BuildFlagSet declares every txpool-bench flag and its default.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("txpool-bench", pflag.ContinueOnError)
	fs.Bool(VersionKey, false, "print version and exit")
	fs.String(LogLevelKey, "info", "log level (trace|debug|info|warn|error)")
	fs.Int(SendersKey, 200, "number of distinct simulated senders")
	fs.Uint64(CapacityKey, 32768, "pool capacity in transactions")
	fs.Uint64(TxWeightScalingKey, 1, "gas price divisor applied before weighting")
	fs.Uint8(TxWeightExpKey, 1, "exponent applied to scaled gas price when weighting")
	fs.Int(NumTxsPerPackKey, 200, "transactions requested per pack() call")
	fs.Uint64(BlockGasLimitKey, 30_000_000, "simulated block gas limit")
	fs.Uint64(BlockSizeLimitKey, 2_000_000, "simulated block size limit in bytes")
	fs.Int(RoundsKey, 100, "number of pack() rounds to simulate")
	fs.Int64(SeedKey, 1, "PRNG seed for the weighted draw and synthetic load generator")
	fs.Int(RecentlyEvictedSizeKey, 4096, "LRU size for recently evicted transaction hashes")
	return fs
}

// BuildViper parses args against fs and binds the result into a fresh
// viper.Viper, allowing TXPOOL_BENCH_* environment overrides.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetEnvPrefix("TXPOOL_BENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

// Config is the resolved, validated benchmark configuration.
type Config struct {
	LogLevel            string
	Senders             int
	Capacity            uint64
	TxWeightScaling     uint64
	TxWeightExp         uint8
	NumTxsPerPack       int
	BlockGasLimit       uint64
	BlockSizeLimit      uint64
	Rounds              int
	Seed                int64
	RecentlyEvictedSize int
}

// BuildConfig reads v into a Config and validates it.
func BuildConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogLevel:            v.GetString(LogLevelKey),
		Senders:             v.GetInt(SendersKey),
		Capacity:            v.GetUint64(CapacityKey),
		TxWeightScaling:     v.GetUint64(TxWeightScalingKey),
		TxWeightExp:         uint8(v.GetUint32(TxWeightExpKey)),
		NumTxsPerPack:       v.GetInt(NumTxsPerPackKey),
		BlockGasLimit:       v.GetUint64(BlockGasLimitKey),
		BlockSizeLimit:      v.GetUint64(BlockSizeLimitKey),
		Rounds:              v.GetInt(RoundsKey),
		Seed:                v.GetInt64(SeedKey),
		RecentlyEvictedSize: v.GetInt(RecentlyEvictedSizeKey),
	}
	if cfg.Senders <= 0 {
		return Config{}, fmt.Errorf("senders must be positive, got %d", cfg.Senders)
	}
	if cfg.NumTxsPerPack <= 0 {
		return Config{}, fmt.Errorf("num-txs-per-pack must be positive, got %d", cfg.NumTxsPerPack)
	}
	if cfg.Capacity == 0 {
		return Config{}, fmt.Errorf("capacity must be positive")
	}
	return cfg, nil
}

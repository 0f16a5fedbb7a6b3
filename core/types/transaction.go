// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package types defines the transaction shape the pool operates on. Signing
// and wire decoding happen upstream of the pool; by the time a transaction
// reaches this package it is already verified.
package types

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// ActionKind distinguishes a call to an existing address (value transfer or
// contract call) from contract creation, the only distinction the pool's
// sponsorship lookup (SPEC_FULL.md §4.5.1) cares about.
type ActionKind uint8

const (
	ActionCall ActionKind = iota
	ActionCreate
)

// Action is the destination of a transaction. Kind ActionCreate means
// contract creation; Callee is meaningful only for ActionCall.
type Action struct {
	Kind   ActionKind
	Callee common.Address
}

// SignedTransaction is the opaque, already-verified input the pool accepts.
// It is immutable once constructed; the pool never mutates it, only the
// TxEntry wrapper that carries it.
type SignedTransaction struct {
	hash         common.Hash
	sender       common.Address
	nonce        *uint256.Int
	gasPrice     *uint256.Int
	gasLimit     *uint256.Int
	value        *uint256.Int
	storageLimit uint64
	action       Action
	encodedSize  uint64
}

// NewSignedTransaction constructs a SignedTransaction. Callers (outside the
// pool) are responsible for signature verification and RLP decoding.
func NewSignedTransaction(hash common.Hash, sender common.Address, nonce, gasPrice, gasLimit, value *uint256.Int, storageLimit uint64, action Action, encodedSize uint64) *SignedTransaction {
	return &SignedTransaction{
		hash:         hash,
		sender:       sender,
		nonce:        nonce,
		gasPrice:     gasPrice,
		gasLimit:     gasLimit,
		value:        value,
		storageLimit: storageLimit,
		action:       action,
		encodedSize:  encodedSize,
	}
}

func (tx *SignedTransaction) Hash() common.Hash      { return tx.hash }
func (tx *SignedTransaction) Sender() common.Address { return tx.sender }
func (tx *SignedTransaction) Nonce() *uint256.Int    { return tx.nonce }
func (tx *SignedTransaction) GasPrice() *uint256.Int { return tx.gasPrice }
func (tx *SignedTransaction) GasLimit() *uint256.Int { return tx.gasLimit }
func (tx *SignedTransaction) Value() *uint256.Int    { return tx.value }
func (tx *SignedTransaction) StorageLimit() uint64   { return tx.storageLimit }
func (tx *SignedTransaction) Action() Action         { return tx.action }
func (tx *SignedTransaction) RLPSize() uint64        { return tx.encodedSize }

// IsContractCall reports whether the action may invoke sponsorship lookups.
func (tx *SignedTransaction) IsContractCall() bool {
	return tx.action.Kind == ActionCall
}

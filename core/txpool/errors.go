// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// Reason is a closed set of causes an insert can fail for (SPEC_FULL.md §7).
type Reason int

const (
	ReasonTooFarFuture Reason = iota
	ReasonStaleNonce
	ReasonPoolFull
	ReasonReplaceUnderpriced
	ReasonOracleFailure
)

func (r Reason) String() string {
	switch r {
	case ReasonTooFarFuture:
		return "TooFarFuture"
	case ReasonStaleNonce:
		return "StaleNonce"
	case ReasonPoolFull:
		return "PoolFull"
	case ReasonReplaceUnderpriced:
		return "ReplaceUnderpriced"
	case ReasonOracleFailure:
		return "OracleFailure"
	default:
		return "Unknown"
	}
}

// ErrOverdraft mirrors the teacher's sentinel-error style
// (core/txpool/txpool.go's ErrOverdraft) for the one case that is checked
// with errors.Is rather than via the Reason enum: a replacement whose fee
// does not beat the incumbent.
var ErrOverdraft = errors.New("transaction would cause an overdraft")

// InsertError is the single error type surfaced by insert operations. It
// always carries a Reason; ReasonReplaceUnderpriced additionally carries the
// minimum gas price that would have been accepted, and ReasonOracleFailure
// wraps the underlying OracleError.
type InsertError struct {
	Reason      Reason
	MinGasPrice *uint256.Int // set only for ReasonReplaceUnderpriced
	Cause       error        // the OracleError for ReasonOracleFailure, ErrOverdraft for ReasonReplaceUnderpriced
}

func (e *InsertError) Error() string {
	switch e.Reason {
	case ReasonReplaceUnderpriced:
		return fmt.Sprintf("replace underpriced: minimum gas price %s", e.MinGasPrice)
	case ReasonOracleFailure:
		return fmt.Sprintf("oracle failure: %v", e.Cause)
	default:
		return e.Reason.String()
	}
}

func (e *InsertError) Unwrap() error {
	return e.Cause
}

func newInsertError(reason Reason) *InsertError {
	return &InsertError{Reason: reason}
}

func newReplaceUnderpricedError(minGasPrice *uint256.Int) *InsertError {
	return &InsertError{Reason: ReasonReplaceUnderpriced, MinGasPrice: minGasPrice, Cause: ErrOverdraft}
}

func newOracleFailureError(cause error) *InsertError {
	return &InsertError{Reason: ReasonOracleFailure, Cause: cause}
}

// OracleError wraps a failure from the AccountStateOracle collaborator.
type OracleError struct {
	Op    string
	Cause error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("account state oracle: %s: %v", e.Op, e.Cause)
}
func (e *OracleError) Unwrap() error { return e.Cause }

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"errors"
	"fmt"
)

// Sentinel errors returned across the mempool's public surface. Callers
// should use errors.Is against these, not string matching: the wrapping
// messages carry address/nonce/hash context that varies per call.
var (
	// ErrNonceTooOld is returned by AddTx when the submitted nonce is below
	// the address's staged next-nonce.
	ErrNonceTooOld = errors.New("nonce too old")

	// ErrDuplicateNonce is returned by AddTx when an entry already exists at
	// (address, nonce) and the incoming transaction did not qualify for
	// fee-escalation replacement, or escalation is disabled.
	ErrDuplicateNonce = errors.New("duplicate nonce")

	// ErrDuplicateTransaction is returned by AddTx when the same transaction
	// hash is already pooled.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrTransactionNotFound is returned by pool lookups when a caller
	// expected a hit.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNonceOverflow is returned when nonce+1 would exceed the
	// representable range.
	ErrNonceOverflow = errors.New("nonce overflow")
)

func nonceTooOldErr(addr Address, nonce Nonce) error {
	return fmt.Errorf("%w: address %s nonce %d", ErrNonceTooOld, addr, nonce)
}

func duplicateNonceErr(addr Address, nonce Nonce) error {
	return fmt.Errorf("%w: address %s nonce %d", ErrDuplicateNonce, addr, nonce)
}

func duplicateTransactionErr(hash Hash) error {
	return fmt.Errorf("%w: tx_hash %s", ErrDuplicateTransaction, hash)
}

func transactionNotFoundErr(hash Hash) error {
	return fmt.Errorf("%w: tx_hash %s", ErrTransactionNotFound, hash)
}

// invariantViolation panics with a consistent message. Per the mempool's
// error-handling design, internal consistency violations (a queue entry
// whose hash is missing from the pool, a rewind address with no pool entry,
// a commit that regresses an account nonce) are fatal programming errors,
// not user-facing error kinds: they abort rather than return an error value.
func invariantViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("mempool: invariant violated: "+format, args...))
}
// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mempool implements the pending-transaction staging buffer for an
// account-based sequencer: the authoritative pool of submitted transactions,
// a priority-ordered queue of the transactions currently eligible for
// inclusion, and the bookkeeping that reconciles both against committed
// blocks.
package mempool

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Address identifies an account. It is a value type borrowed from the
// go-ethereum common package rather than reinvented, since a 20-byte account
// identifier is exactly what every collaborator upstream of the mempool
// already produces.
type Address = common.Address

// Hash identifies a transaction by its content hash.
type Hash = common.Hash

// Nonce is a per-account, monotonically increasing counter.
type Nonce uint64

// incremented returns nonce+1, failing with ErrNonceOverflow if that would
// wrap past the representable range.
func (n Nonce) incremented() (Nonce, error) {
	if n == math.MaxUint64 {
		return 0, fmt.Errorf("%w: nonce %d has no successor", ErrNonceOverflow, n)
	}
	return n + 1, nil
}

// AccountState is the authoritative (address, nonce) pair as observed by the
// gateway or by a committed block.
type AccountState struct {
	Address Address
	Nonce   Nonce
}

// AccountTransaction is the full transaction object the pool stores and hands
// back to the block builder. The mempool engine treats everything beyond the
// fields below as opaque payload belonging to upstream validation; it never
// inspects signatures or resource bounds itself.
type AccountTransaction struct {
	ContractAddress Address
	TxNonce         Nonce
	TxHash          Hash
	TxTip           *uint256.Int
	MaxL2GasPrice   *uint256.Int

	// Payload is the opaque, already-validated transaction body. The mempool
	// never looks inside it; it exists purely so callers get back the same
	// object they submitted.
	Payload []byte
}

func (tx *AccountTransaction) reference() TransactionReference {
	return TransactionReference{
		Address:       tx.ContractAddress,
		Nonce:         tx.TxNonce,
		TxHash:        tx.TxHash,
		Tip:           tx.TxTip,
		MaxL2GasPrice: tx.MaxL2GasPrice,
	}
}

// TransactionReference is a compact, copyable summary of an
// AccountTransaction carrying only what the pool and queue need for identity
// and ordering decisions. Equality, as reported by Equal, is defined by
// TxHash alone.
type TransactionReference struct {
	Address       Address
	Nonce         Nonce
	TxHash        Hash
	Tip           *uint256.Int
	MaxL2GasPrice *uint256.Int
}

// Equal reports whether r and other refer to the same transaction.
func (r TransactionReference) Equal(other TransactionReference) bool {
	return r.TxHash == other.TxHash
}

func newTransactionReference(tx *AccountTransaction) TransactionReference {
	return tx.reference()
}

func (r TransactionReference) String() string {
	return fmt.Sprintf(
		"TransactionReference{address: %s, nonce: %d, tx_hash: %s, tip: %s, max_l2_gas_price: %s}",
		r.Address, r.Nonce, r.TxHash, r.Tip, r.MaxL2GasPrice,
	)
}

// AddressToNonce maps accounts to a nonce; used both for the authoritative
// and the in-flight staged nonce tables, and as the commit-block input.
type AddressToNonce map[Address]Nonce

// CommitBlockArgs describes a committed block from the mempool's point of
// view: the nonce every included account now sits at, and the hashes that
// were actually sequenced.
type CommitBlockArgs struct {
	AddressToNonce AddressToNonce
	TxHashes       []Hash
}

// AddTransactionArgs bundles an incoming transaction with the submitter's
// view of its own account nonce.
type AddTransactionArgs struct {
	Tx           AccountTransaction
	AccountState AccountState
}

// GasPrice is a bid, expressed in the same unit as MaxL2GasPrice, used to
// classify queue entries as ready or merely pending.
type GasPrice = uint256.Int
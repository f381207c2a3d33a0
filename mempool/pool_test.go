// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransactionPool_InsertAndLookup(t *testing.T) {
	r := require.New(t)
	p := newTransactionPool()

	tx := newTx(addr(1), 0, hash("H1"), 5, 100)
	r.NoError(p.insert(tx))

	got, err := p.getByTxHash(hash("H1"))
	r.NoError(err)
	r.Equal(tx.TxHash, got.TxHash)

	ref := p.getByAddressAndNonce(addr(1), 0)
	r.NotNil(ref)
	r.Equal(hash("H1"), ref.TxHash)

	r.Nil(p.getByAddressAndNonce(addr(1), 1))
}

func TestTransactionPool_DuplicateTransaction(t *testing.T) {
	r := require.New(t)
	p := newTransactionPool()

	r.NoError(p.insert(newTx(addr(1), 0, hash("H1"), 5, 100)))
	err := p.insert(newTx(addr(1), 1, hash("H1"), 5, 100))
	r.ErrorIs(err, ErrDuplicateTransaction)
}

func TestTransactionPool_DuplicateNonce(t *testing.T) {
	r := require.New(t)
	p := newTransactionPool()

	r.NoError(p.insert(newTx(addr(1), 0, hash("H1"), 5, 100)))
	err := p.insert(newTx(addr(1), 0, hash("H2"), 6, 100))
	r.ErrorIs(err, ErrDuplicateNonce)
}

func TestTransactionPool_RemoveUpToNonce(t *testing.T) {
	r := require.New(t)
	p := newTransactionPool()

	r.NoError(p.insert(newTx(addr(1), 0, hash("H0"), 1, 1)))
	r.NoError(p.insert(newTx(addr(1), 1, hash("H1"), 1, 1)))
	r.NoError(p.insert(newTx(addr(1), 2, hash("H2"), 1, 1)))

	p.removeUpToNonce(addr(1), 2)

	r.Nil(p.getByAddressAndNonce(addr(1), 0))
	r.Nil(p.getByAddressAndNonce(addr(1), 1))
	r.NotNil(p.getByAddressAndNonce(addr(1), 2))
}

func TestTransactionPool_RemoveNotFound(t *testing.T) {
	r := require.New(t)
	p := newTransactionPool()

	_, err := p.remove(hash("missing"))
	r.ErrorIs(err, ErrTransactionNotFound)
}

func TestTransactionPool_AccountTxsSortedByNonce(t *testing.T) {
	r := require.New(t)
	p := newTransactionPool()

	r.NoError(p.insert(newTx(addr(1), 5, hash("H5"), 1, 1)))
	r.NoError(p.insert(newTx(addr(1), 1, hash("H1"), 1, 1)))
	r.NoError(p.insert(newTx(addr(1), 3, hash("H3"), 1, 1)))

	refs := p.accountTxsSortedByNonce(addr(1))
	r.Len(refs, 3)
	r.Equal([]Nonce{1, 3, 5}, []Nonce{refs[0].Nonce, refs[1].Nonce, refs[2].Nonce})
}

func TestTransactionPool_GetNextEligibleTx(t *testing.T) {
	r := require.New(t)
	p := newTransactionPool()

	r.NoError(p.insert(newTx(addr(1), 3, hash("H3"), 1, 1)))

	ref := p.getNextEligibleTx(AccountState{Address: addr(1), Nonce: 3})
	r.NotNil(ref)

	r.Nil(p.getNextEligibleTx(AccountState{Address: addr(1), Nonce: 4}))
}
// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMempool() *Mempool {
	return New(DefaultConfig(), u256(0))
}

func addArgs(address Address, nonce Nonce, txHash Hash, tip, gasPrice uint64, accountNonce Nonce) AddTransactionArgs {
	return AddTransactionArgs{
		Tx:           newTx(address, nonce, txHash, tip, gasPrice),
		AccountState: AccountState{Address: address, Nonce: accountNonce},
	}
}

// Scenario 1: basic add + pop + commit drains the pool and queue.
func TestMempool_BasicAddAndPop(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	r.NoError(m.AddTx(addArgs(addr(1), 0, hash("H1"), 5, 100, 0)))

	txs, err := m.GetTxs(10)
	r.NoError(err)
	r.Len(txs, 1)
	r.Equal(hash("H1"), txs[0].TxHash)

	m.CommitBlock(CommitBlockArgs{
		AddressToNonce: AddressToNonce{addr(1): 1},
		TxHashes:       []Hash{hash("H1")},
	})

	_, err = m.pool.getByTxHash(hash("H1"))
	r.ErrorIs(err, ErrTransactionNotFound)
	r.Empty(m.Iter())
}

// Scenario 2: a nonce gap defers queueing until the gap closes.
func TestMempool_NonceGapDeferral(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	r.NoError(m.AddTx(addArgs(addr(1), 5, hash("H5"), 1, 1, 3)))
	r.Empty(m.Iter())

	r.NoError(m.AddTx(addArgs(addr(1), 3, hash("H3"), 1, 1, 3)))
	ready := m.Iter()
	r.Len(ready, 1)
	r.Equal(hash("H3"), ready[0].TxHash)

	txs, err := m.GetTxs(2)
	r.NoError(err)
	r.Len(txs, 1)
	r.Equal(hash("H3"), txs[0].TxHash)

	// Nonce 4 was never submitted, so the gap re-opens: H5 stays in the pool
	// but is not requeued.
	r.Empty(m.Iter())
	_, err = m.pool.getByTxHash(hash("H5"))
	r.NoError(err)
}

// Scenario 3 & 4: fee escalation accepted vs rejected.
func TestMempool_FeeEscalation(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	r.NoError(m.AddTx(addArgs(addr(1), 0, hash("Hold"), 100, 1000, 0)))

	// Accepted: +10% on both tip and gas price.
	r.NoError(m.AddTx(addArgs(addr(1), 0, hash("Hnew"), 110, 1100, 0)))
	_, err := m.pool.getByTxHash(hash("Hold"))
	r.ErrorIs(err, ErrTransactionNotFound)
	got, err := m.pool.getByTxHash(hash("Hnew"))
	r.NoError(err)
	r.Equal(hash("Hnew"), got.TxHash)
	ready := m.Iter()
	r.Len(ready, 1)
	r.Equal(hash("Hnew"), ready[0].TxHash)

	// Rejected: tip increase is below the 10% bar.
	err = m.AddTx(addArgs(addr(1), 0, hash("Hnew2"), 105, 1100, 0))
	r.ErrorIs(err, ErrDuplicateNonce)
	_, err = m.pool.getByTxHash(hash("Hnew2"))
	r.ErrorIs(err, ErrTransactionNotFound)
}

// Scenario 5: an address staged but not included in the committed block is
// rewound to its lowest-nonce pending transaction.
func TestMempool_RewindOnNonInclusion(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	r.NoError(m.AddTx(addArgs(addr(1), 0, hash("H0"), 1, 1, 0)))
	r.NoError(m.AddTx(addArgs(addr(2), 0, hash("K0"), 1, 1, 0)))

	txs, err := m.GetTxs(2)
	r.NoError(err)
	r.Len(txs, 2)

	m.CommitBlock(CommitBlockArgs{
		AddressToNonce: AddressToNonce{addr(1): 1},
		TxHashes:       []Hash{hash("H0")},
	})

	ready := m.Iter()
	r.Len(ready, 1)
	r.Equal(hash("K0"), ready[0].TxHash)
	r.Empty(m.mempoolState)
}

// Scenario 6: priority ordering across unrelated accounts.
func TestMempool_PriorityOrdering(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	r.NoError(m.AddTx(addArgs(addr(1), 0, hash("A"), 10, 1, 0)))
	r.NoError(m.AddTx(addArgs(addr(2), 0, hash("B"), 50, 1, 0)))
	r.NoError(m.AddTx(addArgs(addr(3), 0, hash("C"), 30, 1, 0)))

	txs, err := m.GetTxs(3)
	r.NoError(err)
	r.Equal([]Hash{hash("B"), hash("C"), hash("A")}, []Hash{txs[0].TxHash, txs[1].TxHash, txs[2].TxHash})
}

func TestMempool_NonceTooOld(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	r.NoError(m.AddTx(addArgs(addr(1), 0, hash("H0"), 1, 1, 0)))
	_, err := m.GetTxs(1)
	r.NoError(err)

	err = m.AddTx(addArgs(addr(1), 0, hash("Hold"), 1, 1, 0))
	r.ErrorIs(err, ErrNonceTooOld)
}

// Two successive GetTxs calls with no intervening CommitBlock or AddTx
// return disjoint sets of transactions.
func TestMempool_GetTxsDisjointAcrossCalls(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	r.NoError(m.AddTx(addArgs(addr(1), 0, hash("H0"), 1, 1, 0)))
	r.NoError(m.AddTx(addArgs(addr(1), 1, hash("H1"), 1, 1, 0)))

	first, err := m.GetTxs(1)
	r.NoError(err)
	r.Len(first, 1)
	r.Equal(hash("H0"), first[0].TxHash)

	second, err := m.GetTxs(1)
	r.NoError(err)
	r.Len(second, 1)
	r.Equal(hash("H1"), second[0].TxHash)
}

// Idempotence of commit-with-empty: clears mempool_state and nothing else.
func TestMempool_CommitEmptyIsIdempotent(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	r.NoError(m.AddTx(addArgs(addr(1), 0, hash("H0"), 1, 1, 0)))
	_, err := m.GetTxs(1)
	r.NoError(err)
	r.NotEmpty(m.mempoolState)

	m.CommitBlock(CommitBlockArgs{})

	r.Empty(m.mempoolState)
	_, err = m.pool.getByTxHash(hash("H0"))
	r.NoError(err) // still pooled: commit-with-empty never hard-deletes anything
}

func TestMempool_CommitBlockRegressingNonceIsFatal(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	m.CommitBlock(CommitBlockArgs{AddressToNonce: AddressToNonce{addr(1): 5}})

	r.Panics(func() {
		m.CommitBlock(CommitBlockArgs{AddressToNonce: AddressToNonce{addr(1): 2}})
	})
}

func TestMempool_DuplicateNonceViaQueue(t *testing.T) {
	r := require.New(t)
	config := DefaultConfig()
	config.EnableFeeEscalation = false
	m := New(config, u256(0))

	r.NoError(m.AddTx(addArgs(addr(1), 0, hash("H0"), 1, 1, 0)))
	err := m.AddTx(addArgs(addr(1), 0, hash("H0dup"), 1, 1, 0))
	r.ErrorIs(err, ErrDuplicateNonce)
}

func TestMempool_NonceOverflowOnDispense(t *testing.T) {
	r := require.New(t)
	m := newTestMempool()

	const maxNonce = Nonce(^uint64(0))
	r.NoError(m.AddTx(addArgs(addr(1), maxNonce, hash("Hmax"), 1, 1, maxNonce)))

	_, err := m.GetTxs(1)
	r.ErrorIs(err, ErrNonceOverflow)
}
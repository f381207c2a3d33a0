// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/uint256"

	"github.com/vtjl10/sequencer/log"
)

// Mempool is the single-writer engine coordinating the transaction pool, the
// priority queue, and the two nonce tables that reconcile them against
// in-flight block building. Every exported method here is expected to run
// under the caller's own exclusive lock: the engine itself holds no mutex,
// per the single-writer, externally-serialized concurrency model described
// for this component.
type Mempool struct {
	config Config

	pool  *transactionPool
	queue *transactionQueue

	// mempoolState is the staged next-expected nonce per address, populated
	// by GetTxs for the block currently being built and cleared in full by
	// CommitBlock.
	mempoolState AddressToNonce

	// accountNonces is the most recent authoritative nonce per address,
	// sourced either from a gateway-supplied AccountState or from a
	// committed block.
	accountNonces AddressToNonce

	metrics *Metrics
}

// New creates an empty mempool with the given configuration and an initial
// gas-price threshold below which entries are held in the queue but not
// dispensed.
func New(config Config, gasPriceThreshold *uint256.Int) *Mempool {
	return NewWithMetrics(config, gasPriceThreshold, NewMetrics())
}

// NewWithMetrics is New, but lets the caller supply a *Metrics registered
// against a registry of its own choosing -- e.g. the process-wide default
// registerer a /metrics endpoint scrapes.
func NewWithMetrics(config Config, gasPriceThreshold *uint256.Int, metrics *Metrics) *Mempool {
	return &Mempool{
		config:        config,
		pool:          newTransactionPool(),
		queue:         newTransactionQueue(gasPriceThreshold),
		mempoolState:  make(AddressToNonce),
		accountNonces: make(AddressToNonce),
		metrics:       metrics,
	}
}

// Iter returns the current eligible transactions for sequencing, ordered by
// priority: a read-only inspection surface for the block builder.
func (m *Mempool) Iter() []TransactionReference {
	return m.queue.iterOverReadyTxs()
}

// GetTxs retrieves up to nTxs transactions with the highest priority from
// the mempool. Transactions already returned by a prior call are never
// returned again until the in-progress block is committed: this call only
// soft-deletes -- the returned transactions remain in the pool, staged,
// until CommitBlock either hard-deletes or rewinds them.
func (m *Mempool) GetTxs(nTxs int) ([]AccountTransaction, error) {
	eligible := make([]TransactionReference, 0, nTxs)
	remaining := nTxs

	for remaining > 0 && m.queue.hasReadyTxs() {
		chunk := m.queue.popReadyChunk(remaining)
		for _, ref := range chunk {
			if err := m.enqueueNextEligibleTx(ref); err != nil {
				return nil, err
			}
		}
		remaining -= len(chunk)
		eligible = append(eligible, chunk...)
	}

	log.Debug("returned transactions ready for sequencing", "requested", nTxs, "returned", len(eligible))
	if len(eligible) > 0 {
		m.metrics.observeDispensed(len(eligible))
	}

	out := make([]AccountTransaction, 0, len(eligible))
	for _, ref := range eligible {
		tx, err := m.pool.getByTxHash(ref.TxHash)
		if err != nil {
			invariantViolation("transaction hash from queue must appear in pool: %v", err)
		}
		// soft-delete: return a copy without removing from the pool; the
		// copy shares no pointers or bytes with the pooled transaction.
		cp := *tx
		if tx.TxTip != nil {
			cp.TxTip = new(uint256.Int).Set(tx.TxTip)
		}
		if tx.MaxL2GasPrice != nil {
			cp.MaxL2GasPrice = new(uint256.Int).Set(tx.MaxL2GasPrice)
		}
		cp.Payload = append([]byte(nil), tx.Payload...)
		out = append(out, cp)
	}
	return out, nil
}

// AddTx validates and inserts a newly submitted transaction, enqueueing it
// immediately if its nonce is the account's expected next nonce.
func (m *Mempool) AddTx(args AddTransactionArgs) error {
	ref := newTransactionReference(&args.Tx)

	if err := m.validateIncomingTxNonce(ref.Address, ref.Nonce); err != nil {
		return err
	}

	if err := m.handleFeeEscalation(&args.Tx); err != nil {
		return err
	}
	if err := m.pool.insert(args.Tx); err != nil {
		return err
	}

	address, incomingAccountNonce := args.AccountState.Address, args.AccountState.Nonce
	expectedNonce, ok := m.mempoolState[address]
	if !ok {
		expectedNonce, ok = m.accountNonces[address]
		if !ok {
			m.accountNonces[address] = incomingAccountNonce
			expectedNonce = incomingAccountNonce
		}
	}
	if ref.Nonce == expectedNonce {
		m.queue.insert(ref)
	}

	m.metrics.observeAdded()
	return nil
}

// CommitBlock updates the mempool's internal state according to a committed
// block: aligning each included address to its new nonce, rewinding any
// address that was staged for this block but not included, and hard-deleting
// every committed hash the pool still knows about.
func (m *Mempool) CommitBlock(args CommitBlockArgs) {
	log.Debug("committing block to mempool", "tx_count", len(args.TxHashes))

	for address, nextNonce := range args.AddressToNonce {
		if stored, ok := m.accountNonces[address]; ok && stored > nextNonce {
			invariantViolation(
				"commit_block regressed account nonce for %s: stored %d, committed %d (reorg is not supported)",
				address, stored, nextNonce,
			)
		}
		m.alignToAccountState(AccountState{Address: address, Nonce: nextNonce})
	}

	// Rewind addresses that were staged for this block but not included.
	included := mapset.NewThreadUnsafeSet[Address]()
	for address := range args.AddressToNonce {
		included.Add(address)
	}
	for address := range m.mempoolState {
		if included.Contains(address) {
			continue
		}
		refs := m.pool.accountTxsSortedByNonce(address)
		if len(refs) == 0 {
			invariantViolation("address %s should appear in transaction pool", address)
		}
		m.queue.remove(address)
		m.queue.insert(refs[0])
	}

	for _, hash := range args.TxHashes {
		// A miss means the hash is unknown to this node; it originated
		// elsewhere and is silently ignored.
		_, _ = m.pool.remove(hash)
	}

	m.mempoolState = make(AddressToNonce)
	m.metrics.observeCommit(len(args.TxHashes))

	log.Debug("successfully committed block to mempool")
}

// UpdateGasPriceThreshold changes the ready/pending split applied by the
// queue; it never removes entries from the queue, only reclassifies them.
func (m *Mempool) UpdateGasPriceThreshold(threshold *uint256.Int) {
	m.queue.updateGasPriceThreshold(threshold)
}

func (m *Mempool) validateIncomingTxNonce(address Address, nonce Nonce) error {
	if staged, ok := m.mempoolState[address]; ok && nonce < staged {
		return nonceTooOldErr(address, nonce)
	}
	if queuedNonce, ok := m.queue.getNonce(address); ok && nonce < queuedNonce {
		return duplicateNonceErr(address, nonce)
	}
	return nil
}

// enqueueNextEligibleTx "chains" the dispensed ref's successor into the
// queue: it records the account's next expected nonce in mempoolState and,
// if the pool already holds a transaction at that nonce, makes it eligible
// in turn. Chaining one transaction per call keeps get_txs from handing out
// two transactions of the same account in a single chunk.
func (m *Mempool) enqueueNextEligibleTx(ref TransactionReference) error {
	next, err := ref.Nonce.incremented()
	if err != nil {
		return err
	}
	if nextTx := m.pool.getNextEligibleTx(AccountState{Address: ref.Address, Nonce: next}); nextTx != nil {
		m.queue.insert(*nextTx)
	}
	m.mempoolState[ref.Address] = next
	return nil
}

// alignToAccountState brings the mempool's view of address up to nonce: it
// drops the queue entry if it no longer matches, garbage-collects now-stale
// pool entries below nonce, records the new authoritative nonce, and closes
// any nonce gap that just became closeable.
func (m *Mempool) alignToAccountState(account AccountState) {
	address, nonce := account.Address, account.Nonce

	if queuedNonce, ok := m.queue.getNonce(address); ok && queuedNonce != nonce {
		if !m.queue.remove(address) {
			invariantViolation("expected to remove address %s from queue", address)
		}
	}

	m.pool.removeUpToNonce(address, nonce)
	m.accountNonces[address] = nonce

	if _, ok := m.queue.getNonce(address); !ok {
		if ref := m.pool.getByAddressAndNonce(address, nonce); ref != nil {
			m.queue.insert(*ref)
		}
	}
}

// handleFeeEscalation implements the replacement test: if incoming collides
// on (address, nonce) with a pooled transaction, it either qualifies as a
// fee-escalating replacement -- in which case the old entry is evicted from
// queue and pool -- or the call fails with ErrDuplicateNonce.
func (m *Mempool) handleFeeEscalation(incoming *AccountTransaction) error {
	if !m.config.EnableFeeEscalation {
		return nil
	}

	incomingRef := newTransactionReference(incoming)
	existing := m.pool.getByAddressAndNonce(incomingRef.Address, incomingRef.Nonce)
	if existing == nil {
		return nil // No existing transaction at this nonce: nothing to replace.
	}

	if !m.shouldReplaceTx(existing, &incomingRef) {
		log.Debug("transaction was not replaced due to insufficient fee escalation",
			"existing", existing.String(), "incoming", incomingRef.String())
		return duplicateNonceErr(incomingRef.Address, incomingRef.Nonce)
	}

	log.Debug("replacing transaction", "existing", existing.String(), "incoming", incomingRef.String())

	m.queue.remove(incomingRef.Address)
	if _, err := m.pool.remove(existing.TxHash); err != nil {
		invariantViolation("transaction hash from pool must exist: %v", err)
	}
	return nil
}

func (m *Mempool) shouldReplaceTx(existing, incoming *TransactionReference) bool {
	return increasedEnough(existing.Tip, incoming.Tip, m.config.FeeEscalationPercentage) &&
		increasedEnough(existing.MaxL2GasPrice, incoming.MaxL2GasPrice, m.config.FeeEscalationPercentage)
}

// increasedEnough reports whether incoming exceeds existing by at least
// percentage percent, per the fee-escalation law in shouldReplaceTx
// (monotone in incoming: a larger incoming value can only make this more
// likely to hold). Arithmetic runs in 256-bit unsigned space -- a strict
// superset of the 128-bit range the policy requires -- and fails closed: any
// overflow while computing the escalation threshold rejects the
// replacement rather than risk wrapping past it.
func increasedEnough(existing, incoming *uint256.Int, percentage uint8) bool {
	increase, overflow := new(uint256.Int).MulOverflow(existing, uint256.NewInt(uint64(percentage)))
	if overflow {
		return false
	}
	increase.Div(increase, uint256.NewInt(100))

	threshold, overflow := new(uint256.Int).AddOverflow(existing, increase)
	if overflow {
		return false
	}
	return incoming.Cmp(threshold) >= 0
}
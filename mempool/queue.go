// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"bytes"
	"container/heap"

	"github.com/holiman/uint256"
)

// transactionQueue holds at most one entry per address: the single
// transaction from that account currently eligible to be sequenced. Entries
// are totally ordered by (tip desc, tx_hash asc); only entries whose
// MaxL2GasPrice meets the configured threshold are "ready" and dispensable.
//
// The backing store is a textbook container/heap priority queue, the same
// shape as the go-ethereum transaction pool's priced list, with an address
// index kept in lockstep by the heap's own Swap/Push/Pop so insert, remove
// and getNonce are O(log n) or better instead of a linear scan. hasReadyTxs
// and iterOverReadyTxs still visit every entry.
type transactionQueue struct {
	entries           *queueHeap
	gasPriceThreshold *uint256.Int
}

func newTransactionQueue(gasPriceThreshold *uint256.Int) *transactionQueue {
	if gasPriceThreshold == nil {
		gasPriceThreshold = uint256.NewInt(0)
	}
	return &transactionQueue{
		entries:           newQueueHeap(),
		gasPriceThreshold: gasPriceThreshold,
	}
}

// insert adds ref to the queue. It is a programming error -- not a
// user-facing failure -- to insert a second entry for an address already
// queued; callers must remove the stale entry first.
func (q *transactionQueue) insert(ref TransactionReference) {
	if _, exists := q.entries.index[ref.Address]; exists {
		invariantViolation("queue already holds an entry for address %s", ref.Address)
	}
	heap.Push(q.entries, &queueItem{ref: ref})
}

// remove deletes the entry for address, if present, and reports whether it
// did anything.
func (q *transactionQueue) remove(address Address) bool {
	i, ok := q.entries.index[address]
	if !ok {
		return false
	}
	heap.Remove(q.entries, i)
	return true
}

// getNonce returns the nonce of the queued entry for address, if any.
func (q *transactionQueue) getNonce(address Address) (Nonce, bool) {
	i, ok := q.entries.index[address]
	if !ok {
		return 0, false
	}
	return q.entries.items[i].ref.Nonce, true
}

func (q *transactionQueue) isReady(ref TransactionReference) bool {
	return ref.MaxL2GasPrice.Cmp(q.gasPriceThreshold) >= 0
}

// hasReadyTxs reports whether at least one ready entry exists.
func (q *transactionQueue) hasReadyTxs() bool {
	for _, it := range q.entries.items {
		if q.isReady(it.ref) {
			return true
		}
	}
	return false
}

// popReadyChunk removes and returns up to n highest-priority ready entries,
// in priority order. Entries below the gas-price threshold are skipped over
// -- left in the queue -- rather than returned.
func (q *transactionQueue) popReadyChunk(n int) []TransactionReference {
	if n <= 0 {
		return nil
	}
	chunk := make([]TransactionReference, 0, n)
	var held []TransactionReference

	for len(chunk) < n && q.entries.Len() > 0 {
		top := heap.Pop(q.entries).(*queueItem)
		if q.isReady(top.ref) {
			chunk = append(chunk, top.ref)
		} else {
			held = append(held, top.ref)
		}
	}
	for _, ref := range held {
		q.insert(ref)
	}
	return chunk
}

// iterOverReadyTxs returns a priority-ordered snapshot of the ready entries.
// It does not mutate the queue; like any snapshot, it is only guaranteed
// accurate until the next mutation.
func (q *transactionQueue) iterOverReadyTxs() []TransactionReference {
	ordered := newQueueHeap()
	for _, it := range q.entries.items {
		ordered.items = append(ordered.items, &queueItem{ref: it.ref})
	}
	heap.Init(ordered)

	out := make([]TransactionReference, 0, len(ordered.items))
	for ordered.Len() > 0 {
		it := heap.Pop(ordered).(*queueItem)
		if q.isReady(it.ref) {
			out = append(out, it.ref)
		}
	}
	return out
}

// updateGasPriceThreshold changes the ready/pending split. No entries move
// out of the queue; only their ready classification changes on the next
// query.
func (q *transactionQueue) updateGasPriceThreshold(threshold *uint256.Int) {
	q.gasPriceThreshold = threshold
}

// queueItem is the heap element: a single account's eligible reference.
type queueItem struct {
	ref TransactionReference
}

// queueHeap implements heap.Interface over queueItem, ordering by
// (tip desc, tx_hash asc) so the root is always the next entry get_txs
// should dispense. index tracks each address's current slot so remove,
// getNonce and the invariant check in insert are O(1)/O(log n) instead of a
// linear scan.
type queueHeap struct {
	items []*queueItem
	index map[Address]int
}

func newQueueHeap() *queueHeap {
	return &queueHeap{index: make(map[Address]int)}
}

func (h *queueHeap) Len() int { return len(h.items) }

func (h *queueHeap) Less(i, j int) bool {
	a, b := h.items[i].ref, h.items[j].ref
	if cmp := a.Tip.Cmp(b.Tip); cmp != 0 {
		return cmp > 0 // higher tip sorts first
	}
	return bytes.Compare(a.TxHash.Bytes(), b.TxHash.Bytes()) < 0 // lower hash sorts first
}

func (h *queueHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.index[h.items[i].ref.Address] = i
	h.index[h.items[j].ref.Address] = j
}

func (h *queueHeap) Push(x interface{}) {
	item := x.(*queueItem)
	h.index[item.ref.Address] = len(h.items)
	h.items = append(h.items, item)
}

func (h *queueHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	delete(h.index, item.ref.Address)
	return item
}
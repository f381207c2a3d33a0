// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "sort"

// transactionPool is the authoritative set of every transaction currently
// held by the mempool, indexed both by hash and by (address, nonce). It
// enforces no ordering beyond the per-address nonce sort; priority is
// entirely the queue's concern.
type transactionPool struct {
	byHash    map[Hash]*AccountTransaction
	byAddress map[Address]map[Nonce]Hash
}

func newTransactionPool() *transactionPool {
	return &transactionPool{
		byHash:    make(map[Hash]*AccountTransaction),
		byAddress: make(map[Address]map[Nonce]Hash),
	}
}

// insert adds tx to the pool. It fails with ErrDuplicateTransaction if the
// hash is already present, and ErrDuplicateNonce if an entry already occupies
// (address, nonce) -- replacement is the engine's responsibility; it must
// remove the existing entry first.
func (p *transactionPool) insert(tx AccountTransaction) error {
	if _, exists := p.byHash[tx.TxHash]; exists {
		return duplicateTransactionErr(tx.TxHash)
	}
	bucket, ok := p.byAddress[tx.ContractAddress]
	if !ok {
		bucket = make(map[Nonce]Hash)
		p.byAddress[tx.ContractAddress] = bucket
	} else if _, occupied := bucket[tx.TxNonce]; occupied {
		return duplicateNonceErr(tx.ContractAddress, tx.TxNonce)
	}

	stored := tx
	p.byHash[tx.TxHash] = &stored
	bucket[tx.TxNonce] = tx.TxHash
	return nil
}

// remove deletes the transaction with the given hash from both indices.
func (p *transactionPool) remove(hash Hash) (*AccountTransaction, error) {
	tx, ok := p.byHash[hash]
	if !ok {
		return nil, transactionNotFoundErr(hash)
	}
	delete(p.byHash, hash)

	bucket := p.byAddress[tx.ContractAddress]
	delete(bucket, tx.TxNonce)
	if len(bucket) == 0 {
		delete(p.byAddress, tx.ContractAddress)
	}
	return tx, nil
}

// removeUpToNonce deletes every entry for address whose nonce is strictly
// less than nonce. It is the commit-time garbage collector.
func (p *transactionPool) removeUpToNonce(address Address, nonce Nonce) {
	bucket, ok := p.byAddress[address]
	if !ok {
		return
	}
	for n, hash := range bucket {
		if n < nonce {
			delete(p.byHash, hash)
			delete(bucket, n)
		}
	}
	if len(bucket) == 0 {
		delete(p.byAddress, address)
	}
}

// getByTxHash is a read-only lookup by hash.
func (p *transactionPool) getByTxHash(hash Hash) (*AccountTransaction, error) {
	tx, ok := p.byHash[hash]
	if !ok {
		return nil, transactionNotFoundErr(hash)
	}
	return tx, nil
}

// getByAddressAndNonce is a read-only lookup; absence is not an error.
func (p *transactionPool) getByAddressAndNonce(address Address, nonce Nonce) *TransactionReference {
	bucket, ok := p.byAddress[address]
	if !ok {
		return nil
	}
	hash, ok := bucket[nonce]
	if !ok {
		return nil
	}
	ref := p.byHash[hash].reference()
	return &ref
}

// getNextEligibleTx returns the entry for account.Address whose nonce equals
// account.Nonce, or nil if there is none.
func (p *transactionPool) getNextEligibleTx(account AccountState) *TransactionReference {
	return p.getByAddressAndNonce(account.Address, account.Nonce)
}

// accountTxsSortedByNonce returns every reference held for address, ordered
// by ascending nonce, materialized as a slice; callers needing a cursor can
// index into it themselves.
func (p *transactionPool) accountTxsSortedByNonce(address Address) []TransactionReference {
	bucket, ok := p.byAddress[address]
	if !ok {
		return nil
	}
	nonces := make([]Nonce, 0, len(bucket))
	for n := range bucket {
		nonces = append(nonces, n)
	}
	sort.Slice(nonces, func(i, j int) bool { return nonces[i] < nonces[j] })

	refs := make([]TransactionReference, len(nonces))
	for i, n := range nonces {
		refs[i] = p.byHash[bucket[n]].reference()
	}
	return refs
}
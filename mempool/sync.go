// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"sync"

	"github.com/holiman/uint256"
)

// SyncMempool wraps a Mempool with a single mutex, giving every public
// operation the exclusive-access guarantee the engine itself assumes but
// does not enforce. The engine is specified as single-writer and
// externally-serialized: it performs no I/O and never blocks, so a plain
// mutex -- rather than an actor mailbox or a mailbox-style channel -- is
// sufficient and keeps the common case allocation-free.
type SyncMempool struct {
	mu sync.Mutex
	m  *Mempool
}

// NewSync wraps a freshly constructed Mempool for concurrent use.
func NewSync(config Config, gasPriceThreshold *uint256.Int) *SyncMempool {
	return &SyncMempool{m: New(config, gasPriceThreshold)}
}

// NewSyncWithMetrics is NewSync, but lets the caller supply a *Metrics
// registered against a registry of its own choosing.
func NewSyncWithMetrics(config Config, gasPriceThreshold *uint256.Int, metrics *Metrics) *SyncMempool {
	return &SyncMempool{m: NewWithMetrics(config, gasPriceThreshold, metrics)}
}

func (s *SyncMempool) Iter() []TransactionReference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Iter()
}

func (s *SyncMempool) GetTxs(nTxs int) ([]AccountTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.GetTxs(nTxs)
}

func (s *SyncMempool) AddTx(args AddTransactionArgs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.AddTx(args)
}

func (s *SyncMempool) CommitBlock(args CommitBlockArgs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.CommitBlock(args)
}

func (s *SyncMempool) UpdateGasPriceThreshold(threshold *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.UpdateGasPriceThreshold(threshold)
}
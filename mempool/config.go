// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

// Config controls the mempool engine's replacement policy. The zero value is
// not valid; use DefaultConfig.
type Config struct {
	// EnableFeeEscalation gates whether AddTx will ever attempt the
	// replacement test at all. When false, any (address, nonce) collision is
	// rejected outright with ErrDuplicateNonce.
	EnableFeeEscalation bool

	// FeeEscalationPercentage is the minimum percentage by which both tip
	// and max L2 gas price must increase for a replacement to qualify.
	// Interpreted as an integer percent in [0, 100].
	FeeEscalationPercentage uint8
}

// DefaultConfig mirrors the upstream gateway's defaults: fee escalation on,
// requiring a 10% bump on both tip and gas price bid to replace a pending
// transaction.
func DefaultConfig() Config {
	return Config{
		EnableFeeEscalation:     true,
		FeeEscalationPercentage: 10,
	}
}
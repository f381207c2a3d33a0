// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Shared test fixtures: small, deterministic addresses and hashes so
// expectations read naturally ("addr(1)", "hash('H1')") instead of random
// 20/32-byte noise.

func addr(n byte) Address {
	var a Address
	a[len(a)-1] = n
	return a
}

func hash(label string) Hash {
	return common.BytesToHash([]byte(label))
}

func u256(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// newTx builds a minimal AccountTransaction for test use.
func newTx(address Address, nonce Nonce, txHash Hash, tip, gasPrice uint64) AccountTransaction {
	return AccountTransaction{
		ContractAddress: address,
		TxNonce:         nonce,
		TxHash:          txHash,
		TxTip:           u256(tip),
		MaxL2GasPrice:   u256(gasPrice),
	}
}
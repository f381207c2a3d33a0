// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

//go:generate gencodec -type jsonTransaction -field-override jsonTransactionMarshaling -out gen_transaction_json.go

// jsonTransaction is the wire shape AccountTransaction marshals to and from.
// The gateway and any CLI tooling speak this over JSON; the in-memory
// representation uses *uint256.Int and raw bytes, which don't round-trip
// through encoding/json on their own.
type jsonTransaction struct {
	ContractAddress Address `json:"contract_address"`
	Nonce           Nonce   `json:"nonce"`
	TxHash          Hash    `json:"tx_hash"`
	Tip             *hexutil.Big `json:"tip"`
	MaxL2GasPrice   *hexutil.Big `json:"max_l2_gas_price"`
	Payload         hexutil.Bytes `json:"payload"`
}

// jsonTransactionMarshaling gives gencodec the hex-friendly field types it
// can't infer from jsonTransaction alone. The checked-in
// gen_transaction_json.go does not apply this override: it encodes the
// nonce as a plain decimal JSON number, not a hex quantity.
type jsonTransactionMarshaling struct {
	Nonce hexutil.Uint64
}
package tx

import (
	"encoding/json"
	"math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/crypto/tmhash"
	cmn "github.com/tendermint/tendermint/libs/common"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/wire"
)

// MaxGasWanted bounds the declared gas limit so it always fits an int64.
const MaxGasWanted = uint64(math.MaxInt64)

// Tx is a decoded Cosmos transaction envelope.
// NOTE: Signatures[i] is made by the key of AuthInfo.SignerInfos[i].
type Tx struct {
	Body       *TxBody   `json:"body"`
	AuthInfo   *AuthInfo `json:"auth_info"`
	Signatures [][]byte  `json:"signatures"`
}

type TxBody struct {
	Messages      []types.Any `json:"messages"`
	Memo          string      `json:"memo"`
	TimeoutHeight uint64      `json:"timeout_height"`
}

type AuthInfo struct {
	SignerInfos []SignerInfo `json:"signer_infos"`
	Fee         *Fee         `json:"fee"`
}

// SignerInfo describes the key and sequence of one signer. Only
// secp256k1 keys are accepted.
type SignerInfo struct {
	PubKey   crypto.PubKey `json:"public_key"`
	Sequence uint64        `json:"sequence"`
}

// Fee is the amount paid for a transaction and the gas it may use.
// An empty Payer means the first signer pays.
type Fee struct {
	Amount   sdk.Coins `json:"amount"`
	GasLimit uint64    `json:"gas_limit"`
	Payer    string    `json:"payer"`
	Granter  string    `json:"granter"`
}

// Bytes returns the canonical JSON of the fee, used in sign bytes.
func (fee Fee) Bytes() []byte {
	// nil and empty amounts must sign the same
	if len(fee.Amount) == 0 {
		fee.Amount = sdk.Coins{}
	}
	bz, err := wire.Cdc.MarshalJSON(fee)
	if err != nil {
		panic(err)
	}
	return bz
}

func (tx Tx) fee() *Fee {
	if tx.AuthInfo == nil {
		return nil
	}
	return tx.AuthInfo.Fee
}

// GasLimit is the gas declared by the fee, or zero without one.
func (tx Tx) GasLimit() uint64 {
	if fee := tx.fee(); fee != nil {
		return fee.GasLimit
	}
	return 0
}

// ValidateBasic runs the structural checks that need no state.
func (tx Tx) ValidateBasic() error {
	if tx.Body == nil {
		return sdkerrors.ErrEmptyTxBody
	}
	if tx.AuthInfo == nil {
		return sdkerrors.ErrEmptyAuthInfo
	}
	fee := tx.AuthInfo.Fee
	if fee == nil {
		return sdkerrors.ErrEmptyFee
	}
	if fee.GasLimit > MaxGasWanted {
		return sdkerrors.ErrInvalidGasLimit.Wrapf("invalid gas supplied; %d > %d", fee.GasLimit, MaxGasWanted)
	}
	if len(fee.Amount) > 0 && !fee.Amount.IsValid() {
		return sdkerrors.ErrInsufficientFee.Wrapf("invalid fee provided: %s", fee.Amount)
	}

	sigs := tx.Signatures
	if len(sigs) == 0 {
		return sdkerrors.ErrNoSignatures
	}
	if len(sigs) != len(tx.AuthInfo.SignerInfos) {
		return sdkerrors.ErrUnauthorized.Wrapf("wrong number of signers; expected %d, got %d", len(tx.AuthInfo.SignerInfos), len(sigs))
	}
	for _, info := range tx.AuthInfo.SignerInfos {
		if info.PubKey == nil {
			return sdkerrors.ErrInvalidPubKey.Wrap("public key of signer info should not be nil")
		}
	}
	return nil
}

// Hash is the tendermint hash of the amino encoded transaction.
func (tx Tx) Hash() []byte {
	return tmhash.Sum(wire.Cdc.MustMarshalBinaryBare(tx))
}

// HashString is Hash in upper-case hex.
func (tx Tx) HashString() string {
	return cmn.HexBytes(tx.Hash()).String()
}

// StdSignDoc is replay-prevention structure.
// It includes the messages as signed JSON,
// as well as the ChainID (prevent cross chain replay)
// and the Sequence numbers for each signature (prevent
// inchain replay and enforce tx ordering per account).
type StdSignDoc struct {
	AccountNumber uint64            `json:"account_number"`
	ChainID       string            `json:"chain_id"`
	Fee           json.RawMessage   `json:"fee"`
	Memo          string            `json:"memo"`
	Msgs          []json.RawMessage `json:"msgs"`
	Sequence      uint64            `json:"sequence"`
	TimeoutHeight uint64            `json:"timeout_height"`
}

// StdSignBytes returns the bytes a signer with the given account number and
// sequence signs for tx.
func StdSignBytes(chainID string, accnum uint64, sequence uint64, tx Tx) []byte {
	var doc StdSignDoc
	doc.AccountNumber = accnum
	doc.ChainID = chainID
	doc.Sequence = sequence
	if fee := tx.fee(); fee != nil {
		doc.Fee = json.RawMessage(fee.Bytes())
	}
	if tx.Body != nil {
		doc.Memo = tx.Body.Memo
		doc.TimeoutHeight = tx.Body.TimeoutHeight
		for _, packed := range tx.Body.Messages {
			bz, err := wire.Cdc.MarshalJSON(packed)
			if err != nil {
				panic(err)
			}
			doc.Msgs = append(doc.Msgs, json.RawMessage(bz))
		}
	}

	bz, err := wire.Cdc.MarshalJSON(doc)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// DecodeJSON parses the JSON form of a transaction.
func DecodeJSON(bz []byte) (Tx, error) {
	var tx Tx
	if len(bz) == 0 {
		return tx, sdkerrors.ErrTxDecode.Wrap("tx bytes are empty")
	}
	if err := wire.Cdc.UnmarshalJSON(bz, &tx); err != nil {
		return tx, sdkerrors.ErrTxDecode.Wrap(err.Error())
	}
	return tx, nil
}

var decodeAny = wire.ComposeDecoders(wire.JSONDecoder, wire.BinaryDecoder)

// Decode accepts either the JSON or the length-prefixed amino form of a
// transaction.
func Decode(bz []byte) (Tx, error) {
	if len(bz) == 0 {
		return Tx{}, sdkerrors.ErrTxDecode.Wrap("tx bytes are empty")
	}
	var tx Tx
	if err := decodeAny(wire.Cdc, bz, &tx); err != nil {
		return Tx{}, sdkerrors.ErrTxDecode.Wrap(err.Error())
	}
	return tx, nil
}

// Bytes returns the length-prefixed amino encoding of tx.
func (tx Tx) Bytes() []byte {
	return wire.Cdc.MustMarshalBinaryLengthPrefixed(tx)
}

package app

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/tx"
)

// InvalidKind classifies why a transaction cannot be included.
type InvalidKind uint8

const (
	InvalidCall InvalidKind = iota
	InvalidStale
	InvalidFuture
	InvalidBadProof
	InvalidPayment
	InvalidExhaustsResources
	InvalidCustom
)

func (k InvalidKind) String() string {
	switch k {
	case InvalidCall:
		return "call"
	case InvalidStale:
		return "stale"
	case InvalidFuture:
		return "future"
	case InvalidBadProof:
		return "bad_proof"
	case InvalidPayment:
		return "payment"
	case InvalidExhaustsResources:
		return "exhausts_resources"
	case InvalidCustom:
		return "custom"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// InvalidTransaction is the reason handed to the transaction pool. Error is
// always the codespace and code of the underlying error.
type InvalidTransaction struct {
	Kind  InvalidKind
	Error sdkerrors.CosmosError
}

func (it InvalidTransaction) String() string {
	return fmt.Sprintf("%s(%s)", it.Kind, it.Error)
}

// ToInvalidTransaction classifies err. Sequence mismatches tell stale
// transactions from ones that may become valid later.
func ToInvalidTransaction(err error) InvalidTransaction {
	res := InvalidTransaction{Error: sdkerrors.ToCosmosError(err)}

	var mismatch tx.SequenceMismatchError
	switch {
	case errors.As(err, &mismatch):
		res.Kind = InvalidFuture
		if mismatch.Stale() {
			res.Kind = InvalidStale
		}
	case sdkerrors.IsOf(err, sdkerrors.ErrTxTimeoutHeight):
		res.Kind = InvalidStale
	case sdkerrors.IsOf(err, sdkerrors.ErrUnauthorized, sdkerrors.ErrInvalidPubKey, sdkerrors.ErrNoSignatures,
		sdkerrors.ErrUnknownAddress, sdkerrors.ErrWrongSequence, sdkerrors.ErrEmptySigners):
		res.Kind = InvalidBadProof
	case sdkerrors.IsOf(err, sdkerrors.ErrInsufficientFunds, sdkerrors.ErrInsufficientFee):
		res.Kind = InvalidPayment
	case sdkerrors.IsOf(err, sdkerrors.ErrOutOfGas, sdkerrors.ErrInvalidGasLimit, sdkerrors.ErrTooManySignatures,
		sdkerrors.ErrMemoTooLarge, sdkerrors.ErrTxTooLarge):
		res.Kind = InvalidExhaustsResources
	case sdkerrors.IsOf(err, sdkerrors.ErrTxDecode, sdkerrors.ErrUnknownRequest, sdkerrors.ErrUnpackAny,
		sdkerrors.ErrInvalidAddress, sdkerrors.ErrInvalidCoins, sdkerrors.ErrInvalidRequest,
		sdkerrors.ErrEmptyTxBody, sdkerrors.ErrEmptyAuthInfo, sdkerrors.ErrEmptyFee):
		res.Kind = InvalidCall
	default:
		res.Kind = InvalidCustom
	}
	return res
}

package tx

import (
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
)

var (
	_ AnteDecorator = ValidateBasicDecorator{}
	_ AnteDecorator = TimeoutHeightDecorator{}
	_ AnteDecorator = ValidateMemoDecorator{}
	_ AnteDecorator = ValidateSigCountDecorator{}
	_ AnteDecorator = KnownMsgDecorator{}
)

// ValidateBasicDecorator rejects malformed envelopes before any state is read.
type ValidateBasicDecorator struct{}

func NewValidateBasicDecorator() ValidateBasicDecorator {
	return ValidateBasicDecorator{}
}

func (ValidateBasicDecorator) Name() string { return StepValidateBasic }

func (ValidateBasicDecorator) AnteHandle(_ types.Context, tx Tx, _ bool) (ValidityOutcome, error) {
	return ValidityOutcome{}, tx.ValidateBasic()
}

// TimeoutHeightDecorator rejects a transaction once the block height is past
// its non-zero timeout height.
type TimeoutHeightDecorator struct{}

func NewTimeoutHeightDecorator() TimeoutHeightDecorator {
	return TimeoutHeightDecorator{}
}

func (TimeoutHeightDecorator) Name() string { return StepTimeoutHeight }

func (TimeoutHeightDecorator) AnteHandle(ctx types.Context, tx Tx, _ bool) (ValidityOutcome, error) {
	timeout := tx.Body.TimeoutHeight
	if timeout > 0 && ctx.BlockHeight() > timeout {
		return ValidityOutcome{}, sdkerrors.ErrTxTimeoutHeight.Wrapf(
			"block height: %d, timeout height: %d", ctx.BlockHeight(), timeout)
	}
	return ValidityOutcome{}, nil
}

type ValidateMemoDecorator struct {
	maxMemoCharacters uint64
}

func NewValidateMemoDecorator(maxMemoCharacters uint64) ValidateMemoDecorator {
	return ValidateMemoDecorator{maxMemoCharacters: maxMemoCharacters}
}

func (ValidateMemoDecorator) Name() string { return StepValidateMemo }

func (d ValidateMemoDecorator) AnteHandle(_ types.Context, tx Tx, _ bool) (ValidityOutcome, error) {
	memoLength := len(tx.Body.Memo)
	if uint64(memoLength) > d.maxMemoCharacters {
		return ValidityOutcome{}, sdkerrors.ErrMemoTooLarge.Wrapf(
			"maximum number of characters is %d but received %d characters",
			d.maxMemoCharacters, memoLength)
	}
	return ValidityOutcome{}, nil
}

// ValidateSigCountDecorator bounds the signature verification work of a
// single transaction.
type ValidateSigCountDecorator struct {
	txSigLimit uint64
}

func NewValidateSigCountDecorator(txSigLimit uint64) ValidateSigCountDecorator {
	return ValidateSigCountDecorator{txSigLimit: txSigLimit}
}

func (ValidateSigCountDecorator) Name() string { return StepValidateSigCount }

func (d ValidateSigCountDecorator) AnteHandle(_ types.Context, tx Tx, _ bool) (ValidityOutcome, error) {
	sigCount := len(tx.Signatures)
	if uint64(sigCount) > d.txSigLimit {
		return ValidityOutcome{}, sdkerrors.ErrTooManySignatures.Wrapf(
			"signatures: %d, limit: %d", sigCount, d.txSigLimit)
	}
	return ValidityOutcome{}, nil
}

// KnownMsgDecorator only admits messages whose type URL is allow-listed.
type KnownMsgDecorator struct {
	known map[string]struct{}
}

func NewKnownMsgDecorator(typeURLs []string) KnownMsgDecorator {
	known := make(map[string]struct{}, len(typeURLs))
	for _, url := range typeURLs {
		known[url] = struct{}{}
	}
	return KnownMsgDecorator{known: known}
}

func (KnownMsgDecorator) Name() string { return StepKnownMsg }

func (d KnownMsgDecorator) AnteHandle(_ types.Context, tx Tx, _ bool) (ValidityOutcome, error) {
	for _, msg := range tx.Body.Messages {
		if _, ok := d.known[msg.TypeURL]; !ok {
			return ValidityOutcome{}, sdkerrors.ErrUnknownRequest.Wrapf("unrecognized message type: %s", msg.TypeURL)
		}
	}
	return ValidityOutcome{}, nil
}

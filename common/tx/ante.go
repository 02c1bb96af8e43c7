package tx

import (
	"math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/types"
)

// Names of the ante steps, in the order NewAnteHandler runs them.
const (
	StepValidateBasic     = "validate_basic"
	StepTimeoutHeight     = "timeout_height"
	StepValidateMemo      = "validate_memo"
	StepValidateSigCount  = "validate_sig_count"
	StepKnownMsg          = "known_msg"
	StepSigVerification   = "sig_verification"
	StepDeductFee         = "deduct_fee"
	StepIncrementSequence = "increment_sequence"
)

// ValidityOutcome describes an admitted transaction to the transaction pool.
type ValidityOutcome struct {
	Priority uint64
	// Provides and Requires are the tags used to order transactions of the
	// same payer: payer||sequence and payer||sequence-1.
	Provides [][]byte
	Requires [][]byte
	Sequence uint64
	FeePayer string
	Fee      sdk.Coins
}

// Combine merges the outcome of a later step into v.
func (v ValidityOutcome) Combine(other ValidityOutcome) ValidityOutcome {
	if math.MaxUint64-v.Priority < other.Priority {
		v.Priority = math.MaxUint64
	} else {
		v.Priority += other.Priority
	}
	v.Provides = append(v.Provides, other.Provides...)
	v.Requires = append(v.Requires, other.Requires...)
	if other.Sequence != 0 {
		v.Sequence = other.Sequence
	}
	if other.FeePayer != "" {
		v.FeePayer = other.FeePayer
	}
	if len(other.Fee) > 0 {
		v.Fee = other.Fee
	}
	return v
}

// AnteDecorator is one admission check. With simulate set it must not
// persist fee or sequence changes while still charging the gas it would.
type AnteDecorator interface {
	Name() string
	AnteHandle(ctx types.Context, tx Tx, simulate bool) (ValidityOutcome, error)
}

// AnteHandler runs its decorators in order and stops at the first error.
type AnteHandler struct {
	decorators []AnteDecorator
}

func NewAnteHandler(decorators ...AnteDecorator) AnteHandler {
	return AnteHandler{decorators: decorators}
}

func (h AnteHandler) Decorators() []AnteDecorator {
	return h.decorators
}

// Handle returns the combined outcome, or an *AnteError naming the step
// that rejected tx.
func (h AnteHandler) Handle(ctx types.Context, tx Tx, simulate bool) (ValidityOutcome, error) {
	var outcome ValidityOutcome
	for _, d := range h.decorators {
		res, err := d.AnteHandle(ctx, tx, simulate)
		if err != nil {
			return ValidityOutcome{}, &AnteError{Step: d.Name(), Err: err}
		}
		outcome = outcome.Combine(res)
	}
	return outcome, nil
}

// AnteParams is the configuration the default ante steps need.
type AnteParams struct {
	MaxMemoCharacters      uint64
	TxSigLimit             uint64
	KnownMsgs              []string
	SigVerifyCostSecp256k1 uint64
	NativeDenom            string
	MinGasPrice            int64
	SigCacheSize           int
}

// AnteKeepers are the ledger collaborators of the default ante steps.
type AnteKeepers struct {
	Registry      *types.MsgRegistry
	AccountKeeper account.Keeper
	Mapper        account.AddressMapper
	Currency      account.Currency
}

// NewDefaultAnteHandler wires the admission checks in their fixed order:
// cheap structural and policy checks first, then signature verification,
// then the fee and finally the sequence.
func NewDefaultAnteHandler(params AnteParams, keepers AnteKeepers) AnteHandler {
	return NewAnteHandler(
		NewValidateBasicDecorator(),
		NewTimeoutHeightDecorator(),
		NewValidateMemoDecorator(params.MaxMemoCharacters),
		NewValidateSigCountDecorator(params.TxSigLimit),
		NewKnownMsgDecorator(params.KnownMsgs),
		NewSigVerificationDecorator(keepers.Registry, keepers.AccountKeeper, params.SigVerifyCostSecp256k1, params.SigCacheSize),
		NewDeductFeeDecorator(keepers.Registry, keepers.AccountKeeper, keepers.Mapper, keepers.Currency, params.NativeDenom, params.MinGasPrice),
		NewIncrementSequenceDecorator(keepers.Registry, keepers.AccountKeeper),
	)
}

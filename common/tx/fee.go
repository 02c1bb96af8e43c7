package tx

import (
	"encoding/binary"
	"math/bits"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
)

var (
	_ AnteDecorator = DeductFeeDecorator{}
	_ AnteDecorator = IncrementSequenceDecorator{}
)

// DeductFeeDecorator debits the declared fee from the fee payer before any
// message runs. The fee is only payable in the native denomination.
type DeductFeeDecorator struct {
	reg         *types.MsgRegistry
	ak          account.Keeper
	mapper      account.AddressMapper
	currency    account.Currency
	nativeDenom string
	minGasPrice int64
}

func NewDeductFeeDecorator(reg *types.MsgRegistry, ak account.Keeper, mapper account.AddressMapper,
	currency account.Currency, nativeDenom string, minGasPrice int64) DeductFeeDecorator {
	return DeductFeeDecorator{
		reg:         reg,
		ak:          ak,
		mapper:      mapper,
		currency:    currency,
		nativeDenom: nativeDenom,
		minGasPrice: minGasPrice,
	}
}

func (DeductFeeDecorator) Name() string { return StepDeductFee }

func (d DeductFeeDecorator) AnteHandle(ctx types.Context, tx Tx, simulate bool) (ValidityOutcome, error) {
	payer, err := FeePayer(d.reg, tx)
	if err != nil {
		return ValidityOutcome{}, err
	}
	addr, err := types.ParseAccAddress(payer)
	if err != nil {
		return ValidityOutcome{}, err
	}
	if d.ak.GetAccount(ctx, addr) == nil {
		return ValidityOutcome{}, sdkerrors.ErrUnknownAddress.Wrapf("fee payer address: %s does not exist", payer)
	}

	fee := tx.AuthInfo.Fee
	for _, coin := range fee.Amount {
		if coin.Denom != d.nativeDenom {
			return ValidityOutcome{}, sdkerrors.ErrInvalidCoins.Wrapf("fee must be paid in %s, got %s", d.nativeDenom, coin.Denom)
		}
	}
	amount := fee.Amount.AmountOf(d.nativeDenom)

	if required, ok := requiredFee(fee.GasLimit, d.minGasPrice); !ok || amount < required {
		return ValidityOutcome{}, sdkerrors.ErrInsufficientFee.Wrapf(
			"insufficient fees; got: %d%s required: %d x %d%s", amount, d.nativeDenom, fee.GasLimit, d.minGasPrice, d.nativeDenom)
	}

	who := d.mapper.ToNative(ctx, addr)
	if simulate {
		if balance := d.currency.Balance(ctx, who); balance < amount {
			return ValidityOutcome{}, sdkerrors.ErrInsufficientFunds.Wrapf(
				"insufficient fund. you got %d%s, but %d%s fee needed.", balance, d.nativeDenom, amount, d.nativeDenom)
		}
	} else if amount > 0 {
		if err := d.currency.Withdraw(ctx, who, amount, true); err != nil {
			return ValidityOutcome{}, sdkerrors.Wrap(err, "failed to deduct fee")
		}
	}

	var priority uint64
	if fee.GasLimit > 0 {
		priority = uint64(amount) / fee.GasLimit
	}
	return ValidityOutcome{
		Priority: priority,
		FeePayer: payer,
		Fee:      append(sdk.Coins{}, fee.Amount...),
	}, nil
}

// requiredFee is gasLimit * minGasPrice; ok is false on overflow.
func requiredFee(gasLimit uint64, minGasPrice int64) (int64, bool) {
	if minGasPrice <= 0 {
		return 0, true
	}
	hi, lo := bits.Mul64(gasLimit, uint64(minGasPrice))
	if hi != 0 || lo > uint64(1<<63-1) {
		return 0, false
	}
	return int64(lo), true
}

// IncrementSequenceDecorator advances the sequence of every signer so the
// transaction cannot be replayed.
type IncrementSequenceDecorator struct {
	reg *types.MsgRegistry
	ak  account.Keeper
}

func NewIncrementSequenceDecorator(reg *types.MsgRegistry, ak account.Keeper) IncrementSequenceDecorator {
	return IncrementSequenceDecorator{reg: reg, ak: ak}
}

func (IncrementSequenceDecorator) Name() string { return StepIncrementSequence }

func (d IncrementSequenceDecorator) AnteHandle(ctx types.Context, tx Tx, simulate bool) (ValidityOutcome, error) {
	signers, err := GetSigners(d.reg, tx)
	if err != nil {
		return ValidityOutcome{}, err
	}
	payer, err := FeePayer(d.reg, tx)
	if err != nil {
		return ValidityOutcome{}, err
	}
	sequence, err := Sequence(tx)
	if err != nil {
		return ValidityOutcome{}, err
	}

	if !simulate {
		for _, signer := range signers {
			addr, err := types.ParseAccAddress(signer)
			if err != nil {
				return ValidityOutcome{}, err
			}
			if err := d.ak.IncrementSequence(ctx, addr); err != nil {
				return ValidityOutcome{}, err
			}
		}
	}

	outcome := ValidityOutcome{
		Sequence: sequence,
		Provides: [][]byte{sequenceTag(payer, sequence)},
	}
	if sequence > 0 {
		outcome.Requires = [][]byte{sequenceTag(payer, sequence-1)}
	}
	return outcome, nil
}

func sequenceTag(payer string, sequence uint64) []byte {
	tag := make([]byte, len(payer)+8)
	copy(tag, payer)
	binary.BigEndian.PutUint64(tag[len(payer):], sequence)
	return tag
}

package tx

import (
	"fmt"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
)

// SequenceMismatchError reports a signer info whose sequence differs from
// the stored account sequence. It is an ErrWrongSequence.
type SequenceMismatchError struct {
	Address  string
	Expected uint64
	Got      uint64
}

func (e SequenceMismatchError) Error() string {
	return fmt.Sprintf("account sequence mismatch for %s, expected %d, got %d: %s",
		e.Address, e.Expected, e.Got, sdkerrors.ErrWrongSequence.Error())
}

func (e SequenceMismatchError) Unwrap() error {
	return sdkerrors.ErrWrongSequence
}

// Stale reports whether the transaction was built for an already used sequence.
func (e SequenceMismatchError) Stale() bool {
	return e.Got < e.Expected
}

// AnteError records which ante step rejected a transaction.
type AnteError struct {
	Step string
	Err  error
}

func (e *AnteError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *AnteError) Unwrap() error {
	return e.Err
}

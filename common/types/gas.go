package types

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
)

// Gas measures computational budget.
type Gas = uint64

// ErrorOutOfGas is returned when a consumption would take the meter past its
// limit.
type ErrorOutOfGas struct {
	Descriptor string
}

func (e ErrorOutOfGas) Error() string {
	return fmt.Sprintf("out of gas in location: %v", e.Descriptor)
}

func (e ErrorOutOfGas) Unwrap() error {
	return sdkerrors.ErrOutOfGas
}

// ErrorGasOverflow is returned when a consumption would overflow the counter.
type ErrorGasOverflow struct {
	Descriptor string
}

func (e ErrorGasOverflow) Error() string {
	return fmt.Sprintf("gas overflow in location: %v", e.Descriptor)
}

func (e ErrorGasOverflow) Unwrap() error {
	return sdkerrors.ErrOutOfGas
}

// GasMeter tracks consumed gas against a limit for a single transaction.
type GasMeter interface {
	GasConsumed() Gas
	Limit() Gas
	GasRemaining() Gas
	ConsumeGas(amount Gas, descriptor string) error
	IsOutOfGas() bool
	String() string
}

type basicGasMeter struct {
	limit    Gas
	consumed Gas
}

// NewGasMeter returns a meter with nothing consumed.
func NewGasMeter(limit Gas) GasMeter {
	return &basicGasMeter{limit: limit}
}

// NewInfiniteGasMeter returns a meter whose limit is the full uint64 range.
func NewInfiniteGasMeter() GasMeter {
	return NewGasMeter(math.MaxUint64)
}

func (g *basicGasMeter) GasConsumed() Gas {
	return g.consumed
}

func (g *basicGasMeter) Limit() Gas {
	return g.limit
}

func (g *basicGasMeter) GasRemaining() Gas {
	if g.consumed >= g.limit {
		return 0
	}
	return g.limit - g.consumed
}

// ConsumeGas adds amount to the consumed total. A rejected consumption leaves
// the meter untouched.
func (g *basicGasMeter) ConsumeGas(amount Gas, descriptor string) error {
	consumed, carry := bits.Add64(g.consumed, amount, 0)
	if carry != 0 {
		return ErrorGasOverflow{Descriptor: descriptor}
	}
	if consumed > g.limit {
		return ErrorOutOfGas{Descriptor: descriptor}
	}
	g.consumed = consumed
	return nil
}

func (g *basicGasMeter) IsOutOfGas() bool {
	return g.consumed >= g.limit
}

func (g *basicGasMeter) String() string {
	return fmt.Sprintf("BasicGasMeter:\n  limit: %d\n  consumed: %d", g.limit, g.consumed)
}

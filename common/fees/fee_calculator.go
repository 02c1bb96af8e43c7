package fees

import (
	"math/bits"

	"github.com/bnb-chain/cosmos-node/common/types"
)

// GasCalculator returns the gas charged for a message before its handler runs.
type GasCalculator func(msg types.Any) types.Gas

// Schedule maps message type URLs to gas calculators. Weights are converted
// to gas with a single gas-per-weight factor.
type Schedule struct {
	gasPerWeight uint64
	calculators  map[string]GasCalculator
}

func NewSchedule(gasPerWeight uint64) *Schedule {
	return &Schedule{
		gasPerWeight: gasPerWeight,
		calculators:  make(map[string]GasCalculator),
	}
}

func (s *Schedule) RegisterCalculator(typeURL string, calc GasCalculator) {
	s.calculators[typeURL] = calc
}

// WeightToGas converts weight to gas, saturating on overflow.
func (s *Schedule) WeightToGas(weight uint64) types.Gas {
	hi, lo := bits.Mul64(weight, s.gasPerWeight)
	if hi != 0 {
		return ^types.Gas(0)
	}
	return lo
}

// GasFor is the gas charged for msg. Unregistered types are free.
func (s *Schedule) GasFor(msg types.Any) types.Gas {
	calc := s.calculators[msg.TypeURL]
	if calc == nil {
		return 0
	}
	return calc(msg)
}

// FixedWeightCalculator charges the same weight for every message.
func (s *Schedule) FixedWeightCalculator(weight uint64) GasCalculator {
	gas := s.WeightToGas(weight)
	return func(types.Any) types.Gas {
		return gas
	}
}

// SizeWeightCalculator charges base plus perByte for each payload byte.
func (s *Schedule) SizeWeightCalculator(base, perByte uint64) GasCalculator {
	return func(msg types.Any) types.Gas {
		hi, size := bits.Mul64(uint64(len(msg.Value)), perByte)
		weight, carry := bits.Add64(base, size, 0)
		if hi != 0 || carry != 0 {
			return ^types.Gas(0)
		}
		return s.WeightToGas(weight)
	}
}

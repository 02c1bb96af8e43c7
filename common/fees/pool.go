package fees

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pool is the block level record of deducted fees. Fees are added per
// transaction hash and committed once the transaction is delivered.
type Pool struct {
	fees          map[string]sdk.Coins // TxHash -> fee
	committedFees sdk.Coins
}

func NewPool() *Pool {
	return &Pool{
		fees:          map[string]sdk.Coins{},
		committedFees: sdk.Coins{},
	}
}

func (p *Pool) AddFee(txHash string, fee sdk.Coins) {
	p.fees[txHash] = fee
}

func (p *Pool) CommitFee(txHash string) {
	if fee, ok := p.fees[txHash]; ok {
		p.committedFees = p.committedFees.Plus(fee)
	} else {
		panic(fmt.Errorf("commit fee for an invalid TxHash(%s)", txHash))
	}
}

func (p *Pool) BlockFees() sdk.Coins {
	return p.committedFees
}

func (p *Pool) Clear() {
	p.fees = map[string]sdk.Coins{}
	p.committedFees = sdk.Coins{}
}

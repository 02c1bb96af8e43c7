package app

import (
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/tx"
	"github.com/bnb-chain/cosmos-node/common/types"
)

// TxState is where a transaction ended up.
type TxState string

const (
	// TxStateRejected means the ante handler refused the transaction. Nothing
	// it did is kept.
	TxStateRejected TxState = "rejected"
	// TxStateAnteChecked means the ante handler accepted the transaction in
	// check mode.
	TxStateAnteChecked TxState = "ante_checked"
	// TxStateCommitted means every message executed.
	TxStateCommitted TxState = "committed"
	// TxStateRolledBack means a message failed. The fee and the sequence
	// increment are kept, message effects are not.
	TxStateRolledBack TxState = "rolled_back"
)

// Result is the outcome of running one transaction.
type Result struct {
	GasWanted uint64
	GasUsed   uint64
	Events    types.Events
	Codespace sdkerrors.Codespace
	Code      uint32
	Log       string
	State     TxState
	Outcome   tx.ValidityOutcome

	// Invalid is why the transaction pool must drop a rejected transaction.
	Invalid *InvalidTransaction
}

func (res Result) IsOK() bool {
	return res.Code == sdkerrors.SuccessABCICode
}

// CosmosError is the {codespace, code} identity of the result.
func (res Result) CosmosError() sdkerrors.CosmosError {
	return sdkerrors.CosmosError{Codespace: res.Codespace, Code: res.Code}
}

func errResult(err error, gasWanted, gasUsed uint64) Result {
	codespace, code, log := sdkerrors.ABCIInfo(err)
	invalid := ToInvalidTransaction(err)
	return Result{
		GasWanted: gasWanted,
		GasUsed:   gasUsed,
		Codespace: codespace,
		Code:      code,
		Log:       log,
		State:     TxStateRejected,
		Invalid:   &invalid,
	}
}

// rolledBack marks a failure that happened after the ante branch was
// written. The transaction stays in the block.
func rolledBack(res Result, events types.Events, outcome tx.ValidityOutcome) Result {
	res.State = TxStateRolledBack
	res.Events = events
	res.Outcome = outcome
	res.Invalid = nil
	return res
}

type AttributeView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type EventView struct {
	Type       string          `json:"type"`
	Attributes []AttributeView `json:"attributes"`
}

// ResultView is the JSON form of a Result served to clients.
type ResultView struct {
	State     TxState     `json:"state"`
	Codespace uint32      `json:"codespace"`
	Code      uint32      `json:"code"`
	Log       string      `json:"log,omitempty"`
	GasWanted uint64      `json:"gas_wanted"`
	GasUsed   uint64      `json:"gas_used"`
	Priority  uint64      `json:"priority"`
	Invalid   string      `json:"invalid,omitempty"`
	Events    []EventView `json:"events"`
}

func (res Result) View() ResultView {
	view := ResultView{
		State:     res.State,
		Codespace: uint32(res.Codespace),
		Code:      res.Code,
		Log:       res.Log,
		GasWanted: res.GasWanted,
		GasUsed:   res.GasUsed,
		Priority:  res.Outcome.Priority,
		Events:    make([]EventView, 0, len(res.Events)),
	}
	if res.Invalid != nil {
		view.Invalid = res.Invalid.String()
	}
	for _, ev := range res.Events {
		e := EventView{Type: ev.Type}
		for _, attr := range ev.Attributes {
			e.Attributes = append(e.Attributes, AttributeView{Key: string(attr.Key), Value: string(attr.Value)})
		}
		view.Events = append(view.Events, e)
	}
	return view
}

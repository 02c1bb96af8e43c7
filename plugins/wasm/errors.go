package wasm

import (
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
)

// Contract module errors. Codes follow wasmd so that clients decode them the
// same way.
var (
	ErrCreateFailed      = sdkerrors.Register(sdkerrors.WasmCodespace, 2, "create wasm contract failed")
	ErrAccountExists     = sdkerrors.Register(sdkerrors.WasmCodespace, 3, "contract account already exists")
	ErrInstantiateFailed = sdkerrors.Register(sdkerrors.WasmCodespace, 4, "instantiate wasm contract failed")
	ErrExecuteFailed     = sdkerrors.Register(sdkerrors.WasmCodespace, 5, "execute wasm contract failed")
	ErrGasLimit          = sdkerrors.Register(sdkerrors.WasmCodespace, 6, "insufficient gas")
	ErrNotFound          = sdkerrors.Register(sdkerrors.WasmCodespace, 8, "not found")
	ErrInvalidMsg        = sdkerrors.Register(sdkerrors.WasmCodespace, 10, "invalid CosmosMsg from the contract")
	ErrMigrationFailed   = sdkerrors.Register(sdkerrors.WasmCodespace, 11, "migrate wasm contract failed")
	ErrEmpty             = sdkerrors.Register(sdkerrors.WasmCodespace, 12, "empty")
	ErrLimit             = sdkerrors.Register(sdkerrors.WasmCodespace, 13, "exceeds limit")
	ErrInvalid           = sdkerrors.Register(sdkerrors.WasmCodespace, 14, "invalid")
	ErrInvalidEvent      = sdkerrors.Register(sdkerrors.WasmCodespace, 21, "invalid event")
	ErrNoSuchContract    = sdkerrors.Register(sdkerrors.WasmCodespace, 22, "no such contract")
)

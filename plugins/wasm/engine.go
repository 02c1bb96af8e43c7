package wasm

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/types"
)

// Env is the trusted chain information a contract runs against.
type Env struct {
	BlockHeight uint64 `json:"height"`
	ChainID     string `json:"chain_id"`
	Contract    string `json:"contract"`
}

// MessageInfo describes who called the contract and what they sent.
type MessageInfo struct {
	Sender string    `json:"sender"`
	Funds  sdk.Coins `json:"funds"`
}

// Response is what a contract call returns on success. Attributes go into
// the "wasm" event; every entry of Events becomes a "wasm-" prefixed event.
type Response struct {
	Data       []byte
	Attributes []types.Attribute
	Events     types.Events
}

// ContractEngine executes contract code. All gas values are engine gas and
// the reported usage is charged even when the call fails.
type ContractEngine interface {
	StoreCode(code []byte) (Checksum, error)
	Instantiate(checksum Checksum, env Env, info MessageInfo, msg []byte, kv store.KVStore, gasLimit uint64) (*Response, uint64, error)
	Execute(checksum Checksum, env Env, info MessageInfo, msg []byte, kv store.KVStore, gasLimit uint64) (*Response, uint64, error)
	Migrate(checksum Checksum, env Env, msg []byte, kv store.KVStore, gasLimit uint64) (*Response, uint64, error)
}

// UnavailableEngine rejects every call. It backs nodes started without a
// contract runtime.
type UnavailableEngine struct{}

var _ ContractEngine = UnavailableEngine{}

var errNoEngine = sdkerrors.ErrNotSupported.Wrap("no contract engine configured")

func (UnavailableEngine) StoreCode([]byte) (Checksum, error) {
	return nil, errNoEngine
}

func (UnavailableEngine) Instantiate(Checksum, Env, MessageInfo, []byte, store.KVStore, uint64) (*Response, uint64, error) {
	return nil, 0, errNoEngine
}

func (UnavailableEngine) Execute(Checksum, Env, MessageInfo, []byte, store.KVStore, uint64) (*Response, uint64, error) {
	return nil, 0, errNoEngine
}

func (UnavailableEngine) Migrate(Checksum, Env, []byte, store.KVStore, uint64) (*Response, uint64, error) {
	return nil, 0, errNoEngine
}

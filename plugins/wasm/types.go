package wasm

import (
	"fmt"

	cmn "github.com/tendermint/tendermint/libs/common"
)

// CodeInfo is stored per uploaded code id.
type CodeInfo struct {
	CodeHash []byte `json:"code_hash"`
	Creator  string `json:"creator"`
}

// ContractInfo is stored per contract address. An empty Admin means the
// contract can no longer be migrated.
type ContractInfo struct {
	CodeID  uint64 `json:"code_id"`
	Creator string `json:"creator"`
	Admin   string `json:"admin"`
	Label   string `json:"label"`
	Created uint64 `json:"created"`
}

func (c ContractInfo) String() string {
	return fmt.Sprintf("ContractInfo{code=%d creator=%s admin=%s label=%q}", c.CodeID, c.Creator, c.Admin, c.Label)
}

type ContractCodeHistoryOperationType string

const (
	ContractCodeHistoryOperationTypeInit    ContractCodeHistoryOperationType = "Init"
	ContractCodeHistoryOperationTypeMigrate ContractCodeHistoryOperationType = "Migrate"
)

// ContractCodeHistoryEntry records a code change of a contract.
type ContractCodeHistoryEntry struct {
	Operation ContractCodeHistoryOperationType `json:"operation"`
	CodeID    uint64                           `json:"code_id"`
	Updated   uint64                           `json:"updated"`
	Msg       []byte                           `json:"msg"`
}

// Checksum identifies code inside the contract engine.
type Checksum []byte

func (c Checksum) String() string {
	return cmn.HexBytes(c).String()
}

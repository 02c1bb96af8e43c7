package wasm

import (
	"github.com/bnb-chain/cosmos-node/common/types"
)

func InitPlugin(app types.ChainApp, keeper Keeper) {
	// add msg handlers
	handler := NewHandler(app.GetCodec(), keeper)
	for _, msg := range []types.Msg{
		MsgStoreCode{},
		MsgInstantiateContract{},
		MsgInstantiateContract2{},
		MsgExecuteContract{},
		MsgMigrateContract{},
		MsgUpdateAdmin{},
		MsgClearAdmin{},
	} {
		app.RegisterMsgHandler(msg, handler)
	}
}

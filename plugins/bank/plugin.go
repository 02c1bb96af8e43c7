package bank

import (
	"github.com/bnb-chain/cosmos-node/common/types"
)

func InitPlugin(app types.ChainApp, keeper Keeper) {
	// add msg handlers
	handler := NewHandler(app.GetCodec(), keeper)
	app.RegisterMsgHandler(MsgSend{}, handler)
}

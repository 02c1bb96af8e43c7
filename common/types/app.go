package types

import (
	"github.com/bnb-chain/cosmos-node/wire"
)

// ChainApp is what a plugin needs from the application to install its
// messages.
type ChainApp interface {
	GetCodec() *wire.Codec
	GetMsgRegistry() *MsgRegistry
	// RegisterMsgHandler registers the concrete type of msg and routes its
	// type URL to h.
	RegisterMsgHandler(msg Msg, h Handler)
}

package bank

import (
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/wire"
)

// Event types and attribute keys emitted for a send.
const (
	EventTypeTransfer     = "transfer"
	EventTypeCoinSpent    = "coin_spent"
	EventTypeCoinReceived = "coin_received"
	EventTypeMessage      = "message"

	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeySpender   = "spender"
	AttributeKeyReceiver  = "receiver"
	AttributeKeyAmount    = "amount"
	AttributeKeyModule    = "module"

	ModuleName = "bank"
)

// NewHandler returns the handler of bank messages.
func NewHandler(cdc *wire.Codec, k Keeper) types.Handler {
	return func(ctx types.Context, packed types.Any) error {
		switch packed.TypeURL {
		case MsgSendType:
			var msg MsgSend
			if err := cdc.UnmarshalBinaryBare(packed.Value, &msg); err != nil {
				return sdkerrors.ErrUnpackAny.Wrapf("cannot unpack %s: %s", packed.TypeURL, err.Error())
			}
			return handleMsgSend(ctx, k, msg)
		default:
			return sdkerrors.ErrUnknownRequest.Wrapf("unrecognized bank message type: %s", packed.TypeURL)
		}
	}
}

func handleMsgSend(ctx types.Context, k Keeper, msg MsgSend) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	from, _ := types.ParseAccAddress(msg.FromAddress)
	to, _ := types.ParseAccAddress(msg.ToAddress)

	// TODO: charge gas for the ledger reads and writes once the ledger exposes its costs
	if err := k.SendCoins(ctx, from, to, msg.Amount); err != nil {
		return err
	}

	amount := msg.Amount.String()
	ctx.EventManager().EmitEvents(types.Events{
		types.NewEvent(EventTypeCoinSpent,
			types.NewAttribute(AttributeKeySpender, msg.FromAddress),
			types.NewAttribute(AttributeKeyAmount, amount),
		),
		types.NewEvent(EventTypeCoinReceived,
			types.NewAttribute(AttributeKeyReceiver, msg.ToAddress),
			types.NewAttribute(AttributeKeyAmount, amount),
		),
		types.NewEvent(EventTypeTransfer,
			types.NewAttribute(AttributeKeyRecipient, msg.ToAddress),
			types.NewAttribute(AttributeKeySender, msg.FromAddress),
			types.NewAttribute(AttributeKeyAmount, amount),
		),
		types.NewEvent(EventTypeMessage,
			types.NewAttribute(AttributeKeySender, msg.FromAddress),
			types.NewAttribute(AttributeKeyModule, ModuleName),
		),
	})
	return nil
}

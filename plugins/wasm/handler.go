package wasm

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/wire"
)

// NewHandler returns the handler of contract messages.
func NewHandler(cdc *wire.Codec, k Keeper) types.Handler {
	return func(ctx types.Context, packed types.Any) error {
		var (
			msg types.Msg
			err error
		)
		switch packed.TypeURL {
		case MsgStoreCodeType:
			var m MsgStoreCode
			err = cdc.UnmarshalBinaryBare(packed.Value, &m)
			msg = m
		case MsgInstantiateContractType:
			var m MsgInstantiateContract
			err = cdc.UnmarshalBinaryBare(packed.Value, &m)
			msg = m
		case MsgInstantiateContract2Type:
			var m MsgInstantiateContract2
			err = cdc.UnmarshalBinaryBare(packed.Value, &m)
			msg = m
		case MsgExecuteContractType:
			var m MsgExecuteContract
			err = cdc.UnmarshalBinaryBare(packed.Value, &m)
			msg = m
		case MsgMigrateContractType:
			var m MsgMigrateContract
			err = cdc.UnmarshalBinaryBare(packed.Value, &m)
			msg = m
		case MsgUpdateAdminType:
			var m MsgUpdateAdmin
			err = cdc.UnmarshalBinaryBare(packed.Value, &m)
			msg = m
		case MsgClearAdminType:
			var m MsgClearAdmin
			err = cdc.UnmarshalBinaryBare(packed.Value, &m)
			msg = m
		default:
			return sdkerrors.ErrUnknownRequest.Wrapf("unrecognized wasm message type: %s", packed.TypeURL)
		}
		if err != nil {
			return sdkerrors.ErrUnpackAny.Wrapf("cannot unpack %s: %s", packed.TypeURL, err.Error())
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}
		return handle(ctx, k, msg)
	}
}

func handle(ctx types.Context, k Keeper, msg types.Msg) error {
	var err error
	switch msg := msg.(type) {
	case MsgStoreCode:
		_, _, err = k.Create(ctx, mustAddr(msg.Sender), msg.WASMByteCode)
	case MsgInstantiateContract:
		_, _, err = k.Instantiate(ctx, msg.CodeID, mustAddr(msg.Sender), optionalAddr(msg.Admin), msg.Msg, msg.Label, msg.Funds)
	case MsgInstantiateContract2:
		_, _, err = k.Instantiate2(ctx, msg.CodeID, mustAddr(msg.Sender), optionalAddr(msg.Admin), msg.Msg, msg.Label, msg.Funds, msg.Salt, msg.FixMsg)
	case MsgExecuteContract:
		_, err = k.Execute(ctx, mustAddr(msg.Contract), mustAddr(msg.Sender), msg.Msg, msg.Funds)
	case MsgMigrateContract:
		_, err = k.Migrate(ctx, mustAddr(msg.Contract), mustAddr(msg.Sender), msg.CodeID, msg.Msg)
	case MsgUpdateAdmin:
		err = k.UpdateContractAdmin(ctx, mustAddr(msg.Contract), mustAddr(msg.Sender), mustAddr(msg.NewAdmin))
	case MsgClearAdmin:
		err = k.UpdateContractAdmin(ctx, mustAddr(msg.Contract), mustAddr(msg.Sender), nil)
	}
	if err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(types.NewEvent(EventTypeMessage,
		types.NewAttribute(AttributeKeyModule, ModuleName),
		types.NewAttribute(AttributeKeySender, msg.GetSigners()[0]),
	))
	return nil
}

// mustAddr parses an address ValidateBasic already accepted.
func mustAddr(s string) sdk.AccAddress {
	addr, err := types.ParseAccAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func optionalAddr(s string) sdk.AccAddress {
	if s == "" {
		return nil
	}
	return mustAddr(s)
}

package wasm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/testutils"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/plugins/wasm"
	"github.com/bnb-chain/cosmos-node/wire"
)

func newRegistry() *types.MsgRegistry {
	reg := types.NewMsgRegistry(wire.Cdc)
	reg.RegisterMsg(wasm.MsgStoreCode{})
	reg.RegisterMsg(wasm.MsgInstantiateContract{})
	reg.RegisterMsg(wasm.MsgExecuteContract{})
	reg.RegisterMsg(wasm.MsgUpdateAdmin{})
	reg.RegisterMsg(wasm.MsgClearAdmin{})
	return reg
}

func TestHandlerDispatch(t *testing.T) {
	f := newFixture(t, 10_000_000)
	reg := newRegistry()
	handler := wasm.NewHandler(wire.Cdc, f.keeper)
	sender := types.MustBech32ifyAccAddress(f.creator)

	err := handler(f.ctx, reg.MustPack(wasm.MsgStoreCode{Sender: sender, WASMByteCode: []byte("code")}))
	require.NoError(t, err)
	require.NotNil(t, f.keeper.GetCodeInfo(f.ctx, 1))

	err = handler(f.ctx, reg.MustPack(wasm.MsgInstantiateContract{
		Sender: sender,
		Admin:  sender,
		CodeID: 1,
		Label:  "demo",
		Msg:    []byte(`{"count":0}`),
	}))
	require.NoError(t, err)

	var contract string
	for _, e := range f.ctx.EventManager().Events() {
		if e.Type == wasm.EventTypeInstantiate {
			contract = string(e.Attributes[0].Value)
		}
	}
	require.NotEmpty(t, contract)

	err = handler(f.ctx, reg.MustPack(wasm.MsgExecuteContract{Sender: sender, Contract: contract, Msg: []byte(`{"increment":{}}`)}))
	require.NoError(t, err)

	err = handler(f.ctx, reg.MustPack(wasm.MsgClearAdmin{Sender: sender, Contract: contract}))
	require.NoError(t, err)
	addr, err := types.ParseAccAddress(contract)
	require.NoError(t, err)
	require.Empty(t, f.keeper.GetContractInfo(f.ctx, addr).Admin)

	messages := 0
	for _, e := range f.ctx.EventManager().Events() {
		if e.Type == wasm.EventTypeMessage {
			messages++
			require.Equal(t, wasm.ModuleName, string(e.Attributes[0].Value))
			require.Equal(t, sender, string(e.Attributes[1].Value))
		}
	}
	require.Equal(t, 4, messages)
}

func TestHandlerRejects(t *testing.T) {
	f := newFixture(t, 10_000_000)
	reg := newRegistry()
	handler := wasm.NewHandler(wire.Cdc, f.keeper)
	sender := types.MustBech32ifyAccAddress(f.creator)

	err := handler(f.ctx, types.Any{TypeURL: wasm.MsgExecuteContractType, Value: []byte{0xff, 0xff, 0xff}})
	require.True(t, sdkerrors.IsOf(err, sdkerrors.ErrUnpackAny))

	err = handler(f.ctx, types.Any{TypeURL: "/cosmwasm.wasm.v1.MsgPinCodes"})
	require.True(t, sdkerrors.IsOf(err, sdkerrors.ErrUnknownRequest))

	err = handler(f.ctx, reg.MustPack(wasm.MsgStoreCode{Sender: sender}))
	require.True(t, sdkerrors.IsOf(err, wasm.ErrEmpty))

	_, other := testutils.PrivAndAddr()
	err = handler(f.ctx, reg.MustPack(wasm.MsgExecuteContract{
		Sender:   sender,
		Contract: types.MustBech32ifyAccAddress(other),
		Msg:      []byte(`{}`),
	}))
	require.True(t, sdkerrors.IsOf(err, wasm.ErrNoSuchContract))

	require.Empty(t, f.ctx.EventManager().Events())
}

func TestMsgValidateBasic(t *testing.T) {
	_, addr := testutils.PrivAndAddr()
	_, other := testutils.PrivAndAddr()
	sender := types.MustBech32ifyAccAddress(addr)
	contract := types.MustBech32ifyAccAddress(other)

	cases := []struct {
		name string
		msg  types.Msg
		err  *sdkerrors.Error
	}{
		{"store code", wasm.MsgStoreCode{Sender: sender, WASMByteCode: []byte{1}}, nil},
		{"store code bad sender", wasm.MsgStoreCode{Sender: "cosmos1xyz", WASMByteCode: []byte{1}}, sdkerrors.ErrInvalidAddress},
		{"store code too large", wasm.MsgStoreCode{Sender: sender, WASMByteCode: make([]byte, wasm.MaxWasmSize+1)}, wasm.ErrLimit},
		{"instantiate", wasm.MsgInstantiateContract{Sender: sender, CodeID: 1, Label: "l", Msg: []byte(`{}`)}, nil},
		{"instantiate no code", wasm.MsgInstantiateContract{Sender: sender, Label: "l", Msg: []byte(`{}`)}, wasm.ErrInvalid},
		{"instantiate no label", wasm.MsgInstantiateContract{Sender: sender, CodeID: 1, Msg: []byte(`{}`)}, wasm.ErrEmpty},
		{"instantiate bad msg", wasm.MsgInstantiateContract{Sender: sender, CodeID: 1, Label: "l", Msg: []byte(`[1]`)}, wasm.ErrInvalid},
		{"instantiate bad admin", wasm.MsgInstantiateContract{Sender: sender, Admin: "x", CodeID: 1, Label: "l", Msg: []byte(`{}`)}, sdkerrors.ErrInvalidAddress},
		{"instantiate2 no salt", wasm.MsgInstantiateContract2{Sender: sender, CodeID: 1, Label: "l", Msg: []byte(`{}`)}, wasm.ErrEmpty},
		{"instantiate2 long salt", wasm.MsgInstantiateContract2{Sender: sender, CodeID: 1, Label: "l", Msg: []byte(`{}`), Salt: make([]byte, wasm.MaxSaltSize+1)}, wasm.ErrLimit},
		{"execute", wasm.MsgExecuteContract{Sender: sender, Contract: contract, Msg: []byte(`{"a":1}`)}, nil},
		{"execute not json", wasm.MsgExecuteContract{Sender: sender, Contract: contract, Msg: []byte(`{a`)}, wasm.ErrInvalid},
		{"migrate", wasm.MsgMigrateContract{Sender: sender, Contract: contract, CodeID: 2, Msg: []byte(`{}`)}, nil},
		{"migrate no code", wasm.MsgMigrateContract{Sender: sender, Contract: contract, Msg: []byte(`{}`)}, wasm.ErrInvalid},
		{"update admin", wasm.MsgUpdateAdmin{Sender: sender, Contract: contract, NewAdmin: contract}, nil},
		{"update admin to self", wasm.MsgUpdateAdmin{Sender: sender, Contract: contract, NewAdmin: sender}, wasm.ErrInvalidMsg},
		{"clear admin", wasm.MsgClearAdmin{Sender: sender, Contract: contract}, nil},
		{"clear admin bad contract", wasm.MsgClearAdmin{Sender: sender}, sdkerrors.ErrInvalidAddress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.True(t, sdkerrors.IsOf(err, tc.err), "got %v", err)
		})
	}
}

package wasm_test

import (
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto/tmhash"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/testutils"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/plugins/bank"
	"github.com/bnb-chain/cosmos-node/plugins/wasm"
	"github.com/bnb-chain/cosmos-node/wire"
)

const nativeDenom = "acdt"

// mockEngine stores code in memory and records what each call received.
type mockEngine struct {
	codes    map[string][]byte
	gasUsed  uint64
	overrun  bool
	err      error
	res      *wasm.Response
	lastInfo wasm.MessageInfo
	lastGas  uint64
}

func newMockEngine() *mockEngine {
	return &mockEngine{codes: map[string][]byte{}, gasUsed: 500_000}
}

func (m *mockEngine) StoreCode(code []byte) (wasm.Checksum, error) {
	sum := tmhash.Sum(code)
	m.codes[string(sum)] = code
	return sum, nil
}

func (m *mockEngine) call(kv store.KVStore, key string, msg []byte, gasLimit uint64) (*wasm.Response, uint64, error) {
	m.lastGas = gasLimit
	if m.overrun {
		return nil, gasLimit + 1, nil
	}
	if m.err != nil {
		return nil, m.gasUsed, m.err
	}
	kv.Set([]byte(key), msg)
	return m.res, m.gasUsed, nil
}

func (m *mockEngine) Instantiate(checksum wasm.Checksum, env wasm.Env, info wasm.MessageInfo, msg []byte, kv store.KVStore, gasLimit uint64) (*wasm.Response, uint64, error) {
	m.lastInfo = info
	return m.call(kv, "init", msg, gasLimit)
}

func (m *mockEngine) Execute(checksum wasm.Checksum, env wasm.Env, info wasm.MessageInfo, msg []byte, kv store.KVStore, gasLimit uint64) (*wasm.Response, uint64, error) {
	m.lastInfo = info
	return m.call(kv, "execute", msg, gasLimit)
}

func (m *mockEngine) Migrate(checksum wasm.Checksum, env wasm.Env, msg []byte, kv store.KVStore, gasLimit uint64) (*wasm.Response, uint64, error) {
	return m.call(kv, "migrate", msg, gasLimit)
}

type fixture struct {
	ctx     types.Context
	engine  *mockEngine
	keeper  wasm.Keeper
	bank    bank.Keeper
	creator sdk.AccAddress
}

func newFixture(t *testing.T, gasLimit types.Gas) *fixture {
	ctx, _ := testutils.NewTestContext(gasLimit)
	mapper := account.NewAddressMapper()
	currency := account.NewNativeLedger(1)
	bk := bank.NewKeeper(account.NewKeeper(wire.Cdc), mapper, currency, account.NewAssetLedger(), nativeDenom,
		func(string) (account.AssetID, bool) { return 0, false })
	engine := newMockEngine()

	_, creator := testutils.PrivAndAddr()
	require.NoError(t, currency.Deposit(ctx, mapper.ToNative(ctx, creator), 1000))
	return &fixture{
		ctx:     ctx,
		engine:  engine,
		keeper:  wasm.NewKeeper(wire.Cdc, engine, account.NewKeeper(wire.Cdc), bk),
		bank:    bk,
		creator: creator,
	}
}

func (f *fixture) balance(t *testing.T, addr sdk.AccAddress) int64 {
	bal, err := f.bank.GetBalance(f.ctx, addr, nativeDenom)
	require.NoError(t, err)
	return bal
}

func (f *fixture) store(t *testing.T, code string) uint64 {
	codeID, _, err := f.keeper.Create(f.ctx, f.creator, []byte(code))
	require.NoError(t, err)
	return codeID
}

func (f *fixture) instantiate(t *testing.T, codeID uint64, admin sdk.AccAddress) sdk.AccAddress {
	addr, _, err := f.keeper.Instantiate(f.ctx, codeID, f.creator, admin, []byte(`{}`), "demo", nil)
	require.NoError(t, err)
	return addr
}

func TestStoreInstantiateExecute(t *testing.T) {
	f := newFixture(t, 10_000_000)
	code := []byte("wasm-code-v1")

	codeID, checksum, err := f.keeper.Create(f.ctx, f.creator, code)
	require.NoError(t, err)
	require.Equal(t, uint64(1), codeID)
	require.Equal(t, uint64(2), f.keeper.GetNextCodeID(f.ctx))
	require.Equal(t, []byte(checksum), f.keeper.GetCodeInfo(f.ctx, codeID).CodeHash)
	require.Equal(t, wasm.CompileCost*uint64(len(code)), f.ctx.GasMeter().GasConsumed())

	f.engine.res = &wasm.Response{
		Data:       []byte("ok"),
		Attributes: []types.Attribute{types.NewAttribute("action", "init")},
	}
	deposit := sdk.Coins{sdk.NewCoin(nativeDenom, 10)}
	before := f.ctx.GasMeter().GasConsumed()
	contract, data, err := f.keeper.Instantiate(f.ctx, codeID, f.creator, f.creator, []byte(`{"count":1}`), "counter", deposit)
	require.NoError(t, err)
	require.Equal(t, []byte("ok"), data)
	require.Len(t, contract, sdk.AddrLen)
	require.Equal(t, wasm.InstanceCost+f.engine.gasUsed/wasm.GasMultiplier, f.ctx.GasMeter().GasConsumed()-before)
	require.Equal(t, (10_000_000-before-wasm.InstanceCost)*wasm.GasMultiplier, f.engine.lastGas)

	require.Equal(t, int64(10), f.balance(t, contract))
	require.Equal(t, int64(990), f.balance(t, f.creator))
	require.Equal(t, deposit, f.engine.lastInfo.Funds)

	info := f.keeper.GetContractInfo(f.ctx, contract)
	require.NotNil(t, info)
	require.Equal(t, codeID, info.CodeID)
	require.Equal(t, "counter", info.Label)
	require.Equal(t, types.MustBech32ifyAccAddress(f.creator), info.Admin)
	require.Equal(t, uint64(1), info.Created)

	history := f.keeper.GetContractHistory(f.ctx, contract)
	require.Len(t, history, 1)
	require.Equal(t, wasm.ContractCodeHistoryOperationTypeInit, history[0].Operation)
	require.Equal(t, []byte(`{"count":1}`), history[0].Msg)

	contractStr := types.MustBech32ifyAccAddress(contract)
	events := f.ctx.EventManager().Events()
	require.Len(t, events, 3)
	require.Equal(t, wasm.EventTypeStoreCode, events[0].Type)
	require.Equal(t, wasm.EventTypeInstantiate, events[1].Type)
	require.Equal(t, contractStr, string(events[1].Attributes[0].Value))
	require.Equal(t, "1", string(events[1].Attributes[1].Value))
	require.Equal(t, wasm.WasmModuleEventType, events[2].Type)
	require.Equal(t, wasm.AttributeKeyContractAddr, string(events[2].Attributes[0].Key))
	require.Equal(t, "action", string(events[2].Attributes[1].Key))

	f.engine.res = &wasm.Response{Events: types.Events{types.NewEvent("counted", types.NewAttribute("count", "2"))}}
	_, err = f.keeper.Execute(f.ctx, contract, f.creator, []byte(`{"increment":{}}`), nil)
	require.NoError(t, err)
	events = f.ctx.EventManager().Events()
	require.Equal(t, wasm.EventTypeExecute, events[3].Type)
	require.Equal(t, "wasm-counted", events[4].Type)
	require.Equal(t, contractStr, string(events[4].Attributes[0].Value))
}

func TestInstanceAddressesAreUnique(t *testing.T) {
	f := newFixture(t, 10_000_000)
	codeID := f.store(t, "code")

	first := f.instantiate(t, codeID, nil)
	second := f.instantiate(t, codeID, nil)
	require.NotEqual(t, first, second)
	require.Equal(t, "", f.keeper.GetContractInfo(f.ctx, first).Admin)
}

func TestInstantiate2PredictableAddress(t *testing.T) {
	f := newFixture(t, 10_000_000)
	codeID, checksum, err := f.keeper.Create(f.ctx, f.creator, []byte("code"))
	require.NoError(t, err)

	salt := []byte("salt")
	addr, _, err := f.keeper.Instantiate2(f.ctx, codeID, f.creator, nil, []byte(`{}`), "a", nil, salt, false)
	require.NoError(t, err)
	require.Equal(t, wasm.BuildContractAddress2(checksum, f.creator, salt, nil), addr)

	_, _, err = f.keeper.Instantiate2(f.ctx, codeID, f.creator, nil, []byte(`{"other":1}`), "b", nil, salt, false)
	require.True(t, sdkerrors.IsOf(err, wasm.ErrAccountExists))

	fixed, _, err := f.keeper.Instantiate2(f.ctx, codeID, f.creator, nil, []byte(`{"other":1}`), "c", nil, salt, true)
	require.NoError(t, err)
	require.Equal(t, wasm.BuildContractAddress2(checksum, f.creator, salt, []byte(`{"other":1}`)), fixed)
	require.NotEqual(t, addr, fixed)
}

func TestMigrateAndAdmin(t *testing.T) {
	f := newFixture(t, 10_000_000)
	v1 := f.store(t, "code-v1")
	v2 := f.store(t, "code-v2")
	contract := f.instantiate(t, v1, f.creator)
	_, stranger := testutils.PrivAndAddr()
	_, newAdmin := testutils.PrivAndAddr()

	_, err := f.keeper.Migrate(f.ctx, contract, stranger, v2, []byte(`{}`))
	require.True(t, sdkerrors.IsOf(err, sdkerrors.ErrUnauthorized))

	_, err = f.keeper.Migrate(f.ctx, contract, f.creator, 99, []byte(`{}`))
	require.True(t, sdkerrors.IsOf(err, wasm.ErrNotFound))

	_, err = f.keeper.Migrate(f.ctx, contract, f.creator, v2, []byte(`{"v":2}`))
	require.NoError(t, err)
	require.Equal(t, v2, f.keeper.GetContractInfo(f.ctx, contract).CodeID)
	history := f.keeper.GetContractHistory(f.ctx, contract)
	require.Len(t, history, 2)
	require.Equal(t, wasm.ContractCodeHistoryOperationTypeMigrate, history[1].Operation)
	require.Equal(t, v2, history[1].CodeID)

	err = f.keeper.UpdateContractAdmin(f.ctx, contract, stranger, stranger)
	require.True(t, sdkerrors.IsOf(err, sdkerrors.ErrUnauthorized))
	require.NoError(t, f.keeper.UpdateContractAdmin(f.ctx, contract, f.creator, newAdmin))
	require.Equal(t, types.MustBech32ifyAccAddress(newAdmin), f.keeper.GetContractInfo(f.ctx, contract).Admin)

	events := f.ctx.EventManager().Events()
	last := events[len(events)-1]
	require.Equal(t, wasm.EventTypeUpdateContractAdmin, last.Type)
	require.Equal(t, types.MustBech32ifyAccAddress(newAdmin), string(last.Attributes[1].Value))

	require.NoError(t, f.keeper.UpdateContractAdmin(f.ctx, contract, newAdmin, nil))
	_, err = f.keeper.Migrate(f.ctx, contract, newAdmin, v1, []byte(`{}`))
	require.True(t, sdkerrors.IsOf(err, sdkerrors.ErrUnauthorized), "cleared admin freezes the contract")
}

func TestContractFailures(t *testing.T) {
	f := newFixture(t, 10_000_000)
	codeID := f.store(t, "code")
	contract := f.instantiate(t, codeID, nil)
	_, unknown := testutils.PrivAndAddr()

	_, err := f.keeper.Execute(f.ctx, unknown, f.creator, []byte(`{}`), nil)
	require.True(t, sdkerrors.IsOf(err, wasm.ErrNoSuchContract))
	codespace, code, _ := sdkerrors.ABCIInfo(err)
	require.Equal(t, sdkerrors.WasmCodespace, codespace)
	require.Equal(t, uint32(22), code)

	_, _, err = f.keeper.Instantiate(f.ctx, 42, f.creator, nil, []byte(`{}`), "x", nil)
	require.True(t, sdkerrors.IsOf(err, wasm.ErrNotFound))

	f.engine.err = errors.New("contract panicked")
	before := f.ctx.GasMeter().GasConsumed()
	_, err = f.keeper.Execute(f.ctx, contract, f.creator, []byte(`{}`), nil)
	require.True(t, sdkerrors.IsOf(err, wasm.ErrExecuteFailed))
	require.Equal(t, wasm.InstanceCost+f.engine.gasUsed/wasm.GasMultiplier, f.ctx.GasMeter().GasConsumed()-before,
		"gas used by a failed call is still charged")

	f.engine.err = nil
	f.engine.overrun = true
	_, err = f.keeper.Execute(f.ctx, contract, f.creator, []byte(`{}`), nil)
	require.True(t, sdkerrors.IsOf(err, wasm.ErrGasLimit))
	codespace, code, _ = sdkerrors.ABCIInfo(err)
	require.Equal(t, sdkerrors.WasmCodespace, codespace)
	require.Equal(t, uint32(6), code)

	f.engine.overrun = false
	f.engine.res = &wasm.Response{Attributes: []types.Attribute{types.NewAttribute("_contract_address", "spoof")}}
	_, err = f.keeper.Execute(f.ctx, contract, f.creator, []byte(`{}`), nil)
	require.True(t, sdkerrors.IsOf(err, wasm.ErrInvalidEvent))

	_, err = f.keeper.Execute(f.ctx, contract, f.creator, []byte(`{}`), sdk.Coins{sdk.NewCoin(nativeDenom, 5000)})
	require.True(t, sdkerrors.IsOf(err, sdkerrors.ErrInsufficientFunds))
}

func TestContractOutOfGas(t *testing.T) {
	f := newFixture(t, 1000)
	codeID := f.store(t, "code")

	_, _, err := f.keeper.Instantiate(f.ctx, codeID, f.creator, nil, []byte(`{}`), "x", nil)
	require.True(t, sdkerrors.IsOf(err, sdkerrors.ErrOutOfGas))
	require.Nil(t, f.engine.lastInfo.Funds)
}

func TestUnavailableEngine(t *testing.T) {
	f := newFixture(t, 10_000_000)
	k := wasm.NewKeeper(wire.Cdc, wasm.UnavailableEngine{}, account.NewKeeper(wire.Cdc), f.bank)

	_, _, err := k.Create(f.ctx, f.creator, []byte("code"))
	require.True(t, sdkerrors.IsOf(err, wasm.ErrCreateFailed))
}

package wasm

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/cosmos-node/common"
	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/wire"
)

const (
	// GasMultiplier is how many engine gas units make one ledger gas unit.
	GasMultiplier uint64 = 100
	// MaxGas is the most engine gas a single call may be given.
	MaxGas uint64 = 10_000_000_000
	// InstanceCost is charged before loading a contract.
	InstanceCost uint64 = 40_000
	// CompileCost is charged per byte of uploaded code.
	CompileCost uint64 = 2
)

var (
	CodeKeyPrefix                    = []byte{0x01}
	ContractKeyPrefix                = []byte{0x02}
	ContractStorePrefix              = []byte{0x03}
	SequenceKeyPrefix                = []byte{0x04}
	ContractCodeHistoryElementPrefix = []byte{0x05}
	ContractHistoryLengthPrefix      = []byte{0x06}

	KeyLastCodeID     = append(SequenceKeyPrefix, []byte("lastCodeId")...)
	KeyLastInstanceID = append(SequenceKeyPrefix, []byte("lastContractId")...)
)

// BankKeeper moves funds sent along with a contract call.
type BankKeeper interface {
	SendCoins(ctx types.Context, from, to sdk.AccAddress, amt sdk.Coins) error
}

type Keeper struct {
	cdc      *wire.Codec
	engine   ContractEngine
	accounts account.Keeper
	bank     BankKeeper
}

func NewKeeper(cdc *wire.Codec, engine ContractEngine, accounts account.Keeper, bank BankKeeper) Keeper {
	return Keeper{
		cdc:      cdc,
		engine:   engine,
		accounts: accounts,
		bank:     bank,
	}
}

func (k Keeper) store(ctx types.Context) store.KVStore {
	return ctx.KVStore(common.WasmStorePrefix)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx types.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+ModuleName)
}

// Create stores code in the engine and assigns it the next code id.
func (k Keeper) Create(ctx types.Context, creator sdk.AccAddress, wasmCode []byte) (uint64, Checksum, error) {
	if creator == nil {
		return 0, nil, ErrEmpty.Wrap("creator")
	}
	if err := ctx.GasMeter().ConsumeGas(CompileCost*uint64(len(wasmCode)), "Compiling wasm bytecode"); err != nil {
		return 0, nil, err
	}
	checksum, err := k.engine.StoreCode(wasmCode)
	if err != nil {
		return 0, nil, ErrCreateFailed.Wrap(err.Error())
	}

	codeID := k.autoIncrementID(ctx, KeyLastCodeID)
	k.storeCodeInfo(ctx, codeID, CodeInfo{CodeHash: checksum, Creator: types.MustBech32ifyAccAddress(creator)})
	k.Logger(ctx).Debug("storing new contract", "code_id", codeID, "checksum", checksum.String())

	ctx.EventManager().EmitEvent(types.NewEvent(EventTypeStoreCode,
		types.NewAttribute(AttributeKeyChecksum, checksum.String()),
		types.NewAttribute(AttributeKeyCodeID, uintString(codeID)),
	))
	return codeID, checksum, nil
}

// Instantiate creates a contract at an address derived from the code id and
// the global instance counter.
func (k Keeper) Instantiate(ctx types.Context, codeID uint64, creator, admin sdk.AccAddress,
	initMsg []byte, label string, deposit sdk.Coins) (sdk.AccAddress, []byte, error) {
	return k.instantiate(ctx, codeID, creator, admin, initMsg, label, deposit, func(types.Context, CodeInfo) sdk.AccAddress {
		return contractAddress(codeID, k.autoIncrementID(ctx, KeyLastInstanceID))
	})
}

// Instantiate2 creates a contract at the address BuildContractAddress2
// predicts for the same inputs.
func (k Keeper) Instantiate2(ctx types.Context, codeID uint64, creator, admin sdk.AccAddress,
	initMsg []byte, label string, deposit sdk.Coins, salt []byte, fixMsg bool) (sdk.AccAddress, []byte, error) {
	return k.instantiate(ctx, codeID, creator, admin, initMsg, label, deposit, func(_ types.Context, info CodeInfo) sdk.AccAddress {
		var msg []byte
		if fixMsg {
			msg = initMsg
		}
		return BuildContractAddress2(info.CodeHash, creator, salt, msg)
	})
}

func (k Keeper) instantiate(ctx types.Context, codeID uint64, creator, admin sdk.AccAddress, initMsg []byte,
	label string, deposit sdk.Coins, addressOf func(types.Context, CodeInfo) sdk.AccAddress) (sdk.AccAddress, []byte, error) {
	if creator == nil {
		return nil, nil, ErrEmpty.Wrap("creator")
	}
	if err := ctx.GasMeter().ConsumeGas(InstanceCost, "Loading CosmWasm module: instantiate"); err != nil {
		return nil, nil, err
	}

	codeInfo := k.GetCodeInfo(ctx, codeID)
	if codeInfo == nil {
		return nil, nil, ErrNotFound.Wrapf("code id %d", codeID)
	}

	contractAddr := addressOf(ctx, *codeInfo)
	if k.HasContractInfo(ctx, contractAddr) {
		return nil, nil, ErrAccountExists.Wrapf("contract %s", types.MustBech32ifyAccAddress(contractAddr))
	}
	if k.accounts.GetAccount(ctx, contractAddr) != nil {
		return nil, nil, ErrAccountExists.Wrapf("account %s", types.MustBech32ifyAccAddress(contractAddr))
	}
	k.accounts.EnsureAccount(ctx, contractAddr)

	if len(deposit) > 0 {
		if err := k.bank.SendCoins(ctx, creator, contractAddr, deposit); err != nil {
			return nil, nil, err
		}
	}

	env := k.env(ctx, contractAddr)
	info := MessageInfo{Sender: types.MustBech32ifyAccAddress(creator), Funds: deposit}
	gasLimit := gasForContract(ctx)
	res, gasUsed, execErr := k.engine.Instantiate(codeInfo.CodeHash, env, info, initMsg, k.contractStore(ctx, contractAddr), gasLimit)
	if err := consumeGas(ctx, gasUsed, gasLimit); err != nil {
		return nil, nil, err
	}
	if execErr != nil {
		return nil, nil, contractErr(ErrInstantiateFailed, execErr)
	}

	contractInfo := ContractInfo{
		CodeID:  codeID,
		Creator: info.Sender,
		Label:   label,
		Created: ctx.BlockHeight(),
	}
	if admin != nil {
		contractInfo.Admin = types.MustBech32ifyAccAddress(admin)
	}
	k.appendToContractHistory(ctx, contractAddr, ContractCodeHistoryEntry{
		Operation: ContractCodeHistoryOperationTypeInit,
		CodeID:    codeID,
		Updated:   ctx.BlockHeight(),
		Msg:       initMsg,
	})
	k.storeContractInfo(ctx, contractAddr, contractInfo)

	ctx.EventManager().EmitEvent(types.NewEvent(EventTypeInstantiate,
		types.NewAttribute(AttributeKeyContractAddr, env.Contract),
		types.NewAttribute(AttributeKeyCodeID, uintString(codeID)),
	))
	if err := emitContractEvents(ctx, env.Contract, res); err != nil {
		return nil, nil, err
	}
	return contractAddr, responseData(res), nil
}

// Execute calls a contract, sending it coins first.
func (k Keeper) Execute(ctx types.Context, contractAddr, caller sdk.AccAddress, msg []byte, coins sdk.Coins) ([]byte, error) {
	if err := ctx.GasMeter().ConsumeGas(InstanceCost, "Loading CosmWasm module: execute"); err != nil {
		return nil, err
	}
	contractInfo, codeInfo, err := k.contractInstance(ctx, contractAddr)
	if err != nil {
		return nil, err
	}

	if len(coins) > 0 {
		if err := k.bank.SendCoins(ctx, caller, contractAddr, coins); err != nil {
			return nil, err
		}
	}

	env := k.env(ctx, contractAddr)
	info := MessageInfo{Sender: types.MustBech32ifyAccAddress(caller), Funds: coins}
	gasLimit := gasForContract(ctx)
	res, gasUsed, execErr := k.engine.Execute(codeInfo.CodeHash, env, info, msg, k.contractStore(ctx, contractAddr), gasLimit)
	if err := consumeGas(ctx, gasUsed, gasLimit); err != nil {
		return nil, err
	}
	if execErr != nil {
		return nil, contractErr(ErrExecuteFailed, execErr)
	}

	ctx.EventManager().EmitEvent(types.NewEvent(EventTypeExecute,
		types.NewAttribute(AttributeKeyContractAddr, env.Contract),
	))
	if err := emitContractEvents(ctx, env.Contract, res); err != nil {
		return nil, err
	}
	k.Logger(ctx).Debug("executed contract", "contract", env.Contract, "code_id", contractInfo.CodeID)
	return responseData(res), nil
}

// Migrate moves a contract to newCodeID. Only the admin may migrate.
func (k Keeper) Migrate(ctx types.Context, contractAddr, caller sdk.AccAddress, newCodeID uint64, msg []byte) ([]byte, error) {
	if err := ctx.GasMeter().ConsumeGas(InstanceCost, "Loading CosmWasm module: migrate"); err != nil {
		return nil, err
	}

	contractInfo := k.GetContractInfo(ctx, contractAddr)
	if contractInfo == nil {
		return nil, ErrNoSuchContract.Wrap(types.MustBech32ifyAccAddress(contractAddr))
	}
	if !isAdmin(*contractInfo, caller) {
		return nil, sdkerrors.ErrUnauthorized.Wrap("can not migrate")
	}
	newCodeInfo := k.GetCodeInfo(ctx, newCodeID)
	if newCodeInfo == nil {
		return nil, ErrNotFound.Wrapf("code id %d", newCodeID)
	}

	env := k.env(ctx, contractAddr)
	gasLimit := gasForContract(ctx)
	res, gasUsed, execErr := k.engine.Migrate(newCodeInfo.CodeHash, env, msg, k.contractStore(ctx, contractAddr), gasLimit)
	if err := consumeGas(ctx, gasUsed, gasLimit); err != nil {
		return nil, err
	}
	if execErr != nil {
		return nil, contractErr(ErrMigrationFailed, execErr)
	}

	contractInfo.CodeID = newCodeID
	k.appendToContractHistory(ctx, contractAddr, ContractCodeHistoryEntry{
		Operation: ContractCodeHistoryOperationTypeMigrate,
		CodeID:    newCodeID,
		Updated:   ctx.BlockHeight(),
		Msg:       msg,
	})
	k.storeContractInfo(ctx, contractAddr, *contractInfo)

	ctx.EventManager().EmitEvent(types.NewEvent(EventTypeMigrate,
		types.NewAttribute(AttributeKeyCodeID, uintString(newCodeID)),
		types.NewAttribute(AttributeKeyContractAddr, env.Contract),
	))
	if err := emitContractEvents(ctx, env.Contract, res); err != nil {
		return nil, err
	}
	return responseData(res), nil
}

// UpdateContractAdmin sets a new admin, or clears it when newAdmin is nil.
func (k Keeper) UpdateContractAdmin(ctx types.Context, contractAddr, caller, newAdmin sdk.AccAddress) error {
	contractInfo := k.GetContractInfo(ctx, contractAddr)
	if contractInfo == nil {
		return ErrNoSuchContract.Wrap(types.MustBech32ifyAccAddress(contractAddr))
	}
	if !isAdmin(*contractInfo, caller) {
		return sdkerrors.ErrUnauthorized.Wrap("can not modify contract")
	}

	contractInfo.Admin = ""
	if newAdmin != nil {
		contractInfo.Admin = types.MustBech32ifyAccAddress(newAdmin)
	}
	k.storeContractInfo(ctx, contractAddr, *contractInfo)

	ctx.EventManager().EmitEvent(types.NewEvent(EventTypeUpdateContractAdmin,
		types.NewAttribute(AttributeKeyContractAddr, types.MustBech32ifyAccAddress(contractAddr)),
		types.NewAttribute(AttributeKeyNewAdmin, contractInfo.Admin),
	))
	return nil
}

func isAdmin(info ContractInfo, caller sdk.AccAddress) bool {
	return info.Admin != "" && caller != nil && info.Admin == types.MustBech32ifyAccAddress(caller)
}

func (k Keeper) contractInstance(ctx types.Context, contractAddr sdk.AccAddress) (ContractInfo, CodeInfo, error) {
	contractInfo := k.GetContractInfo(ctx, contractAddr)
	if contractInfo == nil {
		return ContractInfo{}, CodeInfo{}, ErrNoSuchContract.Wrap(types.MustBech32ifyAccAddress(contractAddr))
	}
	codeInfo := k.GetCodeInfo(ctx, contractInfo.CodeID)
	if codeInfo == nil {
		return ContractInfo{}, CodeInfo{}, ErrNotFound.Wrapf("code id %d", contractInfo.CodeID)
	}
	return *contractInfo, *codeInfo, nil
}

func (k Keeper) env(ctx types.Context, contractAddr sdk.AccAddress) Env {
	return Env{
		BlockHeight: ctx.BlockHeight(),
		ChainID:     ctx.ChainID(),
		Contract:    types.MustBech32ifyAccAddress(contractAddr),
	}
}

func (k Keeper) contractStore(ctx types.Context, contractAddr sdk.AccAddress) store.KVStore {
	return store.NewPrefixStore(k.store(ctx), append(append([]byte{}, ContractStorePrefix...), contractAddr...))
}

func (k Keeper) GetCodeInfo(ctx types.Context, codeID uint64) *CodeInfo {
	bz := k.store(ctx).Get(codeKey(codeID))
	if bz == nil {
		return nil
	}
	info := new(CodeInfo)
	k.cdc.MustUnmarshalBinaryBare(bz, info)
	return info
}

func (k Keeper) storeCodeInfo(ctx types.Context, codeID uint64, info CodeInfo) {
	k.store(ctx).Set(codeKey(codeID), k.cdc.MustMarshalBinaryBare(info))
}

func (k Keeper) GetContractInfo(ctx types.Context, contractAddr sdk.AccAddress) *ContractInfo {
	bz := k.store(ctx).Get(contractKey(contractAddr))
	if bz == nil {
		return nil
	}
	info := new(ContractInfo)
	k.cdc.MustUnmarshalBinaryBare(bz, info)
	return info
}

func (k Keeper) HasContractInfo(ctx types.Context, contractAddr sdk.AccAddress) bool {
	return k.store(ctx).Has(contractKey(contractAddr))
}

func (k Keeper) storeContractInfo(ctx types.Context, contractAddr sdk.AccAddress, info ContractInfo) {
	k.store(ctx).Set(contractKey(contractAddr), k.cdc.MustMarshalBinaryBare(info))
}

// GetContractHistory returns the code changes of a contract, oldest first.
func (k Keeper) GetContractHistory(ctx types.Context, contractAddr sdk.AccAddress) []ContractCodeHistoryEntry {
	kv := k.store(ctx)
	n := k.historyLength(ctx, contractAddr)
	res := make([]ContractCodeHistoryEntry, 0, n)
	for pos := uint64(0); pos < n; pos++ {
		var entry ContractCodeHistoryEntry
		k.cdc.MustUnmarshalBinaryBare(kv.Get(historyKey(contractAddr, pos)), &entry)
		res = append(res, entry)
	}
	return res
}

func (k Keeper) appendToContractHistory(ctx types.Context, contractAddr sdk.AccAddress, entry ContractCodeHistoryEntry) {
	kv := k.store(ctx)
	pos := k.historyLength(ctx, contractAddr)
	kv.Set(historyKey(contractAddr, pos), k.cdc.MustMarshalBinaryBare(entry))
	kv.Set(historyLengthKey(contractAddr), uint64Bytes(pos+1))
}

func (k Keeper) historyLength(ctx types.Context, contractAddr sdk.AccAddress) uint64 {
	bz := k.store(ctx).Get(historyLengthKey(contractAddr))
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// GetNextCodeID returns the id the next uploaded code will get.
func (k Keeper) GetNextCodeID(ctx types.Context) uint64 {
	bz := k.store(ctx).Get(KeyLastCodeID)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) autoIncrementID(ctx types.Context, lastIDKey []byte) uint64 {
	kv := k.store(ctx)
	id := uint64(1)
	if bz := kv.Get(lastIDKey); bz != nil {
		id = binary.BigEndian.Uint64(bz)
	}
	kv.Set(lastIDKey, uint64Bytes(id+1))
	return id
}

// gasForContract converts the remaining ledger gas into engine gas.
func gasForContract(ctx types.Context) uint64 {
	remaining := ctx.GasMeter().GasRemaining()
	if remaining > MaxGas/GasMultiplier {
		return MaxGas
	}
	return remaining * GasMultiplier
}

// consumeGas charges the engine gas a call reported. Reporting more than the
// call was given is a gas limit error.
func consumeGas(ctx types.Context, gasUsed, gasLimit uint64) error {
	if gasUsed > gasLimit {
		return ErrGasLimit.Wrapf("contract used %d of %d", gasUsed, gasLimit)
	}
	return ctx.GasMeter().ConsumeGas(gasUsed/GasMultiplier, "wasm contract")
}

// contractErr wraps an engine failure into kind unless the engine already
// reported a gas limit error.
func contractErr(kind *sdkerrors.Error, err error) error {
	if sdkerrors.IsOf(err, ErrGasLimit) {
		return err
	}
	return kind.Wrap(err.Error())
}

// contractAddress derives a classic contract address from codeID and instanceID.
func contractAddress(codeID, instanceID uint64) sdk.AccAddress {
	// NOTE: addresses repeat once either id overflows 32 bits
	contractID := codeID<<32 + instanceID
	addr := make([]byte, 20)
	addr[0] = 'C'
	binary.PutUvarint(addr[1:], contractID)
	return sdk.AccAddress(crypto.AddressHash(addr))
}

// BuildContractAddress2 derives a predictable contract address. Every input
// is length prefixed so that no two input sets hash the same preimage.
func BuildContractAddress2(checksum []byte, creator sdk.AccAddress, salt, initMsg []byte) sdk.AccAddress {
	preimage := []byte(ModuleName)
	preimage = append(preimage, 0)
	for _, part := range [][]byte{checksum, creator, salt, initMsg} {
		preimage = append(preimage, uint64Bytes(uint64(len(part)))...)
		preimage = append(preimage, part...)
	}
	return sdk.AccAddress(crypto.AddressHash(preimage))
}

func codeKey(codeID uint64) []byte {
	return append(append([]byte{}, CodeKeyPrefix...), uint64Bytes(codeID)...)
}

func contractKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, ContractKeyPrefix...), addr...)
}

func historyKey(addr sdk.AccAddress, pos uint64) []byte {
	key := append(append([]byte{}, ContractCodeHistoryElementPrefix...), addr...)
	return append(key, uint64Bytes(pos)...)
}

func historyLengthKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, ContractHistoryLengthPrefix...), addr...)
}

func uint64Bytes(v uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, v)
	return bz
}

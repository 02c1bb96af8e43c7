package app

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/cosmos-node/app/config"
	"github.com/bnb-chain/cosmos-node/app/router"
	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/fees"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/tx"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/plugins/bank"
	"github.com/bnb-chain/cosmos-node/plugins/wasm"
	"github.com/bnb-chain/cosmos-node/wire"
)

const (
	EventTypeTx        = "tx"
	AttributeKeyFee    = "fee"
	AttributeKeyPayer  = "fee_payer"
	AttributeKeyAccSeq = "acc_seq"
)

var _ types.ChainApp = (*CosmosApp)(nil)

// CosmosApp admits and executes Cosmos transactions against the ledger.
//
// Each transaction runs in two branches of the block state. The ante branch
// holds the fee deduction and the sequence increment and is written as soon
// as the ante handler accepts the transaction. The message branch is written
// only if every message succeeds, so a failed message keeps the fee paid.
type CosmosApp struct {
	mtx sync.Mutex

	Logger  log.Logger
	Codec   *wire.Codec
	config  *config.CosmosConfig
	metrics *Metrics

	store        *store.IavlStore
	checkState   *store.CacheStore
	deliverState *store.CacheStore
	header       types.Header

	registry    *types.MsgRegistry
	router      router.Router
	anteHandler tx.AnteHandler
	schedule    *fees.Schedule
	feePool     *fees.Pool

	// keepers
	AccountKeeper account.Keeper
	Mapper        account.AddressMapper
	Currency      account.NativeLedger
	Assets        account.AssetLedger
	FeeKeeper     fees.CollectionKeeper
	BankKeeper    bank.Keeper
	WasmKeeper    wasm.Keeper
}

// NewCosmosApp loads the ledger from db and wires the ante handler, the
// router and the message plugins.
func NewCosmosApp(logger log.Logger, db dbm.DB, cfg *config.CosmosConfig, engine wasm.ContractEngine, metrics *Metrics) (*CosmosApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st, err := store.LoadIavlStore(db)
	if err != nil {
		return nil, err
	}
	types.SetBech32PrefixAccAddr(cfg.Bech32Prefix)
	if metrics == nil {
		metrics = NopMetrics()
	}

	app := &CosmosApp{
		Logger:   logger.With("module", "cosmos"),
		Codec:    wire.Cdc,
		config:   cfg,
		metrics:  metrics,
		store:    st,
		registry: types.NewMsgRegistry(wire.Cdc),
		router:   router.NewRouter(),
		schedule: fees.NewSchedule(cfg.Gas.GasPerWeight),
		feePool:  fees.NewPool(),
	}
	app.checkState = st.CacheWrap()

	app.AccountKeeper = account.NewKeeper(app.Codec)
	app.Mapper = account.NewAddressMapper()
	app.Currency = account.NewNativeLedger(cfg.ExistentialDeposit)
	app.Assets = account.NewAssetLedger()
	app.FeeKeeper = fees.NewCollectionKeeper(app.Codec)
	app.BankKeeper = bank.NewKeeper(app.AccountKeeper, app.Mapper, app.Currency, app.Assets, cfg.NativeDenom, cfg.AssetIDOf)
	app.WasmKeeper = wasm.NewKeeper(app.Codec, engine, app.AccountKeeper, app.BankKeeper)

	bank.InitPlugin(app, app.BankKeeper)
	wasm.InitPlugin(app, app.WasmKeeper)

	for _, w := range cfg.Gas.MsgWeights {
		calc := app.schedule.FixedWeightCalculator(w.Weight)
		if w.PerByte > 0 {
			calc = app.schedule.SizeWeightCalculator(w.Weight, w.PerByte)
		}
		app.schedule.RegisterCalculator(w.TypeURL, calc)
	}

	app.anteHandler = tx.NewDefaultAnteHandler(cfg.AnteParams(), tx.AnteKeepers{
		Registry:      app.registry,
		AccountKeeper: app.AccountKeeper,
		Mapper:        app.Mapper,
		Currency:      app.Currency,
	})
	return app, nil
}

func (app *CosmosApp) GetCodec() *wire.Codec {
	return app.Codec
}

func (app *CosmosApp) GetMsgRegistry() *types.MsgRegistry {
	return app.registry
}

// RegisterMsgHandler makes msg decodable and routes its type URL to h.
func (app *CosmosApp) RegisterMsgHandler(msg types.Msg, h types.Handler) {
	app.registry.RegisterMsg(msg)
	app.router.AddRoute(msg.Type(), h)
}

func (app *CosmosApp) Router() router.Router {
	return app.router
}

func (app *CosmosApp) LastBlockHeight() uint64 {
	return uint64(app.store.LastCommitID().Version)
}

// NewQueryContext returns a read-only view of the last committed state.
// Writes made through it are discarded.
func (app *CosmosApp) NewQueryContext() types.Context {
	header := types.Header{ChainID: app.config.ChainID, Height: app.LastBlockHeight()}
	return types.NewContext(app.store.CacheWrap(), header, 0, app.Logger).
		WithGasMeter(types.NewInfiniteGasMeter())
}

// InitChain creates the configured assets and funds the genesis accounts.
func (app *CosmosApp) InitChain(genesis GenesisState) error {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	cache := app.store.CacheWrap()
	ctx := types.NewContext(cache, types.Header{ChainID: app.config.ChainID}, 0, app.Logger).
		WithGasMeter(types.NewInfiniteGasMeter())
	if err := app.initGenesis(ctx, genesis); err != nil {
		return err
	}
	cache.Write()
	app.checkState = app.store.CacheWrap()
	return nil
}

// BeginBlock opens the block state transactions are delivered into.
func (app *CosmosApp) BeginBlock(height uint64) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	app.header = types.Header{ChainID: app.config.ChainID, Height: height}
	app.deliverState = app.store.CacheWrap()
}

// Commit persists the block state and resets the check state on top of it.
func (app *CosmosApp) Commit() (store.CommitID, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if app.deliverState != nil {
		app.deliverState.Write()
		app.deliverState = nil
	}
	cid, err := app.store.Commit()
	if err != nil {
		return store.CommitID{}, err
	}
	app.Logger.Debug("committed block", "height", cid.Version, "hash", fmt.Sprintf("%X", cid.Hash),
		"fees", app.feePool.BlockFees().String())
	app.feePool.Clear()
	app.checkState = app.store.CacheWrap()
	return cid, nil
}

// CheckTx runs the ante handler against the check state.
func (app *CosmosApp) CheckTx(t tx.Tx) Result {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	header := types.Header{ChainID: app.config.ChainID, Height: app.LastBlockHeight() + 1}
	ctx := types.NewContext(app.checkState, header, t.GasLimit(), app.Logger)
	return app.runTx(runTxModeCheck, ctx, t)
}

// DeliverTx admits and executes t in the current block.
func (app *CosmosApp) DeliverTx(t tx.Tx) Result {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if app.deliverState == nil {
		return errResult(sdkerrors.ErrLogic.Wrap("DeliverTx called outside of a block"), t.GasLimit(), 0)
	}
	ctx := types.NewContext(app.deliverState, app.header, t.GasLimit(), app.Logger)
	return app.runTx(runTxModeDeliver, ctx, t)
}

// Simulate runs t with the given gas limit without changing any state. A
// zero gasLimit uses the configured simulation limit.
func (app *CosmosApp) Simulate(t tx.Tx, gasLimit uint64) Result {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if gasLimit == 0 {
		gasLimit = app.config.Gas.SimulateGasLimit
	}
	header := types.Header{ChainID: app.config.ChainID, Height: app.LastBlockHeight() + 1}
	ctx := types.NewContext(app.checkState.CacheWrap(), header, gasLimit, app.Logger)
	return app.runTx(runTxModeSimulate, ctx, t)
}

type runTxMode uint8

const (
	runTxModeCheck runTxMode = iota
	runTxModeSimulate
	runTxModeDeliver
)

// runTx drives one transaction through the ante handler and, outside of
// check mode, its messages. ctx's store is the state the transaction reads;
// it is written only in check and deliver mode.
func (app *CosmosApp) runTx(mode runTxMode, ctx types.Context, t tx.Tx) (result Result) {
	parent := ctx.Store().(store.CacheWrapper)
	gasWanted := t.GasLimit()

	// set once the ante branch is written; fee and sequence are kept from
	// then on
	var anteWritten bool
	var outcome tx.ValidityOutcome

	defer func() {
		if r := recover(); r != nil {
			app.Logger.Error(fmt.Sprintf("recovered: %v\nstack:\n%v", r, string(debug.Stack())))
			result = errResult(sdkerrors.ErrInternal.Wrapf("panic: %v", r), gasWanted, ctx.GasMeter().GasConsumed())
			if anteWritten {
				result = rolledBack(result, ctx.EventManager().Events(), outcome)
			}
		}
		app.metrics.TxGasUsed.Observe(float64(result.GasUsed))
	}()

	anteCache := parent.CacheWrap()
	anteCtx := ctx.WithStore(anteCache)
	outcome, err := app.anteHandler.Handle(anteCtx, t, mode == runTxModeSimulate)
	if err != nil {
		step := ""
		var anteErr *tx.AnteError
		if errors.As(err, &anteErr) {
			step = anteErr.Step
		}
		app.metrics.AnteRejected.With("step", step).Add(1)
		app.Logger.Debug("tx rejected", "step", step, "err", err.Error())
		return errResult(err, gasWanted, ctx.GasMeter().GasConsumed())
	}

	if mode == runTxModeDeliver {
		hash := t.HashString()
		app.feePool.AddFee(hash, outcome.Fee)
		app.feePool.CommitFee(hash)
		app.FeeKeeper.AddCollectedFees(anteCtx, outcome.Fee)
	}
	anteCache.Write()
	anteWritten = true

	ctx.EventManager().EmitEvent(types.NewEvent(EventTypeTx,
		types.NewAttribute(AttributeKeyFee, outcome.Fee.String()),
		types.NewAttribute(AttributeKeyPayer, outcome.FeePayer),
		types.NewAttribute(AttributeKeyAccSeq, outcome.FeePayer+"/"+strconv.FormatUint(outcome.Sequence, 10)),
	))

	if mode == runTxModeCheck {
		return Result{
			GasWanted: gasWanted,
			GasUsed:   ctx.GasMeter().GasConsumed(),
			Events:    ctx.EventManager().Events(),
			State:     TxStateAnteChecked,
			Outcome:   outcome,
		}
	}

	msgCache := parent.CacheWrap()
	msgEvents := types.NewEventManager()
	msgCtx := ctx.WithStore(msgCache).WithEventManager(msgEvents)
	if err := app.runMsgs(msgCtx, t.Body.Messages); err != nil {
		app.Logger.Info("tx messages failed", "err", err.Error())
		return rolledBack(errResult(err, gasWanted, ctx.GasMeter().GasConsumed()), ctx.EventManager().Events(), outcome)
	}
	msgCache.Write()
	ctx.EventManager().EmitEvents(msgEvents.Events())

	return Result{
		GasWanted: gasWanted,
		GasUsed:   ctx.GasMeter().GasConsumed(),
		Events:    ctx.EventManager().Events(),
		State:     TxStateCommitted,
		Outcome:   outcome,
	}
}

// runMsgs routes and executes every message in order. The first failure
// stops execution.
func (app *CosmosApp) runMsgs(ctx types.Context, msgs []types.Any) error {
	for i, msg := range msgs {
		handler, ok := app.router.Route(msg.TypeURL)
		if !ok {
			app.metrics.Msgs.With("type", msg.TypeURL, "result", "unrouted").Add(1)
			return sdkerrors.ErrUnknownRequest.Wrapf("unrecognized message type: %s; message index: %d", msg.TypeURL, i)
		}
		if err := ctx.GasMeter().ConsumeGas(app.schedule.GasFor(msg), "msg "+msg.TypeURL); err != nil {
			app.metrics.Msgs.With("type", msg.TypeURL, "result", "out_of_gas").Add(1)
			return sdkerrors.Wrapf(err, "message index: %d", i)
		}
		if err := handler(ctx, msg); err != nil {
			app.metrics.Msgs.With("type", msg.TypeURL, "result", "failed").Add(1)
			return sdkerrors.Wrapf(err, "failed to execute message; message index: %d", i)
		}
		app.metrics.Msgs.With("type", msg.TypeURL, "result", "ok").Add(1)
	}
	return nil
}

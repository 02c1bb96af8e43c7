package types

import (
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/cosmos-node/common/store"
)

// Header carries the block information a transaction is evaluated against.
type Header struct {
	ChainID string
	Height  uint64
}

// Context is the per-transaction execution environment. It is created for
// one transaction, never shared, and dropped once dispatch finishes.
//
// Context is passed by value; the With* methods return modified copies that
// still share the same gas meter and event manager unless replaced.
type Context struct {
	header       Header
	store        store.KVStore
	gasMeter     GasMeter
	eventManager *EventManager
	logger       log.Logger
}

// NewContext creates a Context with a fresh gas meter and event manager.
func NewContext(kv store.KVStore, header Header, gasLimit Gas, logger log.Logger) Context {
	return Context{
		header:       header,
		store:        kv,
		gasMeter:     NewGasMeter(gasLimit),
		eventManager: NewEventManager(),
		logger:       logger,
	}
}

func (c Context) ChainID() string { return c.header.ChainID }
func (c Context) BlockHeight() uint64 { return c.header.Height }
func (c Context) BlockHeader() Header { return c.header }
func (c Context) Store() store.KVStore { return c.store }
func (c Context) GasMeter() GasMeter { return c.gasMeter }
func (c Context) EventManager() *EventManager { return c.eventManager }
func (c Context) Logger() log.Logger { return c.logger }

func (c Context) WithStore(kv store.KVStore) Context {
	c.store = kv
	return c
}

func (c Context) WithGasMeter(meter GasMeter) Context {
	c.gasMeter = meter
	return c
}

func (c Context) WithEventManager(em *EventManager) Context {
	c.eventManager = em
	return c
}

func (c Context) WithBlockHeight(height uint64) Context {
	c.header.Height = height
	return c
}

func (c Context) WithLogger(logger log.Logger) Context {
	c.logger = logger
	return c
}

// KVStore returns a view of the store scoped to prefix.
func (c Context) KVStore(prefix []byte) store.KVStore {
	return store.NewPrefixStore(c.store, prefix)
}

package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/ratelimit"

	"github.com/bnb-chain/cosmos-node/app"
	"github.com/bnb-chain/cosmos-node/app/config"
	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/tx"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/plugins/bank"
)

// Node is the part of the application served over HTTP.
type Node interface {
	NewQueryContext() types.Context
	LastBlockHeight() uint64
	Simulate(t tx.Tx, gasLimit uint64) app.Result
}

type server struct {
	router *mux.Router

	// settings
	maxPostSize int64
	nativeDenom string
	chainID     string

	node      Node
	accounts  account.Keeper
	bank      bank.Keeper
	simulates ratelimit.Limiter
}

// NewServer returns the read and simulate API of node.
func NewServer(node Node, accounts account.Keeper, bk bank.Keeper, cfg *config.CosmosConfig) http.Handler {
	s := &server{
		router:      mux.NewRouter(),
		maxPostSize: cfg.API.MaxPostSize,
		nativeDenom: cfg.NativeDenom,
		chainID:     cfg.ChainID,
		node:        node,
		accounts:    accounts,
		bank:        bk,
		simulates:   ratelimit.New(cfg.API.SimulateRate),
	}
	return s.bindRoutes().router
}

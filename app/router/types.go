package router

import (
	"github.com/bnb-chain/cosmos-node/common/types"
)

// Router provides handlers for each message type URL.
type Router interface {
	AddRoute(typeURL string, h types.Handler) (rtr Router)
	Route(typeURL string) (h types.Handler, ok bool)
	Routes() []string
}

// map a message type URL to a handler
type route struct {
	r string
	h types.Handler
}

type router struct {
	routes []route
	index  map[string]int
}

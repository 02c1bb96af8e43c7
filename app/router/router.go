package router

import (
	"fmt"
	"regexp"

	"github.com/bnb-chain/cosmos-node/common/types"
)

// NewRouter creates a new router
func NewRouter() Router {
	return &router{
		routes: make([]route, 0),
		index:  make(map[string]int),
	}
}

var isTypeURL = regexp.MustCompile(`^/[a-zA-Z0-9._]+$`).MatchString

// AddRoute adds a msg route to the router. A type URL may only be routed once.
func (rtr *router) AddRoute(r string, h types.Handler) Router {
	if !isTypeURL(r) {
		panic(fmt.Sprintf("invalid type URL %q", r))
	}
	if _, ok := rtr.index[r]; ok {
		panic(fmt.Sprintf("route %s has already been registered", r))
	}
	rtr.index[r] = len(rtr.routes)
	rtr.routes = append(rtr.routes, route{r, h})

	return rtr
}

// Route resolves the handler of a type URL by exact match.
func (rtr *router) Route(typeURL string) (types.Handler, bool) {
	i, ok := rtr.index[typeURL]
	if !ok {
		return nil, false
	}
	return rtr.routes[i].h, true
}

// Routes lists the routed type URLs in registration order.
func (rtr *router) Routes() []string {
	urls := make([]string, len(rtr.routes))
	for i, route := range rtr.routes {
		urls[i] = route.r
	}
	return urls
}

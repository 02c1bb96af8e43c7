package api

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "v1"
const prefix = "/api/" + version

func (s *server) bindRoutes() *server {
	r := s.router

	r.HandleFunc("/node_version", s.handleNodeVersionReq()).
		Methods("GET")
	r.HandleFunc("/status", s.handleStatusReq()).
		Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).
		Methods("GET")

	r.HandleFunc(prefix+"/accounts/{address}", s.handleAccountReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/balances/{address}/{denom}", s.handleBalanceReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/simulate", s.handleSimulateReq()).
		Queries("gas", "{gas:[0-9]+}").
		Methods("POST")
	r.HandleFunc(prefix+"/simulate", s.handleSimulateReq()).
		Methods("POST")

	return s
}

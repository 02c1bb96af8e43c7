package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bnb-chain/cosmos-node/common/tx"
	"github.com/bnb-chain/cosmos-node/common/types"
	nodeversion "github.com/bnb-chain/cosmos-node/version"
)

const responseType = "application/json"

func throw(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(message))
}

func respond(w http.ResponseWriter, resp interface{}) {
	w.Header().Set("Content-Type", responseType)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func (s *server) handleNodeVersionReq() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, nodeversion.NewInfo())
	}
}

func (s *server) handleStatusReq() http.HandlerFunc {
	type response struct {
		ChainID string `json:"chain_id"`
		Height  uint64 `json:"height"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, response{ChainID: s.chainID, Height: s.node.LastBlockHeight()})
	}
}

// handleAccountReq returns the auth account and native balance of an
// address.
func (s *server) handleAccountReq() http.HandlerFunc {
	type response struct {
		Address       string `json:"address"`
		AccountNumber uint64 `json:"account_number"`
		Sequence      uint64 `json:"sequence"`
		PubKey        string `json:"public_key,omitempty"`
		Balance       int64  `json:"balance"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		bech32addr := mux.Vars(r)["address"]
		addr, err := types.ParseAccAddress(bech32addr)
		if err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx := s.node.NewQueryContext()
		acc := s.accounts.GetAccount(ctx, addr)
		// the account has never been seen on chain
		if acc == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		balance, err := s.bank.GetBalance(ctx, addr, s.nativeDenom)
		if err != nil {
			throw(w, http.StatusInternalServerError, err.Error())
			return
		}

		resp := response{
			Address:       bech32addr,
			AccountNumber: acc.AccountNumber,
			Sequence:      acc.Sequence,
			Balance:       balance,
		}
		if acc.PubKey != nil {
			resp.PubKey = fmt.Sprintf("%X", acc.PubKey.Bytes())
		}
		respond(w, resp)
	}
}

func (s *server) handleBalanceReq() http.HandlerFunc {
	type response struct {
		Denom   string `json:"denom"`
		Balance int64  `json:"balance"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		addr, err := types.ParseAccAddress(vars["address"])
		if err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}
		balance, err := s.bank.GetBalance(s.node.NewQueryContext(), addr, vars["denom"])
		if err != nil {
			throw(w, http.StatusNotFound, err.Error())
			return
		}
		respond(w, response{Denom: vars["denom"], Balance: balance})
	}
}

// handleSimulateReq runs the JSON transaction in the request body against
// the committed state and returns the result.
func (s *server) handleSimulateReq() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var gas uint64
		if param, ok := mux.Vars(r)["gas"]; ok {
			var err error
			if gas, err = strconv.ParseUint(param, 10, 64); err != nil {
				throw(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, s.maxPostSize+1))
		if err != nil {
			errMsg := fmt.Sprintf("Malformed request body. Error: %s", err.Error())
			throw(w, http.StatusExpectationFailed, errMsg)
			return
		}
		if int64(len(body)) > s.maxPostSize {
			throw(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		t, err := tx.DecodeJSON(body)
		if err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		s.simulates.Take()
		respond(w, s.node.Simulate(t, gas).View())
	}
}

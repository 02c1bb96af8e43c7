package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmn "github.com/tendermint/tendermint/libs/common"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tidwall/gjson"

	"github.com/bnb-chain/cosmos-node/app"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/tx"
	"github.com/bnb-chain/cosmos-node/plugins/api"
	"github.com/bnb-chain/cosmos-node/plugins/wasm"
	"github.com/bnb-chain/cosmos-node/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the node version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Print the effective app configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bz, err := json.MarshalIndent(cosmosCfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(bz))
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [tx.json]",
	Short: "Estimate the gas of a transaction without changing state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cosmos, err := openApp()
		if err != nil {
			return err
		}
		t, err := readTx(cosmos, args[0])
		if err != nil {
			return err
		}
		gas, _ := cmd.Flags().GetUint64(flagGas)
		return printResult(cosmos.Simulate(t, gas))
	},
}

var deliverCmd = &cobra.Command{
	Use:   "deliver [tx.json...]",
	Short: "Execute transactions in a new block and commit it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cosmos, err := openApp()
		if err != nil {
			return err
		}
		txs := make([]tx.Tx, 0, len(args))
		for _, file := range args {
			t, err := readTx(cosmos, file)
			if err != nil {
				return err
			}
			txs = append(txs, t)
		}

		cosmos.BeginBlock(cosmos.LastBlockHeight() + 1)
		for _, t := range txs {
			if err := printResult(cosmos.DeliverTx(t)); err != nil {
				return err
			}
		}
		cid, err := cosmos.Commit()
		if err != nil {
			return err
		}
		fmt.Printf("committed block %d, app hash %X\n", cid.Version, cid.Hash)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve account queries and simulations over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cosmos, err := openApp()
		if err != nil {
			return err
		}
		handler := api.NewServer(cosmos, cosmos.AccountKeeper, cosmos.BankKeeper, cosmosCfg)
		cosmos.Logger.Info("starting api server", "addr", cosmosCfg.API.ListenAddr, "height", cosmos.LastBlockHeight())
		return http.ListenAndServe(cosmosCfg.API.ListenAddr, handler)
	},
}

// openApp loads the node state under the home directory, running genesis on
// an empty store.
func openApp() (*app.CosmosApp, error) {
	logger, err := app.NewLogger(cosmosCfg, homeDir)
	if err != nil {
		return nil, err
	}

	metrics := app.NopMetrics()
	if addr := viper.GetString(flagPrometheusAddr); addr != "" {
		metrics = app.PrometheusMetrics()
		startPrometheus(addr)
	}

	db, err := dbm.NewGoLevelDB("application", filepath.Join(homeDir, "data"))
	if err != nil {
		return nil, err
	}
	cosmos, err := app.NewCosmosApp(logger, db, cosmosCfg, wasm.UnavailableEngine{}, metrics)
	if err != nil {
		return nil, err
	}
	if cosmos.LastBlockHeight() > 0 {
		return cosmos, nil
	}

	genesis := app.DefaultGenesisState()
	genesisFile := filepath.Join(homeDir, "config", "genesis.json")
	if cmn.FileExists(genesisFile) {
		bz, err := os.ReadFile(genesisFile)
		if err != nil {
			return nil, sdkerrors.ErrIO.Wrap(err.Error())
		}
		if genesis, err = app.ParseGenesisState(bz); err != nil {
			return nil, err
		}
	}
	if err := cosmos.InitChain(genesis); err != nil {
		return nil, err
	}
	if _, err := cosmos.Commit(); err != nil {
		return nil, err
	}
	return cosmos, nil
}

func readTx(cosmos *app.CosmosApp, file string) (tx.Tx, error) {
	bz, err := os.ReadFile(file)
	if err != nil {
		return tx.Tx{}, sdkerrors.ErrIO.Wrap(err.Error())
	}
	for _, url := range gjson.GetBytes(bz, "body.messages.#.type_url").Array() {
		if !cosmos.GetMsgRegistry().IsRegistered(url.String()) {
			cosmos.Logger.Info("transaction carries an unregistered message", "file", file, "type_url", url.String())
		}
	}
	return tx.Decode(bz)
}

func printResult(res app.Result) error {
	bz, err := json.MarshalIndent(res.View(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(bz))
	return nil
}

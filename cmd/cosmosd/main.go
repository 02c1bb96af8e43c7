package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnb-chain/cosmos-node/app/config"
)

const (
	flagHome           = "home"
	flagPrometheusAddr = "prometheus-addr"
	flagGas            = "gas"

	defaultHome = "~/.cosmosd"
)

var homeDir string

var context = config.NewDefaultContext()

var cosmosCfg *config.CosmosConfig

func main() {
	Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&homeDir, flagHome, defaultHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagPrometheusAddr, "", "serve prometheus metrics on this address, e.g. :26660")
	simulateCmd.Flags().Uint64(flagGas, 0, "gas limit of the simulation, 0 uses the configured limit")
	_ = viper.BindPFlag(flagPrometheusAddr, rootCmd.PersistentFlags().Lookup(flagPrometheusAddr))

	rootCmd.AddCommand(versionCmd, showConfigCmd, simulateCmd, deliverCmd, serveCmd)
}

func initConfig() {
	home, err := homedir.Expand(homeDir)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	homeDir = home

	viper.AddConfigPath(filepath.Join(homeDir, "config"))
	viper.SetConfigName(config.AppConfigFileName)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("Can't read config:", err)
			os.Exit(1)
		}
	}

	cosmosCfg, err = context.ParseConfig(viper.GetViper())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "cosmosd",
	Short:        "Cosmos transaction admission and execution node",
	SilenceUsage: true,
}

func startPrometheus(addr string) {
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr: addr,
		Handler: promhttp.InstrumentMetricHandler(
			prometheus.DefaultRegisterer, promhttp.HandlerFor(
				prometheus.DefaultGatherer,
				promhttp.HandlerOpts{MaxRequestsInFlight: 10},
			),
		),
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			context.Logger.Error("Prometheus HTTP server ListenAndServe", "err", err)
		}
	}()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

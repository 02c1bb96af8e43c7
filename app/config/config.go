package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/tx"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/plugins/bank"
	"github.com/bnb-chain/cosmos-node/plugins/wasm"
)

const AppConfigFileName = "app"

type CosmosContext struct {
	Config *CosmosConfig
	Logger log.Logger
}

func NewDefaultContext() *CosmosContext {
	return &CosmosContext{DefaultCosmosConfig(), log.NewTMLogger(log.NewSyncWriter(os.Stdout))}
}

// CosmosConfig is the configuration surface of the transaction pipeline.
type CosmosConfig struct {
	ChainID      string `mapstructure:"chain_id"`
	Bech32Prefix string `mapstructure:"bech32_prefix"`

	Ante *AnteConfig `mapstructure:"ante"`
	Gas  *GasConfig  `mapstructure:"gas"`

	NativeDenom        string        `mapstructure:"native_denom"`
	NativeAssetID      uint64        `mapstructure:"native_asset_id"`
	ExistentialDeposit int64         `mapstructure:"existential_deposit"`
	Assets             []AssetConfig `mapstructure:"assets"`

	Log *LogConfig `mapstructure:"log"`
	API *APIConfig `mapstructure:"api"`
}

type AnteConfig struct {
	MaxMemoCharacters      uint64   `mapstructure:"max_memo_characters"`
	TxSigLimit             uint64   `mapstructure:"tx_sig_limit"`
	KnownMsgs              []string `mapstructure:"known_msgs"`
	SigVerifyCostSecp256k1 uint64   `mapstructure:"sig_verify_cost_secp256k1"`
	MinGasPrice            int64    `mapstructure:"min_gas_price"`
	SigCacheSize           int      `mapstructure:"sig_cache_size"`
}

type GasConfig struct {
	GasPerWeight uint64 `mapstructure:"gas_per_weight"`

	// SimulateGasLimit is used when a simulation does not name a limit.
	SimulateGasLimit uint64      `mapstructure:"simulate_gas_limit"`
	MsgWeights       []MsgWeight `mapstructure:"msg_weights"`
}

// MsgWeight is kept as a list entry because viper lowercases map keys and
// type URLs are case sensitive.
type MsgWeight struct {
	TypeURL string `mapstructure:"type_url"`
	Weight  uint64 `mapstructure:"weight"`
	// PerByte adds weight for every byte of the message payload.
	PerByte uint64 `mapstructure:"per_byte"`
}

type AssetConfig struct {
	Denom      string `mapstructure:"denom"`
	ID         uint64 `mapstructure:"id"`
	MinBalance int64  `mapstructure:"min_balance"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`

	// File is the log file; console logging is used when it is empty.
	File string `mapstructure:"file"`
}

type APIConfig struct {
	ListenAddr  string `mapstructure:"listen_addr"`
	MaxPostSize int64  `mapstructure:"max_post_size"`

	// SimulateRate bounds simulations served per second.
	SimulateRate int `mapstructure:"simulate_rate"`
}

func DefaultCosmosConfig() *CosmosConfig {
	return &CosmosConfig{
		ChainID:            "cosmos-node",
		Bech32Prefix:       types.DefaultBech32PrefixAccAddr,
		Ante:               defaultAnteConfig(),
		Gas:                defaultGasConfig(),
		NativeDenom:        "acdt",
		NativeAssetID:      0,
		ExistentialDeposit: 1,
		Log:                defaultLogConfig(),
		API:                defaultAPIConfig(),
	}
}

func defaultAnteConfig() *AnteConfig {
	return &AnteConfig{
		MaxMemoCharacters:      256,
		TxSigLimit:             7,
		KnownMsgs:              DefaultKnownMsgs(),
		SigVerifyCostSecp256k1: tx.DefaultSigVerifyCostSecp256k1,
		MinGasPrice:            0,
		SigCacheSize:           30000,
	}
}

func defaultGasConfig() *GasConfig {
	return &GasConfig{
		GasPerWeight:     1,
		SimulateGasLimit: 100_000_000,
		MsgWeights: []MsgWeight{
			{TypeURL: bank.MsgSendType, Weight: 10_000},
			{TypeURL: wasm.MsgStoreCodeType, Weight: 20_000},
			{TypeURL: wasm.MsgInstantiateContractType, Weight: 20_000},
			{TypeURL: wasm.MsgInstantiateContract2Type, Weight: 20_000},
			{TypeURL: wasm.MsgExecuteContractType, Weight: 10_000},
			{TypeURL: wasm.MsgMigrateContractType, Weight: 20_000},
			{TypeURL: wasm.MsgUpdateAdminType, Weight: 5_000},
			{TypeURL: wasm.MsgClearAdminType, Weight: 5_000},
		},
	}
}

func defaultLogConfig() *LogConfig {
	return &LogConfig{Level: "info"}
}

func defaultAPIConfig() *APIConfig {
	return &APIConfig{
		ListenAddr:   "127.0.0.1:1317",
		MaxPostSize:  512 * 1024,
		SimulateRate: 50,
	}
}

// DefaultKnownMsgs is every message type the node can route.
func DefaultKnownMsgs() []string {
	return []string{
		bank.MsgSendType,
		wasm.MsgStoreCodeType,
		wasm.MsgInstantiateContractType,
		wasm.MsgInstantiateContract2Type,
		wasm.MsgExecuteContractType,
		wasm.MsgMigrateContractType,
		wasm.MsgUpdateAdminType,
		wasm.MsgClearAdminType,
	}
}

// ParseConfig reads v on top of the defaults and validates the result.
func (context *CosmosContext) ParseConfig(v *viper.Viper) (*CosmosConfig, error) {
	// lists replace their defaults rather than being merged into them
	if v.IsSet("ante.known_msgs") {
		context.Config.Ante.KnownMsgs = nil
	}
	if v.IsSet("gas.msg_weights") {
		context.Config.Gas.MsgWeights = nil
	}
	if v.IsSet("assets") {
		context.Config.Assets = nil
	}
	if err := v.Unmarshal(context.Config); err != nil {
		return nil, sdkerrors.ErrAppConfig.Wrap(err.Error())
	}
	if err := context.Config.Validate(); err != nil {
		return nil, err
	}
	return context.Config, nil
}

func (c *CosmosConfig) Validate() error {
	if strings.TrimSpace(c.ChainID) == "" {
		return sdkerrors.ErrAppConfig.Wrap("chain_id is empty")
	}
	if c.Bech32Prefix == "" {
		return sdkerrors.ErrAppConfig.Wrap("bech32_prefix is empty")
	}
	if c.NativeDenom == "" {
		return sdkerrors.ErrAppConfig.Wrap("native_denom is empty")
	}
	if c.ExistentialDeposit < 0 {
		return sdkerrors.ErrAppConfig.Wrapf("existential_deposit is negative: %d", c.ExistentialDeposit)
	}
	if c.Ante == nil || c.Gas == nil || c.Log == nil || c.API == nil {
		return sdkerrors.ErrAppConfig.Wrap("ante, gas, log and api sections are required")
	}
	if c.Ante.TxSigLimit == 0 {
		return sdkerrors.ErrAppConfig.Wrap("ante.tx_sig_limit must be positive")
	}
	if c.Ante.MinGasPrice < 0 {
		return sdkerrors.ErrAppConfig.Wrapf("ante.min_gas_price is negative: %d", c.Ante.MinGasPrice)
	}
	if c.Ante.SigCacheSize <= 0 {
		return sdkerrors.ErrAppConfig.Wrap("ante.sig_cache_size must be positive")
	}
	if c.API.MaxPostSize <= 0 || c.API.SimulateRate <= 0 {
		return sdkerrors.ErrAppConfig.Wrap("api.max_post_size and api.simulate_rate must be positive")
	}

	denoms := map[string]bool{c.NativeDenom: true}
	ids := map[uint64]bool{c.NativeAssetID: true}
	for _, asset := range c.Assets {
		if asset.Denom == "" || denoms[asset.Denom] {
			return sdkerrors.ErrAppConfig.Wrapf("duplicate or empty asset denom %q", asset.Denom)
		}
		if ids[asset.ID] {
			return sdkerrors.ErrAppConfig.Wrapf("duplicate asset id %d", asset.ID)
		}
		if asset.MinBalance < 0 {
			return sdkerrors.ErrAppConfig.Wrapf("asset %s has a negative min_balance", asset.Denom)
		}
		denoms[asset.Denom] = true
		ids[asset.ID] = true
	}

	seen := map[string]bool{}
	for _, w := range c.Gas.MsgWeights {
		if w.TypeURL == "" {
			return sdkerrors.ErrAppConfig.Wrap("gas weight without type_url")
		}
		if seen[w.TypeURL] {
			return sdkerrors.ErrAppConfig.Wrapf("duplicate gas weight for %s", w.TypeURL)
		}
		seen[w.TypeURL] = true
	}
	return nil
}

// AnteParams is the configuration of the default ante steps.
func (c *CosmosConfig) AnteParams() tx.AnteParams {
	return tx.AnteParams{
		MaxMemoCharacters:      c.Ante.MaxMemoCharacters,
		TxSigLimit:             c.Ante.TxSigLimit,
		KnownMsgs:              c.Ante.KnownMsgs,
		SigVerifyCostSecp256k1: c.Ante.SigVerifyCostSecp256k1,
		NativeDenom:            c.NativeDenom,
		MinGasPrice:            c.Ante.MinGasPrice,
		SigCacheSize:           c.Ante.SigCacheSize,
	}
}

// AssetIDOf resolves a non-native denomination to its asset id.
func (c *CosmosConfig) AssetIDOf(denom string) (account.AssetID, bool) {
	for _, asset := range c.Assets {
		if asset.Denom == denom {
			return account.AssetID(asset.ID), true
		}
	}
	return 0, false
}

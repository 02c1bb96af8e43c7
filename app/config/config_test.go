package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/plugins/bank"
	"github.com/bnb-chain/cosmos-node/plugins/wasm"
)

const testConfig = `
chain_id = "cosmos-local"
native_denom = "uatom"
existential_deposit = 5

[ante]
max_memo_characters = 64
min_gas_price = 2

[gas]
gas_per_weight = 3

[[gas.msg_weights]]
type_url = "/cosmos.bank.v1beta1.MsgSend"
weight = 7

[[gas.msg_weights]]
type_url = "/cosmwasm.wasm.v1.MsgStoreCode"
weight = 100
per_byte = 2

[[assets]]
denom = "uusdc"
id = 42
min_balance = 1

[api]
listen_addr = "0.0.0.0:1317"
`

func parse(t *testing.T, content string) (*CosmosConfig, error) {
	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(content)))
	return NewDefaultContext().ParseConfig(v)
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultCosmosConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, uint64(256), cfg.Ante.MaxMemoCharacters)
	require.Equal(t, uint64(7), cfg.Ante.TxSigLimit)
	require.Len(t, cfg.Gas.MsgWeights, len(DefaultKnownMsgs()))
}

func TestParseConfig(t *testing.T) {
	cfg, err := parse(t, testConfig)
	require.NoError(t, err)

	require.Equal(t, "cosmos-local", cfg.ChainID)
	require.Equal(t, int64(5), cfg.ExistentialDeposit)
	require.Equal(t, uint64(64), cfg.Ante.MaxMemoCharacters)
	// untouched keys keep their defaults
	require.Equal(t, uint64(7), cfg.Ante.TxSigLimit)
	require.Equal(t, []MsgWeight{
		{TypeURL: bank.MsgSendType, Weight: 7},
		{TypeURL: wasm.MsgStoreCodeType, Weight: 100, PerByte: 2},
	}, cfg.Gas.MsgWeights)
	require.Equal(t, "0.0.0.0:1317", cfg.API.ListenAddr)
	require.Equal(t, 50, cfg.API.SimulateRate)

	params := cfg.AnteParams()
	require.Equal(t, "uatom", params.NativeDenom)
	require.Equal(t, int64(2), params.MinGasPrice)
	require.Equal(t, DefaultKnownMsgs(), params.KnownMsgs)

	id, ok := cfg.AssetIDOf("uusdc")
	require.True(t, ok)
	require.Equal(t, account.AssetID(42), id)
	_, ok = cfg.AssetIDOf("uatom")
	require.False(t, ok)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"negative deposit", "existential_deposit = -1"},
		{"zero sig limit", "[ante]\ntx_sig_limit = 0"},
		{"asset is native", "[[assets]]\ndenom = \"acdt\"\nid = 1"},
		{"duplicate asset id", "[[assets]]\ndenom = \"a\"\nid = 1\n[[assets]]\ndenom = \"b\"\nid = 1"},
		{"zero simulate rate", "[api]\nsimulate_rate = 0"},
		{"weight without type", "[[gas.msg_weights]]\nweight = 1"},
		{"duplicate weight", "[[gas.msg_weights]]\ntype_url = \"/x\"\nweight = 1\n[[gas.msg_weights]]\ntype_url = \"/x\"\nweight = 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.content)
			require.True(t, sdkerrors.IsOf(err, sdkerrors.ErrAppConfig), "got %v", err)
		})
	}
}

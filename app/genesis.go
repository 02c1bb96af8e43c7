package app

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
)

type GenesisState struct {
	Accounts []GenesisAccount `json:"accounts"`
}

// GenesisAccount doesn't need pubkey or sequence
type GenesisAccount struct {
	Address string    `json:"address"`
	Coins   sdk.Coins `json:"coins"`
}

func DefaultGenesisState() GenesisState {
	return GenesisState{Accounts: []GenesisAccount{}}
}

// ParseGenesisState decodes the JSON genesis document.
func ParseGenesisState(bz []byte) (GenesisState, error) {
	var genesis GenesisState
	if err := json.Unmarshal(bz, &genesis); err != nil {
		return genesis, sdkerrors.ErrJSONUnmarshal.Wrap(err.Error())
	}
	return genesis, nil
}

func (app *CosmosApp) initGenesis(ctx types.Context, genesis GenesisState) error {
	for _, asset := range app.config.Assets {
		if err := app.Assets.CreateAsset(ctx, account.AssetID(asset.ID), asset.MinBalance); err != nil {
			return sdkerrors.Wrapf(err, "failed to create asset %s", asset.Denom)
		}
	}

	for _, gacc := range genesis.Accounts {
		addr, err := types.ParseAccAddress(gacc.Address)
		if err != nil {
			return sdkerrors.Wrapf(err, "genesis account %q", gacc.Address)
		}
		app.AccountKeeper.EnsureAccount(ctx, addr)
		who := app.Mapper.ToNative(ctx, addr)
		for _, coin := range gacc.Coins {
			if coin.Denom == app.config.NativeDenom {
				err = app.Currency.Deposit(ctx, who, coin.Amount)
			} else if asset, ok := app.config.AssetIDOf(coin.Denom); ok {
				err = app.Assets.Mint(ctx, asset, who, coin.Amount)
			} else {
				err = sdkerrors.ErrInvalidCoins.Wrapf("unknown denomination %s", coin.Denom)
			}
			if err != nil {
				return sdkerrors.Wrapf(err, "failed to fund genesis account %s", gacc.Address)
			}
		}
	}
	app.Logger.Info("initialized genesis", "accounts", len(genesis.Accounts), "assets", len(app.config.Assets))
	return nil
}

package bank

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
)

// AssetLookup resolves a denomination to its asset id.
type AssetLookup func(denom string) (account.AssetID, bool)

// Keeper moves coins between foreign addresses. The native denomination
// goes through Currency; every other denomination must map to an asset.
// Recipients get an auth account so they can sign later.
type Keeper struct {
	accounts    account.Keeper
	mapper      account.AddressMapper
	currency    account.Currency
	assets      account.Assets
	nativeDenom string
	assetOf     AssetLookup
}

func NewKeeper(accounts account.Keeper, mapper account.AddressMapper, currency account.Currency,
	assets account.Assets, nativeDenom string, assetOf AssetLookup) Keeper {
	return Keeper{
		accounts:    accounts,
		mapper:      mapper,
		currency:    currency,
		assets:      assets,
		nativeDenom: nativeDenom,
		assetOf:     assetOf,
	}
}

func (k Keeper) NativeDenom() string {
	return k.nativeDenom
}

// GetBalance returns the balance of addr in denom.
func (k Keeper) GetBalance(ctx types.Context, addr sdk.AccAddress, denom string) (int64, error) {
	who := k.mapper.ToNative(ctx, addr)
	if denom == k.nativeDenom {
		return k.currency.Balance(ctx, who), nil
	}
	asset, ok := k.assetOf(denom)
	if !ok {
		return 0, sdkerrors.ErrInvalidCoins.Wrapf("unknown denomination %s", denom)
	}
	return k.assets.Balance(ctx, asset, who), nil
}

// SendCoins transfers amt keeping the sender alive. Denominations are
// resolved before any balance moves.
func (k Keeper) SendCoins(ctx types.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	assetIDs := make([]account.AssetID, len(amt))
	for i, coin := range amt {
		if coin.Denom == k.nativeDenom {
			continue
		}
		asset, ok := k.assetOf(coin.Denom)
		if !ok {
			return sdkerrors.ErrInvalidCoins.Wrapf("unknown denomination %s", coin.Denom)
		}
		assetIDs[i] = asset
	}

	src := k.mapper.ToNative(ctx, from)
	dst := k.mapper.ToNative(ctx, to)
	for i, coin := range amt {
		var err error
		if coin.Denom == k.nativeDenom {
			err = k.currency.Transfer(ctx, src, dst, coin.Amount, true)
		} else {
			err = k.assets.Transfer(ctx, assetIDs[i], src, dst, coin.Amount, true)
		}
		if err != nil {
			return sdkerrors.Wrapf(err, "failed to send %d%s", coin.Amount, coin.Denom)
		}
	}
	k.accounts.EnsureAccount(ctx, to)
	return nil
}

package fees

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bnb-chain/cosmos-node/common"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/wire"
)

var (
	collectedFeesKey = []byte("collectedFees")
)

// CollectionKeeper keeps the running total of fees collected by the chain.
type CollectionKeeper struct {
	// The wire codec for binary encoding/decoding of coins.
	cdc *wire.Codec
}

func NewCollectionKeeper(cdc *wire.Codec) CollectionKeeper {
	return CollectionKeeper{cdc: cdc}
}

func (k CollectionKeeper) store(ctx types.Context) store.KVStore {
	return ctx.KVStore(common.FeeStorePrefix)
}

func (k CollectionKeeper) GetCollectedFees(ctx types.Context) sdk.Coins {
	bz := k.store(ctx).Get(collectedFeesKey)
	if bz == nil {
		return sdk.Coins{}
	}

	feePool := &(sdk.Coins{})
	k.cdc.MustUnmarshalBinaryLengthPrefixed(bz, feePool)
	return *feePool
}

func (k CollectionKeeper) SetCollectedFees(ctx types.Context, coins sdk.Coins) {
	bz := k.cdc.MustMarshalBinaryLengthPrefixed(coins)
	k.store(ctx).Set(collectedFeesKey, bz)
}

// AddCollectedFees adds coins to the total and returns the new total.
func (k CollectionKeeper) AddCollectedFees(ctx types.Context, coins sdk.Coins) sdk.Coins {
	newCoins := k.GetCollectedFees(ctx).Plus(coins)
	k.SetCollectedFees(ctx, newCoins)

	return newCoins
}

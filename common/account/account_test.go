package account_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto/secp256k1"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/wire"
)

func newContext() types.Context {
	return types.NewContext(store.NewMemIavlStore(), types.Header{ChainID: "test", Height: 1}, 0, log.NewNopLogger())
}

func newAddr() sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
}

func TestKeeperAccounts(t *testing.T) {
	ctx := newContext()
	ak := account.NewKeeper(wire.Cdc)

	addr := newAddr()
	require.Nil(t, ak.GetAccount(ctx, addr))
	_, err := ak.GetSequence(ctx, addr)
	require.True(t, sdkerrors.ErrUnknownAddress.Is(err))

	acc := ak.EnsureAccount(ctx, addr)
	require.Equal(t, uint64(0), acc.AccountNumber)
	require.Equal(t, uint64(1), ak.EnsureAccount(ctx, newAddr()).AccountNumber)

	priv := secp256k1.GenPrivKey()
	acc.PubKey = priv.PubKey()
	ak.SetAccount(ctx, acc)
	require.NoError(t, ak.IncrementSequence(ctx, addr))

	loaded := ak.GetAccount(ctx, addr)
	require.NotNil(t, loaded)
	require.Equal(t, uint64(1), loaded.Sequence)
	require.True(t, priv.PubKey().Equals(loaded.PubKey))

	// existing accounts keep their number
	require.Equal(t, uint64(0), ak.EnsureAccount(ctx, addr).AccountNumber)
}

func TestAddressMapper(t *testing.T) {
	ctx := newContext()
	m := account.NewAddressMapper()

	addr := newAddr()
	require.Equal(t, account.DeriveAccountID(addr), m.ToNative(ctx, addr))
	_, ok := m.ToForeign(ctx, account.DeriveAccountID(addr))
	require.False(t, ok)

	var id account.AccountID
	id[0] = 0xAA
	require.NoError(t, m.Connect(ctx, addr, id))
	require.Equal(t, id, m.ToNative(ctx, addr))
	foreign, ok := m.ToForeign(ctx, id)
	require.True(t, ok)
	require.Equal(t, addr, foreign)

	err := m.Connect(ctx, addr, account.AccountID{})
	require.True(t, sdkerrors.ErrConflict.Is(err))
	err = m.Connect(ctx, newAddr(), id)
	require.True(t, sdkerrors.ErrConflict.Is(err))
	err = m.Connect(ctx, sdk.AccAddress{1, 2, 3}, account.AccountID{1})
	require.True(t, sdkerrors.ErrInvalidAddress.Is(err))
}

func TestDeriveAccountIDIsDeterministic(t *testing.T) {
	a, b := newAddr(), newAddr()
	require.Equal(t, account.DeriveAccountID(a), account.DeriveAccountID(a))
	require.NotEqual(t, account.DeriveAccountID(a), account.DeriveAccountID(b))
}

func TestNativeLedger(t *testing.T) {
	ctx := newContext()
	l := account.NewNativeLedger(10)
	alice, bob := account.AccountID{1}, account.AccountID{2}

	err := l.Deposit(ctx, alice, 5)
	require.True(t, sdkerrors.ErrInsufficientFunds.Is(err), "below existential deposit")
	require.NoError(t, l.Deposit(ctx, alice, 100))

	err = l.Transfer(ctx, alice, bob, 95, true)
	require.True(t, sdkerrors.ErrInsufficientFunds.Is(err), "would kill sender")
	err = l.Transfer(ctx, alice, bob, 101, false)
	require.True(t, sdkerrors.ErrInsufficientFunds.Is(err))

	require.NoError(t, l.Transfer(ctx, alice, bob, 50, true))
	require.Equal(t, int64(50), l.Balance(ctx, alice))
	require.Equal(t, int64(50), l.Balance(ctx, bob))

	// dust is reaped without keepAlive
	require.NoError(t, l.Transfer(ctx, alice, bob, 45, false))
	require.Equal(t, int64(0), l.Balance(ctx, alice))
	require.Equal(t, int64(95), l.Balance(ctx, bob))

	require.NoError(t, l.Withdraw(ctx, bob, 85, true))
	require.Equal(t, int64(10), l.Balance(ctx, bob))
	err = l.Withdraw(ctx, bob, -1, false)
	require.True(t, sdkerrors.ErrInvalidCoins.Is(err))
}

func TestAssetLedger(t *testing.T) {
	ctx := newContext()
	l := account.NewAssetLedger()
	alice, bob := account.AccountID{1}, account.AccountID{2}
	const usd = account.AssetID(7)

	err := l.Mint(ctx, usd, alice, 100)
	require.True(t, sdkerrors.ErrInvalidCoins.Is(err), "unknown asset")

	require.NoError(t, l.CreateAsset(ctx, usd, 5))
	require.True(t, l.AssetExists(ctx, usd))
	require.False(t, l.AssetExists(ctx, account.AssetID(8)))
	err = l.CreateAsset(ctx, usd, 1)
	require.True(t, sdkerrors.ErrConflict.Is(err))

	require.NoError(t, l.Mint(ctx, usd, alice, 100))
	err = l.Transfer(ctx, usd, alice, bob, 98, true)
	require.True(t, sdkerrors.ErrInsufficientFunds.Is(err), "preserve keeps sender above minimum")

	require.NoError(t, l.Transfer(ctx, usd, alice, bob, 98, false))
	require.Equal(t, int64(0), l.Balance(ctx, usd, alice))
	require.Equal(t, int64(98), l.Balance(ctx, usd, bob))

	// balances are per asset
	require.NoError(t, l.CreateAsset(ctx, account.AssetID(8), 0))
	require.Equal(t, int64(0), l.Balance(ctx, account.AssetID(8), bob))
}

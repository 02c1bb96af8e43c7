package account

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/crypto"

	"github.com/bnb-chain/cosmos-node/common"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/types"
	"github.com/bnb-chain/cosmos-node/wire"
)

var globalAccountNumberKey = []byte("globalAccountNumber")

// Account is the authentication record of a foreign address: the key that
// signs for it, its account number and its replay-protection sequence.
type Account struct {
	Address       sdk.AccAddress `json:"address"`
	PubKey        crypto.PubKey  `json:"public_key"`
	AccountNumber uint64         `json:"account_number"`
	Sequence      uint64         `json:"sequence"`
}

func (acc Account) String() string {
	var pubkey string
	if acc.PubKey != nil {
		pubkey = fmt.Sprintf("%X", acc.PubKey.Bytes())
	}
	return fmt.Sprintf("Account{%s %s number:%d sequence:%d}", acc.Address, pubkey, acc.AccountNumber, acc.Sequence)
}

// Keeper stores accounts using the go-amino (binary) encoding.
type Keeper struct {
	// The wire codec for binary encoding/decoding of accounts.
	// It must have the crypto concrete types registered.
	cdc *wire.Codec
}

func NewKeeper(cdc *wire.Codec) Keeper {
	return Keeper{cdc: cdc}
}

func (k Keeper) store(ctx types.Context) store.KVStore {
	return ctx.KVStore(common.AccountStorePrefix)
}

// NewAccountWithAddress assigns the next account number. The account is not
// persisted until SetAccount.
func (k Keeper) NewAccountWithAddress(ctx types.Context, addr sdk.AccAddress) *Account {
	return &Account{
		Address:       addr,
		AccountNumber: k.GetNextAccountNumber(ctx),
	}
}

func (k Keeper) GetAccount(ctx types.Context, addr sdk.AccAddress) *Account {
	bz := k.store(ctx).Get(addr)
	if bz == nil {
		return nil
	}
	acc := new(Account)
	k.cdc.MustUnmarshalBinaryBare(bz, acc)
	return acc
}

func (k Keeper) SetAccount(ctx types.Context, acc *Account) {
	bz := k.cdc.MustMarshalBinaryBare(*acc)
	k.store(ctx).Set(acc.Address, bz)
}

// EnsureAccount returns the account at addr, creating it if needed.
func (k Keeper) EnsureAccount(ctx types.Context, addr sdk.AccAddress) *Account {
	if acc := k.GetAccount(ctx, addr); acc != nil {
		return acc
	}
	acc := k.NewAccountWithAddress(ctx, addr)
	k.SetAccount(ctx, acc)
	return acc
}

func (k Keeper) GetSequence(ctx types.Context, addr sdk.AccAddress) (uint64, error) {
	acc := k.GetAccount(ctx, addr)
	if acc == nil {
		return 0, sdkerrors.ErrUnknownAddress.Wrapf("account %s does not exist", addr)
	}
	return acc.Sequence, nil
}

func (k Keeper) IncrementSequence(ctx types.Context, addr sdk.AccAddress) error {
	acc := k.GetAccount(ctx, addr)
	if acc == nil {
		return sdkerrors.ErrUnknownAddress.Wrapf("account %s does not exist", addr)
	}
	acc.Sequence++
	k.SetAccount(ctx, acc)
	return nil
}

// GetNextAccountNumber returns and then increments the global account number.
func (k Keeper) GetNextAccountNumber(ctx types.Context) uint64 {
	var accNumber uint64
	st := k.store(ctx)
	bz := st.Get(globalAccountNumberKey)
	if bz != nil {
		k.cdc.MustUnmarshalBinaryLengthPrefixed(bz, &accNumber)
	}

	bz = k.cdc.MustMarshalBinaryLengthPrefixed(accNumber + 1)
	st.Set(globalAccountNumberKey, bz)
	return accNumber
}

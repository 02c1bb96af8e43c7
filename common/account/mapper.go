package account

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/crypto/tmhash"
	cmn "github.com/tendermint/tendermint/libs/common"

	"github.com/bnb-chain/cosmos-node/common"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/types"
)

// fallbackPrefix domain-separates derived native ids from other hashes.
const fallbackPrefix = "cosmos:"

var (
	foreignKeyPrefix = []byte{'f'}
	nativeKeyPrefix  = []byte{'n'}
)

// AccountID identifies an account of the native ledger.
type AccountID [32]byte

func (id AccountID) Bytes() []byte {
	return id[:]
}

func (id AccountID) String() string {
	return cmn.HexBytes(id[:]).String()
}

// DeriveAccountID is the deterministic native id of an unmapped address.
func DeriveAccountID(addr sdk.AccAddress) AccountID {
	var id AccountID
	copy(id[:], tmhash.Sum(append([]byte(fallbackPrefix), addr...)))
	return id
}

// AddressMapper keeps a bidirectional, unique mapping between foreign
// addresses and native account ids.
type AddressMapper struct{}

func NewAddressMapper() AddressMapper {
	return AddressMapper{}
}

func (m AddressMapper) store(ctx types.Context) store.KVStore {
	return ctx.KVStore(common.AddressStorePrefix)
}

// ToNative resolves addr, falling back to DeriveAccountID when unmapped.
func (m AddressMapper) ToNative(ctx types.Context, addr sdk.AccAddress) AccountID {
	bz := m.store(ctx).Get(append(foreignKeyPrefix, addr...))
	if bz == nil {
		return DeriveAccountID(addr)
	}
	var id AccountID
	copy(id[:], bz)
	return id
}

// ToForeign returns the address explicitly connected to id.
func (m AddressMapper) ToForeign(ctx types.Context, id AccountID) (sdk.AccAddress, bool) {
	bz := m.store(ctx).Get(append(nativeKeyPrefix, id[:]...))
	if bz == nil {
		return nil, false
	}
	return sdk.AccAddress(bz), true
}

// Connect maps addr and id to each other. Either side may be mapped once.
func (m AddressMapper) Connect(ctx types.Context, addr sdk.AccAddress, id AccountID) error {
	if len(addr) != sdk.AddrLen {
		return sdkerrors.ErrInvalidAddress.Wrapf("expected %d bytes, got %d", sdk.AddrLen, len(addr))
	}

	st := m.store(ctx)
	fKey := append(foreignKeyPrefix, addr...)
	nKey := append(nativeKeyPrefix, id[:]...)
	if st.Has(fKey) {
		return sdkerrors.ErrConflict.Wrapf("address %s is already mapped", addr)
	}
	if st.Has(nKey) {
		return sdkerrors.ErrConflict.Wrapf("account %s is already mapped", id)
	}

	st.Set(fKey, id[:])
	st.Set(nKey, addr)
	return nil
}

package account

import (
	"encoding/binary"

	"github.com/bnb-chain/cosmos-node/common"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/types"
)

// AssetID identifies a non-native asset class.
type AssetID uint64

// Currency is the native-token ledger.
type Currency interface {
	Balance(ctx types.Context, who AccountID) int64
	// Transfer moves amount from one account to another. With keepAlive the
	// sender may not drop below the existential deposit; otherwise dust left
	// behind is reaped.
	Transfer(ctx types.Context, from, to AccountID, amount int64, keepAlive bool) error
	Withdraw(ctx types.Context, who AccountID, amount int64, keepAlive bool) error
	Deposit(ctx types.Context, who AccountID, amount int64) error
}

// Assets is the multi-asset ledger.
type Assets interface {
	CreateAsset(ctx types.Context, asset AssetID, minBalance int64) error
	AssetExists(ctx types.Context, asset AssetID) bool
	Balance(ctx types.Context, asset AssetID, who AccountID) int64
	// Transfer moves amount of asset. With preserve the sender may not drop
	// below the asset's minimum balance.
	Transfer(ctx types.Context, asset AssetID, from, to AccountID, amount int64, preserve bool) error
	Mint(ctx types.Context, asset AssetID, who AccountID, amount int64) error
}

var (
	_ Currency = NativeLedger{}
	_ Assets   = AssetLedger{}
)

func encodeAmount(amount int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(amount))
	return bz
}

func decodeAmount(bz []byte) int64 {
	if len(bz) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(bz))
}

func setAmount(st store.KVStore, key []byte, amount int64) {
	if amount == 0 {
		st.Delete(key)
		return
	}
	st.Set(key, encodeAmount(amount))
}

// debit computes the sender balance left after paying amount. Remainders
// below floor are reaped unless keep is set, in which case they are an error.
func debit(balance, amount, floor int64, keep bool) (int64, error) {
	if amount < 0 {
		return 0, sdkerrors.ErrInvalidCoins.Wrapf("negative amount %d", amount)
	}
	if balance < amount {
		return 0, sdkerrors.ErrInsufficientFunds.Wrapf("%d is smaller than %d", balance, amount)
	}
	remaining := balance - amount
	if remaining < floor {
		if keep {
			return 0, sdkerrors.ErrInsufficientFunds.Wrapf("remaining balance %d is below the minimum %d", remaining, floor)
		}
		remaining = 0
	}
	return remaining, nil
}

func credit(balance, amount, floor int64) (int64, error) {
	if amount < 0 {
		return 0, sdkerrors.ErrInvalidCoins.Wrapf("negative amount %d", amount)
	}
	sum := balance + amount
	if sum < balance {
		return 0, sdkerrors.ErrInvalidCoins.Wrap("balance overflow")
	}
	if sum > 0 && sum < floor {
		return 0, sdkerrors.ErrInsufficientFunds.Wrapf("resulting balance %d is below the minimum %d", sum, floor)
	}
	return sum, nil
}

// NativeLedger keeps native balances keyed by AccountID.
type NativeLedger struct {
	existentialDeposit int64
}

func NewNativeLedger(existentialDeposit int64) NativeLedger {
	return NativeLedger{existentialDeposit: existentialDeposit}
}

func (l NativeLedger) store(ctx types.Context) store.KVStore {
	return ctx.KVStore(common.BalanceStorePrefix)
}

func (l NativeLedger) Balance(ctx types.Context, who AccountID) int64 {
	return decodeAmount(l.store(ctx).Get(who[:]))
}

func (l NativeLedger) Transfer(ctx types.Context, from, to AccountID, amount int64, keepAlive bool) error {
	st := l.store(ctx)
	fromBal := decodeAmount(st.Get(from[:]))
	remaining, err := debit(fromBal, amount, l.existentialDeposit, keepAlive)
	if err != nil {
		return err
	}
	if from == to || amount == 0 {
		return nil
	}
	toBal, err := credit(decodeAmount(st.Get(to[:])), amount, l.existentialDeposit)
	if err != nil {
		return err
	}
	setAmount(st, from[:], remaining)
	setAmount(st, to[:], toBal)
	return nil
}

func (l NativeLedger) Withdraw(ctx types.Context, who AccountID, amount int64, keepAlive bool) error {
	st := l.store(ctx)
	remaining, err := debit(decodeAmount(st.Get(who[:])), amount, l.existentialDeposit, keepAlive)
	if err != nil {
		return err
	}
	setAmount(st, who[:], remaining)
	return nil
}

func (l NativeLedger) Deposit(ctx types.Context, who AccountID, amount int64) error {
	st := l.store(ctx)
	bal, err := credit(decodeAmount(st.Get(who[:])), amount, l.existentialDeposit)
	if err != nil {
		return err
	}
	setAmount(st, who[:], bal)
	return nil
}

// AssetLedger keeps per-asset balances and each asset's minimum balance.
type AssetLedger struct{}

func NewAssetLedger() AssetLedger {
	return AssetLedger{}
}

func (l AssetLedger) store(ctx types.Context, asset AssetID) store.KVStore {
	prefix := make([]byte, 8)
	binary.BigEndian.PutUint64(prefix, uint64(asset))
	return store.NewPrefixStore(ctx.KVStore(common.AssetStorePrefix), prefix)
}

var (
	assetMetaKey       = []byte{'m'}
	assetBalancePrefix = []byte{'b'}
)

func balanceKey(who AccountID) []byte {
	return append(assetBalancePrefix, who[:]...)
}

func (l AssetLedger) CreateAsset(ctx types.Context, asset AssetID, minBalance int64) error {
	if minBalance < 0 {
		return sdkerrors.ErrInvalidRequest.Wrapf("negative minimum balance %d", minBalance)
	}
	st := l.store(ctx, asset)
	if st.Has(assetMetaKey) {
		return sdkerrors.ErrConflict.Wrapf("asset %d already exists", asset)
	}
	st.Set(assetMetaKey, encodeAmount(minBalance))
	return nil
}

func (l AssetLedger) AssetExists(ctx types.Context, asset AssetID) bool {
	return l.store(ctx, asset).Has(assetMetaKey)
}

func (l AssetLedger) minBalance(st store.KVStore, asset AssetID) (int64, error) {
	bz := st.Get(assetMetaKey)
	if bz == nil {
		return 0, sdkerrors.ErrInvalidCoins.Wrapf("unknown asset %d", asset)
	}
	return decodeAmount(bz), nil
}

func (l AssetLedger) Balance(ctx types.Context, asset AssetID, who AccountID) int64 {
	return decodeAmount(l.store(ctx, asset).Get(balanceKey(who)))
}

func (l AssetLedger) Transfer(ctx types.Context, asset AssetID, from, to AccountID, amount int64, preserve bool) error {
	st := l.store(ctx, asset)
	minBal, err := l.minBalance(st, asset)
	if err != nil {
		return err
	}
	remaining, err := debit(decodeAmount(st.Get(balanceKey(from))), amount, minBal, preserve)
	if err != nil {
		return err
	}
	if from == to || amount == 0 {
		return nil
	}
	toBal, err := credit(decodeAmount(st.Get(balanceKey(to))), amount, minBal)
	if err != nil {
		return err
	}
	setAmount(st, balanceKey(from), remaining)
	setAmount(st, balanceKey(to), toBal)
	return nil
}

func (l AssetLedger) Mint(ctx types.Context, asset AssetID, who AccountID, amount int64) error {
	st := l.store(ctx, asset)
	minBal, err := l.minBalance(st, asset)
	if err != nil {
		return err
	}
	bal, err := credit(decodeAmount(st.Get(balanceKey(who))), amount, minBal)
	if err != nil {
		return err
	}
	setAmount(st, balanceKey(who), bal)
	return nil
}

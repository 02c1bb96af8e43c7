package testutils

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/crypto/secp256k1"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/store"
	"github.com/bnb-chain/cosmos-node/common/tx"
	"github.com/bnb-chain/cosmos-node/common/types"
)

const TestChainID = "cosmos-test"

// NewTestContext returns a context over a fresh in-memory iavl store.
func NewTestContext(gasLimit types.Gas) (types.Context, *store.IavlStore) {
	st := store.NewMemIavlStore()
	header := types.Header{ChainID: TestChainID, Height: 1}
	return types.NewContext(st, header, gasLimit, log.NewNopLogger()), st
}

// generate a priv key and return it with its address
func PrivAndAddr() (crypto.PrivKey, sdk.AccAddress) {
	priv := secp256k1.GenPrivKey()
	addr := sdk.AccAddress(priv.PubKey().Address())
	return priv, addr
}

// NewAccount creates an auth account funded with free native tokens.
func NewAccount(ctx types.Context, ak account.Keeper, currency account.Currency, mapper account.AddressMapper, free int64) (crypto.PrivKey, *account.Account) {
	priv, addr := PrivAndAddr()
	acc := ak.EnsureAccount(ctx, addr)
	if free > 0 {
		if err := currency.Deposit(ctx, mapper.ToNative(ctx, addr), free); err != nil {
			panic(err)
		}
	}
	return priv, acc
}

// NewTx builds an unsigned transaction with one signer info per key.
func NewTx(msgs []types.Any, fee tx.Fee, memo string, privs []crypto.PrivKey, seqs []uint64) tx.Tx {
	infos := make([]tx.SignerInfo, len(privs))
	for i, priv := range privs {
		infos[i] = tx.SignerInfo{PubKey: priv.PubKey(), Sequence: seqs[i]}
	}
	return tx.Tx{
		Body:     &tx.TxBody{Messages: msgs, Memo: memo},
		AuthInfo: &tx.AuthInfo{SignerInfos: infos, Fee: &fee},
	}
}

// SignTx replaces the signatures of t with ones made by privs.
func SignTx(t tx.Tx, chainID string, accNums []uint64, privs []crypto.PrivKey) tx.Tx {
	sigs := make([][]byte, len(privs))
	for i, priv := range privs {
		signBytes := tx.StdSignBytes(chainID, accNums[i], t.AuthInfo.SignerInfos[i].Sequence, t)
		sig, err := priv.Sign(signBytes)
		if err != nil {
			panic(err)
		}
		sigs[i] = sig
	}
	t.Signatures = sigs
	return t
}

// NewNativeFee is a fee of amount native tokens with the given gas limit.
func NewNativeFee(denom string, amount int64, gasLimit uint64) tx.Fee {
	var coins sdk.Coins
	if amount > 0 {
		coins = sdk.Coins{sdk.NewCoin(denom, amount)}
	}
	return tx.Fee{Amount: coins, GasLimit: gasLimit}
}

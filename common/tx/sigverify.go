package tx

import (
	"bytes"

	lru "github.com/hashicorp/golang-lru"
	"github.com/tendermint/tendermint/crypto/secp256k1"

	"github.com/bnb-chain/cosmos-node/common/account"
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
)

const (
	DefaultSigVerifyCostSecp256k1 = 1000

	defaultMaxCacheNumber = 30000
)

type sigLRUCache struct {
	*lru.Cache
}

func newSigLRUCache(cap int) *sigLRUCache {
	if cap <= 0 {
		cap = defaultMaxCacheNumber
	}
	cache, err := lru.New(cap)
	if err != nil {
		panic(err)
	}

	return &sigLRUCache{
		cache,
	}
}

func (cache *sigLRUCache) getSig(txHash string) (ok bool) {
	_, ok = cache.Get(txHash)
	return ok
}

func (cache *sigLRUCache) addSig(txHash string) {
	if txHash != "" {
		cache.Add(txHash, true)
	}
}

// SigVerificationDecorator checks every signer's account, sequence and key,
// charges gas per signature and verifies the signatures.
// signature-key: txHash
// based on the assumption that tx hash will never collide.
type SigVerificationDecorator struct {
	reg      *types.MsgRegistry
	ak       account.Keeper
	sigCost  uint64
	sigCache *sigLRUCache
}

var _ AnteDecorator = SigVerificationDecorator{}

func NewSigVerificationDecorator(reg *types.MsgRegistry, ak account.Keeper, sigCost uint64, cacheSize int) SigVerificationDecorator {
	return SigVerificationDecorator{
		reg:      reg,
		ak:       ak,
		sigCost:  sigCost,
		sigCache: newSigLRUCache(cacheSize),
	}
}

func (SigVerificationDecorator) Name() string { return StepSigVerification }

func (d SigVerificationDecorator) AnteHandle(ctx types.Context, tx Tx, simulate bool) (ValidityOutcome, error) {
	signers, err := GetSigners(d.reg, tx)
	if err != nil {
		return ValidityOutcome{}, err
	}
	infos := tx.AuthInfo.SignerInfos
	if len(signers) != len(infos) {
		return ValidityOutcome{}, sdkerrors.ErrUnauthorized.Wrapf(
			"invalid number of signer; expected: %d, got %d", len(signers), len(infos))
	}

	txHash := tx.HashString()
	cached := !simulate && d.sigCache.getSig(txHash)
	if cached {
		ctx.Logger().Debug("Tx hits sig cache", "txHash", txHash)
	}

	for i, signer := range signers {
		addr, err := types.ParseAccAddress(signer)
		if err != nil {
			return ValidityOutcome{}, err
		}
		acc := d.ak.GetAccount(ctx, addr)
		if acc == nil {
			return ValidityOutcome{}, sdkerrors.ErrUnknownAddress.Wrapf("account %s does not exist", signer)
		}

		info := infos[i]
		if info.Sequence != acc.Sequence {
			return ValidityOutcome{}, SequenceMismatchError{Address: signer, Expected: acc.Sequence, Got: info.Sequence}
		}

		pubKey, ok := info.PubKey.(secp256k1.PubKeySecp256k1)
		if !ok {
			return ValidityOutcome{}, sdkerrors.ErrInvalidPubKey.Wrapf("unrecognized public key type: %T", info.PubKey)
		}
		if acc.PubKey == nil {
			if !bytes.Equal(pubKey.Address(), addr) {
				return ValidityOutcome{}, sdkerrors.ErrInvalidPubKey.Wrapf("pubKey does not match signer address %s", signer)
			}
		} else if !acc.PubKey.Equals(pubKey) {
			return ValidityOutcome{}, sdkerrors.ErrInvalidPubKey.Wrap("pubKey of account does not match pubKey of signer info")
		}

		if err := ctx.GasMeter().ConsumeGas(d.sigCost, "ante verify: secp256k1"); err != nil {
			return ValidityOutcome{}, err
		}

		if simulate {
			continue
		}
		if !cached {
			signBytes := StdSignBytes(ctx.ChainID(), acc.AccountNumber, info.Sequence, tx)
			if !pubKey.VerifyBytes(signBytes, tx.Signatures[i]) {
				return ValidityOutcome{}, sdkerrors.ErrUnauthorized.Wrapf(
					"signature verification failed; please verify account number (%d), sequence (%d) and chain-id (%s)",
					acc.AccountNumber, info.Sequence, ctx.ChainID())
			}
		}
		// first use of the account's key
		if acc.PubKey == nil {
			acc.PubKey = pubKey
			d.ak.SetAccount(ctx, acc)
		}
	}

	if !simulate && !cached {
		d.sigCache.addSig(txHash)
	}
	return ValidityOutcome{}, nil
}

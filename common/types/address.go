package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/libs/bech32"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
)

const DefaultBech32PrefixAccAddr = "cosmos"

var bech32PrefixAccAddr = DefaultBech32PrefixAccAddr

// SetBech32PrefixAccAddr changes the human readable part expected of account
// addresses. It is meant to be called once at startup.
func SetBech32PrefixAccAddr(prefix string) {
	bech32PrefixAccAddr = prefix
}

func Bech32PrefixAccAddr() string {
	return bech32PrefixAccAddr
}

// ParseAccAddress decodes a bech32 account address of exactly sdk.AddrLen bytes.
func ParseAccAddress(s string) (sdk.AccAddress, error) {
	if len(s) == 0 {
		return nil, sdkerrors.ErrInvalidAddress.Wrap("empty address string is not allowed")
	}
	hrp, bz, err := bech32.DecodeAndConvert(s)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("%s: %s", s, err.Error())
	}
	if hrp != bech32PrefixAccAddr {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid bech32 prefix; expected %s, got %s", bech32PrefixAccAddr, hrp)
	}
	if len(bz) != sdk.AddrLen {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("expected %d bytes, got %d", sdk.AddrLen, len(bz))
	}
	return sdk.AccAddress(bz), nil
}

// MustBech32ifyAccAddress encodes addr with the configured prefix.
func MustBech32ifyAccAddress(addr sdk.AccAddress) string {
	s, err := bech32.ConvertAndEncode(bech32PrefixAccAddr, addr)
	if err != nil {
		panic(err)
	}
	return s
}

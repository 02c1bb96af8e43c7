package bank

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
)

const MsgSendType = "/cosmos.bank.v1beta1.MsgSend"

var _ types.Msg = MsgSend{}

// MsgSend moves coins from one account to another.
type MsgSend struct {
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	Amount      sdk.Coins `json:"amount"`
}

func NewMsgSend(from, to string, amount sdk.Coins) MsgSend {
	return MsgSend{
		FromAddress: from,
		ToAddress:   to,
		Amount:      amount,
	}
}

func (msg MsgSend) Type() string { return MsgSendType }
func (msg MsgSend) String() string {
	return fmt.Sprintf("MsgSend{%s -> %s: %s}", msg.FromAddress, msg.ToAddress, msg.Amount)
}
func (msg MsgSend) GetSigners() []string { return []string{msg.FromAddress} }

func (msg MsgSend) ValidateBasic() error {
	if _, err := types.ParseAccAddress(msg.FromAddress); err != nil {
		return sdkerrors.Wrap(err, "invalid from address")
	}
	if _, err := types.ParseAccAddress(msg.ToAddress); err != nil {
		return sdkerrors.Wrap(err, "invalid to address")
	}
	if len(msg.Amount) == 0 || !msg.Amount.IsValid() || !msg.Amount.IsPositive() {
		return sdkerrors.ErrInvalidCoins.Wrap(msg.Amount.String())
	}
	return nil
}

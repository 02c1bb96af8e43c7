package tx

import (
	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
)

// GetSigners returns the addresses that must sign tx: the signers of every
// message in body order without duplicates, then the fee payer if it is set
// and not already present.
func GetSigners(reg *types.MsgRegistry, tx Tx) ([]string, error) {
	if tx.Body == nil {
		return nil, sdkerrors.ErrEmptyTxBody
	}

	seen := make(map[string]struct{})
	var signers []string
	add := func(addr string) {
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		signers = append(signers, addr)
	}

	for _, packed := range tx.Body.Messages {
		msg, err := reg.Unpack(packed)
		if err != nil {
			return nil, err
		}
		for _, addr := range msg.GetSigners() {
			add(addr)
		}
	}

	fee := tx.fee()
	if fee == nil {
		return nil, sdkerrors.ErrEmptyFee
	}
	if fee.Payer != "" {
		add(fee.Payer)
	}
	return signers, nil
}

// FeePayer returns the explicit fee payer, or the first signer.
func FeePayer(reg *types.MsgRegistry, tx Tx) (string, error) {
	if fee := tx.fee(); fee != nil && fee.Payer != "" {
		return fee.Payer, nil
	}
	signers, err := GetSigners(reg, tx)
	if err != nil {
		return "", err
	}
	if len(signers) == 0 {
		return "", sdkerrors.ErrEmptySigners
	}
	return signers[0], nil
}

// Sequence returns the sequence tx claims for its fee payer. An explicit
// payer's signer info comes last; otherwise the first signer pays.
func Sequence(tx Tx) (uint64, error) {
	if tx.AuthInfo == nil {
		return 0, sdkerrors.ErrEmptyAuthInfo
	}
	fee := tx.AuthInfo.Fee
	if fee == nil {
		return 0, sdkerrors.ErrEmptyFee
	}
	infos := tx.AuthInfo.SignerInfos
	if len(infos) == 0 {
		return 0, sdkerrors.ErrEmptySigners
	}
	if fee.Payer == "" {
		return infos[0].Sequence, nil
	}
	return infos[len(infos)-1].Sequence, nil
}

package wasm

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tidwall/gjson"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
	"github.com/bnb-chain/cosmos-node/common/types"
)

const (
	MsgStoreCodeType            = "/cosmwasm.wasm.v1.MsgStoreCode"
	MsgInstantiateContractType  = "/cosmwasm.wasm.v1.MsgInstantiateContract"
	MsgInstantiateContract2Type = "/cosmwasm.wasm.v1.MsgInstantiateContract2"
	MsgExecuteContractType      = "/cosmwasm.wasm.v1.MsgExecuteContract"
	MsgMigrateContractType      = "/cosmwasm.wasm.v1.MsgMigrateContract"
	MsgUpdateAdminType          = "/cosmwasm.wasm.v1.MsgUpdateAdmin"
	MsgClearAdminType           = "/cosmwasm.wasm.v1.MsgClearAdmin"
)

const (
	MaxWasmSize  = 800 * 1024
	MaxLabelSize = 128
	MaxSaltSize  = 64
)

var (
	_ types.Msg = MsgStoreCode{}
	_ types.Msg = MsgInstantiateContract{}
	_ types.Msg = MsgInstantiateContract2{}
	_ types.Msg = MsgExecuteContract{}
	_ types.Msg = MsgMigrateContract{}
	_ types.Msg = MsgUpdateAdmin{}
	_ types.Msg = MsgClearAdmin{}
)

// MsgStoreCode uploads contract byte code.
type MsgStoreCode struct {
	Sender       string `json:"sender"`
	WASMByteCode []byte `json:"wasm_byte_code"`
}

func (msg MsgStoreCode) Type() string { return MsgStoreCodeType }
func (msg MsgStoreCode) GetSigners() []string { return []string{msg.Sender} }
func (msg MsgStoreCode) String() string {
	return fmt.Sprintf("MsgStoreCode{%s, %d bytes}", msg.Sender, len(msg.WASMByteCode))
}

func (msg MsgStoreCode) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	return validateWasmCode(msg.WASMByteCode)
}

// MsgInstantiateContract creates a contract from stored code. The address
// is derived from the code id and a global instance counter.
type MsgInstantiateContract struct {
	Sender string    `json:"sender"`
	Admin  string    `json:"admin"`
	CodeID uint64    `json:"code_id"`
	Label  string    `json:"label"`
	Msg    []byte    `json:"msg"`
	Funds  sdk.Coins `json:"funds"`
}

func (msg MsgInstantiateContract) Type() string { return MsgInstantiateContractType }
func (msg MsgInstantiateContract) GetSigners() []string { return []string{msg.Sender} }

func (msg MsgInstantiateContract) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	return validateInstantiate(msg.Admin, msg.CodeID, msg.Label, msg.Msg, msg.Funds)
}

// MsgInstantiateContract2 creates a contract at an address predictable from
// the code checksum, the sender and the salt. FixMsg adds Msg to the
// derivation.
type MsgInstantiateContract2 struct {
	Sender string    `json:"sender"`
	Admin  string    `json:"admin"`
	CodeID uint64    `json:"code_id"`
	Label  string    `json:"label"`
	Msg    []byte    `json:"msg"`
	Funds  sdk.Coins `json:"funds"`
	Salt   []byte    `json:"salt"`
	FixMsg bool      `json:"fix_msg"`
}

func (msg MsgInstantiateContract2) Type() string { return MsgInstantiateContract2Type }
func (msg MsgInstantiateContract2) GetSigners() []string { return []string{msg.Sender} }

func (msg MsgInstantiateContract2) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if err := validateInstantiate(msg.Admin, msg.CodeID, msg.Label, msg.Msg, msg.Funds); err != nil {
		return err
	}
	switch n := len(msg.Salt); {
	case n == 0:
		return ErrEmpty.Wrap("salt")
	case n > MaxSaltSize:
		return ErrLimit.Wrapf("salt size %d > %d", n, MaxSaltSize)
	}
	return nil
}

// MsgExecuteContract calls a contract, optionally sending it funds.
type MsgExecuteContract struct {
	Sender   string    `json:"sender"`
	Contract string    `json:"contract"`
	Msg      []byte    `json:"msg"`
	Funds    sdk.Coins `json:"funds"`
}

func (msg MsgExecuteContract) Type() string { return MsgExecuteContractType }
func (msg MsgExecuteContract) GetSigners() []string { return []string{msg.Sender} }

func (msg MsgExecuteContract) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if _, err := types.ParseAccAddress(msg.Contract); err != nil {
		return sdkerrors.Wrap(err, "contract")
	}
	if err := validateFunds(msg.Funds); err != nil {
		return err
	}
	return validateContractMsg(msg.Msg)
}

// MsgMigrateContract moves a contract to new code. Only the admin may do it.
type MsgMigrateContract struct {
	Sender   string `json:"sender"`
	Contract string `json:"contract"`
	CodeID   uint64 `json:"code_id"`
	Msg      []byte `json:"msg"`
}

func (msg MsgMigrateContract) Type() string { return MsgMigrateContractType }
func (msg MsgMigrateContract) GetSigners() []string { return []string{msg.Sender} }

func (msg MsgMigrateContract) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if msg.CodeID == 0 {
		return ErrInvalid.Wrap("code id is required")
	}
	if _, err := types.ParseAccAddress(msg.Contract); err != nil {
		return sdkerrors.Wrap(err, "contract")
	}
	return validateContractMsg(msg.Msg)
}

// MsgUpdateAdmin hands contract administration to NewAdmin.
type MsgUpdateAdmin struct {
	Sender   string `json:"sender"`
	NewAdmin string `json:"new_admin"`
	Contract string `json:"contract"`
}

func (msg MsgUpdateAdmin) Type() string { return MsgUpdateAdminType }
func (msg MsgUpdateAdmin) GetSigners() []string { return []string{msg.Sender} }

func (msg MsgUpdateAdmin) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if _, err := types.ParseAccAddress(msg.Contract); err != nil {
		return sdkerrors.Wrap(err, "contract")
	}
	if _, err := types.ParseAccAddress(msg.NewAdmin); err != nil {
		return sdkerrors.Wrap(err, "new admin")
	}
	if msg.NewAdmin == msg.Sender {
		return ErrInvalidMsg.Wrap("new admin is the same as the old")
	}
	return nil
}

// MsgClearAdmin removes the admin, freezing the contract code.
type MsgClearAdmin struct {
	Sender   string `json:"sender"`
	Contract string `json:"contract"`
}

func (msg MsgClearAdmin) Type() string { return MsgClearAdminType }
func (msg MsgClearAdmin) GetSigners() []string { return []string{msg.Sender} }

func (msg MsgClearAdmin) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if _, err := types.ParseAccAddress(msg.Contract); err != nil {
		return sdkerrors.Wrap(err, "contract")
	}
	return nil
}

func validateSender(sender string) error {
	if _, err := types.ParseAccAddress(sender); err != nil {
		return sdkerrors.Wrap(err, "sender")
	}
	return nil
}

func validateWasmCode(code []byte) error {
	if len(code) == 0 {
		return ErrEmpty.Wrap("wasm byte code")
	}
	if len(code) > MaxWasmSize {
		return ErrLimit.Wrapf("wasm byte code size %d > %d", len(code), MaxWasmSize)
	}
	return nil
}

func validateInstantiate(admin string, codeID uint64, label string, msg []byte, funds sdk.Coins) error {
	if codeID == 0 {
		return ErrInvalid.Wrap("code id is required")
	}
	if label == "" {
		return ErrEmpty.Wrap("label is required")
	}
	if len(label) > MaxLabelSize {
		return ErrLimit.Wrapf("label size %d > %d", len(label), MaxLabelSize)
	}
	if admin != "" {
		if _, err := types.ParseAccAddress(admin); err != nil {
			return sdkerrors.Wrap(err, "admin")
		}
	}
	if err := validateFunds(funds); err != nil {
		return err
	}
	return validateContractMsg(msg)
}

func validateFunds(funds sdk.Coins) error {
	if len(funds) > 0 && (!funds.IsValid() || !funds.IsPositive()) {
		return sdkerrors.ErrInvalidCoins.Wrap(funds.String())
	}
	return nil
}

// validateContractMsg requires the payload to be a JSON object.
func validateContractMsg(msg []byte) error {
	if len(msg) == 0 {
		return ErrEmpty.Wrap("msg")
	}
	if !gjson.ValidBytes(msg) || !gjson.ParseBytes(msg).IsObject() {
		return ErrInvalid.Wrap("msg must be a json object")
	}
	return nil
}

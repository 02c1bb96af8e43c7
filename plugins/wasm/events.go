package wasm

import (
	"strconv"
	"strings"

	"github.com/bnb-chain/cosmos-node/common/types"
)

const (
	ModuleName = "wasm"

	// WasmModuleEventType carries the attributes a contract returns.
	WasmModuleEventType = "wasm"
	// CustomContractEventPrefix keeps contract defined events apart from
	// system events.
	CustomContractEventPrefix = "wasm-"

	EventTypeStoreCode           = "store_code"
	EventTypeInstantiate         = "instantiate"
	EventTypeExecute             = "execute"
	EventTypeMigrate             = "migrate"
	EventTypeUpdateContractAdmin = "update_contract_admin"
	EventTypeMessage             = "message"
)

const (
	// AttributeReservedPrefix may not start a contract attribute key.
	AttributeReservedPrefix = "_"

	AttributeKeyContractAddr = "_contract_address"
	AttributeKeyCodeID       = "code_id"
	AttributeKeyChecksum     = "code_checksum"
	AttributeKeyNewAdmin     = "new_admin_address"
	AttributeKeySender       = "sender"
	AttributeKeyModule       = "module"
)

// emitContractEvents turns a contract response into events. The contract's
// own attributes form the "wasm" event and each custom event gets the
// "wasm-" prefix. Every event starts with the contract address.
func emitContractEvents(ctx types.Context, contractAddr string, res *Response) error {
	if res == nil {
		return nil
	}
	addrAttr := types.NewAttribute(AttributeKeyContractAddr, contractAddr)

	var events types.Events
	if len(res.Attributes) > 0 {
		if err := validateAttributes(res.Attributes); err != nil {
			return err
		}
		events = append(events, types.NewEvent(WasmModuleEventType, addrAttr).AppendAttributes(res.Attributes...))
	}
	for _, e := range res.Events {
		typ := strings.TrimSpace(e.Type)
		if len(typ) <= 1 {
			return ErrInvalidEvent.Wrapf("event type too short: %q", e.Type)
		}
		if err := validateAttributes(e.Attributes); err != nil {
			return err
		}
		events = append(events, types.NewEvent(CustomContractEventPrefix+typ, addrAttr).AppendAttributes(e.Attributes...))
	}
	ctx.EventManager().EmitEvents(events)
	return nil
}

func validateAttributes(attrs []types.Attribute) error {
	for _, attr := range attrs {
		key := strings.TrimSpace(string(attr.Key))
		if key == "" {
			return ErrInvalidEvent.Wrap("empty attribute key")
		}
		if strings.HasPrefix(key, AttributeReservedPrefix) {
			return ErrInvalidEvent.Wrapf("attribute key %q is reserved", key)
		}
	}
	return nil
}

func responseData(res *Response) []byte {
	if res == nil {
		return nil
	}
	return res.Data
}

func uintString(v uint64) string {
	return strconv.FormatUint(v, 10)
}

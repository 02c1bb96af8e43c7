package types

import (
	"fmt"
	"reflect"

	amino "github.com/tendermint/go-amino"

	"github.com/bnb-chain/cosmos-node/common/sdkerrors"
)

// Msg is a concrete message decoded from a transaction body.
type Msg interface {
	// Type returns the stable type URL, e.g. "/cosmos.bank.v1beta1.MsgSend".
	Type() string

	// ValidateBasic runs stateless checks on the message fields.
	ValidateBasic() error

	// GetSigners returns the bech32 addresses that must sign the
	// transaction carrying this message, in a deterministic order.
	GetSigners() []string
}

// Any is an opaque message payload tagged with its type URL.
type Any struct {
	TypeURL string `json:"type_url"`
	Value   []byte `json:"value"`
}

// MsgRegistry maps type URLs to concrete message types and decodes opaque
// payloads into them.
type MsgRegistry struct {
	cdc   *amino.Codec
	types map[string]reflect.Type
}

func NewMsgRegistry(cdc *amino.Codec) *MsgRegistry {
	return &MsgRegistry{
		cdc:   cdc,
		types: make(map[string]reflect.Type),
	}
}

// RegisterMsg records the concrete type of msg under msg.Type().
// Registering a type URL twice panics.
func (r *MsgRegistry) RegisterMsg(msg Msg) {
	url := msg.Type()
	if _, ok := r.types[url]; ok {
		panic(fmt.Sprintf("message type %s is already registered", url))
	}
	r.types[url] = reflect.TypeOf(msg)
}

func (r *MsgRegistry) IsRegistered(typeURL string) bool {
	_, ok := r.types[typeURL]
	return ok
}

// TypeURLs lists every registered type URL.
func (r *MsgRegistry) TypeURLs() []string {
	urls := make([]string, 0, len(r.types))
	for url := range r.types {
		urls = append(urls, url)
	}
	return urls
}

// Pack encodes msg into an Any.
func (r *MsgRegistry) Pack(msg Msg) (Any, error) {
	bz, err := r.cdc.MarshalBinaryBare(msg)
	if err != nil {
		return Any{}, sdkerrors.ErrPackAny.Wrap(err.Error())
	}
	return Any{TypeURL: msg.Type(), Value: bz}, nil
}

// MustPack is Pack that panics on error.
func (r *MsgRegistry) MustPack(msg Msg) Any {
	packed, err := r.Pack(msg)
	if err != nil {
		panic(err)
	}
	return packed
}

// Unpack decodes packed into a freshly allocated value of its registered type.
// Decoding the same payload twice yields equal values.
func (r *MsgRegistry) Unpack(packed Any) (Msg, error) {
	typ, ok := r.types[packed.TypeURL]
	if !ok {
		return nil, sdkerrors.ErrUnpackAny.Wrapf("no concrete type registered for type URL %s", packed.TypeURL)
	}

	ptr := reflect.New(typ)
	if err := r.cdc.UnmarshalBinaryBare(packed.Value, ptr.Interface()); err != nil {
		return nil, sdkerrors.ErrUnpackAny.Wrapf("cannot unpack %s: %s", packed.TypeURL, err.Error())
	}

	msg, ok := ptr.Elem().Interface().(Msg)
	if !ok {
		return nil, sdkerrors.ErrInvalidType.Wrapf("%s does not implement Msg", typ)
	}
	return msg, nil
}

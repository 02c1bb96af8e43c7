package wire

import (
	"bytes"
	"encoding/json"

	amino "github.com/tendermint/go-amino"
	cryptoAmino "github.com/tendermint/tendermint/crypto/encoding/amino"
)

// amino codec to marshal/unmarshal
type Codec = amino.Codec

func NewCodec() *Codec {
	cdc := amino.NewCodec()
	return cdc
}

// Register the go-crypto to the codec
func RegisterCrypto(cdc *Codec) {
	cryptoAmino.RegisterAmino(cdc)
}

// Decoder fills ptr from bz using cdc.
type Decoder func(cdc *Codec, bz []byte, ptr interface{}) error

func BinaryDecoder(cdc *Codec, bz []byte, ptr interface{}) error {
	return cdc.UnmarshalBinaryLengthPrefixed(bz, ptr)
}

func JSONDecoder(cdc *Codec, bz []byte, ptr interface{}) error {
	return cdc.UnmarshalJSON(bz, ptr)
}

// ComposeDecoders tries each decoder in turn and returns the error of the
// last one if none succeeds.
func ComposeDecoders(decoders ...Decoder) Decoder {
	return func(cdc *Codec, bz []byte, ptr interface{}) error {
		var err error
		for _, decode := range decoders {
			if err = decode(cdc, bz, ptr); err == nil {
				return nil
			}
		}
		return err
	}
}

// attempt to make some pretty json
func MarshalJSONIndent(cdc *Codec, obj interface{}) ([]byte, error) {
	bz, err := cdc.MarshalJSON(obj)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err = json.Indent(&out, bz, "", "  ")
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

//__________________________________________________________________

// generic sealed codec to be used throughout the node
var Cdc *Codec

func init() {
	cdc := NewCodec()
	RegisterCrypto(cdc)
	Cdc = cdc.Seal()
}

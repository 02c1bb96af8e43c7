package sdkerrors

// Root codespace errors. Codes match the Cosmos SDK so that clients built for
// Cosmos chains interpret rejections the same way.
var (
	ErrInternal                = Register(RootCodespace, internalABCICode, "internal")
	ErrTxDecode                = Register(RootCodespace, 2, "tx parse error")
	ErrInvalidSequence         = Register(RootCodespace, 3, "invalid sequence")
	ErrUnauthorized            = Register(RootCodespace, 4, "unauthorized")
	ErrInsufficientFunds       = Register(RootCodespace, 5, "insufficient funds")
	ErrUnknownRequest          = Register(RootCodespace, 6, "unknown request")
	ErrInvalidAddress          = Register(RootCodespace, 7, "invalid address")
	ErrInvalidPubKey           = Register(RootCodespace, 8, "invalid pubkey")
	ErrUnknownAddress          = Register(RootCodespace, 9, "unknown address")
	ErrInvalidCoins            = Register(RootCodespace, 10, "invalid coins")
	ErrOutOfGas                = Register(RootCodespace, 11, "out of gas")
	ErrMemoTooLarge            = Register(RootCodespace, 12, "memo too large")
	ErrInsufficientFee         = Register(RootCodespace, 13, "insufficient fee")
	ErrTooManySignatures       = Register(RootCodespace, 14, "maximum number of signatures exceeded")
	ErrNoSignatures            = Register(RootCodespace, 15, "no signatures supplied")
	ErrJSONMarshal             = Register(RootCodespace, 16, "failed to marshal JSON bytes")
	ErrJSONUnmarshal           = Register(RootCodespace, 17, "failed to unmarshal JSON bytes")
	ErrInvalidRequest          = Register(RootCodespace, 18, "invalid request")
	ErrTxInMempoolCache        = Register(RootCodespace, 19, "tx already in mempool")
	ErrMempoolIsFull           = Register(RootCodespace, 20, "mempool is full")
	ErrTxTooLarge              = Register(RootCodespace, 21, "tx too large")
	ErrKeyNotFound             = Register(RootCodespace, 22, "key not found")
	ErrWrongPassword           = Register(RootCodespace, 23, "invalid account password")
	ErrInvalidSigner           = Register(RootCodespace, 24, "tx intended signer does not match the given signer")
	ErrInvalidGasAdjustment    = Register(RootCodespace, 25, "invalid gas adjustment")
	ErrInvalidHeight           = Register(RootCodespace, 26, "invalid height")
	ErrInvalidVersion          = Register(RootCodespace, 27, "invalid version")
	ErrInvalidChainID          = Register(RootCodespace, 28, "invalid chain-id")
	ErrInvalidType             = Register(RootCodespace, 29, "invalid type")
	ErrTxTimeoutHeight         = Register(RootCodespace, 30, "tx timeout height")
	ErrUnknownExtensionOptions = Register(RootCodespace, 31, "unknown extension options")
	ErrWrongSequence           = Register(RootCodespace, 32, "incorrect account sequence")
	ErrPackAny                 = Register(RootCodespace, 33, "failed packing protobuf message to Any")
	ErrUnpackAny               = Register(RootCodespace, 34, "failed unpacking protobuf message from Any")
	ErrLogic                   = Register(RootCodespace, 35, "internal logic error")
	ErrConflict                = Register(RootCodespace, 36, "conflict")
	ErrNotSupported            = Register(RootCodespace, 37, "feature not supported")
	ErrNotFound                = Register(RootCodespace, 38, "not found")
	ErrIO                      = Register(RootCodespace, 39, "Internal IO error")
	ErrAppConfig               = Register(RootCodespace, 40, "error in app.toml")
	ErrInvalidGasLimit         = Register(RootCodespace, 41, "invalid gas limit")
)

// Missing parts of a transaction envelope.
var (
	ErrEmptyTxBody   = Register(RootCodespace, 42, "empty tx body")
	ErrEmptyAuthInfo = Register(RootCodespace, 43, "empty auth info")
	ErrEmptyFee      = Register(RootCodespace, 44, "empty fee")
	ErrEmptySigners  = Register(RootCodespace, 45, "empty signers")
)

package common

// Key prefixes of the substores sharing the ledger tree.
var (
	AccountStorePrefix = []byte{0x01}
	BalanceStorePrefix = []byte{0x02}
	AssetStorePrefix   = []byte{0x03}
	AddressStorePrefix = []byte{0x04}
	WasmStorePrefix    = []byte{0x05}
	FeeStorePrefix     = []byte{0x06}
)

package types

// Handler executes one message against the ledger. It decodes the opaque
// payload itself, so a malformed payload is a handler failure rather than a
// routing failure.
type Handler func(ctx Context, msg Any) error

// Package sdkerrors implements the codespace/code error taxonomy used by the
// transaction admission pipeline and the message handlers.
//
// Every condition a caller may need to tell apart is registered once as an
// *Error under a (codespace, code) pair. Call sites wrap registered errors
// with context, and ABCIInfo recovers the pair from any wrapped chain.
package sdkerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Codespace identifies the subsystem that owns an error code.
type Codespace uint8

const (
	// RootCodespace holds the transaction-level checks shared by every module.
	RootCodespace Codespace = 0
	// WasmCodespace holds contract execution errors.
	WasmCodespace Codespace = 1
)

// SuccessABCICode is returned by ABCIInfo for a nil error.
const SuccessABCICode uint32 = 0

// internalABCICode is reported for errors that were never registered.
const internalABCICode uint32 = 1

var usedCodes = map[Codespace]map[uint32]*Error{}

// Register returns a new error identity for the given codespace and code.
// Registering the same pair twice panics, as does code 0.
func Register(codespace Codespace, code uint32, description string) *Error {
	if code == SuccessABCICode {
		panic("error code 0 is reserved for success")
	}
	if e := getUsed(codespace, code); e != nil {
		panic(fmt.Sprintf("error with code %d is already registered in codespace %d: %q", code, codespace, e.desc))
	}

	err := &Error{codespace: codespace, code: code, desc: description}
	setUsed(err)
	return err
}

func getUsed(codespace Codespace, code uint32) *Error {
	if codes, ok := usedCodes[codespace]; ok {
		return codes[code]
	}
	return nil
}

func setUsed(err *Error) {
	if _, ok := usedCodes[err.codespace]; !ok {
		usedCodes[err.codespace] = map[uint32]*Error{}
	}
	usedCodes[err.codespace][err.code] = err
}

// Error is a registered error identity.
type Error struct {
	codespace Codespace
	code      uint32
	desc      string
}

func (e *Error) Error() string {
	return e.desc
}

func (e *Error) Codespace() Codespace {
	return e.codespace
}

func (e *Error) ABCICode() uint32 {
	return e.code
}

// Is matches errors with the same codespace and code so that a value
// recovered from a decoded response compares equal to the registered one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.codespace == t.codespace && e.code == t.code
}

// Wrap extends e with an additional description.
func (e *Error) Wrap(desc string) error {
	return Wrap(e, desc)
}

// Wrapf extends e with an additional formatted description.
func (e *Error) Wrapf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Wrap returns nil when err is nil. Otherwise the returned error keeps the
// identity of err and prefixes its message with description.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, description)
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsOf reports whether err is any of the given registered errors.
func IsOf(err error, errs ...*Error) bool {
	for _, target := range errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// CosmosError is the flat {codespace, code} identity handed back to the host
// as the reason a transaction was rejected.
type CosmosError struct {
	Codespace Codespace `json:"codespace"`
	Code      uint32    `json:"code"`
}

func (c CosmosError) IsOK() bool {
	return c.Code == SuccessABCICode
}

func (c CosmosError) String() string {
	return fmt.Sprintf("codespace=%d code=%d", c.Codespace, c.Code)
}

// ABCIInfo returns the codespace, code and log message for err.
// Unregistered errors are reported as root internal errors so that no
// implementation detail leaks into the result.
func ABCIInfo(err error) (codespace Codespace, code uint32, log string) {
	if err == nil {
		return RootCodespace, SuccessABCICode, ""
	}

	var registered *Error
	if errors.As(err, &registered) {
		return registered.codespace, registered.code, err.Error()
	}
	return RootCodespace, internalABCICode, "internal: " + err.Error()
}

// ToCosmosError flattens err into its {codespace, code} identity.
func ToCosmosError(err error) CosmosError {
	codespace, code, _ := ABCIInfo(err)
	return CosmosError{Codespace: codespace, Code: code}
}

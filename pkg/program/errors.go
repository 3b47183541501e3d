package program

import "fmt"

// Code is the stable numeric error code surfaced to the caller when a
// request is rejected. Codes 0-4 match the on-chain custom error space;
// the rest cover structural and identity failures.
type Code uint32

const (
	CodeWrongService Code = iota
	CodeShortTransferPayload
	CodeNotTransfer
	CodeWrongDestination
	CodeOrderTooLarge
	CodeNoPrecedingDeposit
	CodeUnexpectedInvocation
	CodeSeedMismatch
	CodeMalformedInstruction
	CodeMalformedAccount
	CodeAccountCount
)

// Error is a terminal program error. Every rejection aborts the enclosing
// transaction; there is no partial application.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("swap program error %d: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("swap program error %d: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches errors by code so callers can test against the sentinels below
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *Error) withCause(cause error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Cause: cause}
}

var (
	ErrWrongService         = &Error{Code: CodeWrongService, Message: "preceding instruction does not target the token program"}
	ErrShortTransferPayload = &Error{Code: CodeShortTransferPayload, Message: "preceding token instruction payload too short"}
	ErrNotTransfer          = &Error{Code: CodeNotTransfer, Message: "preceding token instruction is not a transfer"}
	ErrWrongDestination     = &Error{Code: CodeWrongDestination, Message: "preceding transfer destination is not the pool's base vault"}
	ErrOrderTooLarge        = &Error{Code: CodeOrderTooLarge, Message: "converted output amount exceeds 64 bits"}
	ErrNoPrecedingDeposit   = &Error{Code: CodeNoPrecedingDeposit, Message: "swap is the first instruction, no preceding deposit"}
	ErrUnexpectedInvocation = &Error{Code: CodeUnexpectedInvocation, Message: "current instruction does not target this program"}
	ErrSeedMismatch         = &Error{Code: CodeSeedMismatch, Message: "account does not match its derived address"}
	ErrMalformedInstruction = &Error{Code: CodeMalformedInstruction, Message: "malformed instruction payload"}
	ErrMalformedAccount     = &Error{Code: CodeMalformedAccount, Message: "account data smaller than the pool record"}
	ErrAccountCount         = &Error{Code: CodeAccountCount, Message: "wrong number of accounts"}
)

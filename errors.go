package chainberry

import (
	"errors"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
)

const codespace = "chainberry"

// The error taxonomy. Every error returned by this library wraps exactly
// one of these, so callers can classify with errors.Is and decide whether
// a retry is safe:
//
//   - ErrValidation, ErrEncoding, ErrDecode, ErrSigning: never retryable.
//   - ErrTransport: the round-trip did not complete; retryable.
//   - ErrChainRejected: the node executed and rejected the transaction;
//     retryability depends on the rejection code (see RejectionError).
var (
	// ErrValidation: caller-supplied data failed a local precondition.
	// Detected before any network call.
	ErrValidation = sdkerrors.Register(codespace, 1, "invalid request")

	// ErrEncoding: a value could not be marshaled to its wire form.
	ErrEncoding = sdkerrors.Register(codespace, 2, "wire encoding failed")

	// ErrTransport: the connection could not complete the round-trip.
	ErrTransport = sdkerrors.Register(codespace, 3, "transport failure")

	// ErrDecode: a wire response could not be unmarshaled into the
	// expected type. Indicates a client/node schema mismatch.
	ErrDecode = sdkerrors.Register(codespace, 4, "wire decoding failed")

	// ErrSigning: the signing capability refused or failed to produce
	// a signature.
	ErrSigning = sdkerrors.Register(codespace, 5, "signing failed")

	// ErrChainRejected: the node executed the request and explicitly
	// rejected it. Carried by RejectionError.
	ErrChainRejected = sdkerrors.Register(codespace, 6, "rejected by chain")
)

// RejectionError reports that the node rejected a broadcast transaction.
// The sequence number has been consumed even though the transaction was
// not included; blind resubmission of the same envelope will be rejected
// again with a sequence mismatch.
type RejectionError struct {
	// Code is the chain-defined rejection code (never zero).
	Code uint32
	// TxHash identifies the rejected transaction.
	TxHash string
	// RawLog is the node's diagnostic output for the rejection.
	RawLog string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("tx %s rejected with code %d: %s", e.TxHash, e.Code, e.RawLog)
}

// Unwrap ties RejectionError into the taxonomy, so that
// errors.Is(err, ErrChainRejected) holds.
func (e *RejectionError) Unwrap() error { return ErrChainRejected }

// IsRejected checks whether an error is a chain rejection and returns it.
func IsRejected(err error) (*RejectionError, bool) {
	var r *RejectionError
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

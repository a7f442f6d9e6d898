// Package chainberry is a client library for Cosmos-SDK-compatible
// blockchains: it assembles protocol messages into signed transactions,
// broadcasts them, and issues typed read-only queries against a node.
//
// The core [Connection] interface is the only thing the library requires
// from a node: an opaque bytes-in/bytes-out query path and a broadcast
// path. Everything else — the signing pipeline in package tx, the generic
// dispatcher in package query, the module operations in package bank —
// is built on top of it. The grpc subpackage provides a ready-made
// Connection; test doubles live in the testing subpackage.
package chainberry

import (
	"context"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
)

// Connection is a transport-agnostic connection to a chain node.
// Both the gRPC client and in-process test doubles implement this.
//
// Implementations report transport failures only: a broadcast that the
// node accepts, executes, and rejects still returns a receipt (with a
// non-zero code) and a nil error. Classifying rejections is the signing
// pipeline's job, because only it knows the sequence-number consequences.
type Connection interface {
	// Query performs a unary request against a fully-qualified method
	// path of the form "/<package>.<Service>/<Method>". The request and
	// response bytes are opaque to the connection.
	Query(ctx context.Context, method string, req []byte) ([]byte, error)

	// Broadcast submits a serialized signed transaction for inclusion.
	Broadcast(ctx context.Context, txBytes []byte) (*BroadcastReceipt, error)

	// Close terminates the connection.
	Close() error
}

// Signer is the key capability consumed by the signing pipeline. The
// library never persists or derives key material; it only asks a Signer
// for signatures over canonical payloads.
type Signer interface {
	// Address renders the signer's account address under the given
	// bech32 human-readable prefix.
	Address(prefix string) (string, error)

	// PubKey returns the public key that verifies this signer's
	// signatures. It is embedded in the transaction envelope.
	PubKey() cryptotypes.PubKey

	// Sign produces a signature over the canonical sign payload.
	// A Signer that rejects a payload once is assumed to reject it
	// again; callers must not retry.
	Sign(payload []byte) ([]byte, error)
}

// BroadcastReceipt is the node's acknowledgment of a submitted
// transaction.
type BroadcastReceipt struct {
	// TxHash is the transaction identifier assigned by the node.
	TxHash string
	// Code is the inclusion result. 0 = accepted. Non-zero = rejected;
	// the meaning of each code is chain-defined.
	Code uint32
	// RawLog is diagnostic log output (non-deterministic, debugging only).
	RawLog string
	// Height is the block height at which the result was produced,
	// if the node reported one.
	Height int64
}

// Accepted returns true if the transaction was accepted for inclusion.
func (r *BroadcastReceipt) Accepted() bool { return r.Code == 0 }

// Config carries the chain-level parameters every request needs.
type Config struct {
	// ChainID is the identifier of the target chain (e.g. "test-1").
	// It is bound into every sign payload.
	ChainID string
	// AddressPrefix is the bech32 human-readable prefix for account
	// addresses on this chain (e.g. "cosmos").
	AddressPrefix string
}

// Client pairs a Connection with the chain Config. It is stateless and
// safe for concurrent use; see package tx for the one per-signer
// serialization requirement.
type Client struct {
	Conn   Connection
	Config Config
}

// New creates a Client over the given connection.
func New(conn Connection, cfg Config) *Client {
	return &Client{Conn: conn, Config: cfg}
}

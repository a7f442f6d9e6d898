// Package chaintest provides test doubles for chainberry development:
// a configurable mock Connection with call counters, a deterministic
// mock Signer, and a harness bundling both behind a Client.
package chaintest

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cosmos/gogoproto/proto"

	"github.com/blockberries/chainberry"
)

// Compile-time interface check.
var _ chainberry.Connection = (*MockConnection)(nil)

// MockConnection is a configurable in-memory Connection. All methods
// are configurable via function fields; unconfigured methods return
// sensible defaults. Call counters are atomic so tests can assert
// exactly how many network round-trips occurred — in particular, that
// validation failures never reach the connection.
type MockConnection struct {
	// Configurable handlers. If nil, defaults are used.
	QueryFn     func(ctx context.Context, method string, req []byte) ([]byte, error)
	BroadcastFn func(ctx context.Context, txBytes []byte) (*chainberry.BroadcastReceipt, error)

	// Call counters (atomic for concurrent access).
	QueryCalls     atomic.Int64
	BroadcastCalls atomic.Int64
	CloseCalls     atomic.Int64
}

func (m *MockConnection) Query(ctx context.Context, method string, req []byte) ([]byte, error) {
	m.QueryCalls.Add(1)
	if m.QueryFn != nil {
		return m.QueryFn(ctx, method, req)
	}
	return []byte{}, nil
}

func (m *MockConnection) Broadcast(ctx context.Context, txBytes []byte) (*chainberry.BroadcastReceipt, error) {
	m.BroadcastCalls.Add(1)
	if m.BroadcastFn != nil {
		return m.BroadcastFn(ctx, txBytes)
	}
	return &chainberry.BroadcastReceipt{TxHash: "MOCKTXHASH", Code: 0}, nil
}

func (m *MockConnection) Close() error {
	m.CloseCalls.Add(1)
	return nil
}

// Calls returns the total number of network round-trips, queries and
// broadcasts combined.
func (m *MockConnection) Calls() int64 {
	return m.QueryCalls.Load() + m.BroadcastCalls.Load()
}

// Routes builds a QueryFn that serves proto-encoded responses keyed by
// method path. Unrouted methods fail the round-trip, which surfaces to
// the caller as a transport error.
func Routes(responses map[string]proto.Message) func(context.Context, string, []byte) ([]byte, error) {
	return func(_ context.Context, method string, _ []byte) ([]byte, error) {
		msg, ok := responses[method]
		if !ok {
			return nil, fmt.Errorf("no route for %s", method)
		}
		return proto.Marshal(msg)
	}
}

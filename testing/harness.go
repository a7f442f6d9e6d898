package chaintest

import (
	"testing"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/gogoproto/proto"

	"github.com/blockberries/chainberry"
)

// Default chain parameters used by the harness.
const (
	ChainID       = "chainberry-test-1"
	AddressPrefix = "berry"
)

// Harness bundles a Client over a MockConnection with a deterministic
// signer, for module-level tests that exercise the full pipeline
// without a node.
type Harness struct {
	t      testing.TB
	Conn   *MockConnection
	Client *chainberry.Client
	Signer *MockSigner
}

// NewHarness creates a harness with the default test chain config.
func NewHarness(t testing.TB) *Harness {
	t.Helper()
	conn := &MockConnection{}
	return &Harness{
		t:    t,
		Conn: conn,
		Client: chainberry.New(conn, chainberry.Config{
			ChainID:       ChainID,
			AddressPrefix: AddressPrefix,
		}),
		Signer: NewMockSigner(0x01),
	}
}

// SignerAddress returns the harness signer's address under the harness
// prefix.
func (h *Harness) SignerAddress() string {
	h.t.Helper()
	addr, err := h.Signer.Address(AddressPrefix)
	if err != nil {
		h.t.Fatalf("signer address: %v", err)
	}
	return addr
}

// RouteQueries stages proto-encoded query responses by method path.
func (h *Harness) RouteQueries(responses map[string]proto.Message) {
	h.Conn.QueryFn = Routes(responses)
}

// AccountResponse builds the auth account-info response the signing
// pipeline resolves before signing.
func AccountResponse(tb testing.TB, address string, accountNumber, sequence uint64) *authtypes.QueryAccountResponse {
	tb.Helper()
	acct := &authtypes.BaseAccount{
		Address:       address,
		AccountNumber: accountNumber,
		Sequence:      sequence,
	}
	anyAcct, err := codectypes.NewAnyWithValue(acct)
	if err != nil {
		tb.Fatalf("pack account: %v", err)
	}
	return &authtypes.QueryAccountResponse{Account: anyAcct}
}

// MustMarshal proto-encodes a message, failing the test on error.
func MustMarshal(tb testing.TB, msg proto.Message) []byte {
	tb.Helper()
	bz, err := proto.Marshal(msg)
	if err != nil {
		tb.Fatalf("marshal %T: %v", msg, err)
	}
	return bz
}

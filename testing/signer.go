package chaintest

import (
	"bytes"
	"sync/atomic"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

	"github.com/blockberries/chainberry"
	"github.com/blockberries/chainberry/keys"
)

// Compile-time interface check.
var _ chainberry.Signer = (*MockSigner)(nil)

// MockSigner wraps a deterministic secp256k1 key so that addresses,
// public keys, and signatures are stable across test runs. Setting
// SignErr makes Sign fail without producing a signature.
type MockSigner struct {
	Key     *keys.Secp256k1
	SignErr error

	SignCalls atomic.Int64
}

// NewMockSigner creates a signer from a repeated seed byte. The seed
// must be non-zero (an all-zero scalar is not a valid secp256k1 key).
func NewMockSigner(seed byte) *MockSigner {
	if seed == 0 {
		panic("chaintest: mock signer seed must be non-zero")
	}
	key, err := keys.FromBytes(bytes.Repeat([]byte{seed}, 32))
	if err != nil {
		panic(err)
	}
	return &MockSigner{Key: key}
}

func (m *MockSigner) Address(prefix string) (string, error) {
	return m.Key.Address(prefix)
}

func (m *MockSigner) PubKey() cryptotypes.PubKey {
	return m.Key.PubKey()
}

func (m *MockSigner) Sign(payload []byte) ([]byte, error) {
	m.SignCalls.Add(1)
	if m.SignErr != nil {
		return nil, m.SignErr
	}
	return m.Key.Sign(payload)
}

// Package keys provides a minimal secp256k1 implementation of the
// chainberry.Signer capability.
//
// It deliberately stops at wrapping raw key bytes: storage, mnemonic
// derivation, and hardware keys are the caller's concern — anything
// satisfying chainberry.Signer plugs into the pipeline the same way.
package keys

import (
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/blockberries/chainberry"
)

// Compile-time interface check.
var _ chainberry.Signer = (*Secp256k1)(nil)

// Secp256k1 signs with an in-memory secp256k1 private key.
type Secp256k1 struct {
	priv *secp256k1.PrivKey
}

// Generate creates a signer with a fresh random key.
func Generate() *Secp256k1 {
	return &Secp256k1{priv: secp256k1.GenPrivKey()}
}

// FromBytes wraps raw 32-byte private key material.
func FromBytes(raw []byte) (*Secp256k1, error) {
	if len(raw) != secp256k1.PrivKeySize {
		return nil, chainberry.ErrValidation.Wrapf(
			"secp256k1 key must be %d bytes, got %d", secp256k1.PrivKeySize, len(raw),
		)
	}
	key := make([]byte, len(raw))
	copy(key, raw)
	return &Secp256k1{priv: &secp256k1.PrivKey{Key: key}}, nil
}

// Address renders the account address derived from the public key hash
// under the given bech32 prefix.
func (s *Secp256k1) Address(prefix string) (string, error) {
	addr, err := sdk.Bech32ifyAddressBytes(prefix, s.priv.PubKey().Address())
	if err != nil {
		return "", chainberry.ErrEncoding.Wrapf("bech32 address: %s", err)
	}
	return addr, nil
}

// PubKey returns the public key paired with this signer.
func (s *Secp256k1) PubKey() cryptotypes.PubKey {
	return s.priv.PubKey()
}

// Sign produces a signature over the payload.
func (s *Secp256k1) Sign(payload []byte) ([]byte, error) {
	return s.priv.Sign(payload)
}

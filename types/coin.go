// Package types defines the wire-adjacent value types of chainberry:
// coins and pagination cursors.
//
// These are plain Go structs converted to and from their Cosmos SDK
// protobuf forms at the pipeline/dispatcher boundary. Conversion is the
// only place precision can be lost, so it is the only place that can
// fail — everything else on these types is total.
package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/blockberries/chainberry"
)

// Coin is a non-negative integer magnitude paired with a denomination.
// The denomination is an opaque, case-sensitive identifier — chainberry
// never interprets it. Coins are immutable values; no arithmetic is
// defined on them beyond equality. Summing amounts for a transfer is the
// caller's job, performed before entering the pipeline.
type Coin struct {
	Denom  string
	Amount uint64
}

// NewCoin constructs a validated Coin. The denomination must be
// non-empty; a zero amount is a legal value (module operations that
// forbid it, like bank sends, reject it at their own boundary).
func NewCoin(amount uint64, denom string) (Coin, error) {
	if denom == "" {
		return Coin{}, chainberry.ErrValidation.Wrap("empty denom")
	}
	return Coin{Denom: denom, Amount: amount}, nil
}

// IsZero returns true if the magnitude is zero.
func (c Coin) IsZero() bool { return c.Amount == 0 }

func (c Coin) String() string {
	return fmt.Sprintf("%d%s", c.Amount, c.Denom)
}

// ToWire converts the coin to its protobuf form. The wire magnitude is
// an arbitrary-precision integer, so this direction never loses
// precision and never fails.
func (c Coin) ToWire() sdk.Coin {
	return sdk.Coin{Denom: c.Denom, Amount: math.NewIntFromUint64(c.Amount)}
}

// CoinFromWire converts a wire coin back into a Coin. It fails if the
// wire magnitude is negative, does not fit in a uint64, or carries an
// empty denomination.
func CoinFromWire(wire sdk.Coin) (Coin, error) {
	if wire.Denom == "" {
		return Coin{}, chainberry.ErrDecode.Wrap("coin with empty denom")
	}
	if wire.Amount.IsNil() || wire.Amount.IsNegative() || !wire.Amount.IsUint64() {
		return Coin{}, chainberry.ErrDecode.Wrapf(
			"malformed amount %q for denom %s", wire.Amount, wire.Denom,
		)
	}
	return Coin{Denom: wire.Denom, Amount: wire.Amount.Uint64()}, nil
}

// CoinsToWire converts a coin list to its wire form, preserving order.
func CoinsToWire(coins []Coin) sdk.Coins {
	wire := make(sdk.Coins, 0, len(coins))
	for _, c := range coins {
		wire = append(wire, c.ToWire())
	}
	return wire
}

// CoinsFromWire converts a wire coin list, failing on the first
// malformed entry.
func CoinsFromWire(wire sdk.Coins) ([]Coin, error) {
	coins := make([]Coin, 0, len(wire))
	for _, wc := range wire {
		c, err := CoinFromWire(wc)
		if err != nil {
			return nil, err
		}
		coins = append(coins, c)
	}
	return coins, nil
}

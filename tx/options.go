package tx

import "github.com/blockberries/chainberry/types"

// DefaultGasLimit is applied when Options.GasLimit is zero.
const DefaultGasLimit = 200_000

// Options configures transaction-level metadata. The zero value is
// usable: no fee, DefaultGasLimit, empty memo, no timeout height.
type Options struct {
	// Fee is offered to validators for inclusion. Empty means zero fee.
	Fee []types.Coin
	// GasLimit caps execution gas. Zero selects DefaultGasLimit.
	GasLimit uint64
	// Memo is an arbitrary note carried in the transaction body.
	Memo string
	// TimeoutHeight, when non-zero, makes validators auto-reject the
	// transaction once the chain passes that height. Zero disables the
	// timeout. This is the only timeout the library itself applies;
	// round-trip deadlines belong to the Connection's context.
	TimeoutHeight uint64
}

// gasLimit resolves the effective gas limit.
func (o Options) gasLimit() uint64 {
	if o.GasLimit == 0 {
		return DefaultGasLimit
	}
	return o.GasLimit
}

package types_test

import (
	"testing"

	sdkquery "github.com/cosmos/cosmos-sdk/types/query"
	"github.com/stretchr/testify/require"

	"github.com/blockberries/chainberry/types"
)

func TestPageCursor_ToWire(t *testing.T) {
	cursor := &types.PageCursor{
		Key:        []byte{0x01, 0x02},
		Offset:     10,
		Limit:      50,
		CountTotal: true,
		Reverse:    true,
	}

	wire := cursor.ToWire()
	require.Equal(t, &sdkquery.PageRequest{
		Key:        []byte{0x01, 0x02},
		Offset:     10,
		Limit:      50,
		CountTotal: true,
		Reverse:    true,
	}, wire)

	// A nil cursor lets the node page with defaults.
	require.Nil(t, (*types.PageCursor)(nil).ToWire())
}

func TestPageResultFromWire(t *testing.T) {
	res := types.PageResultFromWire(&sdkquery.PageResponse{
		NextKey: []byte{0xAA},
		Total:   123,
	})
	require.Equal(t, &types.PageResult{NextKey: []byte{0xAA}, Total: 123}, res)
	require.True(t, res.HasMore())

	// Nil and empty next keys both mean end-of-results.
	require.Nil(t, types.PageResultFromWire(nil))
	require.False(t, types.PageResultFromWire(nil).HasMore())

	last := types.PageResultFromWire(&sdkquery.PageResponse{NextKey: []byte{}, Total: 123})
	require.False(t, last.HasMore())
	require.Nil(t, last.NextKey)
}

// A NextKey must be usable verbatim as the next request's Key.
func TestPageCursor_Continuation(t *testing.T) {
	first := types.PageResultFromWire(&sdkquery.PageResponse{NextKey: []byte("opaque-token")})
	require.True(t, first.HasMore())

	next := &types.PageCursor{Key: first.NextKey, Limit: 50}
	require.Equal(t, []byte("opaque-token"), next.ToWire().Key)
}

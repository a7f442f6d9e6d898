package bank_test

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkquery "github.com/cosmos/cosmos-sdk/types/query"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/gogoproto/proto"
	"github.com/stretchr/testify/require"

	"github.com/blockberries/chainberry"
	"github.com/blockberries/chainberry/bank"
	chaintest "github.com/blockberries/chainberry/testing"
	"github.com/blockberries/chainberry/tx"
	"github.com/blockberries/chainberry/types"
)

const (
	methodAccount     = "/cosmos.auth.v1beta1.Query/Account"
	methodBalance     = "/cosmos.bank.v1beta1.Query/Balance"
	methodAllBalances = "/cosmos.bank.v1beta1.Query/AllBalances"
	methodSpendable   = "/cosmos.bank.v1beta1.Query/SpendableBalances"
	methodSupplyOf    = "/cosmos.bank.v1beta1.Query/SupplyOf"
	methodTotalSupply = "/cosmos.bank.v1beta1.Query/TotalSupply"
	methodMetadata    = "/cosmos.bank.v1beta1.Query/DenomMetadata"
	methodMetadatas   = "/cosmos.bank.v1beta1.Query/DenomsMetadata"
	methodParams      = "/cosmos.bank.v1beta1.Query/Params"
)

func coin(t *testing.T, amount uint64, denom string) types.Coin {
	t.Helper()
	c, err := types.NewCoin(amount, denom)
	require.NoError(t, err)
	return c
}

func TestSend(t *testing.T) {
	h := chaintest.NewHarness(t)
	from := h.SignerAddress()
	h.RouteQueries(map[string]proto.Message{
		methodAccount: chaintest.AccountResponse(t, from, 7, 3),
	})

	var broadcasted []byte
	h.Conn.BroadcastFn = func(_ context.Context, txBytes []byte) (*chainberry.BroadcastReceipt, error) {
		broadcasted = txBytes
		return &chainberry.BroadcastReceipt{TxHash: "CAFEBABE", Code: 0}, nil
	}

	b := bank.New(h.Client)
	receipt, err := b.Send(
		context.Background(),
		from, "berry1bbb",
		[]types.Coin{coin(t, 100, "utoken")},
		h.Signer, tx.Options{},
	)
	require.NoError(t, err)
	require.True(t, receipt.Accepted())

	// The broadcast envelope carries exactly the MsgSend we assembled.
	var raw txtypes.TxRaw
	require.NoError(t, raw.Unmarshal(broadcasted))
	var body txtypes.TxBody
	require.NoError(t, body.Unmarshal(raw.BodyBytes))
	require.Len(t, body.Messages, 1)

	var msg banktypes.MsgSend
	require.NoError(t, proto.Unmarshal(body.Messages[0].Value, &msg))
	require.Equal(t, from, msg.FromAddress)
	require.Equal(t, "berry1bbb", msg.ToAddress)
	require.Equal(t, "100utoken", msg.Amount.String())
}

func TestSend_ZeroAmount(t *testing.T) {
	h := chaintest.NewHarness(t)
	b := bank.New(h.Client)

	_, err := b.Send(
		context.Background(),
		h.SignerAddress(), "berry1bbb",
		[]types.Coin{coin(t, 100, "utoken"), {Denom: "uother", Amount: 0}},
		h.Signer, tx.Options{},
	)
	require.ErrorIs(t, err, chainberry.ErrValidation)

	// Rejected before any network round-trip.
	require.Equal(t, int64(0), h.Conn.Calls())
	require.Equal(t, int64(0), h.Signer.SignCalls.Load())
}

func TestSend_EmptyCoinList(t *testing.T) {
	h := chaintest.NewHarness(t)
	b := bank.New(h.Client)

	_, err := b.Send(context.Background(), h.SignerAddress(), "berry1bbb", nil, h.Signer, tx.Options{})
	require.ErrorIs(t, err, chainberry.ErrValidation)
	require.Equal(t, int64(0), h.Conn.Calls())
}

func TestBalance(t *testing.T) {
	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodBalance: &banktypes.QueryBalanceResponse{
			Balance: &sdk.Coin{Denom: "utoken", Amount: math.NewInt(250)},
		},
	})

	got, err := bank.New(h.Client).Balance(context.Background(), "berry1aaa", "utoken")
	require.NoError(t, err)
	require.Equal(t, types.Coin{Denom: "utoken", Amount: 250}, got)
}

func TestBalance_MissingMeansZero(t *testing.T) {
	// Unknown denoms still hold a balance of zero; absence of the field
	// is not a decode failure.
	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodBalance: &banktypes.QueryBalanceResponse{},
	})

	got, err := bank.New(h.Client).Balance(context.Background(), "berry1aaa", "unknown")
	require.NoError(t, err)
	require.Equal(t, types.Coin{Denom: "unknown", Amount: 0}, got)
	require.True(t, got.IsZero())
}

func TestBalance_MalformedAmount(t *testing.T) {
	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodBalance: &banktypes.QueryBalanceResponse{
			Balance: &sdk.Coin{
				Denom:  "utoken",
				Amount: math.NewIntFromUint64(1<<64 - 1).Add(math.OneInt()),
			},
		},
	})

	_, err := bank.New(h.Client).Balance(context.Background(), "berry1aaa", "utoken")
	require.ErrorIs(t, err, chainberry.ErrDecode)
}

func TestAllBalances_Paginated(t *testing.T) {
	h := chaintest.NewHarness(t)

	var reqBz []byte
	h.Conn.QueryFn = func(_ context.Context, method string, req []byte) ([]byte, error) {
		require.Equal(t, methodAllBalances, method)
		reqBz = req
		return chaintest.MustMarshal(t, &banktypes.QueryAllBalancesResponse{
			Balances: sdk.Coins{
				sdk.Coin{Denom: "uother", Amount: math.NewInt(7)},
				sdk.Coin{Denom: "utoken", Amount: math.NewInt(100)},
			},
			Pagination: &sdkquery.PageResponse{NextKey: []byte("next"), Total: 5},
		}), nil
	}

	coins, page, err := bank.New(h.Client).AllBalances(
		context.Background(), "berry1aaa",
		&types.PageCursor{Limit: 2, CountTotal: true},
	)
	require.NoError(t, err)
	require.Equal(t, []types.Coin{
		{Denom: "uother", Amount: 7},
		{Denom: "utoken", Amount: 100},
	}, coins)
	require.True(t, page.HasMore())
	require.Equal(t, []byte("next"), page.NextKey)
	require.Equal(t, uint64(5), page.Total)

	// The cursor reached the wire intact.
	var req banktypes.QueryAllBalancesRequest
	require.NoError(t, req.Unmarshal(reqBz))
	require.Equal(t, uint64(2), req.Pagination.Limit)
	require.True(t, req.Pagination.CountTotal)
}

func TestAllBalances_LastPage(t *testing.T) {
	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodAllBalances: &banktypes.QueryAllBalancesResponse{
			Balances: sdk.Coins{sdk.Coin{Denom: "utoken", Amount: math.NewInt(1)}},
		},
	})

	_, page, err := bank.New(h.Client).AllBalances(context.Background(), "berry1aaa", nil)
	require.NoError(t, err)
	require.False(t, page.HasMore())
}

func TestSpendableBalances(t *testing.T) {
	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodSpendable: &banktypes.QuerySpendableBalancesResponse{
			Balances: sdk.Coins{sdk.Coin{Denom: "utoken", Amount: math.NewInt(40)}},
		},
	})

	coins, page, err := bank.New(h.Client).SpendableBalances(context.Background(), "berry1aaa", nil)
	require.NoError(t, err)
	require.Equal(t, []types.Coin{{Denom: "utoken", Amount: 40}}, coins)
	require.False(t, page.HasMore())
}

func TestSupplyOf(t *testing.T) {
	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodSupplyOf: &banktypes.QuerySupplyOfResponse{
			Amount: sdk.Coin{Denom: "utoken", Amount: math.NewInt(1_000_000)},
		},
	})

	got, err := bank.New(h.Client).SupplyOf(context.Background(), "utoken")
	require.NoError(t, err)
	require.Equal(t, types.Coin{Denom: "utoken", Amount: 1_000_000}, got)
}

func TestSupplyOf_UnknownDenomIsZero(t *testing.T) {
	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodSupplyOf: &banktypes.QuerySupplyOfResponse{},
	})

	got, err := bank.New(h.Client).SupplyOf(context.Background(), "unknown")
	require.NoError(t, err)
	require.Equal(t, types.Coin{Denom: "unknown", Amount: 0}, got)
}

func TestTotalSupply(t *testing.T) {
	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodTotalSupply: &banktypes.QueryTotalSupplyResponse{
			Supply: sdk.Coins{
				sdk.Coin{Denom: "uother", Amount: math.NewInt(2)},
				sdk.Coin{Denom: "utoken", Amount: math.NewInt(3)},
			},
			Pagination: &sdkquery.PageResponse{},
		},
	})

	coins, page, err := bank.New(h.Client).TotalSupply(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, coins, 2)
	require.False(t, page.HasMore())
}

func TestDenomMetadata(t *testing.T) {
	meta := banktypes.Metadata{
		Base:    "utoken",
		Display: "token",
		Symbol:  "TOK",
	}

	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodMetadata:  &banktypes.QueryDenomMetadataResponse{Metadata: meta},
		methodMetadatas: &banktypes.QueryDenomsMetadataResponse{Metadatas: []banktypes.Metadata{meta}},
	})
	b := bank.New(h.Client)

	got, err := b.DenomMetadata(context.Background(), "utoken")
	require.NoError(t, err)
	require.Equal(t, meta, got)

	all, page, err := b.DenomsMetadata(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, []banktypes.Metadata{meta}, all)
	require.False(t, page.HasMore())
}

func TestParams(t *testing.T) {
	h := chaintest.NewHarness(t)
	h.RouteQueries(map[string]proto.Message{
		methodParams: &banktypes.QueryParamsResponse{
			Params: banktypes.Params{DefaultSendEnabled: true},
		},
	})

	params, err := bank.New(h.Client).Params(context.Background())
	require.NoError(t, err)
	require.True(t, params.DefaultSendEnabled)
}

func TestQueries_TransportError(t *testing.T) {
	h := chaintest.NewHarness(t)
	h.RouteQueries(nil) // every query fails at the transport
	b := bank.New(h.Client)

	_, err := b.Balance(context.Background(), "berry1aaa", "utoken")
	require.ErrorIs(t, err, chainberry.ErrTransport)

	_, _, err = b.AllBalances(context.Background(), "berry1aaa", nil)
	require.ErrorIs(t, err, chainberry.ErrTransport)

	_, err = b.Params(context.Background())
	require.ErrorIs(t, err, chainberry.ErrTransport)
}

// Package bank exposes the chain's bank module: fund transfers plus
// balance, supply, metadata, and params queries. Every operation is a
// thin caller that assembles a protocol message or request and hands it
// to the generic pipeline — the signing pipeline for Send, the query
// dispatcher for everything else.
package bank

import (
	"context"

	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/gogoproto/proto"

	"github.com/blockberries/chainberry"
	"github.com/blockberries/chainberry/query"
	"github.com/blockberries/chainberry/tx"
	"github.com/blockberries/chainberry/types"
)

const (
	methodBalance           = "/cosmos.bank.v1beta1.Query/Balance"
	methodAllBalances       = "/cosmos.bank.v1beta1.Query/AllBalances"
	methodSpendableBalances = "/cosmos.bank.v1beta1.Query/SpendableBalances"
	methodSupplyOf          = "/cosmos.bank.v1beta1.Query/SupplyOf"
	methodTotalSupply       = "/cosmos.bank.v1beta1.Query/TotalSupply"
	methodDenomMetadata     = "/cosmos.bank.v1beta1.Query/DenomMetadata"
	methodDenomsMetadata    = "/cosmos.bank.v1beta1.Query/DenomsMetadata"
	methodParams            = "/cosmos.bank.v1beta1.Query/Params"
)

// Client exposes bank module operations over a chainberry.Client.
type Client struct {
	c *chainberry.Client
}

// New creates a bank module client.
func New(c *chainberry.Client) *Client {
	return &Client{c: c}
}

// Send transfers coins from one address to another, signed by signer.
// The coin list must be non-empty and free of zero amounts; violations
// are ErrValidation and are detected before any network call.
func (b *Client) Send(
	ctx context.Context,
	from, to string,
	coins []types.Coin,
	signer chainberry.Signer,
	opts tx.Options,
) (*chainberry.BroadcastReceipt, error) {
	if len(coins) == 0 {
		return nil, chainberry.ErrValidation.Wrap("empty coin list")
	}
	for _, c := range coins {
		if c.IsZero() {
			return nil, chainberry.ErrValidation.Wrapf("zero amount for denom %s", c.Denom)
		}
	}

	msg := &banktypes.MsgSend{
		FromAddress: from,
		ToAddress:   to,
		Amount:      types.CoinsToWire(coins),
	}
	return tx.SignAndBroadcast(ctx, b.c, []proto.Message{msg}, signer, opts)
}

// Balance returns the amount of denom held by address. The node reports
// unknown denoms as a zero balance, so a missing balance field decodes
// as a zero coin of the requested denom rather than an error. This
// missing-means-zero reading is deliberately limited to balance-style
// fields; elsewhere a missing required field is ErrDecode.
func (b *Client) Balance(ctx context.Context, address, denom string) (types.Coin, error) {
	req := &banktypes.QueryBalanceRequest{Address: address, Denom: denom}
	res, err := query.Do[banktypes.QueryBalanceResponse](ctx, b.c.Conn, methodBalance, req)
	if err != nil {
		return types.Coin{}, err
	}
	if res.Balance == nil {
		return types.Coin{Denom: denom}, nil
	}
	return types.CoinFromWire(*res.Balance)
}

// AllBalances returns one page of the denominations held by address.
func (b *Client) AllBalances(
	ctx context.Context,
	address string,
	cursor *types.PageCursor,
) ([]types.Coin, *types.PageResult, error) {
	req := &banktypes.QueryAllBalancesRequest{
		Address:    address,
		Pagination: cursor.ToWire(),
	}
	res, err := query.Do[banktypes.QueryAllBalancesResponse](ctx, b.c.Conn, methodAllBalances, req)
	if err != nil {
		return nil, nil, err
	}
	coins, err := types.CoinsFromWire(res.Balances)
	if err != nil {
		return nil, nil, err
	}
	return coins, types.PageResultFromWire(res.Pagination), nil
}

// SpendableBalances returns one page of the balances address can spend
// now (excluding, for example, amounts locked behind delegations).
func (b *Client) SpendableBalances(
	ctx context.Context,
	address string,
	cursor *types.PageCursor,
) ([]types.Coin, *types.PageResult, error) {
	req := &banktypes.QuerySpendableBalancesRequest{
		Address:    address,
		Pagination: cursor.ToWire(),
	}
	res, err := query.Do[banktypes.QuerySpendableBalancesResponse](ctx, b.c.Conn, methodSpendableBalances, req)
	if err != nil {
		return nil, nil, err
	}
	coins, err := types.CoinsFromWire(res.Balances)
	if err != nil {
		return nil, nil, err
	}
	return coins, types.PageResultFromWire(res.Pagination), nil
}

// SupplyOf returns the chain-wide supply of denom. As with Balance,
// unknown denoms report zero supply.
func (b *Client) SupplyOf(ctx context.Context, denom string) (types.Coin, error) {
	req := &banktypes.QuerySupplyOfRequest{Denom: denom}
	res, err := query.Do[banktypes.QuerySupplyOfResponse](ctx, b.c.Conn, methodSupplyOf, req)
	if err != nil {
		return types.Coin{}, err
	}
	if res.Amount.Amount.IsNil() {
		return types.Coin{Denom: denom}, nil
	}
	return types.CoinFromWire(res.Amount)
}

// TotalSupply returns one page of the chain-wide supply of all denoms.
func (b *Client) TotalSupply(
	ctx context.Context,
	cursor *types.PageCursor,
) ([]types.Coin, *types.PageResult, error) {
	req := &banktypes.QueryTotalSupplyRequest{Pagination: cursor.ToWire()}
	res, err := query.Do[banktypes.QueryTotalSupplyResponse](ctx, b.c.Conn, methodTotalSupply, req)
	if err != nil {
		return nil, nil, err
	}
	coins, err := types.CoinsFromWire(res.Supply)
	if err != nil {
		return nil, nil, err
	}
	return coins, types.PageResultFromWire(res.Pagination), nil
}

// DenomMetadata returns the bank metadata registered for denom.
func (b *Client) DenomMetadata(ctx context.Context, denom string) (banktypes.Metadata, error) {
	req := &banktypes.QueryDenomMetadataRequest{Denom: denom}
	res, err := query.Do[banktypes.QueryDenomMetadataResponse](ctx, b.c.Conn, methodDenomMetadata, req)
	if err != nil {
		return banktypes.Metadata{}, err
	}
	return res.Metadata, nil
}

// DenomsMetadata returns one page of metadata for all registered denoms.
func (b *Client) DenomsMetadata(
	ctx context.Context,
	cursor *types.PageCursor,
) ([]banktypes.Metadata, *types.PageResult, error) {
	req := &banktypes.QueryDenomsMetadataRequest{Pagination: cursor.ToWire()}
	res, err := query.Do[banktypes.QueryDenomsMetadataResponse](ctx, b.c.Conn, methodDenomsMetadata, req)
	if err != nil {
		return nil, nil, err
	}
	return res.Metadatas, types.PageResultFromWire(res.Pagination), nil
}

// Params returns the bank module's chain parameters.
func (b *Client) Params(ctx context.Context) (banktypes.Params, error) {
	req := &banktypes.QueryParamsRequest{}
	res, err := query.Do[banktypes.QueryParamsResponse](ctx, b.c.Conn, methodParams, req)
	if err != nil {
		return banktypes.Params{}, err
	}
	return res.Params, nil
}

package chaingrpc

import (
	"context"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/gogoproto/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/blockberries/chainberry"
)

const methodBroadcastTx = "/cosmos.tx.v1beta1.Service/BroadcastTx"

// Compile-time interface check.
var _ chainberry.Connection = (*Client)(nil)

// Client implements chainberry.Connection over a gRPC connection to a
// node's query port. Broadcast goes through the node's tx service in
// sync mode, so the receipt carries the CheckTx result code.
//
// The client holds no state beyond the connection; timeouts and
// cancellation are the caller's, via ctx.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a node's gRPC endpoint.
func Dial(ctx context.Context, target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(RawCodec{}),
	))
	cc, err := grpc.DialContext(ctx, target, opts...)
	if err != nil {
		return nil, chainberry.ErrTransport.Wrapf("dial %s: %s", target, err)
	}
	return &Client{cc: cc}, nil
}

// NewClient wraps an already-established gRPC connection. The raw codec
// is forced per call, so the connection needs no special dial options.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc}
}

func (c *Client) Close() error {
	return c.cc.Close()
}

// Query performs one unary round-trip on the given method path.
func (c *Client) Query(ctx context.Context, method string, req []byte) ([]byte, error) {
	var resp []byte
	err := c.cc.Invoke(ctx, method, req, &resp, grpc.ForceCodec(RawCodec{}))
	if err != nil {
		if st, ok := status.FromError(err); ok {
			return nil, chainberry.ErrTransport.Wrapf("%s: %s (%s)", method, st.Message(), st.Code())
		}
		return nil, chainberry.ErrTransport.Wrapf("%s: %s", method, err)
	}
	return resp, nil
}

// Broadcast submits a serialized signed transaction via the tx service.
// A non-zero receipt code is returned as a receipt, not an error; the
// signing pipeline classifies rejections.
func (c *Client) Broadcast(ctx context.Context, txBytes []byte) (*chainberry.BroadcastReceipt, error) {
	req := &txtypes.BroadcastTxRequest{
		TxBytes: txBytes,
		Mode:    txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
	}
	reqBz, err := proto.Marshal(req)
	if err != nil {
		return nil, chainberry.ErrEncoding.Wrapf("broadcast request: %s", err)
	}

	respBz, err := c.Query(ctx, methodBroadcastTx, reqBz)
	if err != nil {
		return nil, err
	}

	var resp txtypes.BroadcastTxResponse
	if err := proto.Unmarshal(respBz, &resp); err != nil {
		return nil, chainberry.ErrDecode.Wrapf("broadcast response: %s", err)
	}
	if resp.TxResponse == nil {
		return nil, chainberry.ErrDecode.Wrap("broadcast response missing tx result")
	}

	return &chainberry.BroadcastReceipt{
		TxHash: resp.TxResponse.TxHash,
		Code:   resp.TxResponse.Code,
		RawLog: resp.TxResponse.RawLog,
		Height: resp.TxResponse.Height,
	}, nil
}

// Package query implements the generic typed dispatch layer: any
// request/response pair of protobuf messages, identified by a method
// path, becomes one classified round-trip over a chainberry.Connection.
//
// Every read-only query in the library (balances, supply, metadata,
// params, account info) goes through [Do]; callers differ only in the
// request type, the response type parameter, and the method path.
// Centralizing the marshal/invoke/unmarshal/classify sequence keeps
// error handling and pagination semantics uniform across an open set
// of query types.
package query

import (
	"context"

	"github.com/cosmos/gogoproto/proto"

	"github.com/blockberries/chainberry"
)

// response is satisfied by a pointer to any generated response type.
type response[T any] interface {
	*T
	proto.Message
}

// Do performs one typed query round-trip. The response type is given as
// the single explicit type parameter:
//
//	res, err := query.Do[banktypes.QueryBalanceResponse](ctx, conn, method, req)
//
// Errors are classified: a request that cannot be marshaled is
// ErrEncoding, a failed round-trip is ErrTransport (caller-retryable),
// and response bytes that do not unmarshal are ErrDecode (a client/node
// schema mismatch — never retry). Response bytes are not touched when
// the transport fails.
func Do[RespT any, Resp response[RespT]](
	ctx context.Context,
	conn chainberry.Connection,
	method string,
	req proto.Message,
) (Resp, error) {
	var zero Resp

	reqBz, err := proto.Marshal(req)
	if err != nil {
		return zero, chainberry.ErrEncoding.Wrapf("%s request: %s", method, err)
	}

	respBz, err := conn.Query(ctx, method, reqBz)
	if err != nil {
		return zero, chainberry.ErrTransport.Wrapf("%s: %s", method, err)
	}

	resp := Resp(new(RespT))
	if err := proto.Unmarshal(respBz, resp); err != nil {
		return zero, chainberry.ErrDecode.Wrapf("%s response: %s", method, err)
	}
	return resp, nil
}

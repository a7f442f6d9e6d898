// Package chaingrpc provides the gRPC transport implementation of the
// chainberry.Connection capability.
//
// The dispatcher and the signing pipeline own all protobuf encoding, so
// this package moves pre-marshaled bytes only: requests go out as-is on
// the caller-supplied method path, responses come back as-is.
package chaingrpc

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

const codecName = "chainberry-raw"

// RawCodec implements grpc/encoding.Codec over pre-marshaled byte
// slices. It is forced on every call this package makes, keeping the
// connection honest to the bytes-in/bytes-out contract.
type RawCodec struct{}

func (RawCodec) Marshal(v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("raw codec: expected []byte, got %T", v)
	}
	return b, nil
}

func (RawCodec) Unmarshal(data []byte, v any) error {
	out, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("raw codec: expected *[]byte, got %T", v)
	}
	*out = data
	return nil
}

func (RawCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(RawCodec{})
}

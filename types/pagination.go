package types

import (
	sdkquery "github.com/cosmos/cosmos-sdk/types/query"
)

// PageCursor controls one page of a list-style query. All fields are
// optional scalars, so conversion to the wire form is total.
type PageCursor struct {
	// Key is the opaque continuation token from a previous page's
	// NextKey, used verbatim. Takes precedence over Offset.
	Key []byte
	// Offset is a numeric alternative to Key. Ignored when Key is set.
	Offset uint64
	// Limit caps the number of results in this page. 0 lets the node
	// apply its default.
	Limit uint64
	// CountTotal asks the node to compute the total result count.
	// Only honored on the first page (when Key is empty).
	CountTotal bool
	// Reverse lists results in descending order.
	Reverse bool
}

// PageResult is the cursor returned alongside one page of results.
type PageResult struct {
	// NextKey is the continuation token for the next page. Nil means
	// there are no further results.
	NextKey []byte
	// Total is the total result count. Only set when the request asked
	// for it via CountTotal.
	Total uint64
}

// HasMore returns true if a further page exists.
func (r *PageResult) HasMore() bool { return r != nil && r.NextKey != nil }

// ToWire converts the cursor to its protobuf form. A nil cursor
// converts to nil, letting the node page with defaults.
func (c *PageCursor) ToWire() *sdkquery.PageRequest {
	if c == nil {
		return nil
	}
	return &sdkquery.PageRequest{
		Key:        c.Key,
		Offset:     c.Offset,
		Limit:      c.Limit,
		CountTotal: c.CountTotal,
		Reverse:    c.Reverse,
	}
}

// PageResultFromWire converts a wire page response. A nil response
// converts to nil, which callers must treat as end-of-results. An empty
// NextKey is normalized to nil so that "no more results" has a single
// representation.
func PageResultFromWire(wire *sdkquery.PageResponse) *PageResult {
	if wire == nil {
		return nil
	}
	res := &PageResult{Total: wire.Total}
	if len(wire.NextKey) > 0 {
		res.NextKey = wire.NextKey
	}
	return res
}

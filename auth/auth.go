// Package auth resolves signer account metadata from the chain's auth
// module. The signing pipeline calls it immediately before every
// signing; see Fetch for why the result must never be cached.
package auth

import (
	"context"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/blockberries/chainberry"
	"github.com/blockberries/chainberry/query"
)

const methodAccount = "/cosmos.auth.v1beta1.Query/Account"

// Account is the signer metadata bound into every sign payload.
type Account struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

// accountCodec unpacks the account Any returned by the node into the
// concrete account implementations registered by the auth module.
var accountCodec *codec.ProtoCodec

func init() {
	reg := codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(reg)
	cryptocodec.RegisterInterfaces(reg)
	accountCodec = codec.NewProtoCodec(reg)
}

// Fetch resolves the current account number and sequence number for an
// address. The sequence advances with every signed transaction from the
// account, so callers must fetch fresh before each signing — a cached
// sequence poisons every subsequent transaction until corrected.
func Fetch(ctx context.Context, conn chainberry.Connection, address string) (Account, error) {
	req := &authtypes.QueryAccountRequest{Address: address}
	res, err := query.Do[authtypes.QueryAccountResponse](ctx, conn, methodAccount, req)
	if err != nil {
		return Account{}, err
	}
	if res.Account == nil {
		return Account{}, chainberry.ErrDecode.Wrapf("no account in response for %s", address)
	}

	var acct sdk.AccountI
	if err := accountCodec.UnpackAny(res.Account, &acct); err != nil {
		return Account{}, chainberry.ErrDecode.Wrapf("account for %s: %s", address, err)
	}

	return Account{
		Address:       address,
		AccountNumber: acct.GetAccountNumber(),
		Sequence:      acct.GetSequence(),
	}, nil
}

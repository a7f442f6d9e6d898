package auth_test

import (
	"context"
	"testing"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/gogoproto/proto"
	"github.com/stretchr/testify/require"

	"github.com/blockberries/chainberry"
	"github.com/blockberries/chainberry/auth"
	chaintest "github.com/blockberries/chainberry/testing"
)

const methodAccount = "/cosmos.auth.v1beta1.Query/Account"

func TestFetch(t *testing.T) {
	conn := &chaintest.MockConnection{}
	conn.QueryFn = chaintest.Routes(map[string]proto.Message{
		methodAccount: chaintest.AccountResponse(t, "berry1aaa", 7, 3),
	})

	acct, err := auth.Fetch(context.Background(), conn, "berry1aaa")
	require.NoError(t, err)
	require.Equal(t, auth.Account{
		Address:       "berry1aaa",
		AccountNumber: 7,
		Sequence:      3,
	}, acct)
}

func TestFetch_MissingAccount(t *testing.T) {
	// An account response without an account field is a schema-level
	// failure, not a zero value.
	conn := &chaintest.MockConnection{}
	conn.QueryFn = chaintest.Routes(map[string]proto.Message{
		methodAccount: &authtypes.QueryAccountResponse{},
	})

	_, err := auth.Fetch(context.Background(), conn, "berry1aaa")
	require.ErrorIs(t, err, chainberry.ErrDecode)
}

func TestFetch_WrongAccountType(t *testing.T) {
	wrong, err := codectypes.NewAnyWithValue(&banktypes.MsgSend{})
	require.NoError(t, err)

	conn := &chaintest.MockConnection{}
	conn.QueryFn = chaintest.Routes(map[string]proto.Message{
		methodAccount: &authtypes.QueryAccountResponse{Account: wrong},
	})

	_, err = auth.Fetch(context.Background(), conn, "berry1aaa")
	require.ErrorIs(t, err, chainberry.ErrDecode)
}

func TestFetch_TransportError(t *testing.T) {
	conn := &chaintest.MockConnection{}
	conn.QueryFn = chaintest.Routes(nil) // no routes: every query fails

	_, err := auth.Fetch(context.Background(), conn, "berry1aaa")
	require.ErrorIs(t, err, chainberry.ErrTransport)
}

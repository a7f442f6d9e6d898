// Package tx implements the transaction signing pipeline: it assembles
// protocol messages into a transaction body, derives the canonical sign
// payload, invokes the signing capability, assembles the signed
// envelope, and broadcasts it.
//
// The pipeline is stateless and performs no internal retries — every
// invocation is exactly one sign-and-broadcast attempt. Concurrent
// invocations for the same signer are unsafe: each one independently
// resolves the signer's sequence number, so two in flight can race to
// the same sequence and one broadcast will be rejected. Serialize per
// signer; queries carry no such restriction.
package tx

import (
	"context"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	"github.com/cosmos/gogoproto/proto"

	"github.com/blockberries/chainberry"
	"github.com/blockberries/chainberry/auth"
	"github.com/blockberries/chainberry/types"
)

// SignAndBroadcast signs msgs as a single transaction and submits it.
//
//  1. Resolves the signer's account number and sequence — always fresh,
//     never cached (see auth.Fetch).
//  2. Builds the transaction body from msgs and opts.
//  3. Derives the canonical sign payload (SIGN_MODE_DIRECT).
//  4. Invokes the signing capability. A signer failure is ErrSigning
//     and is never retried: a key that rejects a payload once will
//     reject it again.
//  5. Assembles the signed envelope.
//  6. Broadcasts it. A transport failure is ErrTransport; a receipt
//     with a non-zero code is a *chainberry.RejectionError.
//
// Steps 2–6 execute exactly once per call. Retry policy — including on
// sequence-number races — is the caller's, because only the caller
// knows whether re-resolving and re-signing is safe for its use case.
func SignAndBroadcast(
	ctx context.Context,
	c *chainberry.Client,
	msgs []proto.Message,
	signer chainberry.Signer,
	opts Options,
) (*chainberry.BroadcastReceipt, error) {
	if len(msgs) == 0 {
		return nil, chainberry.ErrValidation.Wrap("no messages")
	}

	addr, err := signer.Address(c.Config.AddressPrefix)
	if err != nil {
		return nil, chainberry.ErrEncoding.Wrapf("signer address: %s", err)
	}

	acct, err := auth.Fetch(ctx, c.Conn, addr)
	if err != nil {
		return nil, err
	}

	raw, err := Sign(msgs, signer, acct, c.Config.ChainID, opts)
	if err != nil {
		return nil, err
	}

	txBytes, err := proto.Marshal(raw)
	if err != nil {
		return nil, chainberry.ErrEncoding.Wrapf("tx envelope: %s", err)
	}

	receipt, err := c.Conn.Broadcast(ctx, txBytes)
	if err != nil {
		return nil, chainberry.ErrTransport.Wrapf("broadcast: %s", err)
	}
	if !receipt.Accepted() {
		return nil, &chainberry.RejectionError{
			Code:   receipt.Code,
			TxHash: receipt.TxHash,
			RawLog: receipt.RawLog,
		}
	}
	return receipt, nil
}

// Sign builds the transaction body, derives the canonical sign payload
// for the given account state, and assembles the signed envelope. It is
// the network-free portion of the pipeline (steps 2–5), exposed so the
// payload derivation can be exercised and audited without a node.
//
// The returned envelope is bound to acct.Sequence and must be broadcast
// at most once; reusing it after the sequence advances is rejected by
// the chain.
func Sign(
	msgs []proto.Message,
	signer chainberry.Signer,
	acct auth.Account,
	chainID string,
	opts Options,
) (*txtypes.TxRaw, error) {
	body, err := buildBody(msgs, opts)
	if err != nil {
		return nil, err
	}
	bodyBz, err := proto.Marshal(body)
	if err != nil {
		return nil, chainberry.ErrEncoding.Wrapf("tx body: %s", err)
	}

	authInfo, err := buildAuthInfo(signer.PubKey(), acct.Sequence, opts)
	if err != nil {
		return nil, err
	}
	authInfoBz, err := proto.Marshal(authInfo)
	if err != nil {
		return nil, chainberry.ErrEncoding.Wrapf("auth info: %s", err)
	}

	payload, err := SignDocBytes(bodyBz, authInfoBz, chainID, acct.AccountNumber)
	if err != nil {
		return nil, err
	}

	sig, err := signer.Sign(payload)
	if err != nil {
		return nil, chainberry.ErrSigning.Wrapf("%s", err)
	}

	return &txtypes.TxRaw{
		BodyBytes:     bodyBz,
		AuthInfoBytes: authInfoBz,
		Signatures:    [][]byte{sig},
	}, nil
}

// SignDocBytes derives the canonical sign payload from the serialized
// body, the serialized auth info, the chain identifier, and the account
// number. Byte-identical inputs always produce byte-identical payloads;
// hardware signers and the verifying node each re-derive this
// independently, so any nondeterminism here breaks verification.
func SignDocBytes(bodyBytes, authInfoBytes []byte, chainID string, accountNumber uint64) ([]byte, error) {
	doc := &txtypes.SignDoc{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		ChainId:       chainID,
		AccountNumber: accountNumber,
	}
	bz, err := proto.Marshal(doc)
	if err != nil {
		return nil, chainberry.ErrEncoding.Wrapf("sign doc: %s", err)
	}
	return bz, nil
}

func buildBody(msgs []proto.Message, opts Options) (*txtypes.TxBody, error) {
	anys := make([]*codectypes.Any, len(msgs))
	for i, msg := range msgs {
		anyMsg, err := codectypes.NewAnyWithValue(msg)
		if err != nil {
			return nil, chainberry.ErrEncoding.Wrapf("message %d: %s", i, err)
		}
		anys[i] = anyMsg
	}
	return &txtypes.TxBody{
		Messages:      anys,
		Memo:          opts.Memo,
		TimeoutHeight: opts.TimeoutHeight,
	}, nil
}

func buildAuthInfo(pub cryptotypes.PubKey, sequence uint64, opts Options) (*txtypes.AuthInfo, error) {
	pubAny, err := codectypes.NewAnyWithValue(pub)
	if err != nil {
		return nil, chainberry.ErrEncoding.Wrapf("public key: %s", err)
	}
	return &txtypes.AuthInfo{
		SignerInfos: []*txtypes.SignerInfo{{
			PublicKey: pubAny,
			ModeInfo: &txtypes.ModeInfo{
				Sum: &txtypes.ModeInfo_Single_{
					Single: &txtypes.ModeInfo_Single{
						Mode: signingtypes.SignMode_SIGN_MODE_DIRECT,
					},
				},
			},
			Sequence: sequence,
		}},
		Fee: &txtypes.Fee{
			Amount:   types.CoinsToWire(opts.Fee),
			GasLimit: opts.gasLimit(),
		},
	}, nil
}

// Command transfer demonstrates the full chainberry round-trip against
// a running node: dial, check the sender's balance, send funds, and
// confirm the receipt.
//
// Usage:
//
//	transfer -node localhost:9090 -chain-id test-1 -key-hex <32-byte-hex> -to berry1... -amount 100utoken
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/blockberries/chainberry"
	"github.com/blockberries/chainberry/bank"
	chaingrpc "github.com/blockberries/chainberry/grpc"
	"github.com/blockberries/chainberry/keys"
	"github.com/blockberries/chainberry/tx"
	"github.com/blockberries/chainberry/types"
)

func main() {
	var (
		node    = flag.String("node", "localhost:9090", "node gRPC endpoint")
		chainID = flag.String("chain-id", "test-1", "chain identifier")
		prefix  = flag.String("prefix", "berry", "bech32 address prefix")
		keyHex  = flag.String("key-hex", "", "sender private key (32 bytes, hex)")
		to      = flag.String("to", "", "recipient address")
		amount  = flag.String("amount", "", "coin to send, e.g. 100utoken")
	)
	flag.Parse()

	if *keyHex == "" || *to == "" || *amount == "" {
		flag.Usage()
		os.Exit(2)
	}

	coin, err := parseCoin(*amount)
	if err != nil {
		log.Fatalf("parse amount: %v", err)
	}

	raw, err := hex.DecodeString(*keyHex)
	if err != nil {
		log.Fatalf("parse key: %v", err)
	}
	signer, err := keys.FromBytes(raw)
	if err != nil {
		log.Fatalf("load key: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := chaingrpc.Dial(ctx, *node, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	client := chainberry.New(conn, chainberry.Config{
		ChainID:       *chainID,
		AddressPrefix: *prefix,
	})
	b := bank.New(client)

	from, err := signer.Address(*prefix)
	if err != nil {
		log.Fatalf("signer address: %v", err)
	}

	before, err := b.Balance(ctx, from, coin.Denom)
	if err != nil {
		log.Fatalf("balance: %v", err)
	}
	fmt.Printf("%s holds %s\n", from, before)

	receipt, err := b.Send(ctx, from, *to, []types.Coin{coin}, signer, tx.Options{
		Memo: "chainberry example transfer",
	})
	if err != nil {
		if rej, ok := chainberry.IsRejected(err); ok {
			log.Fatalf("rejected (code %d): %s", rej.Code, rej.RawLog)
		}
		log.Fatalf("send: %v", err)
	}
	fmt.Printf("sent %s to %s: tx %s\n", coin, *to, receipt.TxHash)
}

// parseCoin splits "100utoken" into magnitude and denom.
func parseCoin(s string) (types.Coin, error) {
	split := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if split <= 0 {
		return types.Coin{}, fmt.Errorf("want <amount><denom>, got %q", s)
	}
	amount, err := strconv.ParseUint(s[:split], 10, 64)
	if err != nil {
		return types.Coin{}, err
	}
	return types.NewCoin(amount, s[split:])
}

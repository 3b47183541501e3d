// Package sol is the live-cluster transport: rate-limited RPC access to
// pool state and vault balances, and transaction submission, optionally as
// an atomic Jito bundle so the deposit and swap land together.
package sol

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	jitorpc "github.com/jito-labs/jito-go-rpc"
	"github.com/mr-tron/base58"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"fixedswap/pkg/program"
	"fixedswap/pkg/token"
)

// Client wraps one RPC endpoint with a request budget.
type Client struct {
	rpc     *rpc.Client
	limiter *rate.Limiter
	jito    *jitorpc.JitoJsonRpcClient
	logger  *zap.Logger
}

// NewClient connects to endpoint, limiting requests per second. jitoRPC is
// optional; when set, SendBundle becomes available.
func NewClient(ctx context.Context, endpoint, jitoRPC string, reqLimitPerSecond int, logger *zap.Logger) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("sol: empty rpc endpoint")
	}
	if reqLimitPerSecond <= 0 {
		reqLimitPerSecond = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		rpc:     rpc.New(endpoint),
		limiter: rate.NewLimiter(rate.Limit(reqLimitPerSecond), reqLimitPerSecond),
		logger:  logger,
	}
	if jitoRPC != "" {
		c.jito = jitorpc.NewJitoJsonRpcClient(jitoRPC, "")
	}
	return c, nil
}

// GetPool fetches and decodes the pool record.
func (c *Client) GetPool(ctx context.Context, pool solana.PublicKey) (*program.Pool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := c.rpc.GetAccountInfo(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("fetch pool %s: %w", pool, err)
	}
	if res.Value == nil {
		return nil, fmt.Errorf("pool %s not found", pool)
	}
	return program.DecodePool(res.Value.Data.GetBinary())
}

// GetVaultBalances fetches the base and quote vault token balances in one
// round trip.
func (c *Client) GetVaultBalances(ctx context.Context, vaultA, vaultB solana.PublicKey) (uint64, uint64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, 0, err
	}
	res, err := c.rpc.GetMultipleAccounts(ctx, vaultA, vaultB)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch vaults: %w", err)
	}
	balances := make([]uint64, 2)
	for i, acc := range res.Value {
		if acc == nil {
			return 0, 0, fmt.Errorf("vault account %d not found", i)
		}
		bal, err := token.Balance(acc.Data.GetBinary())
		if err != nil {
			return 0, 0, err
		}
		balances[i] = bal
	}
	return balances[0], balances[1], nil
}

// LatestBlockhash fetches a recent blockhash for transaction assembly.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return solana.Hash{}, err
	}
	res, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("fetch blockhash: %w", err)
	}
	return res.Value.Blockhash, nil
}

// SendTransaction submits one signed transaction over plain RPC.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return solana.Signature{}, err
	}
	sig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}
	c.logger.Info("transaction submitted", zap.String("signature", sig.String()))
	return sig, nil
}

// SendBundle submits signed transactions as one Jito bundle, keeping the
// deposit and swap adjacent in a single atomic unit.
func (c *Client) SendBundle(ctx context.Context, txs []*solana.Transaction) error {
	if c.jito == nil {
		return fmt.Errorf("sol: no jito endpoint configured")
	}
	encoded := make([]string, len(txs))
	for i, tx := range txs {
		raw, err := tx.MarshalBinary()
		if err != nil {
			return fmt.Errorf("marshal bundle transaction %d: %w", i, err)
		}
		encoded[i] = base58.Encode(raw)
	}

	resp, err := c.jito.SendBundle([][]string{encoded})
	if err != nil {
		return fmt.Errorf("send bundle: %w", err)
	}
	c.logger.Info("bundle submitted", zap.ByteString("response", resp))
	return nil
}

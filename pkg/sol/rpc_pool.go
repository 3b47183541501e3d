package sol

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// RPCPool spreads reads across several endpoints; any client can carry a
// swap submission since every deposit+swap pair is self-contained.
type RPCPool struct {
	clients []*Client
	index   uint64
}

// NewRPCPool connects one client per endpoint.
func NewRPCPool(ctx context.Context, endpoints []string, jitoRPC string, reqLimitPerSecond int, logger *zap.Logger) (*RPCPool, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("sol: no rpc endpoints configured")
	}

	pool := &RPCPool{clients: make([]*Client, 0, len(endpoints))}
	for _, endpoint := range endpoints {
		client, err := NewClient(ctx, endpoint, jitoRPC, reqLimitPerSecond, logger)
		if err != nil {
			return nil, err
		}
		pool.clients = append(pool.clients, client)
	}
	return pool, nil
}

// GetClient returns the next client round-robin.
func (p *RPCPool) GetClient() *Client {
	if len(p.clients) == 0 {
		return nil
	}
	if len(p.clients) == 1 {
		return p.clients[0]
	}
	idx := atomic.AddUint64(&p.index, 1) % uint64(len(p.clients))
	return p.clients[idx]
}

// Size returns the number of clients in the pool.
func (p *RPCPool) Size() int {
	return len(p.clients)
}

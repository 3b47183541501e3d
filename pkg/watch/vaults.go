package watch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"fixedswap/pkg/program"
	"fixedswap/pkg/token"
)

// VaultBalances is one consistent snapshot of the pool's custody balances.
type VaultBalances struct {
	Base      uint64
	Quote     uint64
	Slot      uint64
	UpdatedAt time.Time
}

// VaultWatcher tracks a single pool's two vaults.
type VaultWatcher struct {
	ws     *WebSocketClient
	pool   *program.Pool
	logger *zap.Logger

	mu       sync.RWMutex
	balances VaultBalances
	seen     bool
}

// NewVaultWatcher subscribes to both vault accounts of pool.
func NewVaultWatcher(ctx context.Context, wsURL string, pool *program.Pool, logger *zap.Logger) (*VaultWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ws, err := NewWebSocketClient(ctx, wsURL, logger)
	if err != nil {
		return nil, err
	}

	w := &VaultWatcher{ws: ws, pool: pool, logger: logger}

	if _, err := ws.SubscribeAccount(pool.VaultA.String(), w.onBaseUpdate); err != nil {
		ws.Close()
		return nil, err
	}
	if _, err := ws.SubscribeAccount(pool.VaultB.String(), w.onQuoteUpdate); err != nil {
		ws.Close()
		return nil, err
	}
	return w, nil
}

func (w *VaultWatcher) onBaseUpdate(accountID string, data []byte, slot uint64) {
	w.update(accountID, data, slot, true)
}

func (w *VaultWatcher) onQuoteUpdate(accountID string, data []byte, slot uint64) {
	w.update(accountID, data, slot, false)
}

func (w *VaultWatcher) update(accountID string, data []byte, slot uint64, base bool) {
	balance, err := token.Balance(data)
	if err != nil {
		w.logger.Warn("undecodable vault update",
			zap.String("account", accountID), zap.Error(err))
		return
	}

	w.mu.Lock()
	if base {
		w.balances.Base = balance
	} else {
		w.balances.Quote = balance
	}
	w.balances.Slot = slot
	w.balances.UpdatedAt = time.Now()
	w.seen = true
	w.mu.Unlock()

	w.logger.Debug("vault balance updated",
		zap.String("account", accountID),
		zap.Uint64("balance", balance),
		zap.Uint64("slot", slot))
}

// Balances returns the latest snapshot; ok is false until the first update
// arrives.
func (w *VaultWatcher) Balances() (VaultBalances, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.balances, w.seen
}

// Close stops the underlying subscription client.
func (w *VaultWatcher) Close() error { return w.ws.Close() }

// Package watch keeps a live view of a pool's vault balances over a
// WebSocket account subscription.
package watch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AccountUpdateHandler receives decoded account data per notification.
type AccountUpdateHandler func(accountID string, data []byte, slot uint64)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type notificationMessage struct {
	Method string `json:"method"`
	Params struct {
		Result struct {
			Context struct {
				Slot uint64 `json:"slot"`
			} `json:"context"`
			Value struct {
				Data []any `json:"data"` // [base64 data, encoding]
			} `json:"value"`
		} `json:"result"`
		Subscription uint64 `json:"subscription"`
	} `json:"params"`
}

type subscription struct {
	id        uint64
	accountID string
	remoteID  uint64
	handler   AccountUpdateHandler
}

// WebSocketClient is a minimal JSON-RPC account subscription client with
// automatic reconnect and resubscribe.
type WebSocketClient struct {
	url    string
	logger *zap.Logger

	mu            sync.RWMutex
	conn          *websocket.Conn
	connected     bool
	nextID        uint64
	subscriptions map[uint64]*subscription

	reconnectDelay time.Duration
	ctx            context.Context
	cancel         context.CancelFunc
}

// NewWebSocketClient dials wsURL and starts the reader and reconnect loops.
func NewWebSocketClient(ctx context.Context, wsURL string, logger *zap.Logger) (*WebSocketClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clientCtx, cancel := context.WithCancel(ctx)

	c := &WebSocketClient{
		url:            wsURL,
		logger:         logger,
		nextID:         1,
		subscriptions:  make(map[uint64]*subscription),
		reconnectDelay: 5 * time.Second,
		ctx:            clientCtx,
		cancel:         cancel,
	}
	if err := c.connect(); err != nil {
		cancel()
		return nil, err
	}

	go c.readMessages()
	go c.reconnectLoop()
	return c, nil
}

func (c *WebSocketClient) connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("watch: connect %s: %w", c.url, err)
	}
	c.conn = conn
	c.connected = true
	c.logger.Info("websocket connected", zap.String("url", c.url))
	return nil
}

// SubscribeAccount subscribes to base64-encoded updates of one account.
func (c *WebSocketClient) SubscribeAccount(accountID string, handler AccountUpdateHandler) (uint64, error) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscriptions[id] = &subscription{id: id, accountID: accountID, handler: handler}
	c.mu.Unlock()

	if err := c.sendSubscribe(id, accountID); err != nil {
		c.mu.Lock()
		delete(c.subscriptions, id)
		c.mu.Unlock()
		return 0, err
	}
	return id, nil
}

func (c *WebSocketClient) sendSubscribe(id uint64, accountID string) error {
	return c.sendRequest(rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  "accountSubscribe",
		Params: []any{
			accountID,
			map[string]any{"encoding": "base64", "commitment": "confirmed"},
		},
	})
}

func (c *WebSocketClient) sendRequest(req rpcRequest) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return fmt.Errorf("watch: not connected")
	}

	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (c *WebSocketClient) readMessages() {
	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()
		if conn == nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			c.logger.Warn("websocket read failed", zap.Error(err))
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			time.Sleep(100 * time.Millisecond)
			continue
		}
		c.handleMessage(message)
	}
}

func (c *WebSocketClient) handleMessage(data []byte) {
	var notification notificationMessage
	if err := json.Unmarshal(data, &notification); err == nil && notification.Method == "accountNotification" {
		c.handleNotification(&notification)
		return
	}

	var response rpcResponse
	if err := json.Unmarshal(data, &response); err != nil {
		c.logger.Warn("unparseable websocket message", zap.Error(err))
		return
	}
	if response.Error != nil {
		c.logger.Warn("subscription rejected", zap.String("message", response.Error.Message))
		return
	}

	var remoteID uint64
	if err := json.Unmarshal(response.Result, &remoteID); err != nil {
		return
	}
	c.mu.Lock()
	if sub, ok := c.subscriptions[response.ID]; ok {
		sub.remoteID = remoteID
	}
	c.mu.Unlock()
}

func (c *WebSocketClient) handleNotification(n *notificationMessage) {
	c.mu.RLock()
	var sub *subscription
	for _, s := range c.subscriptions {
		if s.remoteID == n.Params.Subscription {
			sub = s
			break
		}
	}
	c.mu.RUnlock()
	if sub == nil {
		return
	}

	if len(n.Params.Result.Value.Data) < 1 {
		return
	}
	encoded, ok := n.Params.Result.Value.Data[0].(string)
	if !ok {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		c.logger.Warn("bad account data encoding", zap.Error(err))
		return
	}
	sub.handler(sub.accountID, raw, n.Params.Result.Context.Slot)
}

func (c *WebSocketClient) reconnectLoop() {
	ticker := time.NewTicker(c.reconnectDelay)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.mu.RLock()
			connected := c.connected
			c.mu.RUnlock()
			if connected {
				continue
			}
			if err := c.reconnect(); err != nil {
				c.logger.Warn("reconnect failed", zap.Error(err))
			}
		}
	}
}

func (c *WebSocketClient) reconnect() error {
	if err := c.connect(); err != nil {
		return err
	}

	c.mu.RLock()
	subs := make([]*subscription, 0, len(c.subscriptions))
	for _, sub := range c.subscriptions {
		subs = append(subs, sub)
	}
	c.mu.RUnlock()

	for _, sub := range subs {
		if err := c.sendSubscribe(sub.id, sub.accountID); err != nil {
			c.logger.Warn("resubscribe failed", zap.String("account", sub.accountID), zap.Error(err))
		}
	}
	return nil
}

// Close tears the connection down and stops the background loops.
func (c *WebSocketClient) Close() error {
	c.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

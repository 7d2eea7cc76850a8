package service

import (
	"net/http"
	"sync"
	"time"

	"signal_bot/internal/modules/config"

	"github.com/gorilla/websocket"
)

// Client — REST + WS клиент Binance. Для свипов источник правды — REST,
// WS-тикер держит кэш последней цены референс-актива и health-статус.
type Client struct {
	cfg *config.Config

	http     *http.Client
	wsDialer *websocket.Dialer

	mu        sync.RWMutex
	lastPrice map[string]float64 // symbol -> последняя цена из WS
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:       cfg,
		http:      &http.Client{Timeout: 10 * time.Second},
		wsDialer:  &websocket.Dialer{},
		lastPrice: make(map[string]float64),
	}
}

// CachedPrice — последняя цена из WS-стрима, ok=false если стрим ещё молчал.
func (c *Client) CachedPrice(symbol string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	px, ok := c.lastPrice[symbol]
	return px, ok
}

func (c *Client) setCachedPrice(symbol string, px float64) {
	c.mu.Lock()
	c.lastPrice[symbol] = px
	c.mu.Unlock()
}

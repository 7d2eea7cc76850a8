package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
)

type HealthState interface {
	SetWSConnected(v bool)
	TouchTick(t time.Time)
}

type miniTicker struct {
	EventTime int64  `json:"E"`
	Symbol    string `json:"s"`
	Close     string `json:"c"`
}

// StreamMiniTicker держит WS-подписку на @miniTicker одного символа и
// обновляет кэш последней цены. При обрыве переподключается с паузой.
func (c *Client) StreamMiniTicker(ctx context.Context, symbol string, hs HealthState) {
	endpoint := c.cfg.Binance.WSURL + "/ws/" + strings.ToLower(symbol) + "@miniTicker"

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := c.wsDialer.DialContext(ctx, endpoint, nil)
		if err != nil {
			logger.Error("[WS] dial %s: %v", endpoint, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		if hs != nil {
			hs.SetWSConnected(true)
		}
		logger.Info("[WS] подключен miniTicker %s", symbol)

		// ReadMessage не смотрит на ctx: соединение надо закрыть снаружи,
		// иначе остановка приложения зависнет на чтении.
		connDone := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
			case <-connDone:
			}
			_ = conn.Close()
		}()

		c.readLoop(ctx, conn.ReadMessage, symbol, hs)
		close(connDone)

		if hs != nil {
			hs.SetWSConnected(false)
		}
	}
}

func (c *Client) readLoop(ctx context.Context, read func() (int, []byte, error), symbol string, hs HealthState) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, msg, err := read()
		if err != nil {
			logger.Error("[WS] read %s: %v", symbol, err)
			return
		}

		var t miniTicker
		if err := sonic.Unmarshal(msg, &t); err != nil {
			continue
		}
		px, err := strconv.ParseFloat(t.Close, 64)
		if err != nil || px <= 0 {
			continue
		}

		c.setCachedPrice(symbol, px)
		if hs != nil {
			hs.TouchTick(time.UnixMilli(t.EventTime))
		}
	}
}

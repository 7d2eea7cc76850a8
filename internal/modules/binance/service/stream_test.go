package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func wsTestClient(httpURL string) *Client {
	cfg := &config.Config{}
	cfg.Binance.WSURL = "ws" + strings.TrimPrefix(httpURL, "http")
	return NewClient(cfg)
}

// Сервер шлёт один miniTicker и молчит, не закрывая соединение.
func TestStreamMiniTickerStopsOnCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		err = conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"E":1714550400000,"s":"BTCUSDT","c":"50123.45000000"}`))
		if err != nil {
			return
		}

		// дальше тишина: следующий ReadMessage у клиента блокируется
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	c := wsTestClient(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		c.StreamMiniTicker(ctx, "BTCUSDT", nil)
		close(done)
	}()

	// дожидаемся, пока тикер дойдёт до кэша
	require.Eventually(t, func() bool {
		_, ok := c.CachedPrice("BTCUSDT")
		return ok
	}, 3*time.Second, 10*time.Millisecond)

	px, _ := c.CachedPrice("BTCUSDT")
	assert.Equal(t, 50123.45, px)

	// отмена контекста должна вытолкнуть заблокированное чтение
	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("стрим не завершился после отмены контекста")
	}
}

func TestReadLoopStopsOnReadError(t *testing.T) {
	c := wsTestClient("http://127.0.0.1:0")

	calls := 0
	read := func() (int, []byte, error) {
		calls++
		if calls == 1 {
			return websocket.TextMessage, []byte(`{"E":1714550400000,"s":"ETHUSDT","c":"100.5"}`), nil
		}
		return 0, nil, assert.AnError
	}

	c.readLoop(context.Background(), read, "ETHUSDT", nil)

	px, ok := c.CachedPrice("ETHUSDT")
	require.True(t, ok)
	assert.Equal(t, 100.5, px)
}

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
)

// Klines тянет закрытые свечи. Binance отдаёт kline как массив смешанных
// типов: [openTime, "open", "high", "low", "close", "volume", ...].
func (c *Client) Klines(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.Binance.BaseURL+"/api/v3/klines?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("Klines new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: klines %s: %v", models.ErrDataUnavailable, symbol, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: klines %s http %d: %s",
			models.ErrDataUnavailable, symbol, resp.StatusCode, string(data))
	}

	var raw [][]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: klines %s decode: %v", models.ErrDataUnavailable, symbol, err)
	}

	out := make([]models.Candle, 0, len(raw))
	for _, k := range raw {
		if len(k) < 6 {
			continue
		}
		openMs, _ := k[0].(float64)
		out = append(out, models.Candle{
			OpenTime: time.UnixMilli(int64(openMs)),
			Open:     parsePrice(k[1]),
			High:     parsePrice(k[2]),
			Low:      parsePrice(k[3]),
			Close:    parsePrice(k[4]),
			Volume:   parsePrice(k[5]),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: klines %s: empty response", models.ErrDataUnavailable, symbol)
	}
	return out, nil
}

// Closes — только цены закрытия, в порядке от старых к новым.
func (c *Client) Closes(ctx context.Context, symbol, interval string, limit int) ([]float64, error) {
	candles, err := c.Klines(ctx, symbol, interval, limit)
	if err != nil {
		return nil, err
	}
	closes := make([]float64, len(candles))
	for i, cd := range candles {
		closes[i] = cd.Close
	}
	return closes, nil
}

func parsePrice(v any) float64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
)

// Price — текущая цена символа через /ticker/price.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.Binance.BaseURL+"/api/v3/ticker/price?symbol="+symbol, nil)
	if err != nil {
		return 0, fmt.Errorf("Price new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: price %s: %v", models.ErrDataUnavailable, symbol, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("%w: price %s http %d: %s",
			models.ErrDataUnavailable, symbol, resp.StatusCode, string(data))
	}

	var r struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := sonic.Unmarshal(data, &r); err != nil {
		return 0, fmt.Errorf("%w: price %s decode: %v", models.ErrDataUnavailable, symbol, err)
	}

	px, err := strconv.ParseFloat(r.Price, 64)
	if err != nil || px <= 0 {
		return 0, fmt.Errorf("%w: price %s: bad payload %q", models.ErrDataUnavailable, symbol, r.Price)
	}
	return px, nil
}

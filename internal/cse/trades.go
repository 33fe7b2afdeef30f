package cse

import (
	"context"
	"net/url"
)

// TradeSummary returns the trade summary for all securities.
func (c *Client) TradeSummary(ctx context.Context) *Response {
	return c.do(ctx, EndpointTradeSummary, nil)
}

// TodaySharePrice returns today's share prices for all securities.
func (c *Client) TodaySharePrice(ctx context.Context) *Response {
	return c.do(ctx, EndpointTodaySharePrice, nil)
}

// TopGainers returns the securities with the highest percentage gains.
func (c *Client) TopGainers(ctx context.Context) *Response {
	return c.do(ctx, EndpointTopGainers, nil)
}

// TopLosers returns the securities with the highest percentage losses.
func (c *Client) TopLosers(ctx context.Context) *Response {
	return c.do(ctx, EndpointTopLosers, nil)
}

// MostActiveTrades returns the most actively traded securities by volume.
func (c *Client) MostActiveTrades(ctx context.Context) *Response {
	return c.do(ctx, EndpointMostActiveTrades, nil)
}

// DetailedTrades returns detailed trade information, optionally filtered by
// symbol.
func (c *Client) DetailedTrades(ctx context.Context, symbol string) *Response {
	var params url.Values
	if symbol != "" {
		params = url.Values{}
		params.Set("symbol", symbol)
	}
	return c.do(ctx, EndpointDetailedTrades, params)
}

package cse

import (
	"context"
	"net/url"
)

// MarketStatus returns the current market open/close status.
func (c *Client) MarketStatus(ctx context.Context) *Response {
	return c.do(ctx, EndpointMarketStatus, nil)
}

// MarketSummary returns the market-wide summary statistics.
func (c *Client) MarketSummary(ctx context.Context) *Response {
	return c.do(ctx, EndpointMarketSummary, nil)
}

// DailyMarketSummary returns the daily market summary series.
func (c *Client) DailyMarketSummary(ctx context.Context) *Response {
	return c.do(ctx, EndpointDailyMarketSummary, nil)
}

// ASPIData returns the All Share Price Index value and change.
func (c *Client) ASPIData(ctx context.Context) *Response {
	return c.do(ctx, EndpointASPIData, nil)
}

// SNPData returns the S&P Sri Lanka 20 index value and change.
func (c *Client) SNPData(ctx context.Context) *Response {
	return c.do(ctx, EndpointSNPData, nil)
}

// ChartData returns chart data for a symbol. The upstream service rejects
// some symbols with HTTP 400.
func (c *Client) ChartData(ctx context.Context, symbol string) *Response {
	params := url.Values{}
	params.Set("symbol", symbol)
	return c.do(ctx, EndpointChartData, params)
}

// AllSectors returns every sector index.
func (c *Client) AllSectors(ctx context.Context) *Response {
	return c.do(ctx, EndpointAllSectors, nil)
}

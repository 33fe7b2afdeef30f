package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csekit/internal/config"
	"csekit/internal/cse"
)

func floatPtr(v float64) *float64 { return &v }

func TestComputeMetrics(t *testing.T) {
	si := &cse.SymbolInfo{
		LastTradedPrice: 110,
		PreviousClose:   100,
		YTDHighPrice:    150,
		YTDLowPrice:     50,
		P12HighPrice:    200,
		P12LowPrice:     100,
		MarketCap:       1_000_000,
		QuantityIssued:  10_000,
		YTDShareVolume:  2_000,
		YTDTurnover:     220_000,
	}
	beta := &cse.BetaInfo{TriASIBetaValue: floatPtr(1.2)}

	m := computeMetrics(si, beta)

	require.NotNil(t, m.PriceChangePct)
	assert.InDelta(t, 10.0, *m.PriceChangePct, 1e-9)

	require.NotNil(t, m.YTDVolatility)
	assert.InDelta(t, 200.0, *m.YTDVolatility, 1e-9)
	require.NotNil(t, m.PositionInYTDRange)
	assert.InDelta(t, 60.0, *m.PositionInYTDRange, 1e-9)

	require.NotNil(t, m.P12Volatility)
	assert.InDelta(t, 100.0, *m.P12Volatility, 1e-9)
	require.NotNil(t, m.PositionInP12Range)
	assert.InDelta(t, 10.0, *m.PositionInP12Range, 1e-9)

	require.NotNil(t, m.BookValuePerShare)
	assert.InDelta(t, 100.0, *m.BookValuePerShare, 1e-9)

	require.NotNil(t, m.AvgPriceYTD)
	assert.InDelta(t, 110.0, *m.AvgPriceYTD, 1e-9)
	require.NotNil(t, m.PriceVsYTDAvg)
	assert.InDelta(t, 0.0, *m.PriceVsYTDAvg, 1e-9)

	assert.Equal(t, RiskMedium, m.RiskCategory)
}

func TestComputeMetricsMissingInputs(t *testing.T) {
	m := computeMetrics(&cse.SymbolInfo{}, &cse.BetaInfo{})

	assert.Nil(t, m.PriceChangePct)
	assert.Nil(t, m.YTDVolatility)
	assert.Nil(t, m.BookValuePerShare)
	assert.Equal(t, RiskUnknown, m.RiskCategory)
}

func TestRiskCategory(t *testing.T) {
	assert.Equal(t, RiskHigh, riskCategory(1.6))
	assert.Equal(t, RiskMedium, riskCategory(1.2))
	assert.Equal(t, RiskLow, riskCategory(0.8))
	assert.Equal(t, RiskVeryLow, riskCategory(0.3))
}

func TestAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		symbol := r.PostFormValue("symbol")
		if symbol == "BAD.N0000" {
			http.Error(w, "no such symbol", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{
			"reqSymbolInfo": {
				"id": 305, "symbol": "` + symbol + `", "name": "LOLC HOLDINGS PLC",
				"lastTradedPrice": 500, "previousClose": 490, "changePercentage": 2.04,
				"marketCap": 237000000000
			},
			"reqSymbolBetaInfo": {"triASIBetaValue": 0.9},
			"reqLogo": {"id": 10, "path": "logo/lolc.jpg"}
		}`))
	}))
	defer server.Close()

	client := cse.NewClient(&config.APIConfig{
		BaseURL:        server.URL + "/",
		UserAgent:      "csekit-test",
		Timeout:        5 * time.Second,
		RequestsPerSec: 1000,
		Burst:          100,
	})

	companies := []cse.Company{
		{Symbol: "LOLC.N0000", Name: "LOLC HOLDINGS PLC"},
		{Symbol: "BAD.N0000", Name: "BROKEN PLC"},
		{Symbol: "AEL.N0000", Name: "ACCESS ENGINEERING PLC"},
	}

	report := NewAnalyzer(client).Analyze(context.Background(), companies, 0)

	require.Len(t, report.Results, 2)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "BAD.N0000", report.Failed[0].Symbol)

	first := report.Results[0]
	assert.Equal(t, "LOLC.N0000", first.Symbol)
	assert.True(t, first.HasLogo)
	assert.Equal(t, RiskLow, first.Metrics.RiskCategory)
	require.NotNil(t, first.Metrics.PriceChangePct)
	assert.InDelta(t, 2.0408, *first.Metrics.PriceChangePct, 0.001)
}

func TestAnalyzeLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"reqSymbolInfo":{"symbol":"X"},"reqSymbolBetaInfo":{}}`))
	}))
	defer server.Close()

	client := cse.NewClient(&config.APIConfig{
		BaseURL:        server.URL + "/",
		Timeout:        5 * time.Second,
		RequestsPerSec: 1000,
		Burst:          100,
	})

	companies := make([]cse.Company, 5)
	for i := range companies {
		companies[i] = cse.Company{Symbol: "X"}
	}

	report := NewAnalyzer(client).Analyze(context.Background(), companies, 2)
	assert.Len(t, report.Results, 2)
	assert.Equal(t, 2, calls)
}

func TestTopByChange(t *testing.T) {
	report := &AnalysisReport{Results: []CompanyAnalysis{
		{Symbol: "A", ChangePercentage: 1.0},
		{Symbol: "B", ChangePercentage: 5.0},
		{Symbol: "C", ChangePercentage: -2.0},
	}}

	top := report.TopByChange(2)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].Symbol)
	assert.Equal(t, "A", top[1].Symbol)
	// Original order untouched.
	assert.Equal(t, "A", report.Results[0].Symbol)
}

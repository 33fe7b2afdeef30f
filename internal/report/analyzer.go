package report

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"csekit/internal/cse"
	"csekit/internal/logger"
)

// Risk categories derived from the ASI beta value.
const (
	RiskHigh    = "High Risk"
	RiskMedium  = "Medium Risk"
	RiskLow     = "Low Risk"
	RiskVeryLow = "Very Low Risk"
	RiskUnknown = "Unknown"
)

// Metrics are the derived investment indicators for one security. Pointer
// fields stay nil when the inputs needed to derive them are missing.
type Metrics struct {
	PriceChangePct     *float64 `json:"price_change_pct,omitempty"`
	YTDVolatility      *float64 `json:"ytd_volatility,omitempty"`
	PositionInYTDRange *float64 `json:"position_in_ytd_range,omitempty"`
	P12Volatility      *float64 `json:"p12_volatility,omitempty"`
	PositionInP12Range *float64 `json:"position_in_p12_range,omitempty"`
	BookValuePerShare  *float64 `json:"book_value_per_share,omitempty"`
	AvgPriceYTD        *float64 `json:"avg_price_ytd,omitempty"`
	PriceVsYTDAvg      *float64 `json:"price_vs_ytd_avg,omitempty"`
	RiskCategory       string   `json:"risk_category"`
}

// CompanyAnalysis is the full analysis record for one security.
type CompanyAnalysis struct {
	SecurityID       int64    `json:"security_id"`
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	ISIN             string   `json:"isin"`
	LastTradedPrice  float64  `json:"last_traded_price"`
	PreviousClose    float64  `json:"previous_close"`
	ChangePercentage float64  `json:"change_percentage"`
	MarketCap        float64  `json:"market_cap"`
	ForeignHoldings  float64  `json:"foreign_holdings"`
	TriASIBeta       *float64 `json:"tri_asi_beta,omitempty"`
	SPSLBeta         *float64 `json:"spsl_beta,omitempty"`
	HasLogo          bool     `json:"has_logo"`
	AnalyzedAt       string   `json:"analyzed_at"`
	Metrics          Metrics  `json:"metrics"`
}

// FailedAnalysis records a company whose info request failed.
type FailedAnalysis struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Error  string `json:"error"`
}

// AnalysisReport aggregates an analyzer run.
type AnalysisReport struct {
	Results []CompanyAnalysis `json:"results"`
	Failed  []FailedAnalysis  `json:"failed,omitempty"`
}

// Analyzer derives investment metrics for register entries by fetching their
// company info summaries.
type Analyzer struct {
	client *cse.Client
	log    logger.Logger
}

// NewAnalyzer creates an analyzer on top of the API client.
func NewAnalyzer(client *cse.Client) *Analyzer {
	return &Analyzer{
		client: client,
		log:    logger.Default().WithField("component", "analyzer"),
	}
}

// Analyze fetches and analyzes up to limit companies (0 means all). Failing
// companies are recorded and skipped.
func (a *Analyzer) Analyze(ctx context.Context, companies []cse.Company, limit int) *AnalysisReport {
	if limit > 0 && len(companies) > limit {
		companies = companies[:limit]
	}

	report := &AnalysisReport{}
	for i, company := range companies {
		if ctx.Err() != nil {
			break
		}

		resp := a.client.CompanyInfo(ctx, company.Symbol)
		if !resp.Success {
			report.Failed = append(report.Failed, FailedAnalysis{
				Symbol: company.Symbol,
				Name:   company.Name,
				Error:  resp.Error,
			})
			continue
		}

		var info cse.CompanyInfo
		if err := resp.Decode(&info); err != nil {
			report.Failed = append(report.Failed, FailedAnalysis{
				Symbol: company.Symbol,
				Name:   company.Name,
				Error:  err.Error(),
			})
			continue
		}

		report.Results = append(report.Results, buildAnalysis(&info))
		a.log.Debug("analyzed company",
			"symbol", company.Symbol,
			"progress", fmt.Sprintf("%d/%d", i+1, len(companies)),
		)
	}

	return report
}

func buildAnalysis(info *cse.CompanyInfo) CompanyAnalysis {
	si := info.SymbolInfo
	analysis := CompanyAnalysis{
		SecurityID:       si.ID,
		Symbol:           si.Symbol,
		Name:             si.Name,
		ISIN:             si.ISIN,
		LastTradedPrice:  si.LastTradedPrice,
		PreviousClose:    si.PreviousClose,
		ChangePercentage: si.ChangePercentage,
		MarketCap:        si.MarketCap,
		ForeignHoldings:  si.ForeignHoldings,
		TriASIBeta:       info.BetaInfo.TriASIBetaValue,
		SPSLBeta:         info.BetaInfo.BetaValueSPSL,
		HasLogo:          info.Logo != nil && info.Logo.Path != "",
		AnalyzedAt:       time.Now().Format(time.RFC3339),
		Metrics:          computeMetrics(&si, &info.BetaInfo),
	}
	return analysis
}

// computeMetrics derives the indicator set from raw symbol and beta data.
func computeMetrics(si *cse.SymbolInfo, beta *cse.BetaInfo) Metrics {
	m := Metrics{RiskCategory: RiskUnknown}

	if si.LastTradedPrice != 0 && si.PreviousClose != 0 {
		m.PriceChangePct = ptr((si.LastTradedPrice - si.PreviousClose) / si.PreviousClose * 100)
	}

	if si.YTDHighPrice != 0 && si.YTDLowPrice != 0 && si.YTDHighPrice != si.YTDLowPrice {
		m.YTDVolatility = ptr((si.YTDHighPrice - si.YTDLowPrice) / si.YTDLowPrice * 100)
		if si.LastTradedPrice != 0 {
			m.PositionInYTDRange = ptr((si.LastTradedPrice - si.YTDLowPrice) / (si.YTDHighPrice - si.YTDLowPrice) * 100)
		}
	}

	if si.P12HighPrice != 0 && si.P12LowPrice != 0 && si.P12HighPrice != si.P12LowPrice {
		m.P12Volatility = ptr((si.P12HighPrice - si.P12LowPrice) / si.P12LowPrice * 100)
		if si.LastTradedPrice != 0 {
			m.PositionInP12Range = ptr((si.LastTradedPrice - si.P12LowPrice) / (si.P12HighPrice - si.P12LowPrice) * 100)
		}
	}

	if si.MarketCap != 0 && si.QuantityIssued != 0 {
		m.BookValuePerShare = ptr(si.MarketCap / si.QuantityIssued)
	}

	if si.YTDShareVolume != 0 && si.YTDTurnover != 0 {
		avg := si.YTDTurnover / si.YTDShareVolume
		m.AvgPriceYTD = ptr(avg)
		if si.LastTradedPrice != 0 && avg != 0 {
			m.PriceVsYTDAvg = ptr((si.LastTradedPrice - avg) / avg * 100)
		}
	}

	if beta.TriASIBetaValue != nil {
		m.RiskCategory = riskCategory(*beta.TriASIBetaValue)
	}

	return m
}

func riskCategory(beta float64) string {
	switch {
	case beta > 1.5:
		return RiskHigh
	case beta > 1.0:
		return RiskMedium
	case beta > 0.5:
		return RiskLow
	default:
		return RiskVeryLow
	}
}

func ptr(v float64) *float64 { return &v }

// TopByChange returns up to n results sorted by change percentage,
// descending.
func (r *AnalysisReport) TopByChange(n int) []CompanyAnalysis {
	sorted := make([]CompanyAnalysis, len(r.Results))
	copy(sorted, r.Results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ChangePercentage > sorted[j].ChangePercentage
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// SaveJSON writes the full report as JSON under dir.
func (r *AnalysisReport) SaveJSON(dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("investment_analysis_%s.json", time.Now().Format("20060102_150405")))
	return path, WriteJSON(path, r)
}

// SaveExcel writes the result rows to a workbook under dir.
func (r *AnalysisReport) SaveExcel(dir string) (string, error) {
	headers := []string{
		"Security ID", "Symbol", "Name", "Last Traded Price", "Previous Close",
		"Change %", "Market Cap", "YTD Volatility %", "YTD Range Position %",
		"Book Value / Share", "Risk Category",
	}
	rows := make([][]interface{}, 0, len(r.Results))
	for _, result := range r.Results {
		rows = append(rows, []interface{}{
			result.SecurityID,
			result.Symbol,
			result.Name,
			result.LastTradedPrice,
			result.PreviousClose,
			result.ChangePercentage,
			result.MarketCap,
			deref(result.Metrics.YTDVolatility),
			deref(result.Metrics.PositionInYTDRange),
			deref(result.Metrics.BookValuePerShare),
			result.Metrics.RiskCategory,
		})
	}

	path := filepath.Join(dir, fmt.Sprintf("investment_analysis_%s.xlsx", time.Now().Format("20060102_150405")))
	return path, WriteExcel(path, "Analysis", headers, rows)
}

func deref(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

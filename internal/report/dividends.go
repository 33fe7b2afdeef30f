package report

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"csekit/internal/cse"
	apperrors "csekit/internal/errors"
	"csekit/internal/logger"
	"csekit/internal/store"
)

// DividendDetail is the enriched record built from an approved announcement
// and its detail payload.
type DividendDetail struct {
	AnnouncementID   int64           `json:"announcement_id"`
	CompanyName      string          `json:"company_name"`
	Symbol           string          `json:"symbol"`
	DividendPerShare decimal.Decimal `json:"dividend_per_share"`
	FinancialYear    string          `json:"financial_year"`
	AnnouncementDate string          `json:"announcement_date"`
	ExDividendDate   string          `json:"ex_dividend_date"`
	PaymentDate      string          `json:"payment_date"`
	AGMDate          string          `json:"agm_date"`
	RecordDate       *string         `json:"record_date,omitempty"`
	Remarks          string          `json:"remarks,omitempty"`
	DocumentsCount   int             `json:"documents_count"`
}

// CalendarEvent is one entry of the dividend calendar.
type CalendarEvent struct {
	Date      string          `json:"date"`
	EventType string          `json:"event_type"`
	Company   string          `json:"company"`
	Symbol    string          `json:"symbol"`
	Amount    decimal.Decimal `json:"amount"`
	Details   string          `json:"details"`
}

// DividendStats summarizes per-share dividend amounts.
type DividendStats struct {
	TotalAnalyzed int             `json:"total_analyzed"`
	Average       decimal.Decimal `json:"average"`
	Median        decimal.Decimal `json:"median"`
	Min           decimal.Decimal `json:"min"`
	Max           decimal.Decimal `json:"max"`
}

// TrendSummary is the dividend trend analysis output.
type TrendSummary struct {
	Stats     DividendStats    `json:"dividend_statistics"`
	TopPayers []DividendDetail `json:"top_dividend_payers"`
}

// Tracker collects dividend announcements across the dividend-related
// categories and enriches them with per-announcement detail.
type Tracker struct {
	client *cse.Client
	store  *store.Store
	log    logger.Logger
}

// NewTracker creates a dividend tracker.
func NewTracker(client *cse.Client, st *store.Store) *Tracker {
	return &Tracker{
		client: client,
		store:  st,
		log:    logger.Default().WithField("component", "dividend_tracker"),
	}
}

// FetchDividends queries every dividend-related category over the look-back
// window and returns the combined announcement list. The category catalog
// must have been fetched beforehand.
func (t *Tracker) FetchDividends(ctx context.Context, daysBack int) ([]cse.ApprovedAnnouncement, error) {
	catalog, err := t.store.LoadCategories()
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrCodeStore,
			"category catalog unavailable; fetch categories first")
	}

	categories := catalog.DividendCategories()
	if len(categories) == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "no dividend categories in catalog", nil)
	}

	toDate := time.Now().Format("2006-01-02")
	fromDate := time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")

	var all []cse.ApprovedAnnouncement
	for _, category := range categories {
		resp := t.client.ApprovedAnnouncements(ctx, &cse.ApprovedFilter{
			AnnouncementType: category.CategoryName,
			FromDate:         fromDate,
			ToDate:           toDate,
			Categories:       category.CategoryName,
		})
		if !resp.Success {
			t.log.Warn("category fetch failed",
				"category", category.CategoryName,
				"error", resp.Error,
			)
			continue
		}

		announcements, err := cse.DecodeApprovedAnnouncements(resp)
		if err != nil {
			t.log.Warn("category decode failed",
				"category", category.CategoryName,
				"error", err,
			)
			continue
		}

		all = append(all, announcements...)
		t.log.Info("fetched dividend category",
			"category", category.CategoryName,
			"count", len(announcements),
		)
	}

	return all, nil
}

// FetchDetails enriches the most recent announcements with their detail
// payloads, newest first, up to maxDetails (0 means all).
func (t *Tracker) FetchDetails(ctx context.Context, announcements []cse.ApprovedAnnouncement, maxDetails int) []DividendDetail {
	sorted := make([]cse.ApprovedAnnouncement, len(announcements))
	copy(sorted, announcements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedDate > sorted[j].CreatedDate
	})

	if maxDetails > 0 && len(sorted) > maxDetails {
		sorted = sorted[:maxDetails]
	}

	var details []DividendDetail
	for _, announcement := range sorted {
		if announcement.AnnouncementID == 0 {
			continue
		}

		resp := t.client.AnnouncementByID(ctx, announcement.AnnouncementID)
		if !resp.Success {
			t.log.Warn("detail fetch failed",
				"announcement_id", announcement.AnnouncementID,
				"error", resp.Error,
			)
			continue
		}

		var detail cse.AnnouncementDetail
		if err := resp.Decode(&detail); err != nil {
			t.log.Warn("detail decode failed",
				"announcement_id", announcement.AnnouncementID,
				"error", err,
			)
			continue
		}

		details = append(details, DividendDetail{
			AnnouncementID:   announcement.AnnouncementID,
			CompanyName:      detail.Base.CompanyName,
			Symbol:           detail.Base.Symbol,
			DividendPerShare: detail.Base.VotingDivPerShare,
			FinancialYear:    detail.Base.FinancialYear,
			AnnouncementDate: detail.Base.DateOfAnnouncement,
			ExDividendDate:   detail.Base.ExDividendDate,
			PaymentDate:      detail.Base.PaymentDate,
			AGMDate:          detail.Base.AGMDate,
			RecordDate:       detail.Base.RecordDate,
			Remarks:          detail.Base.Remarks,
			DocumentsCount:   len(detail.Documents),
		})
	}

	return details
}

// BuildCalendar expands dividend details into dated events, sorted by date.
func BuildCalendar(details []DividendDetail) []CalendarEvent {
	var events []CalendarEvent
	for _, detail := range details {
		amount := detail.DividendPerShare
		if hasDate(detail.ExDividendDate) {
			events = append(events, CalendarEvent{
				Date:      detail.ExDividendDate,
				EventType: "Ex-Dividend",
				Company:   detail.CompanyName,
				Symbol:    detail.Symbol,
				Amount:    amount,
				Details:   fmt.Sprintf("LKR %s/share", amount.String()),
			})
		}
		if hasDate(detail.PaymentDate) {
			events = append(events, CalendarEvent{
				Date:      detail.PaymentDate,
				EventType: "Dividend Payment",
				Company:   detail.CompanyName,
				Symbol:    detail.Symbol,
				Amount:    amount,
				Details:   fmt.Sprintf("LKR %s/share payment", amount.String()),
			})
		}
		if hasDate(detail.AGMDate) {
			events = append(events, CalendarEvent{
				Date:      detail.AGMDate,
				EventType: "AGM",
				Company:   detail.CompanyName,
				Symbol:    detail.Symbol,
				Amount:    decimal.Zero,
				Details:   "Annual General Meeting",
			})
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}

func hasDate(s string) bool {
	return s != "" && s != "N/A"
}

// AnalyzeTrends computes dividend amount statistics and the top payers.
func AnalyzeTrends(details []DividendDetail) *TrendSummary {
	var amounts []decimal.Decimal
	for _, detail := range details {
		if detail.DividendPerShare.IsPositive() {
			amounts = append(amounts, detail.DividendPerShare)
		}
	}

	summary := &TrendSummary{
		Stats: DividendStats{TotalAnalyzed: len(details)},
	}

	if len(amounts) > 0 {
		sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })

		sum := decimal.Zero
		for _, amount := range amounts {
			sum = sum.Add(amount)
		}
		summary.Stats.Average = sum.Div(decimal.NewFromInt(int64(len(amounts))))
		summary.Stats.Min = amounts[0]
		summary.Stats.Max = amounts[len(amounts)-1]

		mid := len(amounts) / 2
		if len(amounts)%2 == 1 {
			summary.Stats.Median = amounts[mid]
		} else {
			summary.Stats.Median = amounts[mid-1].Add(amounts[mid]).Div(decimal.NewFromInt(2))
		}
	}

	payers := make([]DividendDetail, len(details))
	copy(payers, details)
	sort.Slice(payers, func(i, j int) bool {
		return payers[i].DividendPerShare.GreaterThan(payers[j].DividendPerShare)
	})
	if len(payers) > 10 {
		payers = payers[:10]
	}
	summary.TopPayers = payers

	return summary
}

// SaveCalendarCSV writes the calendar under dir.
func SaveCalendarCSV(dir string, events []CalendarEvent) (string, error) {
	headers := []string{"date", "event_type", "company", "symbol", "amount", "details"}
	rows := make([][]interface{}, 0, len(events))
	for _, event := range events {
		rows = append(rows, []interface{}{
			event.Date, event.EventType, event.Company, event.Symbol,
			event.Amount.String(), event.Details,
		})
	}

	path := filepath.Join(dir, fmt.Sprintf("dividend_calendar_%s.csv", time.Now().Format("20060102_150405")))
	return path, WriteCSV(path, headers, rows)
}

// SaveDividendsExcel writes the detail rows to a workbook under dir.
func SaveDividendsExcel(dir string, details []DividendDetail) (string, error) {
	headers := []string{
		"Announcement ID", "Company", "Symbol", "Dividend / Share (LKR)",
		"Financial Year", "Announced", "Ex-Dividend", "Payment", "AGM",
	}
	rows := make([][]interface{}, 0, len(details))
	for _, detail := range details {
		rows = append(rows, []interface{}{
			detail.AnnouncementID,
			detail.CompanyName,
			detail.Symbol,
			detail.DividendPerShare.String(),
			detail.FinancialYear,
			detail.AnnouncementDate,
			detail.ExDividendDate,
			detail.PaymentDate,
			detail.AGMDate,
		})
	}

	path := filepath.Join(dir, fmt.Sprintf("dividends_%s.xlsx", time.Now().Format("20060102_150405")))
	return path, WriteExcel(path, "Dividends", headers, rows)
}

package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csekit/internal/config"
	"csekit/internal/cse"
	"csekit/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildCalendar(t *testing.T) {
	details := []DividendDetail{
		{
			CompanyName:      "LOLC HOLDINGS PLC",
			Symbol:           "LOLC.N0000",
			DividendPerShare: dec("5.50"),
			ExDividendDate:   "2026-09-10",
			PaymentDate:      "2026-09-25",
			AGMDate:          "2026-09-01",
		},
		{
			CompanyName:      "ABANS ELECTRICALS PLC",
			Symbol:           "ABAN.N0000",
			DividendPerShare: dec("2.00"),
			ExDividendDate:   "2026-09-05",
			PaymentDate:      "N/A",
		},
	}

	events := BuildCalendar(details)
	require.Len(t, events, 4)

	// Sorted by date; the missing payment date is skipped.
	assert.Equal(t, "AGM", events[0].EventType)
	assert.Equal(t, "2026-09-05", events[1].Date)
	assert.Equal(t, "Ex-Dividend", events[1].EventType)
	assert.Equal(t, "Dividend Payment", events[3].EventType)
	assert.Equal(t, "LKR 5.5/share payment", events[3].Details)
}

func TestAnalyzeTrends(t *testing.T) {
	details := []DividendDetail{
		{Symbol: "A", DividendPerShare: dec("1.00")},
		{Symbol: "B", DividendPerShare: dec("3.00")},
		{Symbol: "C", DividendPerShare: dec("2.00")},
		{Symbol: "D", DividendPerShare: dec("0")}, // excluded from stats
	}

	summary := AnalyzeTrends(details)

	assert.Equal(t, 4, summary.Stats.TotalAnalyzed)
	assert.True(t, summary.Stats.Average.Equal(dec("2")))
	assert.True(t, summary.Stats.Median.Equal(dec("2")))
	assert.True(t, summary.Stats.Min.Equal(dec("1")))
	assert.True(t, summary.Stats.Max.Equal(dec("3")))

	require.NotEmpty(t, summary.TopPayers)
	assert.Equal(t, "B", summary.TopPayers[0].Symbol)
}

func TestAnalyzeTrendsEmpty(t *testing.T) {
	summary := AnalyzeTrends(nil)
	assert.Equal(t, 0, summary.Stats.TotalAnalyzed)
	assert.True(t, summary.Stats.Average.IsZero())
}

func TestTrackerFetchDividends(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch {
		case r.URL.Path == "/approvedAnnouncement":
			category := r.PostFormValue("announcementTypes")
			if category == "CASH DIVIDEND" {
				w.Write([]byte(`{"approvedAnnouncements":[
					{"announcementId":1,"company":"LOLC HOLDINGS PLC","createdDate":200},
					{"announcementId":2,"company":"ABANS ELECTRICALS PLC","createdDate":100}
				]}`))
				return
			}
			w.Write([]byte(`{"approvedAnnouncements":[]}`))
		case r.URL.Path == "/getAnnouncementById":
			id := r.PostFormValue("announcementId")
			w.Write([]byte(`{
				"reqBaseAnnouncement":{
					"companyName":"COMPANY ` + id + `","symbol":"SYM` + id + `",
					"votingDivPerShare":` + id + `.5,"financialYear":"2025/2026",
					"xd":"2026-09-10","payment":"2026-09-25"
				},
				"reqAnnouncementDocs":[{"fileOriginalName":"notice.pdf","fileSize":1024}]
			}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	st := store.New(t.TempDir())
	defer st.Close()
	require.NoError(t, st.SaveCategories([]cse.AnnouncementCategory{
		{ID: 1, CategoryName: "CASH DIVIDEND"},
		{ID: 2, CategoryName: "SCRIP DIVIDEND"},
		{ID: 3, CategoryName: "RIGHTS ISSUE"},
	}))

	client := cse.NewClient(&config.APIConfig{
		BaseURL:        server.URL + "/",
		Timeout:        5 * time.Second,
		RequestsPerSec: 1000,
		Burst:          100,
	})
	tracker := NewTracker(client, st)

	announcements, err := tracker.FetchDividends(context.Background(), 180)
	require.NoError(t, err)
	require.Len(t, announcements, 2)

	details := tracker.FetchDetails(context.Background(), announcements, 0)
	require.Len(t, details, 2)

	// Newest first by createdDate.
	assert.Equal(t, int64(1), details[0].AnnouncementID)
	assert.Equal(t, "COMPANY 1", details[0].CompanyName)
	assert.True(t, details[0].DividendPerShare.Equal(dec("1.5")))
	assert.Equal(t, 1, details[0].DocumentsCount)
	assert.Equal(t, "SYM2", details[1].Symbol)
}

func TestTrackerWithoutCatalog(t *testing.T) {
	st := store.New(t.TempDir())
	defer st.Close()

	client := cse.NewClient(&config.APIConfig{
		BaseURL:        "https://unused.test/",
		Timeout:        time.Second,
		RequestsPerSec: 1,
		Burst:          1,
	})

	_, err := NewTracker(client, st).FetchDividends(context.Background(), 30)
	assert.Error(t, err)
}

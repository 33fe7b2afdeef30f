package cse

import (
	"github.com/shopspring/decimal"
)

// Company is one entry of the alphabetical company register.
type Company struct {
	SecurityID       int64   `json:"securityId"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	PercentageChange float64 `json:"percentageChange"`
	LastTradedTime   *int64  `json:"lastTradedTime"`
	SectorName       string  `json:"sectorName,omitempty"`
}

// Active reports whether the security has ever traded.
func (c Company) Active() bool {
	return c.LastTradedTime != nil
}

// alphabeticalPayload covers both shapes the alphabetical endpoint returns:
// an object keyed by reqAlphabetical, or a bare list.
type alphabeticalPayload struct {
	ReqAlphabetical []Company `json:"reqAlphabetical"`
}

// DecodeCompanies extracts the company list from an alphabetical response.
func DecodeCompanies(resp *Response) ([]Company, error) {
	var wrapped alphabeticalPayload
	if err := resp.Decode(&wrapped); err == nil && wrapped.ReqAlphabetical != nil {
		return wrapped.ReqAlphabetical, nil
	}

	var bare []Company
	if err := resp.Decode(&bare); err != nil {
		return nil, err
	}
	return bare, nil
}

// CompanyInfo is the companyInfoSummery payload.
type CompanyInfo struct {
	SymbolInfo SymbolInfo `json:"reqSymbolInfo"`
	BetaInfo   BetaInfo   `json:"reqSymbolBetaInfo"`
	Logo       *Logo      `json:"reqLogo"`
}

// SymbolInfo carries per-security pricing, volume and holdings data.
type SymbolInfo struct {
	ID        int64   `json:"id"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	ISIN      string  `json:"isin"`
	IssueDate string  `json:"issueDate"`
	ParValue  float64 `json:"parValue"`

	LastTradedPrice  float64 `json:"lastTradedPrice"`
	PreviousClose    float64 `json:"previousClose"`
	Change           float64 `json:"change"`
	ChangePercentage float64 `json:"changePercentage"`
	HighTrade        float64 `json:"hiTrade"`
	LowTrade         float64 `json:"lowTrade"`

	YTDHighPrice     float64 `json:"ytdHiPrice"`
	YTDLowPrice      float64 `json:"ytdLowPrice"`
	P12HighPrice     float64 `json:"p12HiPrice"`
	P12LowPrice      float64 `json:"p12LowPrice"`
	AllTimeHighPrice float64 `json:"allHiPrice"`
	AllTimeLowPrice  float64 `json:"allLowPrice"`

	QuantityIssued   float64 `json:"quantityIssued"`
	TodayShareVolume float64 `json:"tdyShareVolume"`
	TodayTurnover    float64 `json:"tdyTurnover"`
	YTDShareVolume   float64 `json:"ytdShareVolume"`
	YTDTurnover      float64 `json:"ytdTurnover"`
	P12ShareVolume   float64 `json:"p12ShareVolume"`

	MarketCap           float64 `json:"marketCap"`
	MarketCapPercentage float64 `json:"marketCapPercentage"`
	ForeignHoldings     float64 `json:"foreignHoldings"`
	ForeignPercentage   float64 `json:"foreignPercentage"`
}

// BetaInfo carries the beta values published per security.
type BetaInfo struct {
	TriASIBetaValue  *float64 `json:"triASIBetaValue"`
	BetaValueSPSL    *float64 `json:"betaValueSPSL"`
	TriASIBetaPeriod string   `json:"triASIBetaPeriod"`
	Quarter          string   `json:"quarter"`
}

// Logo points at a company logo asset on the CDN.
type Logo struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
}

// FinancialAnnouncement is one entry of the financial announcements feed.
// The payload key keeps the upstream misspelling.
type FinancialAnnouncement struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	FileText     string `json:"fileText"`
	Path         string `json:"path"`
	UploadedDate string `json:"uploadedDate"`
}

type financialPayload struct {
	ReqFinancialAnnouncemnets []FinancialAnnouncement `json:"reqFinancialAnnouncemnets"`
}

// DecodeFinancialAnnouncements extracts the announcement list from a
// getFinancialAnnouncement response.
func DecodeFinancialAnnouncements(resp *Response) ([]FinancialAnnouncement, error) {
	var wrapped financialPayload
	if err := resp.Decode(&wrapped); err != nil {
		return nil, err
	}
	return wrapped.ReqFinancialAnnouncemnets, nil
}

// AnnouncementCategory is one corporate announcement category.
type AnnouncementCategory struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"categoryName"`
}

// DecodeAnnouncementCategories extracts the category list.
func DecodeAnnouncementCategories(resp *Response) ([]AnnouncementCategory, error) {
	var categories []AnnouncementCategory
	if err := resp.Decode(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ApprovedAnnouncement is one entry of the approved announcements feed.
type ApprovedAnnouncement struct {
	AnnouncementID     int64  `json:"announcementId"`
	Company            string `json:"company"`
	DateOfAnnouncement string `json:"dateOfAnnouncement"`
	CreatedDate        int64  `json:"createdDate"`
}

type approvedPayload struct {
	ApprovedAnnouncements []ApprovedAnnouncement `json:"approvedAnnouncements"`
}

// DecodeApprovedAnnouncements extracts the list from an approvedAnnouncement
// response.
func DecodeApprovedAnnouncements(resp *Response) ([]ApprovedAnnouncement, error) {
	var wrapped approvedPayload
	if err := resp.Decode(&wrapped); err != nil {
		return nil, err
	}
	return wrapped.ApprovedAnnouncements, nil
}

// AnnouncementDetail is the getAnnouncementById payload.
type AnnouncementDetail struct {
	Base      BaseAnnouncement  `json:"reqBaseAnnouncement"`
	Documents []AnnouncementDoc `json:"reqAnnouncementDocs"`
}

// BaseAnnouncement carries the detail fields of one announcement. Dividend
// amounts come back as JSON numbers and are held as decimals to keep money
// math exact.
type BaseAnnouncement struct {
	CompanyName        string          `json:"companyName"`
	Symbol             string          `json:"symbol"`
	VotingDivPerShare  decimal.Decimal `json:"votingDivPerShare"`
	FinancialYear      string          `json:"financialYear"`
	DateOfAnnouncement string          `json:"dateOfAnnouncement"`
	ExDividendDate     string          `json:"xd"`
	PaymentDate        string          `json:"payment"`
	AGMDate            string          `json:"agm"`
	RecordDate         *string         `json:"recordDate"`
	Remarks            string          `json:"remarks"`
}

// AnnouncementDoc is one document attached to an announcement.
type AnnouncementDoc struct {
	FileOriginalName string `json:"fileOriginalName"`
	FileSize         int64  `json:"fileSize"`
	Path             string `json:"path"`
}

// MarketStatus is the marketStatus payload.
type MarketStatus struct {
	Status string `json:"status"`
}

// IndexData is the aspiData / snpData payload.
type IndexData struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// RawList decodes a response whose payload is a bare JSON array of objects.
func RawList(resp *Response) ([]map[string]interface{}, error) {
	var items []map[string]interface{}
	if err := resp.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

// RawObject decodes a response whose payload is a single JSON object.
func RawObject(resp *Response) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := resp.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

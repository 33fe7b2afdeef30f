package cse

// Endpoint path segments of the CSE public API. Every operation is a POST of
// form-encoded parameters to BaseURL + endpoint. Spellings follow the
// upstream service, typos included.
const (
	EndpointCompanyInfo        = "companyInfoSummery"
	EndpointTradeSummary       = "tradeSummary"
	EndpointTodaySharePrice    = "todaySharePrice"
	EndpointTopGainers         = "topGainers"
	EndpointTopLosers          = "topLooses"
	EndpointMostActiveTrades   = "mostActiveTrades"
	EndpointDetailedTrades     = "detailedTrades"
	EndpointAlphabetical       = "alphabetical"
	EndpointMarketStatus       = "marketStatus"
	EndpointMarketSummary      = "marketSummery"
	EndpointDailyMarketSummary = "dailyMarketSummery"
	EndpointASPIData           = "aspiData"
	EndpointSNPData            = "snpData"
	EndpointChartData          = "chartData"
	EndpointAllSectors         = "allSectors"

	EndpointNewListingsAnnouncements   = "getNewListingsRelatedNoticesAnnouncements"
	EndpointBuyInBoardAnnouncements    = "getBuyInBoardAnnouncements"
	EndpointApprovedAnnouncements      = "approvedAnnouncement"
	EndpointCOVIDAnnouncements         = "getCOVIDAnnouncements"
	EndpointFinancialAnnouncements     = "getFinancialAnnouncement"
	EndpointCircularAnnouncements      = "circularAnnouncement"
	EndpointDirectiveAnnouncements     = "directiveAnnouncement"
	EndpointNonComplianceAnnouncements = "getNonComplianceAnnouncements"
	EndpointAnnouncementCategories     = "corporateAnnouncementCategory"
	EndpointAnnouncementByID           = "getAnnouncementById"
)

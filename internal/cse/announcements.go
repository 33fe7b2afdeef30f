package cse

import (
	"context"
	"net/url"
	"strconv"
)

// NewListingsAnnouncements returns new listing related notices.
func (c *Client) NewListingsAnnouncements(ctx context.Context) *Response {
	return c.do(ctx, EndpointNewListingsAnnouncements, nil)
}

// BuyInBoardAnnouncements returns buy-in board announcements.
func (c *Client) BuyInBoardAnnouncements(ctx context.Context) *Response {
	return c.do(ctx, EndpointBuyInBoardAnnouncements, nil)
}

// ApprovedFilter narrows an approved announcements query. Zero values leave
// the corresponding form field unset.
type ApprovedFilter struct {
	AnnouncementType string
	FromDate         string // YYYY-MM-DD
	ToDate           string // YYYY-MM-DD
	Categories       string
}

// ApprovedAnnouncements returns approved announcements, optionally filtered
// by type, category and date range.
func (c *Client) ApprovedAnnouncements(ctx context.Context, filter *ApprovedFilter) *Response {
	var params url.Values
	if filter != nil {
		params = url.Values{}
		if filter.AnnouncementType != "" {
			params.Set("announcementTypes", filter.AnnouncementType)
		}
		if filter.FromDate != "" {
			params.Set("fromDate", filter.FromDate)
		}
		if filter.ToDate != "" {
			params.Set("toDate", filter.ToDate)
		}
		if filter.Categories != "" {
			params.Set("announcementCategories", filter.Categories)
		}
	}
	return c.do(ctx, EndpointApprovedAnnouncements, params)
}

// COVIDAnnouncements returns COVID related announcements.
func (c *Client) COVIDAnnouncements(ctx context.Context) *Response {
	return c.do(ctx, EndpointCOVIDAnnouncements, nil)
}

// FinancialAnnouncements returns the financial announcements feed.
func (c *Client) FinancialAnnouncements(ctx context.Context) *Response {
	return c.do(ctx, EndpointFinancialAnnouncements, nil)
}

// FinancialAnnouncementsFiltered returns financial announcements within a
// date range, optionally narrowed to one company security ID.
func (c *Client) FinancialAnnouncementsFiltered(ctx context.Context, fromDate, toDate, companyIDs string) *Response {
	params := url.Values{}
	params.Set("fromDate", fromDate)
	params.Set("toDate", toDate)
	if companyIDs != "" {
		params.Set("companyIds", companyIDs)
	}
	return c.do(ctx, EndpointFinancialAnnouncements, params)
}

// CircularAnnouncements returns circular announcements.
func (c *Client) CircularAnnouncements(ctx context.Context) *Response {
	return c.do(ctx, EndpointCircularAnnouncements, nil)
}

// DirectiveAnnouncements returns directive announcements.
func (c *Client) DirectiveAnnouncements(ctx context.Context) *Response {
	return c.do(ctx, EndpointDirectiveAnnouncements, nil)
}

// NonComplianceAnnouncements returns non-compliance announcements.
func (c *Client) NonComplianceAnnouncements(ctx context.Context) *Response {
	return c.do(ctx, EndpointNonComplianceAnnouncements, nil)
}

// AnnouncementCategories returns the corporate announcement category catalog.
func (c *Client) AnnouncementCategories(ctx context.Context) *Response {
	return c.do(ctx, EndpointAnnouncementCategories, nil)
}

// AnnouncementByID returns the full detail of one announcement, documents
// included.
func (c *Client) AnnouncementByID(ctx context.Context, id int64) *Response {
	params := url.Values{}
	params.Set("announcementId", strconv.FormatInt(id, 10))
	return c.do(ctx, EndpointAnnouncementByID, params)
}

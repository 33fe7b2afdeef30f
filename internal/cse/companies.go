package cse

import (
	"context"
	"net/url"
	"strings"
)

// CompanyInfo returns the detailed profile of a single security.
func (c *Client) CompanyInfo(ctx context.Context, symbol string) *Response {
	params := url.Values{}
	params.Set("symbol", symbol)
	return c.do(ctx, EndpointCompanyInfo, params)
}

// CompaniesByLetter returns the companies whose names start with the given
// letter. The letter is upper-cased before the request.
func (c *Client) CompaniesByLetter(ctx context.Context, letter string) *Response {
	params := url.Values{}
	params.Set("alphabet", strings.ToUpper(letter))
	return c.do(ctx, EndpointAlphabetical, params)
}

// LetterError records a per-letter failure during an A-Z sweep.
type LetterError struct {
	Letter string `json:"letter"`
	Error  string `json:"error"`
}

// CompanyList is the aggregate of one A-Z sweep over the alphabetical
// endpoint. Companies preserves A-to-Z order; Active holds the subset that
// has ever traded. The aggregate is built fresh on every call.
type CompanyList struct {
	Companies     []Company     `json:"companies"`
	Active        []Company     `json:"active"`
	Total         int           `json:"total"`
	FailedLetters []LetterError `json:"failed_letters,omitempty"`
}

// AllCompanies sweeps the register A to Z and concatenates the per-letter
// lists in order. A failing letter is recorded and skipped; the sweep always
// runs to completion.
func (c *Client) AllCompanies(ctx context.Context) *CompanyList {
	list := &CompanyList{}

	for letter := 'A'; letter <= 'Z'; letter++ {
		resp := c.CompaniesByLetter(ctx, string(letter))
		if !resp.Success {
			list.FailedLetters = append(list.FailedLetters, LetterError{
				Letter: string(letter),
				Error:  resp.Error,
			})
			continue
		}

		companies, err := DecodeCompanies(resp)
		if err != nil {
			list.FailedLetters = append(list.FailedLetters, LetterError{
				Letter: string(letter),
				Error:  err.Error(),
			})
			continue
		}

		list.Companies = append(list.Companies, companies...)
		for _, company := range companies {
			if company.Active() {
				list.Active = append(list.Active, company)
			}
		}

		c.log.Info("fetched companies",
			"letter", string(letter),
			"count", len(companies),
		)
	}

	list.Total = len(list.Companies)
	return list
}

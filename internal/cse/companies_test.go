package cse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alphabeticalServer(t *testing.T, perLetter map[string][]Company, failLetters map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		letter := r.PostFormValue("alphabet")

		if status, ok := failLetters[letter]; ok {
			http.Error(w, "upstream error", status)
			return
		}

		payload := alphabeticalPayload{ReqAlphabetical: perLetter[letter]}
		if payload.ReqAlphabetical == nil {
			payload.ReqAlphabetical = []Company{}
		}
		json.NewEncoder(w).Encode(payload)
	}))
}

func ts(v int64) *int64 { return &v }

func TestCompaniesByLetterUppercases(t *testing.T) {
	var gotLetter string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotLetter = r.PostFormValue("alphabet")
		w.Write([]byte(`{"reqAlphabetical":[]}`))
	}))
	defer server.Close()

	client := testClient(server.URL + "/")
	resp := client.CompaniesByLetter(context.Background(), "a")

	require.True(t, resp.Success)
	assert.Equal(t, "A", gotLetter)
}

func TestAllCompaniesAggregation(t *testing.T) {
	perLetter := map[string][]Company{
		"A": {
			{SecurityID: 642, Symbol: "ABAN.N0000", Name: "ABANS ELECTRICALS PLC", LastTradedTime: ts(1756130400000)},
			{SecurityID: 204, Symbol: "AEL.N0000", Name: "ACCESS ENGINEERING PLC", LastTradedTime: ts(1756130400000)},
		},
		"B": {
			{SecurityID: 88, Symbol: "BIL.N0000", Name: "BROWNS INVESTMENTS PLC"},
		},
		"L": {
			{SecurityID: 305, Symbol: "LOLC.N0000", Name: "LOLC HOLDINGS PLC", LastTradedTime: ts(1756130400000)},
		},
	}
	server := alphabeticalServer(t, perLetter, nil)
	defer server.Close()

	client := testClient(server.URL + "/")
	list := client.AllCompanies(context.Background())

	assert.Equal(t, 4, list.Total)
	assert.Len(t, list.Companies, 4)
	assert.Empty(t, list.FailedLetters)

	// A-to-Z concatenation order.
	symbols := make([]string, 0, len(list.Companies))
	for _, company := range list.Companies {
		symbols = append(symbols, company.Symbol)
	}
	assert.Equal(t, []string{"ABAN.N0000", "AEL.N0000", "BIL.N0000", "LOLC.N0000"}, symbols)

	// Active subset excludes never-traded securities.
	require.Len(t, list.Active, 3)
	for _, company := range list.Active {
		assert.NotNil(t, company.LastTradedTime)
	}
}

func TestAllCompaniesSkipsFailedLetters(t *testing.T) {
	perLetter := map[string][]Company{
		"A": {{SecurityID: 1, Symbol: "AAA.N0000", Name: "ALPHA"}},
		"C": {{SecurityID: 2, Symbol: "CCC.N0000", Name: "GAMMA"}},
	}
	server := alphabeticalServer(t, perLetter, map[string]int{"B": http.StatusServiceUnavailable})
	defer server.Close()

	client := testClient(server.URL + "/")
	list := client.AllCompanies(context.Background())

	assert.Equal(t, 2, list.Total)
	require.Len(t, list.FailedLetters, 1)
	assert.Equal(t, "B", list.FailedLetters[0].Letter)
	assert.NotEmpty(t, list.FailedLetters[0].Error)
}

func TestAllCompaniesLengthMatchesPerLetterSum(t *testing.T) {
	perLetter := make(map[string][]Company)
	want := 0
	for letter := 'A'; letter <= 'Z'; letter++ {
		n := int(letter-'A')%3 + 1
		companies := make([]Company, n)
		for i := range companies {
			companies[i] = Company{
				SecurityID: int64(letter)*100 + int64(i),
				Symbol:     fmt.Sprintf("%c%02d.N0000", letter, i),
				Name:       fmt.Sprintf("%c COMPANY %d", letter, i),
			}
		}
		perLetter[string(letter)] = companies
		want += n
	}

	server := alphabeticalServer(t, perLetter, nil)
	defer server.Close()

	client := testClient(server.URL + "/")
	list := client.AllCompanies(context.Background())

	assert.Equal(t, want, list.Total)
	assert.Len(t, list.Companies, want)
}

func TestDecodeCompaniesBareList(t *testing.T) {
	resp := &Response{
		Success:    true,
		StatusCode: http.StatusOK,
		Data:       json.RawMessage(`[{"securityId":7,"symbol":"XYZ.N0000","name":"XYZ PLC"}]`),
	}

	companies, err := DecodeCompanies(resp)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "XYZ.N0000", companies[0].Symbol)
}

func TestDecodeCompaniesWrapped(t *testing.T) {
	resp := &Response{
		Success:    true,
		StatusCode: http.StatusOK,
		Data:       json.RawMessage(`{"reqAlphabetical":[{"securityId":8,"symbol":"ABC.N0000","name":"ABC PLC"}]}`),
	}

	companies, err := DecodeCompanies(resp)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, int64(8), companies[0].SecurityID)
}

package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"csekit/internal/cse"
)

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	require.NoError(t, WriteJSON(path, map[string]int{"a": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded["a"])
}

func TestWriteCompaniesCSV(t *testing.T) {
	traded := int64(1756130400000)
	companies := []cse.Company{
		{SecurityID: 642, Symbol: "ABAN.N0000", Name: "ABANS ELECTRICALS PLC", Price: 41.5, LastTradedTime: &traded},
		{SecurityID: 88, Symbol: "BIL.N0000", Name: "BROWNS INVESTMENTS PLC", Price: 5.2},
	}

	path := filepath.Join(t.TempDir(), "companies.csv")
	require.NoError(t, WriteCompaniesCSV(path, companies))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "securityId", records[0][0])
	assert.Equal(t, "ABAN.N0000", records[1][1])
	assert.Equal(t, "1756130400000", records[1][5])
	assert.Equal(t, "", records[2][5])
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	headers := []string{"Symbol", "Price"}
	rows := [][]interface{}{
		{"ABAN.N0000", 41.5},
		{"LOLC.N0000", 500.25},
	}
	require.NoError(t, WriteExcel(path, "Analysis", headers, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Analysis")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Symbol", "Price"}, got[0])
	assert.Equal(t, "ABAN.N0000", got[1][0])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Interim Report _Q1_", SanitizeFilename(`Interim Report "Q1"`))
	assert.Equal(t, "a_b_c_d", SanitizeFilename(`a/b\c:d`))
	assert.Equal(t, "plain name", SanitizeFilename("plain name"))
}

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"csekit/internal/cse"
	apperrors "csekit/internal/errors"
)

// WriteJSON writes v as indented JSON, creating parent directories as
// needed.
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to create export directory")
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to encode JSON export")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to write JSON export")
	}
	return nil
}

// WriteCompaniesCSV writes the company register snapshot as CSV.
func WriteCompaniesCSV(path string, companies []cse.Company) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to create export directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to create CSV export")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"securityId", "symbol", "name", "price", "percentageChange", "lastTradedTime", "sectorName"}); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to write CSV header")
	}

	for _, company := range companies {
		lastTraded := ""
		if company.LastTradedTime != nil {
			lastTraded = strconv.FormatInt(*company.LastTradedTime, 10)
		}
		record := []string{
			strconv.FormatInt(company.SecurityID, 10),
			company.Symbol,
			company.Name,
			strconv.FormatFloat(company.Price, 'f', -1, 64),
			strconv.FormatFloat(company.PercentageChange, 'f', -1, 64),
			lastTraded,
			company.SectorName,
		}
		if err := w.Write(record); err != nil {
			return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to write CSV record")
		}
	}

	w.Flush()
	return w.Error()
}

// WriteCSV writes a header and rows as CSV. Row cells are stringified with
// %v.
func WriteCSV(path string, headers []string, rows [][]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to create export directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to create CSV export")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(headers); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to write CSV header")
	}

	record := make([]string, len(headers))
	for _, row := range rows {
		for i := range record {
			if i < len(row) && row[i] != nil {
				record[i] = fmt.Sprintf("%v", row[i])
			} else {
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to write CSV record")
		}
	}

	w.Flush()
	return w.Error()
}

// WriteExcel writes a single-sheet workbook with a header row.
func WriteExcel(path, sheet string, headers []string, rows [][]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to create export directory")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to write header row")
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to compute cell name")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to write data row")
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeExport, "failed to save workbook")
	}
	return nil
}

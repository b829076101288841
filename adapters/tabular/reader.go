// Package tabular decodes uploaded spreadsheet and delimited-text bytes into
// a domain dataset. Only the first sheet of a workbook is read; header names
// come verbatim from the first row.
package tabular

import (
	"bytes"
	"encoding/csv"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"insightsuite/domain/tabular"
	"insightsuite/internal/errors"
)

// Ingest decodes raw uploaded bytes into an immutable dataset. The file
// extension selects the decoder; anything other than .csv/.xlsx/.xls is
// rejected before a single byte is decoded. A table that decodes but holds
// zero data rows is an EMPTY_DATASET error, never a zero-row dataset.
func Ingest(raw []byte, filename string) (*tabular.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	start := time.Now()
	var (
		records [][]string
		err     error
	)
	switch ext {
	case ".csv":
		records, err = decodeCSV(raw)
	case ".xlsx", ".xls":
		records, err = decodeWorkbook(raw)
	default:
		return nil, errors.UnsupportedExtension(ext)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[Ingestor] %s decoded in %.2fms (%d raw rows)",
		strings.ToUpper(strings.TrimPrefix(ext, ".")), float64(time.Since(start).Nanoseconds())/1e6, len(records))

	if len(records) < 2 {
		return nil, errors.EmptyDataset()
	}

	ds := buildDataset(filename, records[0], records[1:])
	log.Printf("[Ingestor] dataset %s ready (%d columns, %d rows)", ds.ID, ds.FieldCount(), ds.RowCount())
	return ds, nil
}

func decodeCSV(raw []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	// Ragged rows are tolerated; short rows become empty cells downstream.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseFailure("CSV", err)
	}
	return records, nil
}

func decodeWorkbook(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.ParseFailure("workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseFailure("workbook", nil)
	}

	// First sheet only; additional sheets are ignored.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseFailure("workbook", err)
	}
	return rows, nil
}

// buildDataset assembles rows keyed by header name. Duplicate header names
// are kept in the header list verbatim, but the first occurrence owns the
// cell values: later duplicate columns never overwrite it.
func buildDataset(source string, headerRow []string, dataRows [][]string) *tabular.Dataset {
	headers := make([]string, len(headerRow))
	copy(headers, headerRow)

	rows := make([]tabular.Row, 0, len(dataRows))
	for _, record := range dataRows {
		row := make(tabular.Row, len(headers))
		for j, name := range headers {
			if _, taken := row[name]; taken {
				continue
			}
			value := ""
			if j < len(record) {
				value = record[j]
			}
			row[name] = tabular.NewCell(value)
		}
		rows = append(rows, row)
	}

	return tabular.NewDataset(source, headers, rows)
}

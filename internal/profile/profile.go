// Package profile computes per-field descriptive statistics for an ingested
// dataset: inferred data types, missing and unique value counts, and numeric
// summaries. Profiling never fails; it reports whatever the data supports.
package profile

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"insightsuite/domain/tabular"
)

// NumericSummary describes the distribution of a numeric column.
type NumericSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// FieldProfile describes one column.
type FieldProfile struct {
	Name         string          `json:"name"`
	DataType     string          `json:"data_type"`
	MissingCount int             `json:"missing_count"`
	UniqueCount  int             `json:"unique_count"`
	Numeric      *NumericSummary `json:"numeric,omitempty"`
}

// DatasetProfile is the full profiling result.
type DatasetProfile struct {
	RowCount    int            `json:"row_count"`
	FieldCount  int            `json:"field_count"`
	MissingRate float64        `json:"missing_rate"`
	Fields      []FieldProfile `json:"fields"`
}

// Profile computes a profile for every column in header order.
func Profile(ds *tabular.Dataset) DatasetProfile {
	fields := make([]FieldProfile, 0, len(ds.Headers))
	missingCells := 0

	for _, header := range ds.Headers {
		field := profileField(ds.Rows, header)
		missingCells += field.MissingCount
		fields = append(fields, field)
	}

	totalCells := ds.RowCount() * ds.FieldCount()
	missingRate := 0.0
	if totalCells > 0 {
		missingRate = float64(missingCells) / float64(totalCells)
	}

	return DatasetProfile{
		RowCount:    ds.RowCount(),
		FieldCount:  ds.FieldCount(),
		MissingRate: missingRate,
		Fields:      fields,
	}
}

func profileField(rows []tabular.Row, name string) FieldProfile {
	unique := make(map[string]struct{})
	numericValues := make([]float64, 0, len(rows))
	missing := 0
	textCount := 0

	for _, row := range rows {
		cell := row[name]
		switch cell.Kind {
		case tabular.KindEmpty:
			missing++
			continue
		case tabular.KindNumeric:
			if v, ok := cell.Float(); ok {
				numericValues = append(numericValues, v)
			}
		case tabular.KindText:
			textCount++
		}
		unique[cell.String()] = struct{}{}
	}

	field := FieldProfile{
		Name:         name,
		DataType:     inferDataType(len(numericValues), textCount),
		MissingCount: missing,
		UniqueCount:  len(unique),
	}
	if field.DataType == "numeric" {
		field.Numeric = summarize(numericValues)
	}
	return field
}

// inferDataType follows the same rule as upload-time inspection: a column is
// numeric only when every non-empty value coerces; any text value makes the
// whole column text.
func inferDataType(numericCount, textCount int) string {
	switch {
	case numericCount > 0 && textCount == 0:
		return "numeric"
	case textCount > 0:
		return "text"
	default:
		return "empty"
	}
}

func summarize(values []float64) *NumericSummary {
	if len(values) == 0 {
		return nil
	}

	min, err := stats.Min(values)
	if err != nil {
		return nil
	}
	max, _ := stats.Max(values)
	median, _ := stats.Median(values)

	mean := stat.Mean(values, nil)
	stdDev := 0.0
	if len(values) > 1 {
		stdDev = stat.StdDev(values, nil)
		if math.IsNaN(stdDev) {
			stdDev = 0
		}
	}

	return &NumericSummary{
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
	}
}

package insights

import (
	"strings"

	"insightsuite/domain/tabular"
)

// Breakdown maps a normalized group key to an aggregated non-negative
// number (a count or a sum). It is unordered; consumers sort for display.
type Breakdown map[string]float64

// UnknownKey buckets rows whose group cell trims to nothing.
const UnknownKey = "Unknown"

// groupKey normalizes a grouping value: surrounding whitespace is trimmed
// but case is preserved, so "Bob" and "bob" form two distinct groups.
func groupKey(c tabular.Cell) string {
	key := strings.TrimSpace(c.String())
	if key == "" {
		return UnknownKey
	}
	return key
}

// hasColumn checks the row invariant (every row carries every header) against
// the first row, so an unresolved column short-circuits to an empty result.
func hasColumn(rows []tabular.Row, column string) bool {
	if column == "" || len(rows) == 0 {
		return false
	}
	_, ok := rows[0][column]
	return ok
}

// GroupCount counts rows per trimmed group key. An unresolved group column
// yields an empty breakdown rather than an error.
func GroupCount(rows []tabular.Row, groupColumn string) Breakdown {
	result := Breakdown{}
	if !hasColumn(rows, groupColumn) {
		return result
	}
	for _, row := range rows {
		result[groupKey(row[groupColumn])]++
	}
	return result
}

// GroupSum accumulates the numeric coercion of valueColumn per trimmed group
// key. A cell that fails coercion contributes exactly 0 to its group; the row
// still exists for count-based metrics elsewhere. Either column unresolved
// yields an empty breakdown.
func GroupSum(rows []tabular.Row, groupColumn, valueColumn string) Breakdown {
	result := Breakdown{}
	if !hasColumn(rows, groupColumn) || !hasColumn(rows, valueColumn) {
		return result
	}
	for _, row := range rows {
		value, _ := row[valueColumn].Float()
		result[groupKey(row[groupColumn])] += value
	}
	return result
}

package insights

import (
	"math"
	"testing"

	"insightsuite/domain/tabular"
)

func makeRows(headers []string, records [][]string) []tabular.Row {
	rows := make([]tabular.Row, len(records))
	for i, record := range records {
		row := make(tabular.Row, len(headers))
		for j, header := range headers {
			value := ""
			if j < len(record) {
				value = record[j]
			}
			row[header] = tabular.NewCell(value)
		}
		rows[i] = row
	}
	return rows
}

// TestGroupCount covers the Tier scenario: ["Gold","Silver","Gold"] yields
// {"Gold": 2, "Silver": 1}
func TestGroupCount(t *testing.T) {
	rows := makeRows([]string{"Tier"}, [][]string{{"Gold"}, {"Silver"}, {"Gold"}})
	result := GroupCount(rows, "Tier")

	if len(result) != 2 {
		t.Fatalf("expected 2 groups, got %d: %v", len(result), result)
	}
	if result["Gold"] != 2 || result["Silver"] != 1 {
		t.Errorf("expected {Gold: 2, Silver: 1}, got %v", result)
	}
}

// TestGroupSumTrimsWithoutCaseFolding covers the deliberate contract that
// "Bob" and "bob " are two distinct groups after trimming
func TestGroupSumTrimsWithoutCaseFolding(t *testing.T) {
	rows := makeRows([]string{"Name", "Revenue"}, [][]string{
		{"Bob", "100"},
		{"bob ", "50"},
	})
	result := GroupSum(rows, "Name", "Revenue")

	if len(result) != 2 {
		t.Fatalf("expected 2 distinct keys, got %d: %v", len(result), result)
	}
	if result["Bob"] != 100 {
		t.Errorf("expected Bob = 100, got %v", result["Bob"])
	}
	if result["bob"] != 50 {
		t.Errorf("expected bob = 50 (trimmed key), got %v", result["bob"])
	}
}

func TestGroupCountUnknownBucket(t *testing.T) {
	rows := makeRows([]string{"City"}, [][]string{{"Lisbon"}, {""}, {"  "}, {"Porto"}})
	result := GroupCount(rows, "City")

	if result[UnknownKey] != 2 {
		t.Errorf("expected 2 rows in the Unknown bucket, got %v", result[UnknownKey])
	}
	if result["Lisbon"] != 1 || result["Porto"] != 1 {
		t.Errorf("unexpected breakdown: %v", result)
	}
}

// TestGroupCountTotalsMatchRowCount checks the invariant that counts across
// all keys sum to the total row count
func TestGroupCountTotalsMatchRowCount(t *testing.T) {
	rows := makeRows([]string{"Method"}, [][]string{
		{"card"}, {"cash"}, {""}, {"card"}, {"transfer"}, {"card"}, {" cash "},
	})
	result := GroupCount(rows, "Method")

	total := 0.0
	for _, count := range result {
		total += count
	}
	if int(total) != len(rows) {
		t.Errorf("group counts sum to %v, expected %d", total, len(rows))
	}
}

// TestGroupSumNonNumericContributesZero checks that a coercion failure adds
// exactly 0 to the group instead of raising an error
func TestGroupSumNonNumericContributesZero(t *testing.T) {
	rows := makeRows([]string{"Tier", "Revenue"}, [][]string{
		{"Gold", "100.25"},
		{"Gold", "not-a-number"},
		{"Silver", ""},
		{"Silver", "49.75"},
	})
	result := GroupSum(rows, "Tier", "Revenue")

	if math.Abs(result["Gold"]-100.25) > 1e-9 {
		t.Errorf("expected Gold = 100.25, got %v", result["Gold"])
	}
	if math.Abs(result["Silver"]-49.75) > 1e-9 {
		t.Errorf("expected Silver = 49.75, got %v", result["Silver"])
	}

	// The failing rows still exist for count-based metrics.
	counts := GroupCount(rows, "Tier")
	if counts["Gold"] != 2 || counts["Silver"] != 2 {
		t.Errorf("expected both groups to keep all rows, got %v", counts)
	}
}

func TestAggregationUnresolvedColumns(t *testing.T) {
	rows := makeRows([]string{"Name"}, [][]string{{"Alice"}})

	if result := GroupCount(rows, "Missing"); len(result) != 0 {
		t.Errorf("expected empty breakdown for unknown group column, got %v", result)
	}
	if result := GroupCount(rows, ""); len(result) != 0 {
		t.Errorf("expected empty breakdown for empty group column, got %v", result)
	}
	if result := GroupSum(rows, "Name", "Missing"); len(result) != 0 {
		t.Errorf("expected empty breakdown for unknown value column, got %v", result)
	}
	if result := GroupSum(nil, "Name", "Name"); len(result) != 0 {
		t.Errorf("expected empty breakdown for no rows, got %v", result)
	}
}

package insights

import (
	"sort"

	"insightsuite/domain/tabular"
)

// GeoEntry is one location bucket of the concentration table. Intensity is
// normalized against the largest bucket, so the top entry is always exactly
// 1.0; Share is the bucket's fraction of all rows.
type GeoEntry struct {
	Location  string  `json:"location"`
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"`
	Share     float64 `json:"share"`
}

// GeoBreakdown groups rows by trimmed location value (empty goes to the
// Unknown bucket), sorted descending by count with ties keeping first-seen
// order. An unresolved location column yields an empty table.
func GeoBreakdown(rows []tabular.Row, locationColumn string) []GeoEntry {
	if !hasColumn(rows, locationColumn) {
		return []GeoEntry{}
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, row := range rows {
		key := groupKey(row[locationColumn])
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	entries := make([]GeoEntry, 0, len(order))
	maxCount := 0
	for _, key := range order {
		if counts[key] > maxCount {
			maxCount = counts[key]
		}
		entries = append(entries, GeoEntry{Location: key, Count: counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	total := len(rows)
	for i := range entries {
		entries[i].Intensity = float64(entries[i].Count) / float64(maxCount)
		entries[i].Share = float64(entries[i].Count) / float64(total)
	}
	return entries
}

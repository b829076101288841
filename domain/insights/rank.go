package insights

import (
	"sort"

	"insightsuite/domain/tabular"
)

// DefaultLeaderboardSize bounds the leaderboard when the caller passes no
// explicit limit.
const DefaultLeaderboardSize = 20

// RankedEntry is one leaderboard row: an entity, its aggregated total and
// how many source rows contributed to it.
type RankedEntry struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Rank builds a bounded leaderboard of entities by aggregated numeric value.
// Entities sort by total descending; exact ties keep the order in which each
// key first appeared in the input rows. Unresolved columns yield an empty
// list rather than an error.
func Rank(rows []tabular.Row, nameColumn, valueColumn string, limit int) []RankedEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	if !hasColumn(rows, nameColumn) || !hasColumn(rows, valueColumn) {
		return []RankedEntry{}
	}

	totals := make(map[string]*RankedEntry)
	order := make([]string, 0)
	for _, row := range rows {
		key := groupKey(row[nameColumn])
		entry, seen := totals[key]
		if !seen {
			entry = &RankedEntry{Name: key}
			totals[key] = entry
			order = append(order, key)
		}
		value, _ := row[valueColumn].Float()
		entry.Total += value
		entry.Count++
	}

	entries := make([]RankedEntry, 0, len(order))
	for _, key := range order {
		entries = append(entries, *totals[key])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

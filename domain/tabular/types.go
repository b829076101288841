// Package tabular defines the immutable in-memory representation of an
// uploaded table: an ordered header list plus rows of loosely typed cells.
// Nothing here mutates after ingestion; every derived view (reports,
// leaderboards, geo tables) is recomputed from this structure wholesale.
package tabular

import (
	"strconv"
	"strings"
	"time"

	"insightsuite/domain/core"
)

// CellKind classifies a single cell value.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumeric
)

// String returns a readable kind name
func (k CellKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "empty"
	}
}

// Cell is a single row/column value. Raw source text is preserved verbatim;
// the numeric parse happens once at ingestion so aggregation never re-parses.
type Cell struct {
	Kind CellKind `json:"kind"`
	Raw  string   `json:"raw"`
	Num  float64  `json:"num,omitempty"`
}

// NewCell classifies a raw source value. A value whose trimmed form parses as
// a decimal number is numeric; a value that trims to nothing is empty;
// everything else is text. The raw text is kept untouched either way.
func NewCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Kind: KindEmpty, Raw: raw}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Cell{Kind: KindNumeric, Raw: raw, Num: n}
	}
	return Cell{Kind: KindText, Raw: raw}
}

// String returns the verbatim source text of the cell.
func (c Cell) String() string { return c.Raw }

// Float returns the numeric coercion of the cell. The second return reports
// whether coercion succeeded; callers treat failure as a zero contribution,
// never as an error.
func (c Cell) Float() (float64, bool) {
	if c.Kind == KindNumeric {
		return c.Num, true
	}
	return 0, false
}

// IsEmpty reports whether the cell holds no usable value.
func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// Row maps header names to cells. Invariant: a row produced by ingestion
// contains exactly the dataset's headers as keys - missing source cells
// become empty cells, never absent keys.
type Row map[string]Cell

// Dataset is the product of one successful ingest. Header order mirrors the
// source column order; header names are taken verbatim from the first row.
type Dataset struct {
	ID        core.DatasetID `json:"id"`
	Source    string         `json:"source"`
	Headers   []string       `json:"headers"`
	Rows      []Row          `json:"rows"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewDataset builds a dataset with a fresh time-ordered ID.
func NewDataset(source string, headers []string, rows []Row) *Dataset {
	return &Dataset{
		ID:        core.DatasetID(core.NewID()),
		Source:    source,
		Headers:   headers,
		Rows:      rows,
		CreatedAt: time.Now(),
	}
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int { return len(d.Rows) }

// FieldCount returns the number of columns.
func (d *Dataset) FieldCount() int { return len(d.Headers) }

// HasColumn reports whether the given header exists in the dataset.
func (d *Dataset) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

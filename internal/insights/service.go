// Package insights wires the pure computation pipeline to the session
// boundary: it owns the single active dataset, recomputes every derived view
// wholesale on upload or report reselection, and never keeps results from a
// previous dataset alive.
package insights

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	ingest "insightsuite/adapters/tabular"
	"insightsuite/domain/insights"
	"insightsuite/domain/tabular"
	"insightsuite/internal/errors"
	"insightsuite/internal/profile"
)

// Snapshot bundles everything derived from one dataset for one report
// selection. It is immutable once published; a new upload or reselection
// replaces it wholesale.
type Snapshot struct {
	Dataset     *tabular.Dataset
	Report      insights.ReportResult
	Leaderboard []insights.RankedEntry
	Geo         []insights.GeoEntry
	Profile     profile.DatasetProfile
}

// Service holds at most one active dataset per process. All derived
// structures are pure functions of (dataset, report type), so the only
// guarded state is the current snapshot pointer.
type Service struct {
	mu               sync.RWMutex
	current          *Snapshot
	leaderboardLimit int
}

// NewService creates the session service.
func NewService(leaderboardLimit int) *Service {
	if leaderboardLimit <= 0 {
		leaderboardLimit = insights.DefaultLeaderboardSize
	}
	return &Service{leaderboardLimit: leaderboardLimit}
}

// ComputeFromUpload ingests raw uploaded bytes and computes the full
// snapshot for the requested report type. Ingestion failures abort with a
// typed error and leave any previous dataset untouched; once ingestion
// succeeds the previous dataset and all its derived results are discarded.
func (s *Service) ComputeFromUpload(ctx context.Context, raw []byte, filename string, reportType insights.ReportType) (*Snapshot, error) {
	ds, err := ingest.Ingest(raw, filename)
	if err != nil {
		log.Printf("[InsightService] ingest failed for %s: %v", filename, err)
		return nil, err
	}

	snapshot := s.compute(ctx, ds, reportType)

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	log.Printf("[InsightService] dataset %s active (%d rows, %d fields, report %s)",
		ds.ID, ds.RowCount(), ds.FieldCount(), reportType)
	return snapshot, nil
}

// Reselect recomputes the snapshot for a different report type over the
// current dataset, without a new upload.
func (s *Service) Reselect(ctx context.Context, reportType insights.ReportType) (*Snapshot, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return nil, errors.NotFound("dataset")
	}
	if current.Report.Type == reportType {
		return current, nil
	}

	snapshot := s.compute(ctx, current.Dataset, reportType)

	s.mu.Lock()
	// A concurrent upload wins over a reselection of the old dataset.
	if s.current != nil && s.current.Dataset.ID == snapshot.Dataset.ID {
		s.current = snapshot
	}
	s.mu.Unlock()
	return snapshot, nil
}

// Current returns the active snapshot, or nil when no dataset is loaded.
func (s *Service) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Leaderboard recomputes the ranking over the current dataset with an
// explicit entry limit.
func (s *Service) Leaderboard(limit int) ([]insights.RankedEntry, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return nil, errors.NotFound("dataset")
	}
	if limit <= 0 {
		limit = s.leaderboardLimit
	}
	nameColumn, valueColumn := leaderboardColumns(current.Dataset.Headers)
	return insights.Rank(current.Dataset.Rows, nameColumn, valueColumn, limit), nil
}

// Rows returns the headers plus at most limit rows for verbatim display.
func (s *Service) Rows(limit int) ([]string, []tabular.Row, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return nil, nil, errors.NotFound("dataset")
	}
	rows := current.Dataset.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return current.Dataset.Headers, rows, nil
}

// Reset discards the current dataset and every derived result, returning the
// session to the upload state.
func (s *Service) Reset() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	log.Printf("[InsightService] session reset, dataset discarded")
}

// compute derives all four result sections from an immutable dataset. The
// sections are independent pure functions, so they run concurrently; none of
// them can fail, they degrade per-feature when resolutions miss.
func (s *Service) compute(ctx context.Context, ds *tabular.Dataset, reportType insights.ReportType) *Snapshot {
	snapshot := &Snapshot{Dataset: ds}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		snapshot.Report = insights.ComputeReport(ds, reportType)
		return nil
	})
	g.Go(func() error {
		nameColumn, valueColumn := leaderboardColumns(ds.Headers)
		snapshot.Leaderboard = insights.Rank(ds.Rows, nameColumn, valueColumn, s.leaderboardLimit)
		return nil
	})
	g.Go(func() error {
		locationColumn, _ := insights.ResolveRole(ds.Headers, insights.RoleCity)
		snapshot.Geo = insights.GeoBreakdown(ds.Rows, locationColumn)
		return nil
	})
	g.Go(func() error {
		snapshot.Profile = profile.Profile(ds)
		return nil
	})
	g.Wait()

	if len(snapshot.Report.Columns) == 0 && reportType != insights.ReportGeneric {
		log.Printf("[InsightService] no columns resolved for report %s over dataset %s, cards degraded", reportType, ds.ID)
	}
	return snapshot
}

// leaderboardColumns resolves the entity and value columns for the ranking:
// buyer name first, seller as the fallback entity.
func leaderboardColumns(headers []string) (string, string) {
	nameColumn, ok := insights.ResolveRole(headers, insights.RoleBuyerName)
	if !ok {
		nameColumn, _ = insights.ResolveRole(headers, insights.RoleSeller)
	}
	valueColumn, _ := insights.ResolveRole(headers, insights.RoleRevenue)
	return nameColumn, valueColumn
}

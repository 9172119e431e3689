package stats

import (
	"sort"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/store"
)

// FilterOpts is the three-dimensional dashboard filter. A nil field is the
// wildcard; set fields match exactly and compose as AND. A blank provider or
// area never matches a concrete filter.
type FilterOpts struct {
	Year     *domain.Year
	Kind     *string
	Provider *string
}

type Service struct {
	store store.Store
}

func NewStatsService(store store.Store) *Service {
	return &Service{store: store}
}

// View filters the full dataset down to the current selection.
func (s *Service) View(opts FilterOpts) []domain.ApplicationRecord {
	return Filter(s.store.Applications(), opts)
}

// Filter returns a new slice; the input is never mutated.
func Filter(records []domain.ApplicationRecord, opts FilterOpts) []domain.ApplicationRecord {
	view := make([]domain.ApplicationRecord, 0, len(records))
	for _, r := range records {
		if opts.Year != nil && r.Year != *opts.Year {
			continue
		}
		if opts.Kind != nil && r.Kind != *opts.Kind {
			continue
		}
		if opts.Provider != nil && r.Provider != *opts.Provider {
			continue
		}
		view = append(view, r)
	}
	return view
}

// ComputeKPIs aggregates a view into the four headline numbers. Granted seats
// are read through the kind-matched seats column only; an empty view yields
// all zeros.
func ComputeKPIs(view []domain.ApplicationRecord) domain.KPI {
	kpi := domain.KPI{Total: len(view)}
	for _, r := range view {
		if !r.Approved() {
			continue
		}
		kpi.Approved++
		kpi.GrantedSeats += r.GrantedSeats()
	}
	kpi.ApprovalPct = domain.Pct(kpi.Approved, kpi.Total)
	return kpi
}

// TopAreas counts applications per educational area and keeps the limit
// biggest ones. Rows without an area are left out.
func TopAreas(view []domain.ApplicationRecord, limit int) []domain.CountEntry {
	counts := map[string]int{}
	for _, r := range view {
		if r.Area == "" {
			continue
		}
		counts[r.Area]++
	}

	entries := make([]domain.CountEntry, 0, len(counts))
	for area, n := range counts {
		entries = append(entries, domain.CountEntry{Name: area, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// DecisionCounts is the approved/rejected distribution of a view.
func DecisionCounts(view []domain.ApplicationRecord) []domain.CountEntry {
	counts := map[string]int{}
	for _, r := range view {
		if r.Decision == "" {
			continue
		}
		counts[r.Decision]++
	}

	entries := make([]domain.CountEntry, 0, len(counts))
	for decision, n := range counts {
		entries = append(entries, domain.CountEntry{Name: decision, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// KindsByArea is the course/program split for the limit biggest areas.
func KindsByArea(view []domain.ApplicationRecord, limit int) []domain.AreaKindCount {
	top := topAreaSet(view, limit)

	counts := map[[2]string]int{}
	for _, r := range view {
		if _, ok := top[r.Area]; !ok {
			continue
		}
		counts[[2]string{r.Area, r.Kind}]++
	}

	entries := make([]domain.AreaKindCount, 0, len(counts))
	for key, n := range counts {
		entries = append(entries, domain.AreaKindCount{Area: key[0], Kind: key[1], Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Area != entries[j].Area {
			return entries[i].Area < entries[j].Area
		}
		return entries[i].Kind < entries[j].Kind
	})
	return entries
}

// DecisionsByArea is the approved/rejected split for the limit biggest areas.
func DecisionsByArea(view []domain.ApplicationRecord, limit int) []domain.AreaDecisionCount {
	top := topAreaSet(view, limit)

	counts := map[[2]string]int{}
	for _, r := range view {
		if _, ok := top[r.Area]; !ok {
			continue
		}
		counts[[2]string{r.Area, r.Decision}]++
	}

	entries := make([]domain.AreaDecisionCount, 0, len(counts))
	for key, n := range counts {
		entries = append(entries, domain.AreaDecisionCount{Area: key[0], Decision: key[1], Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Area != entries[j].Area {
			return entries[i].Area < entries[j].Area
		}
		return entries[i].Decision < entries[j].Decision
	})
	return entries
}

func topAreaSet(view []domain.ApplicationRecord, limit int) map[string]struct{} {
	set := map[string]struct{}{}
	for _, e := range TopAreas(view, limit) {
		set[e.Name] = struct{}{}
	}
	return set
}

// CountyApproved counts approved applications per county for the map page.
// Rows without a county, and rows carrying the multi-municipality marker, are
// excluded both from the counts and from the returned totals.
func CountyApproved(view []domain.ApplicationRecord) ([]domain.CountyCount, domain.KPI) {
	located := make([]domain.ApplicationRecord, 0, len(view))
	for _, r := range view {
		if r.County == "" || r.County == domain.CountyMultiMunicipality {
			continue
		}
		located = append(located, r)
	}

	counts := map[string]int{}
	for _, r := range located {
		if r.Approved() {
			counts[r.County]++
		}
	}

	entries := make([]domain.CountyCount, 0, len(counts))
	for county, n := range counts {
		entries = append(entries, domain.CountyCount{County: county, Approved: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Approved != entries[j].Approved {
			return entries[i].Approved > entries[j].Approved
		}
		return entries[i].County < entries[j].County
	})

	return entries, ComputeKPIs(located)
}

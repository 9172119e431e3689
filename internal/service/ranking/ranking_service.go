package ranking

import (
	"sort"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/store"
)

const (
	// DefaultMinSample is the qualification threshold: groups with fewer
	// applications are statistically uninteresting and stay out of rankings.
	DefaultMinSample = 5

	// ContrastMinSample is the stricter threshold used by the high-volume
	// area contrast.
	ContrastMinSample = 30

	// TopK is the leaderboard size shown by the dashboard.
	TopK = 10

	// GapName marks the placeholder row between the leaderboard and an
	// entity of interest ranked below it.
	GapName = "..."
)

type Service struct {
	store store.Store
}

func NewRankingService(store store.Store) *Service {
	return &Service{store: store}
}

func byProvider(r domain.ApplicationRecord) string { return r.Provider }

func byArea(r domain.ApplicationRecord) string { return r.Area }

func (s *Service) RankProviders(view []domain.ApplicationRecord, minSample int) []domain.RankingEntry {
	return Rank(view, byProvider, minSample)
}

func (s *Service) RankAreas(view []domain.ApplicationRecord, minSample int) []domain.RankingEntry {
	return Rank(view, byArea, minSample)
}

// Rank groups a view by key, drops groups with a blank key or fewer than
// minSample rows, and sorts by approval rate descending. Ties break on name
// ascending; the source data never defined a tie order, so this one is chosen
// for determinism.
func Rank(view []domain.ApplicationRecord, key func(domain.ApplicationRecord) string, minSample int) []domain.RankingEntry {
	totals := map[string]int{}
	approved := map[string]int{}
	for _, r := range view {
		k := key(r)
		if k == "" {
			continue
		}
		totals[k]++
		if r.Approved() {
			approved[k]++
		}
	}

	entries := make([]domain.RankingEntry, 0, len(totals))
	for name, total := range totals {
		if total < minSample {
			continue
		}
		entries = append(entries, domain.RankingEntry{
			Name:        name,
			ApprovalPct: domain.Pct(approved[name], total),
			Total:       total,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ApprovalPct != entries[j].ApprovalPct {
			return entries[i].ApprovalPct > entries[j].ApprovalPct
		}
		return entries[i].Name < entries[j].Name
	})

	return entries
}

// RawStat aggregates one provider with no qualification threshold applied.
// Found is false only when the provider has no rows at all in the view.
func RawStat(view []domain.ApplicationRecord, name string) (domain.ProviderStat, bool) {
	stat := domain.ProviderStat{Provider: name}
	for _, r := range view {
		if r.Provider != name {
			continue
		}
		stat.Total++
		if r.Approved() {
			stat.Approved++
		}
	}
	if stat.Total == 0 {
		return stat, false
	}
	stat.ApprovalPct = domain.Pct(stat.Approved, stat.Total)
	stat.Qualifies = stat.Total >= DefaultMinSample
	return stat, true
}

// Locate finds a 1-based position in an already-ranked list. Entities that
// are absent (not in the dataset, or below the threshold) come back as
// not-ranked, never as an error.
func Locate(entries []domain.RankingEntry, name string) domain.RankPosition {
	pos := domain.RankPosition{Qualifying: len(entries)}
	for i, e := range entries {
		if e.Name == name {
			pos.Ranked = true
			pos.Position = i + 1
			return pos
		}
	}
	return pos
}

// TopWithEntity trims a ranking to its top k rows while keeping the entity of
// interest visible: an entity ranked below the cut is appended after a gap
// placeholder, replacing the leaderboard's last row. An entity that does not
// qualify at all just gets the plain top k.
func TopWithEntity(entries []domain.RankingEntry, name string, k int) []domain.RankingEntry {
	top := entries
	if len(top) > k {
		top = top[:k]
	}

	for _, e := range top {
		if e.Name == name {
			return top
		}
	}

	for _, e := range entries[len(top):] {
		if e.Name != name {
			continue
		}
		result := make([]domain.RankingEntry, 0, k+1)
		result = append(result, top[:min(k-1, len(top))]...)
		result = append(result, domain.RankingEntry{Name: GapName, Gap: true})
		result = append(result, e)
		return result
	}

	return top
}

// Contrast returns the weakest and strongest n groups among those with at
// least minSample applications, both slices ordered by rate ascending.
func Contrast(view []domain.ApplicationRecord, key func(domain.ApplicationRecord) string, minSample, n int) (bottom, top []domain.RankingEntry) {
	entries := Rank(view, key, minSample)

	// Rank sorts descending; flip to ascending like the presentation wants.
	asc := make([]domain.RankingEntry, len(entries))
	for i, e := range entries {
		asc[len(entries)-1-i] = e
	}

	if len(asc) <= n {
		return asc, nil
	}
	bottom = asc[:n]
	if len(asc) > 2*n {
		top = asc[len(asc)-n:]
	} else {
		top = asc[n:]
	}
	return bottom, top
}

// AreaContrast is Contrast over educational areas with the dashboard's
// defaults.
func (s *Service) AreaContrast(view []domain.ApplicationRecord) (bottom, top []domain.RankingEntry) {
	return Contrast(view, byArea, ContrastMinSample, 5)
}

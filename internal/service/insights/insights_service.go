package insights

import (
	"sort"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/store"
	"github.com/HenrikSjoe/yh-kollen/internal/service/stats"
)

type Service struct {
	store store.Store
}

func NewInsightsService(store store.Store) *Service {
	return &Service{store: store}
}

// CompareToAverage pairs a provider's approval rate with the average of the
// whole view. The provider's own rows stay in the population; the dashboard
// compares against the market, not against everyone else.
func CompareToAverage(view []domain.ApplicationRecord, provider string) domain.Comparison {
	var total, approved int
	var pTotal, pApproved int
	for _, r := range view {
		total++
		if r.Approved() {
			approved++
		}
		if r.Provider == provider {
			pTotal++
			if r.Approved() {
				pApproved++
			}
		}
	}

	c := domain.Comparison{
		EntityPct:  domain.Pct(pApproved, pTotal),
		AveragePct: domain.Pct(approved, total),
	}
	c.AboveAverage = c.EntityPct >= c.AveragePct
	return c
}

// BreakdownByArea is the provider's self-diagnosis view: every area it has
// any application in, with no minimum sample. A provider active in a single
// area gets the comparison variant instead of a one-row list, so the frontend
// can show it against the area's population-wide rate.
func BreakdownByArea(view []domain.ApplicationRecord, provider string) domain.Breakdown {
	byArea := map[string]*domain.AreaStat{}
	for _, r := range view {
		if r.Provider != provider || r.Area == "" {
			continue
		}
		stat, ok := byArea[r.Area]
		if !ok {
			stat = &domain.AreaStat{Area: r.Area}
			byArea[r.Area] = stat
		}
		stat.Total++
		if r.Approved() {
			stat.Approved++
			stat.GrantedSeats += r.GrantedSeats()
		}
	}

	areas := make([]domain.AreaStat, 0, len(byArea))
	for _, stat := range byArea {
		stat.ApprovalPct = domain.Pct(stat.Approved, stat.Total)
		areas = append(areas, *stat)
	}

	if len(areas) == 1 {
		only := areas[0]
		return domain.Breakdown{Single: &domain.SingleAreaComparison{
			Area:        only.Area,
			ProviderPct: only.ApprovalPct,
			AreaAvgPct:  areaAverage(view, only.Area),
			Total:       only.Total,
			Approved:    only.Approved,
		}}
	}

	sort.Slice(areas, func(i, j int) bool {
		if areas[i].ApprovalPct != areas[j].ApprovalPct {
			return areas[i].ApprovalPct > areas[j].ApprovalPct
		}
		return areas[i].Area < areas[j].Area
	})

	return domain.Breakdown{Areas: areas}
}

// areaAverage is the population-wide approval rate of one area, across every
// provider in the view.
func areaAverage(view []domain.ApplicationRecord, area string) float64 {
	var total, approved int
	for _, r := range view {
		if r.Area != area {
			continue
		}
		total++
		if r.Approved() {
			approved++
		}
	}
	return domain.Pct(approved, total)
}

// Summary is the provider-scoped KPI block of the insight page.
func Summary(view []domain.ApplicationRecord, provider string) domain.KPI {
	p := provider
	return stats.ComputeKPIs(stats.Filter(view, stats.FilterOpts{Provider: &p}))
}

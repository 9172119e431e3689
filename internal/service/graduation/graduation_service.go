package graduation

import (
	"sort"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewGraduationService(store store.Store) *Service {
	return &Service{store: store}
}

// TargetYear is the most recent year in the enrollment table. ok is false
// when the table never loaded.
func (s *Service) TargetYear() (domain.Year, bool) {
	var year domain.Year
	var ok bool
	for _, r := range s.store.Enrollment() {
		if !ok || r.Year > year {
			year = r.Year
			ok = true
		}
	}
	return year, ok
}

func (s *Service) Rates() []domain.GraduationStat {
	year, ok := s.TargetYear()
	if !ok {
		return nil
	}
	return Rates(s.store.Enrollment(), year)
}

// Rates computes graduates/active per educational area for one year, over the
// gender/age totals rows. An area is skipped when either count is the missing
// marker or it has no graduate row at all. The two pedagogy labels are left
// out of the per-area pass and folded into one synthetic Pedagogik entry,
// summing both labels, appended after the rest.
func Rates(enrollment []domain.EnrollmentRecord, year domain.Year) []domain.GraduationStat {
	active := map[string]*float64{}
	graduated := map[string]*float64{}
	for _, r := range enrollment {
		if r.Year != year || r.Gender != domain.GenderTotal || r.AgeBand != domain.AgeTotal {
			continue
		}
		switch r.Metric {
		case domain.MetricActive:
			active[r.Area] = r.Count
		case domain.MetricGraduated:
			graduated[r.Area] = r.Count
		}
	}

	areas := make([]string, 0, len(active))
	for area := range active {
		areas = append(areas, area)
	}
	sort.Strings(areas)

	result := make([]domain.GraduationStat, 0, len(areas))
	for _, area := range areas {
		if area == domain.AreaTotal || area == domain.AreaPedagogyTeacher || area == domain.AreaPedagogyTeaching {
			continue
		}

		activeVal := active[area]
		gradVal, hasGrad := graduated[area]
		if activeVal == nil || !hasGrad || gradVal == nil {
			continue
		}

		result = append(result, domain.GraduationStat{
			Area:      area,
			Active:    int(*activeVal),
			Graduated: int(*gradVal),
			RatePct:   domain.RatePct(*gradVal, *activeVal),
		})
	}

	if ped, ok := mergePedagogy(active, graduated); ok {
		result = append(result, ped)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].RatePct != result[j].RatePct {
			return result[i].RatePct > result[j].RatePct
		}
		return result[i].Area < result[j].Area
	})

	return result
}

// mergePedagogy sums active and graduate counts across the two pedagogy
// labels. A label contributes only when both of its counts are present; if
// neither label contributes there is no Pedagogik entry.
func mergePedagogy(active, graduated map[string]*float64) (domain.GraduationStat, bool) {
	var activeSum, gradSum float64
	var any bool
	for _, label := range []string{domain.AreaPedagogyTeacher, domain.AreaPedagogyTeaching} {
		activeVal := active[label]
		gradVal, hasGrad := graduated[label]
		if activeVal == nil || !hasGrad || gradVal == nil {
			continue
		}
		activeSum += *activeVal
		gradSum += *gradVal
		any = true
	}
	if !any {
		return domain.GraduationStat{}, false
	}

	return domain.GraduationStat{
		Area:      domain.AreaPedagogy,
		Active:    int(activeSum),
		Graduated: int(gradSum),
		RatePct:   domain.RatePct(gradSum, activeSum),
	}, true
}

// RateFor looks an area up in the computed list. ok is false when the area is
// absent, including when the enrollment table never loaded; the caller turns
// that into a "not available" display, not an error.
func (s *Service) RateFor(area string) (float64, bool) {
	for _, stat := range s.Rates() {
		if stat.Area == area {
			return stat.RatePct, true
		}
	}
	return 0, false
}

package store

import (
	"sort"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
)

// Store holds the dataset loaded at startup. It is immutable after
// construction, so concurrent readers need no locking.
type Store interface {
	Applications() []domain.ApplicationRecord
	Enrollment() []domain.EnrollmentRecord
	Years() []domain.Year
	Kinds() []string
	Providers() []string
	Areas() []string
}

type store struct {
	apps       []domain.ApplicationRecord
	enrollment []domain.EnrollmentRecord

	years     []domain.Year
	kinds     []string
	providers []string
	areas     []string
}

func NewStore(apps []domain.ApplicationRecord, enrollment []domain.EnrollmentRecord) Store {
	s := &store{apps: apps, enrollment: enrollment}

	yearSet := map[domain.Year]struct{}{}
	kindSet := map[string]struct{}{}
	providerSet := map[string]struct{}{}
	areaSet := map[string]struct{}{}
	for _, r := range apps {
		yearSet[r.Year] = struct{}{}
		if r.Kind != "" {
			kindSet[r.Kind] = struct{}{}
		}
		if r.Provider != "" {
			providerSet[r.Provider] = struct{}{}
		}
		if r.Area != "" {
			areaSet[r.Area] = struct{}{}
		}
	}

	for y := range yearSet {
		s.years = append(s.years, y)
	}
	sort.Ints(s.years)
	s.kinds = sortedKeys(kindSet)
	s.providers = sortedKeys(providerSet)
	s.areas = sortedKeys(areaSet)

	return s
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *store) Applications() []domain.ApplicationRecord { return s.apps }

func (s *store) Enrollment() []domain.EnrollmentRecord { return s.enrollment }

func (s *store) Years() []domain.Year { return s.years }

func (s *store) Kinds() []string { return s.kinds }

func (s *store) Providers() []string { return s.providers }

func (s *store) Areas() []string { return s.areas }

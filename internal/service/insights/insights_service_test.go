package insights

import (
	"testing"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
)

func rows(provider, area string, total, approved int) []domain.ApplicationRecord {
	out := make([]domain.ApplicationRecord, 0, total)
	for i := 0; i < total; i++ {
		decision := domain.DecisionRejected
		if i < approved {
			decision = domain.DecisionApproved
		}
		out = append(out, domain.ApplicationRecord{
			Year:     2024,
			Kind:     domain.KindCourse,
			Provider: provider,
			Area:     area,
			Decision: decision,
		})
	}
	return out
}

func TestCompareToAverageKeepsEntityInPopulation(t *testing.T) {
	// Entity: 5 of 10 approved. Others: 5 of 10. Population: 10 of 20 = 50%.
	view := append(rows("Mitt", "Data/It", 10, 5), rows("Annan", "Data/It", 10, 5)...)

	c := CompareToAverage(view, "Mitt")
	if c.EntityPct != 50.0 || c.AveragePct != 50.0 {
		t.Fatalf("want 50/50, got %+v", c)
	}
	if !c.AboveAverage {
		t.Fatalf("equal rates count as at-or-above average: %+v", c)
	}
}

func TestCompareToAverageBelow(t *testing.T) {
	view := append(rows("Mitt", "Data/It", 10, 2), rows("Annan", "Data/It", 10, 8)...)

	c := CompareToAverage(view, "Mitt")
	if c.EntityPct != 20.0 || c.AveragePct != 50.0 || c.AboveAverage {
		t.Fatalf("want 20 below 50, got %+v", c)
	}
}

func TestBreakdownSingleAreaVariant(t *testing.T) {
	// The provider works a single area: 5 applications, 3 approved (60.0).
	// The area across all providers: 20 applications, 9 approved (45.0).
	view := append(rows("Mitt", "Område Z", 5, 3), rows("Annan", "Område Z", 15, 6)...)

	b := BreakdownByArea(view, "Mitt")
	if b.Single == nil {
		t.Fatalf("want the single-area variant, got %+v", b)
	}
	if len(b.Areas) != 0 {
		t.Fatalf("variants are exclusive: %+v", b)
	}
	if b.Single.Area != "Område Z" || b.Single.ProviderPct != 60.0 || b.Single.AreaAvgPct != 45.0 {
		t.Fatalf("single-area pair: want (60.0, 45.0), got %+v", b.Single)
	}
}

func TestBreakdownMultiAreaVariant(t *testing.T) {
	view := append(rows("Mitt", "Svagt", 4, 1), rows("Mitt", "Starkt", 4, 4)...)
	view = append(view, rows("Mitt", "Mellan", 4, 2)...)
	// Another provider's rows must not leak into the breakdown.
	view = append(view, rows("Annan", "Starkt", 10, 0)...)

	b := BreakdownByArea(view, "Mitt")
	if b.Single != nil {
		t.Fatalf("want the multi-area variant, got %+v", b)
	}
	if len(b.Areas) != 3 {
		t.Fatalf("every area with any application is included: %+v", b.Areas)
	}
	if b.Areas[0].Area != "Starkt" || b.Areas[1].Area != "Mellan" || b.Areas[2].Area != "Svagt" {
		t.Fatalf("want rate-descending order, got %+v", b.Areas)
	}
	if b.Areas[0].ApprovalPct != 100.0 || b.Areas[2].ApprovalPct != 25.0 {
		t.Fatalf("rates: %+v", b.Areas)
	}
}

func TestBreakdownIncludesOneRecordAreas(t *testing.T) {
	view := append(rows("Mitt", "Stort", 8, 4), rows("Mitt", "Enstaka", 1, 1)...)

	b := BreakdownByArea(view, "Mitt")
	if len(b.Areas) != 2 {
		t.Fatalf("a single application is enough for self-diagnosis: %+v", b.Areas)
	}
}

func TestBreakdownUnknownProvider(t *testing.T) {
	view := rows("Annan", "Data/It", 5, 3)

	b := BreakdownByArea(view, "Okänd")
	if b.Single != nil || len(b.Areas) != 0 {
		t.Fatalf("unknown provider: want empty breakdown, got %+v", b)
	}
}

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{100, domain.BandStrong},
		{70, domain.BandStrong},
		{69.9, domain.BandAdequate},
		{50, domain.BandAdequate},
		{49.9, domain.BandWeak},
		{30, domain.BandWeak},
		{29.9, domain.BandPoor},
		{0, domain.BandPoor},
	}
	for _, tc := range cases {
		if got := domain.Band(tc.rate); got != tc.want {
			t.Fatalf("band(%v): want=%s got=%s", tc.rate, tc.want, got)
		}
	}
}

func TestSummaryScopesToProvider(t *testing.T) {
	view := append(rows("Mitt", "Data/It", 4, 2), rows("Annan", "Data/It", 10, 10)...)

	kpi := Summary(view, "Mitt")
	if kpi.Total != 4 || kpi.Approved != 2 || kpi.ApprovalPct != 50.0 {
		t.Fatalf("summary: %+v", kpi)
	}
}

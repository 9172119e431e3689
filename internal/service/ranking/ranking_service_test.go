package ranking

import (
	"fmt"
	"testing"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
)

// providerRows builds total rows for one provider, approved of them approved.
func providerRows(name string, total, approved int) []domain.ApplicationRecord {
	rows := make([]domain.ApplicationRecord, 0, total)
	for i := 0; i < total; i++ {
		decision := domain.DecisionRejected
		if i < approved {
			decision = domain.DecisionApproved
		}
		rows = append(rows, domain.ApplicationRecord{
			Year:     2024,
			Kind:     domain.KindCourse,
			Provider: name,
			Area:     "Data/It",
			Decision: decision,
		})
	}
	return rows
}

func TestRankQualificationThreshold(t *testing.T) {
	// Provider A has 3 applications and stays out even at 100% approval;
	// provider B qualifies with 5.
	view := append(providerRows("A", 3, 3), providerRows("B", 5, 4)...)

	entries := Rank(view, byProvider, DefaultMinSample)
	if len(entries) != 1 {
		t.Fatalf("want 1 qualifying provider, got %d: %+v", len(entries), entries)
	}
	if entries[0].Name != "B" || entries[0].Total != 5 || entries[0].ApprovalPct != 80.0 {
		t.Fatalf("provider B: want 80.0%% of 5, got %+v", entries[0])
	}
}

func TestRankSkipsBlankKeys(t *testing.T) {
	view := providerRows("", 6, 6)
	if entries := Rank(view, byProvider, DefaultMinSample); len(entries) != 0 {
		t.Fatalf("blank provider ranked: %+v", entries)
	}
}

func TestRankTieBreakIsNameAscending(t *testing.T) {
	view := append(providerRows("Beta", 5, 4), providerRows("Alfa", 5, 4)...)

	entries := Rank(view, byProvider, DefaultMinSample)
	if len(entries) != 2 || entries[0].Name != "Alfa" || entries[1].Name != "Beta" {
		t.Fatalf("tie-break: want Alfa before Beta, got %+v", entries)
	}
}

func TestLocate(t *testing.T) {
	view := append(providerRows("A", 10, 9), providerRows("B", 10, 5)...)
	view = append(view, providerRows("C", 3, 3)...)

	entries := Rank(view, byProvider, DefaultMinSample)

	pos := Locate(entries, "B")
	if !pos.Ranked || pos.Position != 2 || pos.Qualifying != 2 {
		t.Fatalf("locate B: want #2 of 2, got %+v", pos)
	}

	// Present in the dataset but below the threshold: not ranked, not an error.
	pos = Locate(entries, "C")
	if pos.Ranked || pos.Position != 0 {
		t.Fatalf("locate C: want not-ranked, got %+v", pos)
	}

	pos = Locate(entries, "missing")
	if pos.Ranked {
		t.Fatalf("locate missing: want not-ranked, got %+v", pos)
	}
}

func TestRawStatBypassesThreshold(t *testing.T) {
	view := providerRows("C", 3, 2)

	stat, found := RawStat(view, "C")
	if !found {
		t.Fatal("want found")
	}
	if stat.Total != 3 || stat.Approved != 2 || stat.ApprovalPct != 66.7 || stat.Qualifies {
		t.Fatalf("raw stat: %+v", stat)
	}

	if _, found = RawStat(view, "missing"); found {
		t.Fatal("missing provider reported as found")
	}
}

// rankedView builds 12 qualifying providers with distinct descending rates:
// P01 is best, P12 worst.
func rankedView() []domain.ApplicationRecord {
	var view []domain.ApplicationRecord
	for i := 1; i <= 12; i++ {
		view = append(view, providerRows(fmt.Sprintf("P%02d", i), 20, 20-i)...)
	}
	return view
}

func TestTopWithEntityInsideTop(t *testing.T) {
	entries := Rank(rankedView(), byProvider, DefaultMinSample)

	top := TopWithEntity(entries, "P03", TopK)
	if len(top) != TopK {
		t.Fatalf("want %d rows, got %d", TopK, len(top))
	}
	for _, e := range top {
		if e.Gap {
			t.Fatalf("no gap expected when the entity is inside the top: %+v", top)
		}
	}
}

func TestTopWithEntityOutsideTop(t *testing.T) {
	entries := Rank(rankedView(), byProvider, DefaultMinSample)

	top := TopWithEntity(entries, "P12", TopK)
	if len(top) != TopK+1 {
		t.Fatalf("want %d rows, got %d: %+v", TopK+1, len(top), top)
	}
	gap := top[TopK-1]
	if !gap.Gap || gap.Name != GapName {
		t.Fatalf("want gap row before the entity, got %+v", gap)
	}
	if top[TopK].Name != "P12" {
		t.Fatalf("want P12 last, got %+v", top[TopK])
	}
}

func TestTopWithEntityNotQualifying(t *testing.T) {
	view := append(rankedView(), providerRows("Tiny", 2, 2)...)
	entries := Rank(view, byProvider, DefaultMinSample)

	top := TopWithEntity(entries, "Tiny", TopK)
	if len(top) != TopK {
		t.Fatalf("want plain top %d, got %d rows", TopK, len(top))
	}
	for _, e := range top {
		if e.Name == "Tiny" || e.Gap {
			t.Fatalf("non-qualifying entity leaked into the top: %+v", top)
		}
	}
}

func TestContrast(t *testing.T) {
	var view []domain.ApplicationRecord
	for i := 1; i <= 12; i++ {
		area := fmt.Sprintf("Område %02d", i)
		rows := providerRows("A", 30, 30-i)
		for j := range rows {
			rows[j].Area = area
		}
		view = append(view, rows...)
	}
	// One area under the volume threshold never shows up.
	small := providerRows("A", 10, 10)
	for j := range small {
		small[j].Area = "Litet område"
	}
	view = append(view, small...)

	bottom, top := Contrast(view, byArea, ContrastMinSample, 5)
	if len(bottom) != 5 || len(top) != 5 {
		t.Fatalf("want 5+5, got %d+%d", len(bottom), len(top))
	}
	if bottom[0].Name != "Område 12" {
		t.Fatalf("worst first in bottom: got %+v", bottom[0])
	}
	if top[len(top)-1].Name != "Område 01" {
		t.Fatalf("best last in top: got %+v", top[len(top)-1])
	}
	for _, e := range append(bottom, top...) {
		if e.Name == "Litet område" {
			t.Fatal("under-threshold area leaked into the contrast")
		}
	}
}

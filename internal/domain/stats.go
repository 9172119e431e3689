package domain

import "github.com/shopspring/decimal"

// Pct is the one rounding policy of the whole system: a share expressed as a
// percentage with one decimal, rounded half away from zero. An empty whole
// yields 0 rather than an error.
func Pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part) * 100).
		Div(decimal.NewFromInt(int64(whole))).
		Round(1).
		InexactFloat64()
}

// RatePct is Pct for float-valued counts (the enrollment table).
func RatePct(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromFloat(part * 100).
		Div(decimal.NewFromFloat(whole)).
		Round(1).
		InexactFloat64()
}

// KPI is the scalar summary of a filtered view.
type KPI struct {
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	ApprovalPct  float64 `json:"approval_pct"`
	GrantedSeats int     `json:"granted_seats"`
}

// ProviderStat is the raw per-provider aggregate, computed regardless of the
// ranking qualification threshold.
type ProviderStat struct {
	Provider    string  `json:"provider"`
	Total       int     `json:"total"`
	Approved    int     `json:"approved"`
	ApprovalPct float64 `json:"approval_pct"`
	Qualifies   bool    `json:"qualifies"`
}

// AreaStat is one educational area of a single provider.
type AreaStat struct {
	Area         string  `json:"area"`
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	ApprovalPct  float64 `json:"approval_pct"`
	GrantedSeats int     `json:"granted_seats"`
}

// RankingEntry is one row of a sorted ranking. Gap entries are visual
// placeholders between the leaderboard and an entity outside it.
type RankingEntry struct {
	Name        string  `json:"name"`
	ApprovalPct float64 `json:"approval_pct"`
	Total       int     `json:"total"`
	Gap         bool    `json:"gap,omitempty"`
}

// RankPosition locates an entity within a qualifying ranking. Ranked is false
// when the entity is absent or below the qualification threshold.
type RankPosition struct {
	Ranked     bool `json:"ranked"`
	Position   int  `json:"position,omitempty"`
	Qualifying int  `json:"qualifying"`
}

// Comparison pairs an entity's approval rate with the population average of
// the same view. AboveAverage is the color-coding signal for the frontend.
type Comparison struct {
	EntityPct    float64 `json:"entity_pct"`
	AveragePct   float64 `json:"average_pct"`
	AboveAverage bool    `json:"above_average"`
}

// SingleAreaComparison is the breakdown variant used when a provider operates
// in exactly one educational area: its own rate next to the population-wide
// rate of that area.
type SingleAreaComparison struct {
	Area        string  `json:"area"`
	ProviderPct float64 `json:"provider_pct"`
	AreaAvgPct  float64 `json:"area_avg_pct"`
	Total       int     `json:"total"`
	Approved    int     `json:"approved"`
}

// Breakdown carries exactly one of its two variants; the frontend picks the
// rendering based on which is set.
type Breakdown struct {
	Single *SingleAreaComparison `json:"single,omitempty"`
	Areas  []AreaStat            `json:"areas,omitempty"`
}

// GraduationStat is the graduates/active ratio of one area in the target year.
type GraduationStat struct {
	Area      string  `json:"area"`
	Active    int     `json:"active"`
	Graduated int     `json:"graduated"`
	RatePct   float64 `json:"rate_pct"`
}

// CountEntry is a generic name/count pair for the overview charts.
type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AreaKindCount is the course/program split of one area.
type AreaKindCount struct {
	Area  string `json:"area"`
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// AreaDecisionCount is the approved/rejected split of one area.
type AreaDecisionCount struct {
	Area     string `json:"area"`
	Decision string `json:"decision"`
	Count    int    `json:"count"`
}

// CountyCount is the approved-application count of one county, for the map.
type CountyCount struct {
	County   string `json:"county"`
	Approved int    `json:"approved"`
}

// Severity bands for approval rates. Used only for presentation color.
const (
	BandStrong   = "strong"
	BandAdequate = "adequate"
	BandWeak     = "weak"
	BandPoor     = "poor"
)

// Band classifies an approval rate; lower bounds are inclusive.
func Band(ratePct float64) string {
	switch {
	case ratePct >= 70:
		return BandStrong
	case ratePct >= 50:
		return BandAdequate
	case ratePct >= 30:
		return BandWeak
	default:
		return BandPoor
	}
}

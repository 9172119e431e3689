package domain

const (
	// MissingValue is the placeholder SCB prints instead of a number.
	MissingValue = ".."

	MetricActive    = "Antal studerande"
	MetricGraduated = "Antal examinerade"

	GenderTotal = "totalt"
	AgeTotal    = "totalt"

	// AreaTotal is the aggregate row of the enrollment table, never a real area.
	AreaTotal = "Totalt"

	// The pedagogy area was relabelled between data revisions. Both labels
	// describe the same area and are merged into AreaPedagogy wherever
	// graduation rates are computed.
	AreaPedagogyTeacher  = "Pedagogik och lärarutbildning"
	AreaPedagogyTeaching = "Pedagogik och undervisning"
	AreaPedagogy         = "Pedagogik"
)

// EnrollmentRecord is one row of the student/graduate time series. Count is
// nil when the source cell held MissingValue.
type EnrollmentRecord struct {
	Area    string
	Year    Year
	Metric  string
	Gender  string
	AgeBand string
	Count   *float64
}

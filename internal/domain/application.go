package domain

type Year = int

// Values below come straight from the MYH source files and the dashboard
// filter widgets, so they stay in Swedish.
const (
	FilterAll = "Alla"

	KindCourse  = "Kurs"
	KindProgram = "Program"

	DecisionApproved = "Beviljad"
	DecisionRejected = "Avslag"

	// CountyMultiMunicipality marks applications that span several
	// municipalities and cannot be attributed to a single county.
	CountyMultiMunicipality = `Se "Lista flera kommuner"`
)

// ApplicationRecord is one row of the merged application table. Kind and Year
// are synthesized by the loader, everything else comes from the source sheets.
// Empty strings mean the source cell was blank.
type ApplicationRecord struct {
	Year         Year
	Kind         string
	Provider     string
	Area         string
	County       string
	Decision     string
	CourseSeats  *int
	ProgramSeats *int
}

func (r ApplicationRecord) Approved() bool {
	return r.Decision == DecisionApproved
}

// GrantedSeats reads the seats column selected by the record kind. A missing
// or kind-mismatched value counts as zero, matching the source data's
// permissive handling of the two seat columns.
func (r ApplicationRecord) GrantedSeats() int {
	switch r.Kind {
	case KindCourse:
		if r.CourseSeats != nil {
			return *r.CourseSeats
		}
	case KindProgram:
		if r.ProgramSeats != nil {
			return *r.ProgramSeats
		}
	}
	return 0
}

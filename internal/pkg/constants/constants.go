package constants

import "net/http"

// CodedError is an error that knows which HTTP status it maps to. The API
// error handler unwraps down to the first CodedError it finds.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string { return e.msg }

func (e *CodedError) Code() int { return e.code }

var (
	ErrBadYearFilter   = NewCodedError(http.StatusBadRequest, `year must be "Alla" or a year present in the dataset`)
	ErrBadMinSample    = NewCodedError(http.StatusBadRequest, "min_sample must be a non-negative integer")
	ErrBadLimit        = NewCodedError(http.StatusBadRequest, "limit must be a positive integer")
	ErrMissingProvider = NewCodedError(http.StatusBadRequest, "provider name is required")
)

// viper keys
const (
	ViperListenAddr = "server.addr"
	ViperCORSOrigin = "server.cors_origin"
	ViperLogMode    = "log.mode"

	ViperDataDir        = "data.dir"
	ViperCourseYears    = "data.course_years"
	ViperProgramYears   = "data.program_years"
	ViperEnrollmentFile = "data.enrollment_file"
	ViperFetchEnabled   = "data.fetch.enabled"
	ViperFetchIndexURL  = "data.fetch.index_url"
)

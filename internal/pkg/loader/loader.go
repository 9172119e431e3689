package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/logger"
)

// Source sheet layout. The program workbooks changed shape in 2023: the 2022
// revision keeps its list in "Tabell 4" with the header on the first row,
// later years use "Tabell 3" with five preamble rows.
const (
	courseSheet  = "Lista ansökningar"
	programSheet = "Tabell 3"
	program2022  = "Tabell 4"

	enrollmentValueColumn = "Studerande och examinerade inom yrkeshögskolan"
)

const (
	colDecision      = "Beslut"
	colProvider      = "Anordnare namn"
	colProviderAdmin = "Utbildningsanordnare administrativ enhet"
	colArea          = "Utbildningsområde"
	colCounty        = "Län"
	colCourseSeats   = "Totalt antal beviljade platser"
	colProgramSeats  = "Beviljade platser totalt"
)

type Config struct {
	Dir            string
	CourseYears    []domain.Year
	ProgramYears   []domain.Year
	EnrollmentFile string
	Fetch          FetchConfig
}

// Load reads every configured source file into memory. A file that is missing
// or unreadable is logged and skipped; the caller gets whatever subset loaded,
// possibly nothing. The dashboard must always have a dataset to stand on.
func Load(ctx context.Context, cfg Config) ([]domain.ApplicationRecord, []domain.EnrollmentRecord) {
	if cfg.Fetch.Enabled {
		ensureSources(ctx, cfg)
	}

	var (
		apps   []domain.ApplicationRecord
		appsMx sync.Mutex
	)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, year := range cfg.CourseYears {
		year := year
		eg.Go(func() error {
			records, err := readApplications(filepath.Join(cfg.Dir, courseFile(year)), courseSheet, 0, domain.KindCourse, year)
			if err != nil {
				logger.Warnf(egCtx, "skipping courses %d: %s", year, err.Error())
				return nil
			}
			appsMx.Lock()
			defer appsMx.Unlock()
			apps = append(apps, records...)
			return nil
		})
	}
	for _, year := range cfg.ProgramYears {
		year := year
		eg.Go(func() error {
			file, sheet, skip := programSource(year)
			records, err := readApplications(filepath.Join(cfg.Dir, file), sheet, skip, domain.KindProgram, year)
			if err != nil {
				logger.Warnf(egCtx, "skipping programs %d: %s", year, err.Error())
				return nil
			}
			appsMx.Lock()
			defer appsMx.Unlock()
			apps = append(apps, records...)
			return nil
		})
	}
	_ = eg.Wait()

	enrollment, err := readEnrollment(filepath.Join(cfg.Dir, cfg.EnrollmentFile))
	if err != nil {
		logger.Warnf(ctx, "skipping enrollment data: %s", err.Error())
	}

	logger.Infof(ctx, "loaded %d applications, %d enrollment rows", len(apps), len(enrollment))
	return apps, enrollment
}

func courseFile(year domain.Year) string {
	return fmt.Sprintf("resultat-%d-for-kurser-inom-yh.xlsx", year)
}

func programSource(year domain.Year) (file, sheet string, skip int) {
	if year == 2022 {
		return "resultat-ansokningsomgang-2022-ny.xlsx", program2022, 0
	}
	return fmt.Sprintf("resultat-ansokningsomgang-%d.xlsx", year), programSheet, 5
}

func readApplications(path, sheet string, skip int, kind string, year domain.Year) ([]domain.ApplicationRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%q): %w", sheet, err)
	}
	if len(rows) <= skip {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := index(rows[skip])
	provider, okProvider := header[colProvider]
	if !okProvider {
		// The program workbooks name the provider by its administrative unit.
		provider, okProvider = header[colProviderAdmin]
	}
	if !okProvider {
		return nil, fmt.Errorf("sheet %q has no provider column", sheet)
	}

	seatsCol := colCourseSeats
	if kind == domain.KindProgram {
		seatsCol = colProgramSeats
	}

	records := make([]domain.ApplicationRecord, 0, len(rows)-skip-1)
	for _, row := range rows[skip+1:] {
		if blank(row) {
			continue
		}

		r := domain.ApplicationRecord{
			Year:     year,
			Kind:     kind,
			Provider: cell(row, provider),
			Area:     cell(row, header[colArea]),
			County:   cell(row, header[colCounty]),
			Decision: cell(row, header[colDecision]),
		}
		if seats := parseSeats(cell(row, header[seatsCol])); seats != nil {
			if kind == domain.KindCourse {
				r.CourseSeats = seats
			} else {
				r.ProgramSeats = seats
			}
		}
		records = append(records, r)
	}

	return records, nil
}

func index(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		m[strings.TrimSpace(name)] = i
	}
	return m
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseSeats reads a seats cell. Anything non-numeric, including blanks, is
// treated as absent rather than an error; fractional values are truncated the
// way the source data always has been.
func parseSeats(s string) *int {
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(v)
	return &n
}

// readEnrollment reads the SCB student/graduate time series. The file is
// published as ISO-8859-1, not UTF-8.
func readEnrollment(path string) ([]domain.EnrollmentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(f))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.ReadAll: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty csv")
	}

	header := index(rows[0])
	records := make([]domain.EnrollmentRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}

		year, err := strconv.Atoi(cell(row, header["år"]))
		if err != nil {
			continue
		}

		records = append(records, domain.EnrollmentRecord{
			Area:    cell(row, header["utbildningens inriktning"]),
			Year:    year,
			Metric:  cell(row, header["tabellinnehåll"]),
			Gender:  cell(row, header["kön"]),
			AgeBand: cell(row, header["ålder"]),
			Count:   parseCount(cell(row, header[enrollmentValueColumn])),
		})
	}

	return records, nil
}

// parseCount maps the ".." placeholder, and anything else non-numeric, to nil.
func parseCount(s string) *float64 {
	if s == "" || s == domain.MissingValue {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}

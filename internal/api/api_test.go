package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/store"
)

func fixtureService(t *testing.T) *APIService {
	t.Helper()

	var apps []domain.ApplicationRecord
	add := func(provider string, total, approved int) {
		for i := 0; i < total; i++ {
			decision := domain.DecisionRejected
			if i < approved {
				decision = domain.DecisionApproved
			}
			apps = append(apps, domain.ApplicationRecord{
				Year:     2024,
				Kind:     domain.KindCourse,
				Provider: provider,
				Area:     "Data/It",
				County:   "Stockholms län",
				Decision: decision,
			})
		}
	}
	add("Alfa", 5, 4)
	add("Beta", 5, 2)

	active, graduated := 200.0, 50.0
	enrollment := []domain.EnrollmentRecord{
		{Area: "Data/It", Year: 2024, Metric: domain.MetricActive, Gender: domain.GenderTotal, AgeBand: domain.AgeTotal, Count: &active},
		{Area: "Data/It", Year: 2024, Metric: domain.MetricGraduated, Gender: domain.GenderTotal, AgeBand: domain.AgeTotal, Count: &graduated},
	}

	svc, err := NewAPIService(store.NewStore(apps, enrollment), "http://localhost:3000")
	if err != nil {
		t.Fatalf("NewAPIService: %v", err)
	}
	return svc
}

func get(t *testing.T, svc *APIService, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	svc.router.ServeHTTP(rec, req)
	return rec
}

func TestGetKPIs(t *testing.T) {
	svc := fixtureService(t)

	rec := get(t, svc, "/api/v1/overview/kpis")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatal("every response carries a request id")
	}

	var kpi domain.KPI
	if err := sonic.Unmarshal(rec.Body.Bytes(), &kpi); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if kpi.Total != 10 || kpi.Approved != 6 || kpi.ApprovalPct != 60.0 {
		t.Fatalf("kpis: %+v", kpi)
	}
}

func TestGetKPIsFiltersByProvider(t *testing.T) {
	svc := fixtureService(t)

	rec := get(t, svc, "/api/v1/overview/kpis?provider=Alfa")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}

	var kpi domain.KPI
	if err := sonic.Unmarshal(rec.Body.Bytes(), &kpi); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if kpi.Total != 5 || kpi.Approved != 4 || kpi.ApprovalPct != 80.0 {
		t.Fatalf("scoped kpis: %+v", kpi)
	}
}

func TestBadYearFilterIsA400(t *testing.T) {
	svc := fixtureService(t)

	rec := get(t, svc, "/api/v1/overview/kpis?year=banan")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: want 400, got %d (%s)", rec.Code, rec.Body.String())
	}

	var body domain.ErrorResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Code != http.StatusBadRequest || body.Message == "" {
		t.Fatalf("error body: %+v", body)
	}
}

func TestGetFilters(t *testing.T) {
	svc := fixtureService(t)

	rec := get(t, svc, "/api/v1/filters")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}

	var body struct {
		Years     []domain.Year `json:"years"`
		Providers []string      `json:"providers"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Years) != 1 || body.Years[0] != 2024 {
		t.Fatalf("years: %v", body.Years)
	}
	if len(body.Providers) != 2 || body.Providers[0] != "Alfa" {
		t.Fatalf("providers: %v", body.Providers)
	}
}

func TestGetProviderRanking(t *testing.T) {
	svc := fixtureService(t)

	rec := get(t, svc, "/api/v1/rankings/providers")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}

	var body struct {
		Entries   []domain.RankingEntry `json:"entries"`
		MinSample int                   `json:"min_sample"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.MinSample != 5 {
		t.Fatalf("min_sample: %d", body.MinSample)
	}
	if len(body.Entries) != 2 || body.Entries[0].Name != "Alfa" || body.Entries[0].ApprovalPct != 80.0 {
		t.Fatalf("ranking: %+v", body.Entries)
	}
}

func TestGraduationRateUnknownAreaIsAvailableFalse(t *testing.T) {
	svc := fixtureService(t)

	rec := get(t, svc, "/api/v1/graduation/rates/Okant")
	if rec.Code != http.StatusOK {
		t.Fatalf("an unknown area is not a 404: got %d", rec.Code)
	}

	var body struct {
		Area      string `json:"area"`
		Available bool   `json:"available"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Available || body.Area != "Okant" {
		t.Fatalf("want available=false for %q, got %+v", "Okant", body)
	}
}

func TestGraduationRates(t *testing.T) {
	svc := fixtureService(t)

	rec := get(t, svc, "/api/v1/graduation/rates")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}

	var body struct {
		Year      domain.Year             `json:"year"`
		Available bool                    `json:"available"`
		Rates     []domain.GraduationStat `json:"rates"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.Available || body.Year != 2024 {
		t.Fatalf("want 2024 available, got %+v", body)
	}
	if len(body.Rates) != 1 || body.Rates[0].RatePct != 25.0 {
		t.Fatalf("rates: %+v", body.Rates)
	}
}

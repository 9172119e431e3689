package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/HenrikSjoe/yh-kollen/internal/api/controller"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/store"
	"github.com/HenrikSjoe/yh-kollen/internal/service/graduation"
	"github.com/HenrikSjoe/yh-kollen/internal/service/insights"
	"github.com/HenrikSjoe/yh-kollen/internal/service/ranking"
	"github.com/HenrikSjoe/yh-kollen/internal/service/stats"
)

type APIService struct {
	router *echo.Echo

	statsService      *stats.Service
	rankingService    *ranking.Service
	insightsService   *insights.Service
	graduationService *graduation.Service
}

func (svc *APIService) Serve(addr string) error {
	return svc.router.Start(addr)
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(st store.Store, corsOrigin string) (*APIService, error) {
	svc := &APIService{router: echo.New()}
	svc.router.HideBanner = true

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewSonicSerializer()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(svc.RequestIDMiddleware)
	svc.router.Use(svc.RequestLogMiddleware)
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{corsOrigin},
		AllowMethods: []string{echo.GET},
		AllowHeaders: []string{"Content-Type"},
	}))

	svc.statsService = stats.NewStatsService(st)
	svc.rankingService = ranking.NewRankingService(st)
	svc.insightsService = insights.NewInsightsService(st)
	svc.graduationService = graduation.NewGraduationService(st)

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(st, svc.statsService, svc.rankingService, svc.insightsService, svc.graduationService)

	api.GET("/filters", cntrl.GetFilters)

	overview := api.Group("/overview")
	overview.GET("/kpis", cntrl.GetKPIs)
	overview.GET("/areas", cntrl.GetTopAreas)
	overview.GET("/decisions", cntrl.GetDecisions)
	overview.GET("/kinds", cntrl.GetKindsByArea)
	overview.GET("/area-decisions", cntrl.GetDecisionsByArea)

	api.GET("/map/counties", cntrl.GetCountyCounts)

	rankings := api.Group("/rankings")
	rankings.GET("/providers", cntrl.GetProviderRanking)
	rankings.GET("/providers/locate", cntrl.LocateProvider)
	rankings.GET("/providers/top", cntrl.GetProviderTop)
	rankings.GET("/providers/:name/raw", cntrl.GetProviderRaw)
	rankings.GET("/areas", cntrl.GetAreaRanking)
	rankings.GET("/areas/contrast", cntrl.GetAreaContrast)

	api.GET("/insights/:provider", cntrl.GetProviderInsights)

	grad := api.Group("/graduation")
	grad.GET("/rates", cntrl.GetGraduationRates)
	grad.GET("/rates/:area", cntrl.GetGraduationRate)

	return svc, nil
}

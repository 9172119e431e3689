package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/constants"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/store"
	"github.com/HenrikSjoe/yh-kollen/internal/service/graduation"
	"github.com/HenrikSjoe/yh-kollen/internal/service/insights"
	"github.com/HenrikSjoe/yh-kollen/internal/service/ranking"
	"github.com/HenrikSjoe/yh-kollen/internal/service/stats"
)

type Controller struct {
	store             store.Store
	statsService      *stats.Service
	rankingService    *ranking.Service
	insightsService   *insights.Service
	graduationService *graduation.Service
}

func NewController(
	store store.Store,
	statsService *stats.Service,
	rankingService *ranking.Service,
	insightsService *insights.Service,
	graduationService *graduation.Service,
) *Controller {
	return &Controller{
		store:             store,
		statsService:      statsService,
		rankingService:    rankingService,
		insightsService:   insightsService,
		graduationService: graduationService,
	}
}

// filterOpts reads the three filter dimensions from the query string. The
// wildcard is either an absent parameter or the literal "Alla". A year that
// is neither is a caller contract violation and fails fast with a 400.
func filterOpts(ctx echo.Context) (stats.FilterOpts, error) {
	var opts stats.FilterOpts

	if year := ctx.QueryParam("year"); year != "" && year != domain.FilterAll {
		y, err := strconv.Atoi(year)
		if err != nil {
			return opts, constants.ErrBadYearFilter
		}
		opts.Year = &y
	}
	if kind := ctx.QueryParam("kind"); kind != "" && kind != domain.FilterAll {
		opts.Kind = &kind
	}
	if provider := ctx.QueryParam("provider"); provider != "" && provider != domain.FilterAll {
		opts.Provider = &provider
	}

	return opts, nil
}

func (c *Controller) viewFromQuery(ctx echo.Context) ([]domain.ApplicationRecord, error) {
	opts, err := filterOpts(ctx)
	if err != nil {
		return nil, err
	}
	return c.statsService.View(opts), nil
}

// marketViewFromQuery ignores the provider dimension; the market-overview
// charts always show the whole market for the selected year and kind.
func (c *Controller) marketViewFromQuery(ctx echo.Context) ([]domain.ApplicationRecord, error) {
	opts, err := filterOpts(ctx)
	if err != nil {
		return nil, err
	}
	opts.Provider = nil
	return c.statsService.View(opts), nil
}

func intParam(ctx echo.Context, name string, def int, errVal *constants.CodedError) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errVal
	}
	return v, nil
}

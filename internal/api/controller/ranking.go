package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/constants"
	"github.com/HenrikSjoe/yh-kollen/internal/service/ranking"
)

type rankingResponse struct {
	Entries   []domain.RankingEntry `json:"entries"`
	MinSample int                   `json:"min_sample"`
}

func (c *Controller) GetProviderRanking(ctx echo.Context) error {
	view, err := c.viewFromQuery(ctx)
	if err != nil {
		return err
	}
	minSample, err := intParam(ctx, "min_sample", ranking.DefaultMinSample, constants.ErrBadMinSample)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, rankingResponse{
		Entries:   c.rankingService.RankProviders(view, minSample),
		MinSample: minSample,
	})
}

func (c *Controller) GetAreaRanking(ctx echo.Context) error {
	view, err := c.viewFromQuery(ctx)
	if err != nil {
		return err
	}
	minSample, err := intParam(ctx, "min_sample", ranking.DefaultMinSample, constants.ErrBadMinSample)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, rankingResponse{
		Entries:   c.rankingService.RankAreas(view, minSample),
		MinSample: minSample,
	})
}

func (c *Controller) LocateProvider(ctx echo.Context) error {
	name := ctx.QueryParam("entity")
	if name == "" {
		return constants.ErrMissingProvider
	}

	view, err := c.marketViewFromQuery(ctx)
	if err != nil {
		return err
	}

	entries := c.rankingService.RankProviders(view, ranking.DefaultMinSample)
	return ctx.JSON(http.StatusOK, ranking.Locate(entries, name))
}

// GetProviderTop serves the leaderboard with the entity-of-interest
// accommodation: top 10, or top 9 plus a gap row plus the entity when it
// qualifies but sits below the cut.
func (c *Controller) GetProviderTop(ctx echo.Context) error {
	name := ctx.QueryParam("entity")
	if name == "" {
		return constants.ErrMissingProvider
	}

	view, err := c.marketViewFromQuery(ctx)
	if err != nil {
		return err
	}

	entries := c.rankingService.RankProviders(view, ranking.DefaultMinSample)
	return ctx.JSON(http.StatusOK, rankingResponse{
		Entries:   ranking.TopWithEntity(entries, name, ranking.TopK),
		MinSample: ranking.DefaultMinSample,
	})
}

type rawStatResponse struct {
	Found bool                `json:"found"`
	Stat  domain.ProviderStat `json:"stat"`
}

// GetProviderRaw bypasses the qualification threshold; below-threshold
// providers still get their numbers here.
func (c *Controller) GetProviderRaw(ctx echo.Context) error {
	name := ctx.Param("name")

	view, err := c.marketViewFromQuery(ctx)
	if err != nil {
		return err
	}

	stat, found := ranking.RawStat(view, name)
	return ctx.JSON(http.StatusOK, rawStatResponse{Found: found, Stat: stat})
}

type contrastResponse struct {
	Bottom    []domain.RankingEntry `json:"bottom"`
	Top       []domain.RankingEntry `json:"top"`
	MinSample int                   `json:"min_sample"`
}

func (c *Controller) GetAreaContrast(ctx echo.Context) error {
	view, err := c.marketViewFromQuery(ctx)
	if err != nil {
		return err
	}

	bottom, top := c.rankingService.AreaContrast(view)
	return ctx.JSON(http.StatusOK, contrastResponse{
		Bottom:    bottom,
		Top:       top,
		MinSample: ranking.ContrastMinSample,
	})
}

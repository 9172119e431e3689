package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/constants"
	"github.com/HenrikSjoe/yh-kollen/internal/service/stats"
)

const defaultTopAreas = 10

func (c *Controller) GetKPIs(ctx echo.Context) error {
	view, err := c.viewFromQuery(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats.ComputeKPIs(view))
}

func (c *Controller) GetTopAreas(ctx echo.Context) error {
	view, err := c.viewFromQuery(ctx)
	if err != nil {
		return err
	}
	limit, err := intParam(ctx, "limit", defaultTopAreas, constants.ErrBadLimit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats.TopAreas(view, limit))
}

func (c *Controller) GetDecisions(ctx echo.Context) error {
	view, err := c.viewFromQuery(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats.DecisionCounts(view))
}

func (c *Controller) GetKindsByArea(ctx echo.Context) error {
	view, err := c.marketViewFromQuery(ctx)
	if err != nil {
		return err
	}
	limit, err := intParam(ctx, "limit", defaultTopAreas, constants.ErrBadLimit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats.KindsByArea(view, limit))
}

func (c *Controller) GetDecisionsByArea(ctx echo.Context) error {
	view, err := c.marketViewFromQuery(ctx)
	if err != nil {
		return err
	}
	limit, err := intParam(ctx, "limit", defaultTopAreas, constants.ErrBadLimit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats.DecisionsByArea(view, limit))
}

type countyResponse struct {
	Counties    []domain.CountyCount `json:"counties"`
	Total       int                  `json:"total"`
	Approved    int                  `json:"approved"`
	ApprovalPct float64              `json:"approval_pct"`
}

func (c *Controller) GetCountyCounts(ctx echo.Context) error {
	view, err := c.viewFromQuery(ctx)
	if err != nil {
		return err
	}

	counties, kpi := stats.CountyApproved(view)
	return ctx.JSON(http.StatusOK, countyResponse{
		Counties:    counties,
		Total:       kpi.Total,
		Approved:    kpi.Approved,
		ApprovalPct: kpi.ApprovalPct,
	})
}

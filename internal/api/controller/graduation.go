package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/constants"
)

type graduationRatesResponse struct {
	Year      domain.Year             `json:"year,omitempty"`
	Available bool                    `json:"available"`
	Rates     []domain.GraduationStat `json:"rates"`
}

func (c *Controller) GetGraduationRates(ctx echo.Context) error {
	limit, err := intParam(ctx, "limit", 0, constants.ErrBadLimit)
	if err != nil {
		return err
	}

	year, ok := c.graduationService.TargetYear()
	rates := c.graduationService.Rates()
	if limit > 0 && len(rates) > limit {
		rates = rates[:limit]
	}

	return ctx.JSON(http.StatusOK, graduationRatesResponse{
		Year:      year,
		Available: ok && len(rates) > 0,
		Rates:     rates,
	})
}

type graduationRateResponse struct {
	Area      string  `json:"area"`
	Available bool    `json:"available"`
	RatePct   float64 `json:"rate_pct,omitempty"`
}

// GetGraduationRate answers for any area name; an area without a computable
// rate comes back as not available, never as a 404.
func (c *Controller) GetGraduationRate(ctx echo.Context) error {
	area := ctx.Param("area")

	rate, ok := c.graduationService.RateFor(area)
	return ctx.JSON(http.StatusOK, graduationRateResponse{
		Area:      area,
		Available: ok,
		RatePct:   rate,
	})
}

package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
)

type filtersResponse struct {
	Years     []domain.Year `json:"years"`
	Kinds     []string      `json:"kinds"`
	Providers []string      `json:"providers"`
	Areas     []string      `json:"areas"`
}

// GetFilters feeds the dashboard dropdowns. The wildcard entry is the
// frontend's concern; only concrete values are listed here.
func (c *Controller) GetFilters(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, filtersResponse{
		Years:     c.store.Years(),
		Kinds:     c.store.Kinds(),
		Providers: c.store.Providers(),
		Areas:     c.store.Areas(),
	})
}

package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/constants"
	"github.com/HenrikSjoe/yh-kollen/internal/service/insights"
	"github.com/HenrikSjoe/yh-kollen/internal/service/ranking"
)

type providerInsightsResponse struct {
	Provider   string                `json:"provider"`
	Summary    domain.KPI            `json:"summary"`
	Band       string                `json:"band"`
	Comparison domain.Comparison     `json:"comparison"`
	Rank       domain.RankPosition   `json:"rank"`
	Ranking    []domain.RankingEntry `json:"ranking"`
	Breakdown  domain.Breakdown      `json:"breakdown"`
}

// GetProviderInsights is the whole insight page in one response: the
// provider's own numbers, its standing against the market average, its rank
// among qualifying providers, the leaderboard around it, and the per-area
// breakdown. Scoped by year only; the other filter dimensions do not apply
// to this page.
func (c *Controller) GetProviderInsights(ctx echo.Context) error {
	provider := ctx.Param("provider")
	if provider == "" || provider == domain.FilterAll {
		return constants.ErrMissingProvider
	}

	opts, err := filterOpts(ctx)
	if err != nil {
		return err
	}
	opts.Kind = nil
	opts.Provider = nil
	view := c.statsService.View(opts)

	summary := insights.Summary(view, provider)
	entries := c.rankingService.RankProviders(view, ranking.DefaultMinSample)

	return ctx.JSON(http.StatusOK, providerInsightsResponse{
		Provider:   provider,
		Summary:    summary,
		Band:       domain.Band(summary.ApprovalPct),
		Comparison: insights.CompareToAverage(view, provider),
		Rank:       ranking.Locate(entries, provider),
		Ranking:    ranking.TopWithEntity(entries, provider, ranking.TopK),
		Breakdown:  insights.BreakdownByArea(view, provider),
	})
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"

	"github.com/HenrikSjoe/yh-kollen/internal/domain"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/constants"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/loader"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/logger"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/store"
	"github.com/HenrikSjoe/yh-kollen/internal/service/graduation"
	"github.com/HenrikSjoe/yh-kollen/internal/service/ranking"
	"github.com/HenrikSjoe/yh-kollen/internal/service/stats"
)

// yhreport prints a terminal snapshot of the dashboard numbers, handy for a
// quick look without the frontend running.
func main() {
	initConfig()
	ctx := context.Background()

	apps, enrollment := loader.Load(ctx, loaderConfig())
	st := store.NewStore(apps, enrollment)

	statsService := stats.NewStatsService(st)
	rankingService := ranking.NewRankingService(st)
	graduationService := graduation.NewGraduationService(st)

	view := statsService.View(stats.FilterOpts{})

	color.Cyan("\n=== YH-kollen ===")
	displayKPIs(view)
	displayRanking(rankingService, view)
	displayAreaContrast(rankingService, view)
	displayGraduation(graduationService)
}

func displayKPIs(view []domain.ApplicationRecord) {
	kpi := stats.ComputeKPIs(view)

	color.Yellow("\nAnsökningar, alla år")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Totalt", "Beviljade", "Godkänt %", "Beviljade platser"})
	table.Append([]string{
		fmt.Sprintf("%d", kpi.Total),
		fmt.Sprintf("%d", kpi.Approved),
		fmt.Sprintf("%.1f", kpi.ApprovalPct),
		fmt.Sprintf("%d", kpi.GrantedSeats),
	})
	table.Render()
}

func displayRanking(svc *ranking.Service, view []domain.ApplicationRecord) {
	entries := svc.RankProviders(view, ranking.DefaultMinSample)
	if len(entries) > ranking.TopK {
		entries = entries[:ranking.TopK]
	}

	color.Yellow("\nTop %d anordnare (minst %d ansökningar)", ranking.TopK, ranking.DefaultMinSample)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Anordnare", "Godkänt %", "Ansökningar"})
	for i, e := range entries {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%.1f", e.ApprovalPct),
			fmt.Sprintf("%d", e.Total),
		})
	}
	table.Render()
}

func displayAreaContrast(svc *ranking.Service, view []domain.ApplicationRecord) {
	bottom, top := svc.AreaContrast(view)
	if len(bottom) == 0 && len(top) == 0 {
		return
	}

	color.Yellow("\nUtbildningsområden: svårast och lättast (minst %d ansökningar)", ranking.ContrastMinSample)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Utbildningsområde", "Godkänt %", "Ansökningar"})
	for _, e := range append(bottom, top...) {
		table.Append([]string{e.Name, fmt.Sprintf("%.1f", e.ApprovalPct), fmt.Sprintf("%d", e.Total)})
	}
	table.Render()
}

func displayGraduation(svc *graduation.Service) {
	rates := svc.Rates()
	if len(rates) == 0 {
		color.Red("\nExamensgrad: ingen data tillgänglig")
		return
	}

	year, _ := svc.TargetYear()
	color.Yellow("\nExamensgrad per utbildningsområde, %d", year)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Utbildningsområde", "Aktiva", "Examinerade", "Examensgrad %"})
	for _, g := range rates {
		table.Append([]string{
			g.Area,
			fmt.Sprintf("%d", g.Active),
			fmt.Sprintf("%d", g.Graduated),
			fmt.Sprintf("%.1f", g.RatePct),
		})
	}
	table.Render()
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")
	viper.AddConfigPath(".")

	viper.SetDefault(constants.ViperLogMode, "dev")
	viper.SetDefault(constants.ViperDataDir, "data/raw")
	viper.SetDefault(constants.ViperCourseYears, []int{2022, 2023, 2024})
	viper.SetDefault(constants.ViperProgramYears, []int{2022, 2023, 2024})
	viper.SetDefault(constants.ViperEnrollmentFile, "studerande_utbildningsomrade_overtid.csv")
	viper.SetDefault(constants.ViperFetchEnabled, false)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("YHKOLLEN")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
	_ = logger.Init(viper.GetString(constants.ViperLogMode))
}

func loaderConfig() loader.Config {
	return loader.Config{
		Dir:            viper.GetString(constants.ViperDataDir),
		CourseYears:    viper.GetIntSlice(constants.ViperCourseYears),
		ProgramYears:   viper.GetIntSlice(constants.ViperProgramYears),
		EnrollmentFile: viper.GetString(constants.ViperEnrollmentFile),
		Fetch: loader.FetchConfig{
			Enabled:  viper.GetBool(constants.ViperFetchEnabled),
			IndexURL: viper.GetString(constants.ViperFetchIndexURL),
		},
	}
}

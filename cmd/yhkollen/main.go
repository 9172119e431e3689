package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/HenrikSjoe/yh-kollen/internal/api"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/constants"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/loader"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/logger"
	"github.com/HenrikSjoe/yh-kollen/internal/pkg/store"
)

func main() {
	initConfig()

	ctx := context.Background()
	if err := logger.Init(viper.GetString(constants.ViperLogMode)); err != nil {
		logger.Fatal(ctx, err)
	}
	defer logger.Sync()

	apps, enrollment := loader.Load(ctx, loaderConfig())
	st := store.NewStore(apps, enrollment)

	svc, err := api.NewAPIService(st, viper.GetString(constants.ViperCORSOrigin))
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go func() {
		addr := viper.GetString(constants.ViperListenAddr)
		logger.Infof(ctx, "listening on %s", addr)
		if err := svc.Serve(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %s", err.Error())
	}
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")
	viper.AddConfigPath(".")

	viper.SetDefault(constants.ViperListenAddr, ":8080")
	viper.SetDefault(constants.ViperCORSOrigin, "http://localhost:3000")
	viper.SetDefault(constants.ViperLogMode, "dev")
	viper.SetDefault(constants.ViperDataDir, "data/raw")
	viper.SetDefault(constants.ViperCourseYears, []int{2022, 2023, 2024})
	viper.SetDefault(constants.ViperProgramYears, []int{2022, 2023, 2024})
	viper.SetDefault(constants.ViperEnrollmentFile, "studerande_utbildningsomrade_overtid.csv")
	viper.SetDefault(constants.ViperFetchEnabled, false)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("YHKOLLEN")
	viper.AutomaticEnv()

	// A missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/cache"
	"github.com/NeuraX-HQ/neurax-web-app/config"
	"github.com/NeuraX-HQ/neurax-web-app/db"
	"github.com/NeuraX-HQ/neurax-web-app/handlers"
	"github.com/NeuraX-HQ/neurax-web-app/middleware"
	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/routes"
	"github.com/NeuraX-HQ/neurax-web-app/services"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "nutritrack",
		Short:        "NutriTrack nutrition tracking API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	})
	root.AddCommand(targetsCmd())
	return root
}

func targetsCmd() *cobra.Command {
	var (
		data  models.OnboardingData
		goals []string
	)
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Print TDEE and daily macro targets for a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data.Goals = goals
			tdee, targets, err := services.TargetsFor(data)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"tdee":    tdee,
				"targets": targets,
			})
		},
	}
	f := cmd.Flags()
	f.Float64Var(&data.Weight, "weight", 70, "weight in kg")
	f.Float64Var(&data.Height, "height", 170, "height in cm")
	f.IntVar(&data.Age, "age", 30, "age in years")
	f.StringVar((*string)(&data.Gender), "gender", string(models.GenderMale), "male, female or other")
	f.StringVar((*string)(&data.ActivityLevel), "activity", string(models.ActivityModerate), "sedentary, moderate or active")
	f.StringSliceVar(&goals, "goal", []string{models.GoalEatHealthy}, "goal, repeatable")
	return cmd
}

func serve(ctx context.Context) error {
	cfg := config.Load()

	utils.InitLogger(utils.LogOptions{File: cfg.Log.File, Level: cfg.Log.Level, Stdout: cfg.Log.Stdout})
	defer utils.Logger.Sync()
	utils.InitMetrics()

	utils.Logger.Info("starting_application", zap.String("store_engine", cfg.Store.Engine))

	store, err := db.NewByEngine(ctx, cfg)
	if err != nil {
		utils.Logger.Error("store_open_failed", zap.Error(err))
		return err
	}
	defer store.Close()

	catalog, err := services.NewCatalog(services.SampleFoods())
	if err != nil {
		return err
	}

	auth := services.NewAuthService(store, services.AuthOptions{
		SignInDelay: cfg.SignInDelay,
		GuestDelay:  cfg.GuestDelay,
	})
	stores := services.NewStoreRegistry(catalog, cfg.SeedSampleData, time.Now)
	hub := services.NewChallengeHub()
	reminders := services.NewReminderService(cfg.ReminderWorkers, services.LogNotifier{})

	h := handlers.New(auth, stores, hub, reminders, []byte(cfg.JWT.Secret), cfg.JWT.TTL)

	gin.SetMode(cfg.GinMode)
	router := routes.SetupRouter(cfg, h, rateCounter(ctx, cfg))

	return startServer(cfg.Port, router)
}

// rateCounter shares limits through redis when configured, otherwise per process.
func rateCounter(ctx context.Context, cfg *config.Config) middleware.Counter {
	client, err := cache.InitRedis(ctx, cfg.Redis)
	if err != nil {
		if !errors.Is(err, cache.ErrDisabled) {
			utils.Logger.Warn("rate_limit_redis_unavailable", zap.Error(err))
		}
		return middleware.NewMemoryCounter()
	}
	return cache.NewCounter(client)
}

func startServer(port string, router *gin.Engine) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.Logger.Info("starting_http_server", zap.String("port", port))
	fmt.Printf("NutriTrack API listening on http://localhost:%s (metrics at /metrics)\n", port)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		utils.Logger.Error("http_server_failed", zap.Error(err))
		return err
	case <-quit:
	}

	utils.Logger.Info("shutting_down_server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Error("server_forced_shutdown", zap.Error(err))
		return err
	}

	utils.Logger.Info("server_stopped")
	return nil
}

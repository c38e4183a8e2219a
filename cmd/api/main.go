package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"young-ats/config"
	_ "young-ats/docs" // Important for Swagger
	"young-ats/internal/app"
	v1 "young-ats/internal/delivery/http/v1"
	"young-ats/internal/scheduler"
	"young-ats/pkg/logger"
)

// @title           Young ATS API
// @version         1.0
// @description     Hiring pipeline board for Young Empreendimentos.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Infow("Starting young-ats", "port", cfg.Port, "store", cfg.StoreDriver)

	// run owns every resource so its deferred closes happen before exit.
	if err := run(cfg); err != nil {
		logger.Log.Errorw("young-ats stopped", "error", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Stores
	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer stores.Close()

	// 4. Setup UseCases
	ucs, err := app.NewUsecases(cfg, stores)
	if err != nil {
		return fmt.Errorf("build usecases: %w", err)
	}
	if ucs.Auth == nil {
		return errors.New("SESSION_SECRET is required to serve the API")
	}

	// 5. Attention sweep
	sched := scheduler.New(ucs.Candidate, stores.Events, cfg.AttentionSweepSpec)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      ucs.Auth,
		JobUC:       ucs.Job,
		CandidateUC: ucs.Candidate,
		DashboardUC: ucs.Dashboard,
		ExportUC:    ucs.Export,
		HealthUC:    ucs.Health,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("Server forced to shutdown", "error", err)
	}

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	default:
	}
	logger.Log.Info("Server exiting")
	return nil
}

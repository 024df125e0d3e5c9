package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"turfbook/internal/adapters/http/middleware"
	"turfbook/internal/adapters/http/routes"
	"turfbook/internal/config"
	"turfbook/internal/core/services"
	"turfbook/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and background jobs",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	loc := cfg.Location()
	reconciler := services.NewReconcileService(st.bookings, loc, m)
	liveness := services.NewLivenessService(cfg.Jobs.HealthURL, cfg.Jobs.PingTimeout, m)

	scheduler, err := newScheduler(cfg, loc, reconciler, liveness)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:      "Turfbook API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)

	routes.Setup(app, cfg, &routes.Dependencies{
		Resolver:   services.NewAuthResolver(st.users, st.admins, cfg.JWT.Secret),
		Auth:       services.NewAuthService(st.users, st.admins, cfg),
		Bookings:   services.NewBookingService(st.bookings),
		Reconciler: reconciler,
		DBCheck:    st.ping,
		Gatherer:   reg,
	})

	// Jobs start once the listener is up so the first liveness ping can reach it
	app.Hooks().OnListen(func(fiber.ListenData) error {
		scheduler.Start()
		return nil
	})

	go gracefulShutdown(ctx, app, scheduler)

	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newScheduler registers the reconciliation and liveness jobs
func newScheduler(cfg *config.Config, loc *time.Location, reconciler *services.ReconcileService, liveness *services.LivenessService) (*services.Scheduler, error) {
	scheduler := services.NewScheduler(services.SchedulerConfig{Location: loc})

	if err := scheduler.Register(services.Job{
		Name:     reconciler.Name(),
		Schedule: cfg.Jobs.ReconcileSchedule,
		Run:      reconciler.RunJob,
	}); err != nil {
		return nil, err
	}

	if err := scheduler.Register(services.Job{
		Name:       liveness.Name(),
		Schedule:   cfg.Jobs.LivenessSchedule,
		Timeout:    cfg.Jobs.PingTimeout,
		Run:        liveness.RunJob,
		RunOnStart: true,
	}); err != nil {
		return nil, err
	}

	log.Printf("⏰ Jobs scheduled in %s: reconcile %q, liveness %q -> %s",
		loc, cfg.Jobs.ReconcileSchedule, cfg.Jobs.LivenessSchedule, liveness.URL())
	return scheduler, nil
}

// gracefulShutdown stops the jobs, then the server, once ctx is cancelled
func gracefulShutdown(ctx context.Context, app *fiber.App, scheduler *services.Scheduler) {
	<-ctx.Done()

	log.Println("🛑 Shutting down server...")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := scheduler.Stop(stopCtx); err != nil {
		log.Printf("⚠️ Jobs did not stop cleanly: %v", err)
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"fueltrack-api/database"
	"fueltrack-api/jobs"
	"fueltrack-api/logger"
	"fueltrack-api/metrics"
	"fueltrack-api/repositories"
	"fueltrack-api/routes"
	"fueltrack-api/services"
)

const demoUserID = "demo-user"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the service reminder job",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New("main")

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if cfg.Database.Seed {
		if err := database.SeedData(db, demoUserID); err != nil {
			log.Warnf("failed to seed database: %v", err)
		}
	}

	m, err := metrics.New(nil)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	router := routes.NewRouter(cfg)
	routes.SetupRoutes(router, db, cfg, m, nil)

	if cfg.Reminders.Enabled {
		var mailer services.Mailer
		if cfg.SMTP.Enabled {
			mailer = services.NewEmailService(cfg.SMTP)
		}
		reminders := services.NewReminderService(
			repositories.NewVehicleRepository(db),
			repositories.NewActivityRepository(db),
			repositories.NewAlertRepository(db),
			mailer, m,
			cfg.Reminders.DueSoonDistance,
			cfg.Reminders.Cooldown,
		)
		job := jobs.NewServiceReminderJob(reminders, cfg.Reminders.Interval)
		job.Start(ctx)
		defer job.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting FuelTrack API on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/acgl/services/inventory/api"
	"example.com/acgl/services/inventory/config"
	"example.com/acgl/services/inventory/internal/database"
	"example.com/acgl/services/inventory/internal/repository"
	"example.com/acgl/services/inventory/internal/service"
	"example.com/acgl/services/inventory/internal/session"
	"example.com/acgl/services/inventory/internal/telemetry"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the inventory HTTP server",
	Long:  `Start the HTTP server exposing the inventory REST API.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.WithFields(logrus.Fields{
		"port": cfg.Server.Port,
	}).Info("Starting inventory service")

	// Connect to the database with a bounded retry loop so the service
	// survives a slow-starting database at deploy time.
	var db database.DB
	for attempt := 1; attempt <= 5; attempt++ {
		db, err = database.Connect(cfg.Database)
		if err == nil {
			break
		}
		log.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err,
		}).Warn("Database connection failed, retrying")
		time.Sleep(time.Duration(attempt) * 2 * time.Second)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	sessions, err := session.NewRedisStore(cfg.Redis, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("Failed to connect to session store: %v", err)
	}
	defer sessions.Close()

	nrApp, err := telemetry.InitNewRelic(cfg.NewRelic)
	if err != nil {
		log.WithError(err).Warn("New Relic initialization failed, continuing without telemetry")
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, sessions, log)

	server := api.NewServer(cfg, log, nrApp, svc, sessions)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Error("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited")
}

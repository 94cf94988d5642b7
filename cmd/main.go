package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/api"
	"github.com/RajatSinghRajawat/maanvibackend/internal/auth"
	"github.com/RajatSinghRajawat/maanvibackend/internal/config"
	"github.com/RajatSinghRajawat/maanvibackend/internal/metrics"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/RajatSinghRajawat/maanvibackend/internal/notify"
	"github.com/RajatSinghRajawat/maanvibackend/internal/repository"
	"github.com/RajatSinghRajawat/maanvibackend/internal/server"
	"github.com/RajatSinghRajawat/maanvibackend/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"
)

// Constants for different environment types.
const (
	envLocal   = "local"
	envDev     = "development"
	envProd    = "production"
	stopWindow = 10 * time.Second
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection and bring the schema up to date.
	dtb, err := repository.NewDatabase(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	if err = repository.Migrate(ctx, dtb); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	// Create a new repository instance using the database connection.
	repo := repository.NewRepository(dtb)

	tokens, err := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Fatalf("Failed to configure tokens: %v", err)
	}
	passwords := auth.NewPasswords(bcrypt.DefaultCost)
	inLocation := service.WithLocation(cfg.Location)

	authService := service.NewAuthService(logger, repo, tokens, passwords, appMetrics, inLocation)
	if cfg.Seed.Enabled() {
		seed := models.RegisterInput{Name: cfg.Seed.Name, Email: cfg.Seed.Email, Password: cfg.Seed.Password}
		if _, err = authService.EnsureSeedAdmin(ctx, seed); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	}

	// Enquiry notifications are optional, the API keeps working without them.
	var (
		notifier service.EnquiryNotifier
		telegram *notify.Telegram
	)
	if cfg.Telegram.Enabled() {
		telegram, err = notify.NewTelegram(logger, cfg.Telegram.Token, cfg.Telegram.ChatIDs)
		if err != nil {
			logger.ErrorContext(ctx, "Telegram notifications disabled", "error", err)
		} else {
			notifier = telegram
		}
	}

	services := api.Services{
		Auth:       authService,
		Employees:  service.NewEmployeeService(logger, repo, inLocation),
		Attendance: service.NewAttendanceService(logger, repo, repo, appMetrics, inLocation),
		Enquiries:  service.NewEnquiryService(logger, repo, notifier, appMetrics, inLocation),
	}
	app := api.New(logger, api.Config{
		CORSOrigins:    cfg.CORSOrigins,
		LoginRateLimit: cfg.LoginRateLimit,
		Location:       cfg.Location,
	}, services, appMetrics)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "port", cfg.HTTPPort)

	// Serve the API in a goroutine to allow main to listen for signals.
	go func() {
		if listenErr := app.Listen(net.JoinHostPort("", cfg.HTTPPort)); listenErr != nil {
			logger.ErrorContext(ctx, "API server failed", "error", listenErr)
			stop()
		}
	}()

	// Start the monitoring server
	go server.StartMonitoringServer(ctx, logger, reg, cfg.MonitoringPort, server.DatabaseCheck(dtb))

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopWindow)
	defer cancel()
	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "API server failed to shutdown", "error", err)
	}
	if telegram != nil {
		telegram.Wait()
	}

	// Log graceful shutdown completion.
	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified	 or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

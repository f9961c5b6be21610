package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smileworks/dentaldesk/internal/config"
	"github.com/smileworks/dentaldesk/internal/email"
	activationHandler "github.com/smileworks/dentaldesk/internal/handler/activation"
	appointmentHandler "github.com/smileworks/dentaldesk/internal/handler/appointment"
	exportHandler "github.com/smileworks/dentaldesk/internal/handler/export"
	healthHandler "github.com/smileworks/dentaldesk/internal/handler/health"
	patientHandler "github.com/smileworks/dentaldesk/internal/handler/patient"
	"github.com/smileworks/dentaldesk/internal/repository/docstore"
	"github.com/smileworks/dentaldesk/internal/router"
	activationService "github.com/smileworks/dentaldesk/internal/service/activation"
	appointmentService "github.com/smileworks/dentaldesk/internal/service/appointment"
	exportService "github.com/smileworks/dentaldesk/internal/service/export"
	patientService "github.com/smileworks/dentaldesk/internal/service/patient"
	"github.com/smileworks/dentaldesk/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Document store client
	storeClient := store.New(store.Config{
		BaseURL:   cfg.Store.BaseURL,
		AuthToken: cfg.Store.AuthToken,
		Timeout:   cfg.Store.Timeout,
	}, log.Logger)

	// Repositories
	patientRepo := docstore.NewPatientRepository(storeClient)
	appointmentRepo := docstore.NewAppointmentRepository(storeClient)
	activationRepo := docstore.NewActivationRepository(storeClient)

	// Email sender for activation notifications
	var emailSvc email.Service
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		emailSvc = email.NewNoop()
	}

	// Services
	patientSvc := patientService.NewService(patientRepo, log.Logger)
	appointmentSvc := appointmentService.NewService(appointmentRepo, log.Logger)
	exportSvc := exportService.NewService(patientRepo, log.Logger)
	activationSvc := activationService.NewService(activationRepo, emailSvc, cfg.SMTP.AdminEmail, log.Logger)

	// Handlers
	patientH := patientHandler.NewHandler(patientSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	exportH := exportHandler.NewHandler(exportSvc)
	activationH := activationHandler.NewHandler(activationSvc)
	healthH := healthHandler.NewHandler(storeClient)

	// Router
	r := router.NewRouter(router.Config{
		RequestTimeout:    cfg.Server.RequestTimeout,
		RateLimitEnabled:  cfg.RateLimit.Enabled,
		RateLimitRPS:      cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst:    cfg.RateLimit.Burst,
		ActivationEnabled: cfg.Activation.Enabled,
		PrometheusEnabled: cfg.Monitoring.PrometheusEnabled,
		MetricsPath:       cfg.Monitoring.MetricsPath,
	}, activationSvc, activationH, healthH, patientH, appointmentH, exportH)

	if err := r.Setup(); err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

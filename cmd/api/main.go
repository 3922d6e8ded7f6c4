package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/calltracker/internal/config"
	"github.com/xavierca1/calltracker/internal/infra/http/handlers"
	"github.com/xavierca1/calltracker/internal/infra/integration/webhook"
	"github.com/xavierca1/calltracker/internal/infra/mail"
	"github.com/xavierca1/calltracker/internal/infra/queue"
	"github.com/xavierca1/calltracker/internal/infra/worker"
	"github.com/xavierca1/calltracker/internal/store"
	"github.com/xavierca1/calltracker/internal/usecase"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg)
	log.Logger = logger

	logger.Info().
		Str("port", cfg.Port).
		Str("store", cfg.Store.Driver).
		Str("timezone", cfg.Location.String()).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("starting calltracker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv, closer, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer closer.Close()

	recordStore := store.NewRecordStore(kv, store.WithLocation(cfg.Location))
	client := webhook.NewClient(cfg.WebhookTimeout, logger)

	// Single-call events go through RabbitMQ when configured, otherwise
	// straight to the webhook on a goroutine.
	var publisher usecase.CallPublisher = webhook.NewAsyncPublisher(client)
	var queueState handlers.QueueState
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		defer rabbitMQ.Close()

		publisher = queue.NewProducer(rabbitMQ.Ch)
		queueState = rabbitMQ

		consumer := queue.NewWorker(rabbitMQ.Ch, client, recordStore, logger)
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				logger.Error().Err(err).Msg("call event consumer exited")
			}
		}()
	}

	var mailer usecase.ReportMailer
	if cfg.Mail.Enabled() {
		mailer = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From, cfg.Mail.To)
		logger.Info().Str("to", cfg.Mail.To).Msg("daily summary e-mail enabled")
	}

	submitUC := usecase.NewSubmitCallUseCase(recordStore, publisher, logger)
	reportUC := usecase.NewDailyReportUseCase(recordStore, client, mailer, logger)
	settingsUC := usecase.NewSettingsUseCase(recordStore, client, logger)
	maintenanceUC := usecase.NewMaintenanceUseCase(recordStore, logger)
	statsUC := usecase.NewStatsUseCase(recordStore)

	scheduler := worker.NewDailyReportWorker(recordStore, reportUC, cfg.SchedulerEvery, logger)
	go scheduler.Start(ctx)

	router := newRouter(routeHandlers{
		health:      handlers.NewHealthHandler(recordStore, cfg.Store.Driver, queueState, version),
		calls:       handlers.NewCallHandler(submitUC, statsUC, logger),
		reports:     handlers.NewReportHandler(reportUC, logger),
		settings:    handlers.NewSettingsHandler(settingsUC, logger),
		maintenance: handlers.NewMaintenanceHandler(maintenanceUC, logger),
	}, cfg.AllowedOrigins, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Stops the scheduler and the consumer.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	// Give an in-flight scheduled send the rest of the shutdown window.
	sent := make(chan struct{})
	go func() {
		scheduler.Wait()
		close(sent)
	}()
	select {
	case <-sent:
	case <-shutdownCtx.Done():
		logger.Warn().Msg("scheduled report still running at exit")
	}

	logger.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.Level)

	var out io.Writer = os.Stderr
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Str("service", "calltracker").Logger()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/token-topup/topup-server/internal/api"
	"github.com/token-topup/topup-server/internal/config"
	"github.com/token-topup/topup-server/internal/integration"
	"github.com/token-topup/topup-server/internal/report"
	"github.com/token-topup/topup-server/internal/server"
	"github.com/token-topup/topup-server/internal/sink"
	"github.com/token-topup/topup-server/internal/source"
)

func main() {
	// Command line flags
	var configFile string
	flag.StringVar(&configFile, "config", "config/report-server.yml", "Configuration file path")
	flag.Parse()

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var notifiers []api.Notifier

	// Optional: webhook delivery of completed reports
	if cfg.Report.Webhook.URL != "" {
		log.Info().Str("endpoint", cfg.Report.Webhook.URL).Msg("Webhook forwarding enabled")
		notifiers = append(notifiers, integration.NewWebhookForwarder(cfg.Report.Webhook))
	}

	// Optional: NATS run-completed events
	if cfg.NATS.URL != "" {
		log.Info().Str("url", cfg.NATS.URL).Msg("Connecting to NATS...")

		nc, err := nats.Connect(cfg.NATS.URL,
			nats.Name("topup-report-server"),
			nats.UserInfo(cfg.NATS.Username, cfg.NATS.Password),
			nats.ReconnectWait(cfg.NATS.ReconnectInterval),
			nats.MaxReconnects(cfg.NATS.MaxReconnects),
			nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
				log.Warn().Err(err).Msg("Disconnected from NATS")
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				log.Info().Msg("Reconnected to NATS")
			}),
		)

		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to NATS, continuing without NATS support")
		} else {
			defer nc.Close()
			log.Info().Msg("Connected to NATS")
			notifiers = append(notifiers, server.NewReportPublisher(nc))
		}
	} else {
		log.Info().Msg("NATS not configured, running in standalone mode")
	}

	// Optional: one file-based run at startup when input files are
	// configured. Failures are logged; the server still comes up.
	if cfg.Report.CompaniesFile != "" && cfg.Report.UsersFile != "" {
		runner := report.NewRunner(
			source.NewFileSource(cfg.Report.CompaniesFile),
			source.NewFileSource(cfg.Report.UsersFile),
			sink.NewFileSink(cfg.Report.OutputFile),
		)
		if rep, err := runner.Run(context.Background()); err != nil {
			log.Error().Err(err).Msg("Startup report run failed")
		} else {
			log.Info().
				Int("groups", len(rep.Groups)).
				Str("output", cfg.Report.OutputFile).
				Msg("Startup report written")
		}
	}

	// Start REST API server
	apiServer := api.NewRESTServer(cfg, notifiers...)

	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		if err := apiServer.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
	case err := <-errChan:
		log.Fatal().Err(err).Msg("REST API server failed")
	}

	// Shutdown API server
	if err := apiServer.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown API server gracefully")
	}

	log.Info().Msg("Report server stopped")
}

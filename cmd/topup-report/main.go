package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/token-topup/topup-server/internal/report"
	"github.com/token-topup/topup-server/internal/sink"
	"github.com/token-topup/topup-server/internal/source"
)

func main() {
	// Command line flags
	var companiesFile, usersFile, outputFile, logLevel string
	flag.StringVar(&companiesFile, "companies", "companies.json", "Companies JSON file path")
	flag.StringVar(&usersFile, "users", "users.json", "Users JSON file path")
	flag.StringVar(&outputFile, "output", "output.txt", "Report output file path")
	flag.StringVar(&logLevel, "log-level", "info", "Log level")
	flag.Parse()

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	runner := report.NewRunner(
		source.NewFileSource(companiesFile),
		source.NewFileSource(usersFile),
		sink.NewFileSink(outputFile),
	)

	rep, err := runner.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Report run failed")
	}

	log.Info().
		Int("groups", len(rep.Groups)).
		Int("eligibleUsers", rep.Stats.EligibleUsers).
		Int("rejectedCompanies", rep.Stats.RejectedCompanies).
		Int("rejectedUsers", rep.Stats.RejectedUsers).
		Int("inactiveUsers", rep.Stats.InactiveUsers).
		Int("orphanedUsers", rep.Stats.OrphanedUsers).
		Str("output", outputFile).
		Msg("Report written")
}

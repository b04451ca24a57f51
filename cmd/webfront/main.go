// webfront serves the SMS verification web frontend:
// landing page, login and registration,
// and the dashboard with the activations table.
//
// Without --auth-url the server authenticates against
// its own in-memory mock API under /api.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	_ "modernc.org/sqlite"

	"github.com/verisms/datatable/internal/webapp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := webapp.NewFlagSet("webfront")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flags)
			return nil
		}
		return err
	}
	if help, _ := flags.GetBool("help"); help {
		printHelp(flags)
		return nil
	}
	if args := flags.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	config, err := webapp.LoadConfig(flags)
	if err != nil {
		return err
	}

	var handler slog.Handler
	if config.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := webapp.LoadTable(ctx, config)
	if err != nil {
		return err
	}
	logger.Info("Loaded table",
		slog.String("title", table.Title()),
		slog.Int("rows", table.NumRows()),
		slog.String("data", config.DataFile),
	)

	return webapp.NewServer(config, table, logger).ListenAndServe(ctx)
}

func printHelp(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `webfront serves the SMS verification web frontend.

Values of the YAML --config file are overridden
by explicitly passed flags.

Usage:
  webfront [flags]

Examples:
  # Sample data, mock authentication API, demo login
  webfront --demo

  # CSV data and an external authentication API
  webfront --data activations.csv --auth-url https://api.example.com

  # Rows from a sqlite database
  webfront --db-dsn file:activations.db --db-query "SELECT * FROM activations"

Flags:
`)
	flags.SetOutput(os.Stderr)
	flags.PrintDefaults()
}

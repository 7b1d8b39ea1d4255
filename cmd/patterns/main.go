// Command patterns demonstrates the pattern packages of this module against
// real files, a real SQLite ledger, and a real directory watcher.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/mannaz/singleton"
)

func main() {
	cmd := &cli.Command{
		Name:  "patterns",
		Usage: "Demo runner for the mannaz pattern packages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Sources:     cli.EnvVars(singleton.EnvConfigPath),
			},
		},
		Commands: []*cli.Command{
			reportCommand(),
			payrollCommand(),
			tasksCommand(),
			encryptCommand(),
			ledgerCommand(),
			watchCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setup resolves settings through the singleton and installs the JSON
// logger. Demo output goes to stdout; the logger writes to stderr so the
// two streams stay separable.
func setup(cmd *cli.Command) (*singleton.Settings, *slog.Logger, error) {
	if path := cmd.String("config"); path != "" {
		os.Setenv(singleton.EnvConfigPath, path)
	}

	settings, err := singleton.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: settings.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("settings loaded", slog.String("settings", settings.String()))
	return settings, logger, nil
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/starford/mannaz/observer"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Watch a directory and log file events until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Directory to watch (defaults to the configured vault path)",
			},
		},
		Action: runWatch,
	}
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	settings, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	root := cmd.String("root")
	if root == "" {
		root = settings.Vault.Path
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}

	w, err := observer.NewDirWatcher(root, logger)
	if err != nil {
		return err
	}
	events := w.Subscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer w.Close()
		return w.Watch(gCtx)
	})

	g.Go(func() error {
		for ev := range events {
			logger.Info("file event",
				slog.String("kind", ev.Kind),
				slog.String("path", ev.Path))
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	return g.Wait()
}

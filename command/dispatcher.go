package command

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Dispatcher executes batches of independent commands concurrently.
type Dispatcher struct {
	limit   int
	logger  *slog.Logger
	history *History
}

// NewDispatcher creates a dispatcher running at most limit commands at once
// (limit <= 0 means no limit). Applied commands are pushed onto history when
// it is non-nil.
func NewDispatcher(limit int, logger *slog.Logger, history *History) *Dispatcher {
	return &Dispatcher{limit: limit, logger: logger, history: history}
}

// Run applies all commands, cancelling the batch at the first failure.
// Commands in one batch must not depend on each other; ordering within the
// batch is not guaranteed.
func (d *Dispatcher) Run(ctx context.Context, cmds ...Command) error {
	g, gCtx := errgroup.WithContext(ctx)
	if d.limit > 0 {
		g.SetLimit(d.limit)
	}
	for _, cmd := range cmds {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := cmd.Do(gCtx); err != nil {
				d.logger.Error("command failed",
					slog.String("id", cmd.ID().String()),
					slog.String("name", cmd.Name()),
					slog.String("error", err.Error()))
				return err
			}
			d.logger.Debug("command applied",
				slog.String("id", cmd.ID().String()),
				slog.String("name", cmd.Name()))
			if d.history != nil {
				d.history.Push(cmd)
			}
			return nil
		})
	}
	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/AntonStoeckl/library-loan-engine-go/shell"
	"github.com/AntonStoeckl/library-loan-engine-go/shell/config"
)

// sweeper is the part of the engine the scheduler drives.
type sweeper interface {
	CheckOverdueLoans(ctx context.Context) (int, error)
	CheckDueDates(ctx context.Context) (int, error)
}

var errInvalidSchedule = errors.New("invalid cron schedule")

// newScheduler registers both sweeps. A sweep still running when its next run is due is skipped.
// Jobs run with ctx, so canceling it aborts running sweeps.
func newScheduler(ctx context.Context, cfg config.Config, s sweeper, logger *slog.Logger) (*cron.Cron, error) {
	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	jobs := []struct {
		name     string
		schedule string
		run      func(context.Context) (int, error)
	}{
		{name: "CheckOverdueLoans", schedule: cfg.OverdueSchedule, run: s.CheckOverdueLoans},
		{name: "CheckDueDates", schedule: cfg.DueDateSchedule, run: s.CheckDueDates},
	}

	for _, job := range jobs {
		if _, err := c.AddFunc(job.schedule, func() { runSweep(ctx, logger, job.name, job.run) }); err != nil {
			return nil, errors.Join(errInvalidSchedule, fmt.Errorf("%s %q: %w", job.name, job.schedule, err))
		}
	}

	return c, nil
}

func runSweeps(ctx context.Context, s sweeper, logger *slog.Logger) {
	runSweep(ctx, logger, "CheckOverdueLoans", s.CheckOverdueLoans)
	runSweep(ctx, logger, "CheckDueDates", s.CheckDueDates)
}

func runSweep(ctx context.Context, logger *slog.Logger, name string, run func(context.Context) (int, error)) {
	count, err := run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "scheduled sweep failed",
			shell.LogAttrCommandType, name,
			shell.LogAttrCount, count,
			shell.LogAttrError, err.Error(),
		)

		return
	}

	logger.InfoContext(ctx, "scheduled sweep finished", shell.LogAttrCommandType, name, shell.LogAttrCount, count)
}

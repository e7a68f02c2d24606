package commands

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/pkg/clock"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

type CycleResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Retried   int `json:"retried"`
	Skipped   int `json:"skipped"`
}

type DispatchCommands interface {
	// RunCycle claims due reminders and processes them. Item failures are
	// counted, never returned; only a failed claim aborts the cycle.
	RunCycle(ctx context.Context, batchSize int) (*CycleResult, error)
}

type dispatchCommandsImpl struct {
	uow       shared.UnitOfWork
	processor *Processor
	metrics   shared.DispatchMetrics
	clock     clock.Clock
	logger    *slog.Logger
	cfg       config.DispatchConfig
}

func NewDispatchCommands(
	uow shared.UnitOfWork,
	processor *Processor,
	metrics shared.DispatchMetrics,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.DispatchConfig,
) DispatchCommands {
	return &dispatchCommandsImpl{
		uow:       uow,
		processor: processor,
		metrics:   metrics,
		clock:     clk,
		logger:    logger,
		cfg:       cfg,
	}
}

func (d *dispatchCommandsImpl) RunCycle(ctx context.Context, batchSize int) (*CycleResult, error) {
	started := time.Now()
	limit := d.clampBatch(batchSize)
	now := d.clock.Now()

	var claimed []*reminder.Reminder
	var requeued int
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Reminders().RequeueStale(ctx, now.Add(-d.cfg.SendingLease), now)
		if err != nil {
			return err
		}
		requeued = n
		claimed, err = tx.Reminders().ClaimDue(ctx, now, limit)
		return err
	})
	if err != nil {
		d.logger.Error("dispatch claim failed", "batch_size", limit, "error", err)
		return nil, errs.Mark(err, ErrClaimFailed)
	}
	if requeued > 0 {
		d.logger.Warn("requeued stale sending reminders", "count", requeued)
	}

	policies := newPolicyCache(d.uow.Reads(), d.logger)
	var sent, failed, retried, skipped atomic.Int64

	var g errgroup.Group
	g.SetLimit(max(d.cfg.Concurrency, 1))
	for _, r := range claimed {
		g.Go(func() error {
			out := d.processor.Process(ctx, r, policies.get)
			switch out.Kind() {
			case KindSent:
				sent.Add(1)
			case KindSkipped:
				skipped.Add(1)
			case KindFailed:
				failed.Add(1)
			case KindRetried:
				retried.Add(1)
			}
			d.metrics.CountOutcome(r.Channel().String(), out.Kind())
			return nil
		})
	}
	_ = g.Wait()

	res := &CycleResult{
		Processed: len(claimed),
		Sent:      int(sent.Load()),
		Failed:    int(failed.Load()),
		Retried:   int(retried.Load()),
		Skipped:   int(skipped.Load()),
	}
	d.metrics.ObserveCycle(time.Since(started), len(claimed))
	d.logger.Info("dispatch cycle finished",
		"processed", res.Processed,
		"sent", res.Sent,
		"failed", res.Failed,
		"retried", res.Retried,
		"skipped", res.Skipped,
		"duration", time.Since(started))
	return res, nil
}

func (d *dispatchCommandsImpl) clampBatch(n int) int {
	if n <= 0 {
		n = d.cfg.BatchSize
	}
	if d.cfg.MaxBatchSize > 0 && n > d.cfg.MaxBatchSize {
		n = d.cfg.MaxBatchSize
	}
	return max(n, 1)
}

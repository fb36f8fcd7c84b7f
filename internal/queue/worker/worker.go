package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vndigital/sitehub/internal/domain/job"
	"github.com/vndigital/sitehub/internal/notifications"
	"github.com/vndigital/sitehub/internal/observability"
)

type JobsRepository interface {
	ClaimNext(ctx context.Context, workerID string) (job.Job, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
	Reschedule(ctx context.Context, id string, runAt time.Time, errMsg string) error
}

// StaleRequeuer is optional; the memory repo doesn't need it because
// nothing survives a process restart there anyway.
type StaleRequeuer interface {
	RequeueStaleProcessing(ctx context.Context, lockTTL time.Duration) (int64, error)
}

type Config struct {
	WorkerID     string
	PollInterval time.Duration
	LockTTL      time.Duration
}

type Worker struct {
	cfg      Config
	repo     JobsRepository
	notifier notifications.Notifier
	prom     *observability.Prom
	log      *slog.Logger

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, repo JobsRepository, notifier notifications.Notifier, prom *observability.Prom, log *slog.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 1 * time.Second
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 2 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}

	return &Worker{
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		log:      log,
		prom:     prom,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.setReady(true)
	defer w.setReady(false)

	// reclaim anything a crashed worker left locked
	staleTicker := time.NewTicker(w.cfg.LockTTL)
	defer staleTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker received shutdown signal", "worker_id", w.cfg.WorkerID)
			return nil

		case <-staleTicker.C:
			w.requeueStale(ctx)

		case <-ticker.C:
			// drain the backlog before going back to sleep
			for {
				processed, err := w.ProcessOne(ctx)

				if err != nil {
					w.log.Error("process job failed", "worker_id", w.cfg.WorkerID, "err", err)
					break
				}

				if !processed {
					break
				}
			}
		}
	}
}

func (w *Worker) requeueStale(ctx context.Context) {
	r, ok := w.repo.(StaleRequeuer)

	if !ok {
		return
	}

	n, err := r.RequeueStaleProcessing(ctx, w.cfg.LockTTL)

	if err != nil {
		w.log.Error("requeue stale jobs failed", "err", err)
		return
	}

	if n > 0 {
		w.log.Warn("requeued stale jobs", "count", n)
	}
}

func (w *Worker) setReady(v bool) {
	w.readyMu.Lock()
	w.ready = v
	w.readyMu.Unlock()
}

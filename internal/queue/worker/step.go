package worker

import (
	"context"
	"errors"
	"time"

	"github.com/vndigital/sitehub/internal/domain/job"
	"github.com/vndigital/sitehub/internal/notifications"
)

// ProcessOne claims and processes at most one job. It reports whether a
// job was claimed so the caller can decide to keep draining or sleep.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	claimCtx, cancel := context.WithTimeout(ctx, 2*time.Second)

	j, err := w.repo.ClaimNext(claimCtx, w.cfg.WorkerID)
	cancel()

	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	start := time.Now()

	err = w.execute(ctx, j)

	if err != nil {
		w.observe(j, "failed", start)
		w.handleFailure(ctx, j, err)
		return true, nil
	}

	err = w.repo.MarkDone(ctx, j.ID)

	if err != nil {
		_ = w.repo.MarkFailed(ctx, j.ID, "mark_done_failed: "+err.Error())
		w.observe(j, "error", start)
		return true, err
	}

	w.observe(j, "done", start)
	return true, nil
}

func (w *Worker) execute(ctx context.Context, j job.Job) error {
	decoded, err := job.DecodePayload(j)

	if err != nil {
		return err
	}

	switch p := decoded.(type) {
	case job.ContactReceivedPayload:
		return w.notifier.SendContactReceived(ctx, notifications.SendContactReceivedInput{
			ContactID: p.ContactID,
			Name:      p.Name,
			Email:     p.Email,
			Message:   p.Message,
		})

	default:
		return job.ErrInvalidType
	}
}

// handleFailure either reschedules with backoff or, once the attempt
// budget is spent, marks the job failed for good.
func (w *Worker) handleFailure(ctx context.Context, j job.Job, execErr error) {
	attempts := j.Attempts // ClaimNext already incremented it

	if attempts >= j.MaxAttempts {
		err := w.repo.MarkFailed(ctx, j.ID, execErr.Error())

		if err != nil {
			w.log.Error("mark failed error", "job_id", j.ID, "err", err)
		}

		w.log.Error("job exhausted attempts", "job_id", j.ID, "type", j.Type, "attempts", attempts, "err", execErr)
		return
	}

	runAt := time.Now().UTC().Add(ExponentialBackoff(attempts))

	err := w.repo.Reschedule(ctx, j.ID, runAt, execErr.Error())

	if err != nil {
		w.log.Error("reschedule error", "job_id", j.ID, "err", err)
		return
	}

	w.log.Warn("job rescheduled", "job_id", j.ID, "type", j.Type, "attempts", attempts, "run_at", runAt, "err", execErr)
}

func (w *Worker) observe(j job.Job, result string, start time.Time) {
	if w.prom == nil {
		return
	}

	w.prom.ObserveJob(string(j.Type), result, time.Since(start))
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vndigital/sitehub/internal/domain/job"
)

type JobsRepo struct {
	mu    sync.Mutex
	items map[string]job.Job
}

func NewJobsRepo() *JobsRepo {
	return &JobsRepo{
		items: make(map[string]job.Job),
	}
}

func (r *JobsRepo) Create(_ context.Context, req job.CreateRequest) (job.Job, error) {
	j := job.New(req)

	r.mu.Lock()
	r.items[j.ID] = j
	r.mu.Unlock()

	return j, nil
}

func (r *JobsRepo) ClaimNext(_ context.Context, workerID string) (job.Job, error) {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	var best *job.Job

	for id := range r.items {
		j := r.items[id]

		if j.Status != job.StatusPending || j.RunAt.After(now) {
			continue
		}

		if best == nil || j.RunAt.Before(best.RunAt) {
			copied := j
			best = &copied
		}
	}

	if best == nil {
		return job.Job{}, job.ErrNotFound
	}

	best.Status = job.StatusProcessing
	best.Attempts++
	best.LockedAt = &now
	best.LockedBy = &workerID
	best.UpdatedAt = now
	r.items[best.ID] = *best

	return *best, nil
}

func (r *JobsRepo) MarkDone(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[id]

	if !ok {
		return job.ErrNotFound
	}

	j.Status = job.StatusSucceeded
	j.LockedAt = nil
	j.LockedBy = nil
	j.UpdatedAt = time.Now().UTC()
	r.items[id] = j

	return nil
}

func (r *JobsRepo) MarkFailed(_ context.Context, id string, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[id]

	if !ok {
		return job.ErrNotFound
	}

	j.Status = job.StatusFailed
	j.LockedAt = nil
	j.LockedBy = nil
	j.LastError = &errMsg
	j.UpdatedAt = time.Now().UTC()
	r.items[id] = j

	return nil
}

func (r *JobsRepo) Reschedule(_ context.Context, id string, runAt time.Time, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[id]

	if !ok {
		return job.ErrNotFound
	}

	j.Status = job.StatusPending
	j.RunAt = runAt
	j.LockedAt = nil
	j.LockedBy = nil
	j.LastError = &errMsg
	j.UpdatedAt = time.Now().UTC()
	r.items[id] = j

	return nil
}

// GetByID is used by worker tests to inspect terminal state.
func (r *JobsRepo) GetByID(_ context.Context, id string) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[id]

	if !ok {
		return job.Job{}, job.ErrNotFound
	}

	return j, nil
}

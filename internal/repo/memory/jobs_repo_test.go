package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vndigital/sitehub/internal/domain/job"
)

func mustCreateJob(t *testing.T, repo *JobsRepo, runAt time.Time) job.Job {
	t.Helper()

	j, err := repo.Create(context.Background(), job.CreateRequest{
		Type:    job.TypeContactReceived,
		Payload: []byte(`{"contactId":1}`),
		RunAt:   runAt,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return j
}

func TestJobsRepoClaimNext(t *testing.T) {
	ctx := context.Background()
	repo := NewJobsRepo()

	now := time.Now().UTC()
	older := mustCreateJob(t, repo, now.Add(-2*time.Minute))
	mustCreateJob(t, repo, now.Add(-1*time.Minute))

	claimed, err := repo.ClaimNext(ctx, "worker-1")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}

	// oldest runnable job first
	if claimed.ID != older.ID {
		t.Fatalf("claimed %s, want %s", claimed.ID, older.ID)
	}

	if claimed.Status != job.StatusProcessing {
		t.Fatalf("status = %s, want processing", claimed.Status)
	}
	if claimed.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", claimed.Attempts)
	}
	if claimed.LockedBy == nil || *claimed.LockedBy != "worker-1" {
		t.Fatalf("locked_by = %v", claimed.LockedBy)
	}
}

func TestJobsRepoClaimSkipsFutureJobs(t *testing.T) {
	ctx := context.Background()
	repo := NewJobsRepo()

	mustCreateJob(t, repo, time.Now().UTC().Add(time.Hour))

	_, err := repo.ClaimNext(ctx, "worker-1")
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestJobsRepoClaimDoesNotDoubleClaim(t *testing.T) {
	ctx := context.Background()
	repo := NewJobsRepo()

	mustCreateJob(t, repo, time.Now().UTC().Add(-time.Minute))

	if _, err := repo.ClaimNext(ctx, "worker-1"); err != nil {
		t.Fatalf("first claim: %v", err)
	}

	_, err := repo.ClaimNext(ctx, "worker-2")
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("second claim: got %v, want ErrNotFound", err)
	}
}

func TestJobsRepoMarkDone(t *testing.T) {
	ctx := context.Background()
	repo := NewJobsRepo()

	j := mustCreateJob(t, repo, time.Now().UTC().Add(-time.Minute))

	if _, err := repo.ClaimNext(ctx, "worker-1"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	if err := repo.MarkDone(ctx, j.ID); err != nil {
		t.Fatalf("mark done: %v", err)
	}

	got, err := repo.GetByID(ctx, j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Status != job.StatusSucceeded {
		t.Fatalf("status = %s, want succeeded", got.Status)
	}
	if got.LockedBy != nil || got.LockedAt != nil {
		t.Fatal("lock not released")
	}
}

func TestJobsRepoReschedule(t *testing.T) {
	ctx := context.Background()
	repo := NewJobsRepo()

	j := mustCreateJob(t, repo, time.Now().UTC().Add(-time.Minute))

	if _, err := repo.ClaimNext(ctx, "worker-1"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	future := time.Now().UTC().Add(time.Minute)

	if err := repo.Reschedule(ctx, j.ID, future, "smtp timeout"); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	got, err := repo.GetByID(ctx, j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Status != job.StatusPending {
		t.Fatalf("status = %s, want pending", got.Status)
	}
	if got.LastError == nil || *got.LastError != "smtp timeout" {
		t.Fatalf("last_error = %v", got.LastError)
	}

	// not runnable until its run_at passes
	_, err = repo.ClaimNext(ctx, "worker-1")
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("claim rescheduled: got %v, want ErrNotFound", err)
	}
}

func TestJobsRepoMarkFailed(t *testing.T) {
	ctx := context.Background()
	repo := NewJobsRepo()

	j := mustCreateJob(t, repo, time.Now().UTC().Add(-time.Minute))

	if err := repo.MarkFailed(ctx, j.ID, "gave up"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	got, err := repo.GetByID(ctx, j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Status != job.StatusFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
}

package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vndigital/sitehub/internal/domain/job"
	"github.com/vndigital/sitehub/internal/notifications"
	"github.com/vndigital/sitehub/internal/repo/memory"
)

type fakeNotifier struct {
	calls []notifications.SendContactReceivedInput
	err   error
}

func (f *fakeNotifier) SendContactReceived(ctx context.Context, in notifications.SendContactReceivedInput) error {
	f.calls = append(f.calls, in)
	return f.err
}

func enqueueContactJob(t *testing.T, repo *memory.JobsRepo) job.Job {
	t.Helper()

	payload, err := job.EncodePayload(job.TypeContactReceived, job.ContactReceivedPayload{
		ContactID: 7,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Message:   "I would like a quote.",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	j, err := repo.Create(context.Background(), job.CreateRequest{
		Type:    job.TypeContactReceived,
		Payload: payload,
		RunAt:   time.Now().UTC().Add(-time.Second),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return j
}

func newTestWorker(repo *memory.JobsRepo, n notifications.Notifier) *Worker {
	return New(Config{WorkerID: "test-worker"}, repo, n, nil, nil)
}

func TestProcessOneSuccess(t *testing.T) {
	repo := memory.NewJobsRepo()
	notifier := &fakeNotifier{}
	w := newTestWorker(repo, notifier)

	j := enqueueContactJob(t, repo)

	processed, err := w.ProcessOne(context.Background())
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !processed {
		t.Fatal("no job processed")
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(notifier.calls))
	}
	if notifier.calls[0].ContactID != 7 || notifier.calls[0].Email != "jane@example.com" {
		t.Fatalf("unexpected notification input: %+v", notifier.calls[0])
	}

	got, err := repo.GetByID(context.Background(), j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != job.StatusSucceeded {
		t.Fatalf("status = %s, want succeeded", got.Status)
	}
}

func TestProcessOneEmptyQueue(t *testing.T) {
	w := newTestWorker(memory.NewJobsRepo(), &fakeNotifier{})

	processed, err := w.ProcessOne(context.Background())
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if processed {
		t.Fatal("reported a processed job on an empty queue")
	}
}

func TestProcessOneFailureReschedules(t *testing.T) {
	repo := memory.NewJobsRepo()
	notifier := &fakeNotifier{err: errors.New("smtp timeout")}
	w := newTestWorker(repo, notifier)

	j := enqueueContactJob(t, repo)

	processed, err := w.ProcessOne(context.Background())
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !processed {
		t.Fatal("no job processed")
	}

	got, err := repo.GetByID(context.Background(), j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Status != job.StatusPending {
		t.Fatalf("status = %s, want pending (rescheduled)", got.Status)
	}
	if got.LastError == nil || *got.LastError != "smtp timeout" {
		t.Fatalf("last_error = %v", got.LastError)
	}
	if !got.RunAt.After(time.Now().UTC()) {
		t.Fatalf("run_at %s not pushed into the future", got.RunAt)
	}
}

func TestProcessOneExhaustedAttemptsMarksFailed(t *testing.T) {
	repo := memory.NewJobsRepo()
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	w := newTestWorker(repo, notifier)

	j := enqueueContactJob(t, repo)

	// drive the job through its whole attempt budget
	for attempt := 0; attempt < j.MaxAttempts; attempt++ {
		if err := repo.Reschedule(context.Background(), j.ID, time.Now().UTC().Add(-time.Second), "retry"); err != nil {
			t.Fatalf("reschedule: %v", err)
		}

		processed, err := w.ProcessOne(context.Background())
		if err != nil {
			t.Fatalf("attempt %d: %v", attempt, err)
		}
		if !processed {
			t.Fatalf("attempt %d: nothing processed", attempt)
		}
	}

	got, err := repo.GetByID(context.Background(), j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Status != job.StatusFailed {
		t.Fatalf("status = %s, want failed after %d attempts", got.Status, j.MaxAttempts)
	}
}

func TestProcessOneBadPayloadFails(t *testing.T) {
	repo := memory.NewJobsRepo()
	w := newTestWorker(repo, &fakeNotifier{})

	_, err := repo.Create(context.Background(), job.CreateRequest{
		Type:    job.TypeContactReceived,
		Payload: []byte(`{broken`),
		RunAt:   time.Now().UTC().Add(-time.Second),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	processed, err := w.ProcessOne(context.Background())
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !processed {
		t.Fatal("no job processed")
	}
}

func TestExponentialBackoffGrowsAndCaps(t *testing.T) {
	prev := time.Duration(0)
	for attempt := 0; attempt < 5; attempt++ {
		d := ExponentialBackoff(attempt)
		if d < prev {
			t.Fatalf("backoff shrank at attempt %d: %s < %s", attempt, d, prev)
		}
		prev = d
	}

	if d := ExponentialBackoff(30); d > 5*time.Minute+time.Second {
		t.Fatalf("backoff %s exceeds cap", d)
	}
}

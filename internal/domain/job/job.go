package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// a Job is a unit of asynchronous work persisted in the jobs table.
type Job struct {
	ID          string     `json:"id"`
	Type        Type       `json:"type"`
	Payload     []byte     `json:"payload"` // raw json
	Status      Status     `json:"status"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"maxAttempts"`
	RunAt       time.Time  `json:"runAt"`
	LockedAt    *time.Time `json:"lockedAt,omitempty"`
	LockedBy    *string    `json:"lockedBy,omitempty"`
	LastError   *string    `json:"lastError,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateRequest struct {
	Type    Type
	Payload []byte
	RunAt   time.Time
}

var (
	ErrNotFound           = errors.New("job not found")
	ErrInvalidType        = errors.New("invalid job type")
	ErrInvalidPayload     = errors.New("invalid job payload")
	ErrPayloadTypeMismatch = errors.New("payload type mismatch for job type")
)

func New(req CreateRequest) Job {
	now := time.Now().UTC()

	runAt := req.RunAt
	if runAt.IsZero() {
		runAt = now
	}

	return Job{
		ID:          uuid.NewString(),
		Type:        req.Type,
		Payload:     req.Payload,
		Status:      StatusPending,
		Attempts:    0,
		MaxAttempts: 5,
		RunAt:       runAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

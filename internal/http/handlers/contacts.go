package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vndigital/sitehub/internal/config"
	"github.com/vndigital/sitehub/internal/domain/contact"
	"github.com/vndigital/sitehub/internal/domain/job"
)

type ContactStore interface {
	Create(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error)
	List(ctx context.Context) ([]contact.Contact, error)
	GetByID(ctx context.Context, id int) (contact.Contact, error)
}

type JobEnqueuer interface {
	Create(ctx context.Context, req job.CreateRequest) (job.Job, error)
}

type ContactsHandler struct {
	repo ContactStore
	jobs JobEnqueuer
}

func NewContactsHandler(repo ContactStore, jobs JobEnqueuer) *ContactsHandler {
	return &ContactsHandler{repo: repo, jobs: jobs}
}

// CreateContact handles the public contact form. The submission itself
// returns 200 once stored; the operator notification runs async.
func (h *ContactsHandler) CreateContact(ctx *gin.Context) {
	var req contact.CreateContactRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not save contact")
		return
	}

	h.enqueueNotification(ctx, c)

	ctx.JSON(http.StatusOK, c)
}

// enqueueNotification never fails the request; the submission is
// already durable.
func (h *ContactsHandler) enqueueNotification(ctx *gin.Context, c contact.Contact) {
	if h.jobs == nil {
		return
	}

	payload, err := job.EncodePayload(job.TypeContactReceived, job.ContactReceivedPayload{
		ContactID:  c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Message:    c.Message,
		ReceivedAt: time.Now().UTC(),
		RequestID:  requestIDFrom(ctx),
	})

	if err != nil {
		slog.Default().ErrorContext(ctx.Request.Context(), "encode contact job payload failed", "err", err)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err = h.jobs.Create(cctx, job.CreateRequest{
		Type:    job.TypeContactReceived,
		Payload: payload,
	})

	if err != nil {
		slog.Default().ErrorContext(ctx.Request.Context(), "enqueue contact notification failed", "contact_id", c.ID, "err", err)
	}
}

func (h *ContactsHandler) ListContacts(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	contacts, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list contacts")
		return
	}

	ctx.JSON(http.StatusOK, contacts)
}

func (h *ContactsHandler) GetContactByID(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		RespondNotFound(ctx, "Contact not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			RespondNotFound(ctx, "Contact not found")
			return
		}

		RespondInternal(ctx, "Could not fetch contact")
		return
	}

	ctx.JSON(http.StatusOK, c)
}

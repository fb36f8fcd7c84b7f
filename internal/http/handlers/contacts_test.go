package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vndigital/sitehub/internal/domain/contact"
	"github.com/vndigital/sitehub/internal/domain/job"
	"github.com/vndigital/sitehub/internal/http/handlers"
)

type fakeContactsRepo struct {
	createFn func(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error)
	listFn   func(ctx context.Context) ([]contact.Contact, error)
	getFn    func(ctx context.Context, id int) (contact.Contact, error)
}

func (f *fakeContactsRepo) Create(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return contact.Contact{}, nil
}

func (f *fakeContactsRepo) List(ctx context.Context) ([]contact.Contact, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []contact.Contact{}, nil
}

func (f *fakeContactsRepo) GetByID(ctx context.Context, id int) (contact.Contact, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return contact.Contact{}, nil
}

type fakeJobsRepo struct {
	created []job.CreateRequest
	err     error
}

func (f *fakeJobsRepo) Create(ctx context.Context, req job.CreateRequest) (job.Job, error) {
	if f.err != nil {
		return job.Job{}, f.err
	}
	f.created = append(f.created, req)
	return job.New(req), nil
}

func TestCreateContactHandler(t *testing.T) {
	validBody := `{"name": "Jane Doe", "email": "jane@example.com", "message": "I would like a quote for a new site."}`

	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeContactsRepo)
		wantStatusCode int
		wantInBody     string
	}{
		{
			// submissions return 200, not 201
			name: "success_returns_ok",
			body: validBody,
			repoSetUp: func(f *fakeContactsRepo) {
				f.createFn = func(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error) {
					return contact.Contact{ID: 1, Name: req.Name, Email: req.Email, Message: req.Message}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "short_message",
			body:           `{"name": "Jane", "email": "jane@example.com", "message": "hi"}`,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "message must be at least 10 characters",
		},
		{
			name:           "bad_email",
			body:           `{"name": "Jane", "email": "not-an-email", "message": "long enough message"}`,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "email must be a valid email address",
		},
		{
			name:           "missing_name",
			body:           `{"email": "jane@example.com", "message": "long enough message"}`,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "name is required",
		},
		{
			name: "repo_error",
			body: validBody,
			repoSetUp: func(f *fakeContactsRepo) {
				f.createFn = func(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error) {
					return contact.Contact{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeContactsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewContactsHandler(repo, &fakeJobsRepo{})
			r := setupRouter(http.MethodPost, "/api/contact", h.CreateContact)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantInBody != "" && !strings.Contains(w.Body.String(), tt.wantInBody) {
				t.Fatalf("body %q does not contain %q", w.Body.String(), tt.wantInBody)
			}
		})
	}
}

func TestCreateContactEnqueuesNotification(t *testing.T) {
	repo := &fakeContactsRepo{
		createFn: func(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error) {
			return contact.Contact{ID: 7, Name: req.Name, Email: req.Email, Message: req.Message}, nil
		},
	}
	jobs := &fakeJobsRepo{}

	h := handlers.NewContactsHandler(repo, jobs)
	r := setupRouter(http.MethodPost, "/api/contact", h.CreateContact)

	body := `{"name": "Jane Doe", "email": "jane@example.com", "message": "I would like a quote."}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	if len(jobs.created) != 1 {
		t.Fatalf("got %d enqueued jobs, want 1", len(jobs.created))
	}

	got := jobs.created[0]
	if got.Type != job.TypeContactReceived {
		t.Fatalf("got job type %q, want %q", got.Type, job.TypeContactReceived)
	}

	var p job.ContactReceivedPayload
	if err := json.Unmarshal(got.Payload, &p); err != nil {
		t.Fatalf("payload decode: %v", err)
	}

	if p.ContactID != 7 || p.Email != "jane@example.com" {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestCreateContactSurvivesEnqueueFailure(t *testing.T) {
	repo := &fakeContactsRepo{
		createFn: func(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error) {
			return contact.Contact{ID: 8, Name: req.Name, Email: req.Email, Message: req.Message}, nil
		},
	}
	jobs := &fakeJobsRepo{err: errors.New("queue down")}

	h := handlers.NewContactsHandler(repo, jobs)
	r := setupRouter(http.MethodPost, "/api/contact", h.CreateContact)

	body := `{"name": "Jane Doe", "email": "jane@example.com", "message": "I would like a quote."}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// the submission is already durable; enqueue failure must not leak
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}
}

func TestListContactsHandler(t *testing.T) {
	repo := &fakeContactsRepo{
		listFn: func(ctx context.Context) ([]contact.Contact, error) {
			return []contact.Contact{
				{ID: 1, Name: "Jane", Email: "jane@example.com", Message: "first message here"},
				{ID: 2, Name: "John", Email: "john@example.com", Message: "second message here"},
			}, nil
		},
	}

	h := handlers.NewContactsHandler(repo, nil)
	r := setupRouter(http.MethodGet, "/api/contacts", h.ListContacts)

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var got []contact.Contact
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a plain array: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d contacts, want 2", len(got))
	}
}

func TestGetContactByIDHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		repoSetUp      func(*fakeContactsRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			url:  "/api/contacts/1",
			repoSetUp: func(f *fakeContactsRepo) {
				f.getFn = func(ctx context.Context, id int) (contact.Contact, error) {
					return contact.Contact{ID: id, Name: "Jane"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not_found",
			url:  "/api/contacts/999",
			repoSetUp: func(f *fakeContactsRepo) {
				f.getFn = func(ctx context.Context, id int) (contact.Contact, error) {
					return contact.Contact{}, contact.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "non_numeric_id",
			url:            "/api/contacts/abc",
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeContactsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewContactsHandler(repo, nil)
			r := setupRouter(http.MethodGet, "/api/contacts/:id", h.GetContactByID)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vndigital/sitehub/internal/domain/contact"
)

type ContactsRepo struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]contact.Contact
}

func NewContactsRepo() *ContactsRepo {
	return &ContactsRepo{
		nextID: 1,
		items:  make(map[int]contact.Contact),
	}
}

func (r *ContactsRepo) Create(_ context.Context, req contact.CreateContactRequest) (contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := contact.Contact{
		ID:      r.nextID,
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	r.nextID++
	r.items[c.ID] = c

	return c, nil
}

func (r *ContactsRepo) List(_ context.Context) ([]contact.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contact.Contact, 0, len(r.items))

	for _, c := range r.items {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *ContactsRepo) GetByID(_ context.Context, id int) (contact.Contact, error) {
	r.mu.RLock()
	c, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return contact.Contact{}, contact.ErrNotFound
	}

	return c, nil
}

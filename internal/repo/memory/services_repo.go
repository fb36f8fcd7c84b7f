package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vndigital/sitehub/internal/domain/service"
)

// Each kind keeps its own id sequence; the old shared counter coupled
// unrelated entities for no reason.
type ServicesRepo struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]service.Service
}

func NewServicesRepo() *ServicesRepo {
	return &ServicesRepo{
		nextID: 1,
		items:  make(map[int]service.Service),
	}
}

func (r *ServicesRepo) Create(_ context.Context, req service.CreateServiceRequest) (service.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := service.Service{
		ID:          r.nextID,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	}
	r.nextID++
	r.items[s.ID] = s

	return s, nil
}

func (r *ServicesRepo) List(_ context.Context) ([]service.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]service.Service, 0, len(r.items))

	for _, s := range r.items {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *ServicesRepo) GetByID(_ context.Context, id int) (service.Service, error) {
	r.mu.RLock()
	s, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return service.Service{}, service.ErrNotFound
	}

	return s, nil
}

func (r *ServicesRepo) Update(_ context.Context, id int, req service.UpdateServiceRequest) (service.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return service.Service{}, service.ErrNotFound
	}

	s := service.Service{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	}
	r.items[id] = s

	return s, nil
}

func (r *ServicesRepo) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}

	delete(r.items, id)

	return true, nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vndigital/sitehub/internal/domain/team"
)

type TeamRepo struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]team.Member
}

func NewTeamRepo() *TeamRepo {
	return &TeamRepo{
		nextID: 1,
		items:  make(map[int]team.Member),
	}
}

func (r *TeamRepo) Create(_ context.Context, req team.CreateMemberRequest) (team.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := team.Member{
		ID:    r.nextID,
		Name:  req.Name,
		Role:  req.Role,
		Image: req.Image,
	}
	r.nextID++
	r.items[m.ID] = m

	return m, nil
}

func (r *TeamRepo) List(_ context.Context) ([]team.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Member, 0, len(r.items))

	for _, m := range r.items {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepo) GetByID(_ context.Context, id int) (team.Member, error) {
	r.mu.RLock()
	m, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return team.Member{}, team.ErrNotFound
	}

	return m, nil
}

func (r *TeamRepo) Update(_ context.Context, id int, req team.UpdateMemberRequest) (team.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return team.Member{}, team.ErrNotFound
	}

	m := team.Member{
		ID:    id,
		Name:  req.Name,
		Role:  req.Role,
		Image: req.Image,
	}
	r.items[id] = m

	return m, nil
}

func (r *TeamRepo) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}

	delete(r.items, id)

	return true, nil
}

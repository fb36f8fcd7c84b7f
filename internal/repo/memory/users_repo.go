package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/vndigital/sitehub/internal/domain/user"
)

var ErrEmailAlreadyUsed = errors.New("email already in use")

type UsersRepo struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		nextID: 1,
		items:  make(map[int]user.User),
	}
}

func (r *UsersRepo) Create(_ context.Context, req user.CreateUserRequest) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == req.Email {
			return user.User{}, ErrEmailAlreadyUsed
		}
	}

	isAdmin := req.IsAdmin
	if isAdmin == "" {
		isAdmin = user.AdminFlagFalse
	}

	u := user.User{
		ID:           r.nextID,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		IsAdmin:      isAdmin,
	}
	r.nextID++
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByID(_ context.Context, id int) (user.User, error) {
	r.mu.RLock()
	u, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

// Delete exists for stale-session tests; the API surface never removes users.
func (r *UsersRepo) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}

	delete(r.items, id)

	return true, nil
}

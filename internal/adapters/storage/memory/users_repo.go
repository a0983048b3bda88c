package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"child-wellbeing-log/internal/domain/users"
)

type userRepo struct {
	store *Store
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if u.ID == "" {
		return errors.New("user id required")
	}
	if _, exists := r.store.users[u.ID]; exists {
		return errors.New("user already exists")
	}
	// Respaldo de la constraint UNIQUE(email) del schema.
	for _, other := range r.store.users {
		if strings.EqualFold(other.Email, u.Email) {
			return errors.New("email already exists")
		}
	}

	r.store.users[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return users.User{}, ErrNotFound
}

func (r *userRepo) SetRole(ctx context.Context, userID string, role users.Role, childID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	u.ChildID = childID
	r.store.users[userID] = u
	return nil
}

func (r *userRepo) ListWithChildName(ctx context.Context) ([]users.UserWithChild, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]users.UserWithChild, 0, len(r.store.users))
	for _, u := range r.store.users {
		item := users.UserWithChild{User: u}
		if u.ChildID != "" {
			if c, ok := r.store.children[u.ChildID]; ok {
				item.ChildName = c.Name
			}
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

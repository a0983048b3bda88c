package memory

import (
	"context"
	"errors"
	"sort"

	"child-wellbeing-log/internal/domain/access"
)

type grantRepo struct {
	store *Store
}

// Upsert imita el INSERT ... ON CONFLICT (user_id, child_id) DO UPDATE del
// adapter de Postgres: si la fila existe conserva ID y CreatedAt y
// sobrescribe flags, GrantedBy y UpdatedAt.
func (r *grantRepo) Upsert(ctx context.Context, g access.Grant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if g.ID == "" || g.UserID == "" || g.ChildID == "" {
		return errors.New("grant requires id, user and child")
	}

	key := grantKey(g.UserID, g.ChildID)
	if prev, exists := r.store.grants[key]; exists {
		g.ID = prev.ID
		g.CreatedAt = prev.CreatedAt
	}
	r.store.grants[key] = g
	return nil
}

func (r *grantRepo) Get(ctx context.Context, userID, childID string) (access.Grant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	g, ok := r.store.grants[grantKey(userID, childID)]
	if !ok {
		return access.Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *grantRepo) ListByChild(ctx context.Context, childID string) ([]access.Grant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]access.Grant, 0)
	for _, g := range r.store.grants {
		if g.ChildID == childID {
			out = append(out, g)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

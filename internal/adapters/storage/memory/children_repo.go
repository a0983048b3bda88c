package memory

import (
	"context"
	"sort"

	"child-wellbeing-log/internal/domain/access"
	"child-wellbeing-log/internal/domain/children"
	"child-wellbeing-log/internal/domain/users"
)

type childRepo struct {
	store *Store
}

// Register aplica las tres escrituras bajo un solo lock para que el alta sea
// todo-o-nada, igual que la transaccion del adapter de Postgres.
func (r *childRepo) Register(ctx context.Context, c children.Child, g access.Grant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	creator, ok := r.store.users[c.CreatedBy]
	if !ok {
		return ErrNotFound
	}

	creator.Role = users.RoleAdmin
	creator.ChildID = c.ID
	creator.UpdatedAt = c.CreatedAt
	r.store.users[creator.ID] = creator

	r.store.children[c.ID] = c
	r.store.grants[grantKey(g.UserID, g.ChildID)] = g
	return nil
}

func (r *childRepo) GetByID(ctx context.Context, id string) (children.Child, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.children[id]
	if !ok {
		return children.Child{}, ErrNotFound
	}
	return c, nil
}

func (r *childRepo) ListActive(ctx context.Context) ([]children.ChildWithCreator, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]children.ChildWithCreator, 0)
	for _, c := range r.store.children {
		if !c.IsActive {
			continue
		}
		cw := children.ChildWithCreator{Child: c}
		if u, ok := r.store.users[c.CreatedBy]; ok {
			cw.CreatedByName = u.Name
		}
		out = append(out, cw)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

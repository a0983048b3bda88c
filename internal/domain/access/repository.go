package access

import "context"

type Repository interface {
	// Upsert inserta o reemplaza el grant de (UserID, ChildID).
	// El reemplazo es total: los tres flags y GrantedBy quedan con los valores
	// nuevos. La constraint UNIQUE(user_id, child_id) del store serializa
	// upserts concurrentes (gana el último commit).
	Upsert(ctx context.Context, g Grant) error

	Get(ctx context.Context, userID, childID string) (Grant, error)
	ListByChild(ctx context.Context, childID string) ([]Grant, error)
}

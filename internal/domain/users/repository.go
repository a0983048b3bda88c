package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// SetRole cambia rol y scope de child de un usuario.
	// childID vacío limpia el scope (parent/teacher no administran ningún child).
	SetRole(ctx context.Context, userID string, role Role, childID string) error

	// ListWithChildName devuelve todos los usuarios con el nombre de su child
	// asociado (si tienen), ordenados del más reciente al más antiguo.
	ListWithChildName(ctx context.Context) ([]UserWithChild, error)
}

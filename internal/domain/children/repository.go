package children

import (
	"context"

	"child-wellbeing-log/internal/domain/access"
)

type Repository interface {
	// Register persiste el child y el bootstrap de su primer admin como una
	// unidad atómica: fila del child + rol admin (scope = child) para
	// c.CreatedBy + el grant de acceso total g. Todo o nada: un fallo parcial
	// no puede dejar un child sin admin.
	Register(ctx context.Context, c Child, g access.Grant) error

	GetByID(ctx context.Context, id string) (Child, error)

	// ListActive devuelve los children activos con el nombre de su creador,
	// del más reciente al más antiguo.
	ListActive(ctx context.Context) ([]ChildWithCreator, error)
}

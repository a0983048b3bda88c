package access

import "time"

// Permissions es la decisión de acceso de un usuario sobre un child.
// Es el resultado de Resolve y también la carga de un Grant explícito.
type Permissions struct {
	CanRead          bool
	CanWrite         bool
	CanReadSensitive bool
}

// FullAccess es el triple completo (lectura, escritura y datos sensibles).
func FullAccess() Permissions {
	return Permissions{CanRead: true, CanWrite: true, CanReadSensitive: true}
}

// Grant es una fila explícita de permisos (user, child), distinta del acceso
// derivado del rol. Única por (UserID, ChildID): otorgar de nuevo sobrescribe
// los tres flags, nunca acumula.
type Grant struct {
	ID      string
	UserID  string
	ChildID string

	Permissions

	GrantedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

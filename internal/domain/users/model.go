package users

import "time"

// Role define los roles soportados del sistema.
// @Enum super_admin, admin, parent, teacher
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleParent     Role = "parent"
	RoleTeacher    Role = "teacher"
)

// SignupRoles son los roles que un usuario puede elegir al registrarse.
// admin y super_admin nunca se asignan por signup; solo vía promote o
// al registrar un child.
var SignupRoles = []Role{RoleParent, RoleTeacher}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleParent, RoleTeacher:
		return true
	}
	return false
}

// User representa una cuenta del sistema.
type User struct {
	ID    string
	Name  string
	Email string

	Role Role
	// ChildID es el child que este usuario administra.
	// Solo tiene sentido cuando Role == admin; un admin administra
	// exactamente un child a la vez.
	ChildID string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdminFor indica si el usuario es el admin "de casa" del child indicado.
// La regla admin-de-un-solo-child vive aquí para no repetir la comparación
// de rol + scope en cada caller.
func (u User) AdminFor(childID string) bool {
	return u.Role == RoleAdmin && u.ChildID != "" && u.ChildID == childID
}

// UserWithChild es un usuario junto al nombre de su child asociado
// (para el listado de roles del panel de administración).
type UserWithChild struct {
	User
	ChildName string
}

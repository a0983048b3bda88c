package access

import (
	"context"
	"errors"
	"strings"
	"time"

	"child-wellbeing-log/internal/domain/users"
	"child-wellbeing-log/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden se devuelve ante cualquier regla de autorización fallida.
	// No distinguimos "el target no existe" para callers sin autoridad:
	// el mensaje sería un canal de información.
	ErrForbidden     = errors.New("insufficient permission")
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("access store not configured")
)

// Service es el motor de roles y grants: decide quién puede otorgar acceso,
// promover admins y qué puede leer/escribir cada usuario sobre cada child.
type Service struct {
	grants Repository
	users  users.Repository
	now    func() time.Time
}

func NewService(grants Repository, userRepo users.Repository) *Service {
	return &Service{
		grants: grants,
		users:  userRepo,
		now:    time.Now,
	}
}

// canAdminister es la única regla de autoridad sobre un child:
// super_admin siempre; admin solo sobre su propio child.
func canAdminister(granter users.User, childID string) bool {
	if !granter.IsActive {
		return false
	}
	if granter.Role == users.RoleSuperAdmin {
		return true
	}
	return granter.AdminFor(childID)
}

// Grant otorga (o reemplaza por completo) los permisos de targetUserID sobre
// childID. Los flags no pedidos quedan en false: el upsert sobrescribe,
// nunca mezcla con el grant anterior.
func (s *Service) Grant(ctx context.Context, granterID, targetUserID, childID string, perms Permissions) error {
	if s.grants == nil || s.users == nil {
		return ErrNotConfigured
	}

	granterID = strings.TrimSpace(granterID)
	targetUserID = strings.TrimSpace(targetUserID)
	childID = strings.TrimSpace(childID)
	if granterID == "" || targetUserID == "" || childID == "" {
		return ErrInvalidInput
	}

	granter, err := s.users.GetByID(ctx, granterID)
	if err != nil || !canAdminister(granter, childID) {
		metrics.AccessDecisions.WithLabelValues("grant", "denied").Inc()
		return ErrForbidden
	}

	now := s.now()
	g := Grant{
		ID:          uuid.NewString(),
		UserID:      targetUserID,
		ChildID:     childID,
		Permissions: perms,
		GrantedBy:   granterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.grants.Upsert(ctx, g); err != nil {
		metrics.AccessDecisions.WithLabelValues("grant", "error").Inc()
		return err
	}
	metrics.AccessDecisions.WithLabelValues("grant", "allowed").Inc()
	return nil
}

// Promote convierte a targetUserID en admin de childID y le otorga acceso
// total. Reemplaza su rol y scope anteriores: si ya administraba otro child,
// queda reasignado sin aviso (comportamiento heredado; ver service_test).
func (s *Service) Promote(ctx context.Context, granterID, targetUserID, childID string) error {
	if s.grants == nil || s.users == nil {
		return ErrNotConfigured
	}

	granterID = strings.TrimSpace(granterID)
	targetUserID = strings.TrimSpace(targetUserID)
	childID = strings.TrimSpace(childID)
	if granterID == "" || targetUserID == "" || childID == "" {
		return ErrInvalidInput
	}

	granter, err := s.users.GetByID(ctx, granterID)
	if err != nil || !canAdminister(granter, childID) {
		metrics.AccessDecisions.WithLabelValues("promote", "denied").Inc()
		return ErrForbidden
	}

	// El granter ya demostró autoridad: aquí sí podemos reportar que el
	// target no existe.
	if err := s.users.SetRole(ctx, targetUserID, users.RoleAdmin, childID); err != nil {
		metrics.AccessDecisions.WithLabelValues("promote", "error").Inc()
		return ErrNotFound
	}

	now := s.now()
	g := Grant{
		ID:          uuid.NewString(),
		UserID:      targetUserID,
		ChildID:     childID,
		Permissions: FullAccess(),
		GrantedBy:   granterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.grants.Upsert(ctx, g); err != nil {
		metrics.AccessDecisions.WithLabelValues("promote", "error").Inc()
		return err
	}
	metrics.AccessDecisions.WithLabelValues("promote", "allowed").Inc()
	return nil
}

// Resolve calcula qué puede hacer userID sobre childID.
//
// Orden de decisión estricto, gana la primera regla que aplica:
//  1. usuario inexistente        => todo false + ErrNotFound
//  2. super_admin                => lectura/escritura, NUNCA datos sensibles
//     (límite de privacidad deliberado; un grant explícito no lo levanta)
//  3. admin de este child        => acceso total
//  4. grant explícito            => sus flags tal cual
//  5. sin grant                  => todo false (default deny)
func (s *Service) Resolve(ctx context.Context, userID, childID string) (Permissions, error) {
	if s.grants == nil || s.users == nil {
		return Permissions{}, ErrNotConfigured
	}

	userID = strings.TrimSpace(userID)
	childID = strings.TrimSpace(childID)
	if userID == "" || childID == "" {
		return Permissions{}, ErrInvalidInput
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		metrics.AccessDecisions.WithLabelValues("resolve", "denied").Inc()
		return Permissions{}, ErrNotFound
	}

	if u.Role == users.RoleSuperAdmin {
		metrics.AccessDecisions.WithLabelValues("resolve", "allowed").Inc()
		return Permissions{CanRead: true, CanWrite: true, CanReadSensitive: false}, nil
	}

	if u.AdminFor(childID) {
		metrics.AccessDecisions.WithLabelValues("resolve", "allowed").Inc()
		return FullAccess(), nil
	}

	g, err := s.grants.Get(ctx, userID, childID)
	if err != nil {
		// Sin fila => default deny. No es un error para el caller.
		metrics.AccessDecisions.WithLabelValues("resolve", "denied").Inc()
		return Permissions{}, nil
	}

	metrics.AccessDecisions.WithLabelValues("resolve", "allowed").Inc()
	return g.Permissions, nil
}

// ListByChild devuelve los grants explícitos de un child. Solo para quien
// tiene autoridad de administración sobre ese child.
func (s *Service) ListByChild(ctx context.Context, callerID, childID string) ([]Grant, error) {
	if s.grants == nil || s.users == nil {
		return nil, ErrNotConfigured
	}

	callerID = strings.TrimSpace(callerID)
	childID = strings.TrimSpace(childID)
	if callerID == "" || childID == "" {
		return nil, ErrInvalidInput
	}

	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil || !canAdminister(caller, childID) {
		return nil, ErrForbidden
	}

	return s.grants.ListByChild(ctx, childID)
}

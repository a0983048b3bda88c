package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrNotConfigured = errors.New("user store not configured")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type SignupInput struct {
	Name  string
	Email string
	Role  Role
}

// Signup crea una cuenta nueva. Solo se aceptan los roles de SignupRoles;
// admin se obtiene después, registrando un child o por promote.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	if s.repo == nil {
		return User{}, ErrNotConfigured
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return User{}, ErrInvalidInput
	}

	allowed := false
	for _, r := range SignupRoles {
		if in.Role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		return User{}, ErrInvalidInput
	}

	// Chequeo previo de unicidad; la constraint UNIQUE(email) del store
	// es el respaldo ante carreras.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	}

	now := s.now()
	u := User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      in.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	if s.repo == nil {
		return User{}, ErrNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// ListWithRoles devuelve todos los usuarios con rol y child asociado,
// del más reciente al más antiguo.
func (s *Service) ListWithRoles(ctx context.Context) ([]UserWithChild, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}
	return s.repo.ListWithChildName(ctx)
}

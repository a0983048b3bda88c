package children

import (
	"context"
	"errors"
	"strings"
	"time"

	"child-wellbeing-log/internal/domain/access"
	"child-wellbeing-log/internal/domain/users"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("child store not configured")
)

type Service struct {
	repo  Repository
	users users.Repository
	now   func() time.Time
}

func NewService(repo Repository, userRepo users.Repository) *Service {
	return &Service{
		repo:  repo,
		users: userRepo,
		now:   time.Now,
	}
}

type RegisterInput struct {
	Name      string
	BirthDate *time.Time
	CreatorID string
}

// Register crea un child nuevo y deja a su creador como admin con acceso
// total. Las tres escrituras (child, rol, grant) viajan juntas al repo, que
// las aplica como unidad atómica.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Child, error) {
	if s.repo == nil || s.users == nil {
		return Child{}, ErrNotConfigured
	}

	name := strings.TrimSpace(in.Name)
	creatorID := strings.TrimSpace(in.CreatorID)
	if name == "" || creatorID == "" {
		return Child{}, ErrInvalidInput
	}

	if _, err := s.users.GetByID(ctx, creatorID); err != nil {
		return Child{}, ErrNotFound
	}

	now := s.now()
	c := Child{
		ID:        uuid.NewString(),
		Name:      name,
		BirthDate: in.BirthDate,
		CreatedBy: creatorID,
		IsActive:  true,
		CreatedAt: now,
	}

	g := access.Grant{
		ID:          uuid.NewString(),
		UserID:      creatorID,
		ChildID:     c.ID,
		Permissions: access.FullAccess(),
		GrantedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Register(ctx, c, g); err != nil {
		return Child{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Child, error) {
	if s.repo == nil {
		return Child{}, ErrNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Child{}, ErrInvalidInput
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Child{}, ErrNotFound
	}
	return c, nil
}

// List devuelve los children activos, del más reciente al más antiguo.
func (s *Service) List(ctx context.Context) ([]ChildWithCreator, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}
	return s.repo.ListActive(ctx)
}

package logentries

import (
	"context"
	"errors"
	"strings"
	"time"

	"child-wellbeing-log/internal/domain/access"
	"child-wellbeing-log/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("insufficient permission")
	ErrNotConfigured = errors.New("log entry store not configured")
)

// AccessResolver decide qué puede hacer un usuario sobre un child.
// Lo implementa access.Service; la interfaz existe para poder fijar la
// decisión en tests.
type AccessResolver interface {
	Resolve(ctx context.Context, userID, childID string) (access.Permissions, error)
}

// Service es la puerta de entrada a las entradas de log: toda lectura y
// escritura pasa primero por la decisión del motor de permisos.
type Service struct {
	repo     Repository
	resolver AccessResolver
	now      func() time.Time
}

func NewService(repo Repository, resolver AccessResolver) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		now:      time.Now,
	}
}

type CreateInput struct {
	ChildID  string
	Date     time.Time
	Category Category
	Title    string

	MoodLevel                *int
	EnergyLevel              *int
	AnxietyLevel             *int
	MotivationLevel          *int
	SocialInteractionQuality *int
	FocusAbility             *int
	EffectivenessRating      *int

	SchoolAttendance *bool
	SchoolHours      *float64
	SchoolActivity   string
	SchoolChallenges string
	SchoolSuccesses  string

	Description       string
	Notes             string
	Triggers          string
	InterventionsUsed string
	Tags              []string

	IsSensitive bool
}

// Create registra una entrada para el child indicado. Requiere can_write del
// principal sobre ese child; título, categoría y fecha son obligatorios y las
// escalas deben estar en 1-5.
func (s *Service) Create(ctx context.Context, principalID string, in CreateInput) (LogEntry, error) {
	if s.repo == nil || s.resolver == nil {
		return LogEntry{}, ErrNotConfigured
	}

	principalID = strings.TrimSpace(principalID)
	childID := strings.TrimSpace(in.ChildID)
	if principalID == "" || childID == "" {
		return LogEntry{}, ErrInvalidInput
	}

	perms, err := s.resolver.Resolve(ctx, principalID, childID)
	if err != nil || !perms.CanWrite {
		// Usuario desconocido y usuario sin can_write reciben lo mismo:
		// denegado, sin más detalle.
		return LogEntry{}, ErrForbidden
	}

	if strings.TrimSpace(in.Title) == "" {
		return LogEntry{}, ErrInvalidInput
	}
	if !in.Category.Valid() {
		return LogEntry{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return LogEntry{}, ErrInvalidInput
	}
	for _, v := range []*int{
		in.MoodLevel, in.EnergyLevel, in.AnxietyLevel, in.MotivationLevel,
		in.SocialInteractionQuality, in.FocusAbility, in.EffectivenessRating,
	} {
		if !ratingInRange(v) {
			return LogEntry{}, ErrInvalidInput
		}
	}

	now := s.now()
	e := LogEntry{
		ID:      uuid.NewString(),
		ChildID: childID,

		Date:       in.Date,
		TimeLogged: now,

		Category: in.Category,
		Title:    strings.TrimSpace(in.Title),

		MoodLevel:                in.MoodLevel,
		EnergyLevel:              in.EnergyLevel,
		AnxietyLevel:             in.AnxietyLevel,
		MotivationLevel:          in.MotivationLevel,
		SocialInteractionQuality: in.SocialInteractionQuality,
		FocusAbility:             in.FocusAbility,
		EffectivenessRating:      in.EffectivenessRating,

		SchoolAttendance: in.SchoolAttendance,
		SchoolHours:      in.SchoolHours,
		SchoolActivity:   strings.TrimSpace(in.SchoolActivity),
		SchoolChallenges: strings.TrimSpace(in.SchoolChallenges),
		SchoolSuccesses:  strings.TrimSpace(in.SchoolSuccesses),

		Description:       strings.TrimSpace(in.Description),
		Notes:             strings.TrimSpace(in.Notes),
		Triggers:          strings.TrimSpace(in.Triggers),
		InterventionsUsed: strings.TrimSpace(in.InterventionsUsed),
		Tags:              in.Tags,

		LoggedBy:    principalID,
		IsSensitive: in.IsSensitive,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return LogEntry{}, err
	}

	metrics.LogEntriesCreated.WithLabelValues(string(e.Category)).Inc()
	return e, nil
}

// List devuelve las entradas del child visibles para el principal, de la más
// reciente a la más antigua. Sin can_read_sensitive las entradas sensibles se
// excluyen del resultado para cualquier combinación de filtros.
func (s *Service) List(ctx context.Context, principalID, childID string, f ListFilter) ([]LogEntry, error) {
	if s.repo == nil || s.resolver == nil {
		return nil, ErrNotConfigured
	}

	principalID = strings.TrimSpace(principalID)
	childID = strings.TrimSpace(childID)
	if principalID == "" || childID == "" {
		return nil, ErrInvalidInput
	}

	perms, err := s.resolver.Resolve(ctx, principalID, childID)
	if err != nil || !perms.CanRead {
		return nil, ErrForbidden
	}

	// La visibilidad de entradas sensibles la decide el permiso, nunca el
	// request.
	f.IncludeSensitive = perms.CanReadSensitive

	return s.repo.ListByChild(ctx, childID, f)
}

// Stats agrega las entradas del child en los últimos days días, por
// categoría. Misma autorización y exclusión de sensibles que List.
func (s *Service) Stats(ctx context.Context, principalID, childID string, days int) ([]CategoryStats, error) {
	if s.repo == nil || s.resolver == nil {
		return nil, ErrNotConfigured
	}

	principalID = strings.TrimSpace(principalID)
	childID = strings.TrimSpace(childID)
	if principalID == "" || childID == "" {
		return nil, ErrInvalidInput
	}
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	perms, err := s.resolver.Resolve(ctx, principalID, childID)
	if err != nil || !perms.CanRead {
		return nil, ErrForbidden
	}

	return s.repo.StatsByChild(ctx, childID, StatsFilter{
		Days:             days,
		IncludeSensitive: perms.CanReadSensitive,
	})
}

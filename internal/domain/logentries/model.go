package logentries

import "time"

// LogEntry es una observación diaria estructurada sobre un child.
// Inmutable una vez creada: no hay update ni delete.
type LogEntry struct {
	ID      string
	ChildID string

	Date       time.Time // día observado (solo fecha)
	TimeLogged time.Time // momento en que se registró

	Category Category
	Title    string

	// Escalas 1-5; nil = no registrado ese día.
	MoodLevel                *int
	EnergyLevel              *int
	AnxietyLevel             *int
	MotivationLevel          *int
	SocialInteractionQuality *int
	FocusAbility             *int
	EffectivenessRating      *int

	// Escuela
	SchoolAttendance *bool
	SchoolHours      *float64
	SchoolActivity   string
	SchoolChallenges string
	SchoolSuccesses  string

	// Texto libre
	Description       string
	Notes             string
	Triggers          string
	InterventionsUsed string
	Tags              []string

	LoggedBy string // usuario que registró la entrada

	// IsSensitive oculta la entrada por completo a quien no tenga
	// can_read_sensitive; no se redacta, se excluye.
	IsSensitive bool

	CreatedAt time.Time
}

package logentries

import (
	"context"
	"time"
)

// ListFilter acota un listado de entradas. IncludeSensitive lo fija el
// servicio a partir del permiso del caller; nunca viene del request.
type ListFilter struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Category         Category
	LoggedBy         string
	IncludeSensitive bool
	Limit            int
}

// StatsFilter acota la ventana de agregación de Stats.
type StatsFilter struct {
	Days             int
	IncludeSensitive bool
}

// CategoryStats son los agregados de una categoría en la ventana pedida.
// Los promedios son nil cuando ninguna entrada registró ese campo.
type CategoryStats struct {
	Category       Category
	Count          int
	AvgMood        *float64
	AvgEnergy      *float64
	AvgAnxiety     *float64
	SchoolDays     int
	AvgSchoolHours *float64
}

type Repository interface {
	Create(ctx context.Context, e LogEntry) error

	// ListByChild devuelve entradas ordenadas por (date, time_logged)
	// descendente. Con IncludeSensitive=false las entradas sensibles no
	// aparecen en el resultado.
	ListByChild(ctx context.Context, childID string, f ListFilter) ([]LogEntry, error)

	StatsByChild(ctx context.Context, childID string, f StatsFilter) ([]CategoryStats, error)
}

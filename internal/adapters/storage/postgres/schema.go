package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema crea las tablas e índices si no existen. Pensado para
// entornos de dev/staging; en producción el schema se versiona aparte.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			role VARCHAR(50) NOT NULL DEFAULT 'parent'
				CHECK (role IN ('super_admin', 'admin', 'parent', 'teacher')),
			child_id TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS children (
			id TEXT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			birth_date DATE,
			created_by TEXT NOT NULL REFERENCES users(id),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS user_permissions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			child_id TEXT NOT NULL REFERENCES children(id),
			can_read BOOLEAN NOT NULL DEFAULT true,
			can_write BOOLEAN NOT NULL DEFAULT false,
			can_read_sensitive BOOLEAN NOT NULL DEFAULT false,
			granted_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, child_id)
		)`,

		`CREATE TABLE IF NOT EXISTS log_entries (
			id TEXT PRIMARY KEY,
			child_id TEXT NOT NULL REFERENCES children(id),
			date DATE NOT NULL,
			time_logged TIMESTAMPTZ NOT NULL DEFAULT now(),
			category VARCHAR(50) NOT NULL
				CHECK (category IN ('school', 'wellbeing', 'behavior', 'breakthrough', 'setback', 'meeting', 'therapy', 'medication', 'other')),
			title VARCHAR(255) NOT NULL,
			mood_level INTEGER CHECK (mood_level BETWEEN 1 AND 5),
			energy_level INTEGER CHECK (energy_level BETWEEN 1 AND 5),
			anxiety_level INTEGER CHECK (anxiety_level BETWEEN 1 AND 5),
			motivation_level INTEGER CHECK (motivation_level BETWEEN 1 AND 5),
			social_interaction_quality INTEGER CHECK (social_interaction_quality BETWEEN 1 AND 5),
			focus_ability INTEGER CHECK (focus_ability BETWEEN 1 AND 5),
			effectiveness_rating INTEGER CHECK (effectiveness_rating BETWEEN 1 AND 5),
			school_attendance BOOLEAN,
			school_hours DECIMAL(3,1),
			school_activity TEXT,
			school_challenges TEXT,
			school_successes TEXT,
			description TEXT,
			notes TEXT,
			triggers TEXT,
			interventions_used TEXT,
			tags TEXT[],
			logged_by TEXT NOT NULL,
			is_sensitive BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_user_permissions_child ON user_permissions (child_id)`,
		`CREATE INDEX IF NOT EXISTS idx_log_entries_child_date ON log_entries (child_id, date DESC, time_logged DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_log_entries_category ON log_entries (child_id, category)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

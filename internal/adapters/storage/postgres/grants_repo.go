package postgres

import (
	"context"
	"database/sql"
	"strings"

	"child-wellbeing-log/internal/domain/access"
)

type GrantsRepo struct {
	db *sql.DB
}

func NewGrantsRepo(db *sql.DB) *GrantsRepo {
	return &GrantsRepo{db: db}
}

// Upsert reemplaza la fila completa por (user_id, child_id). El UNIQUE
// serializa escrituras concurrentes: gana el último commit.
func (r *GrantsRepo) Upsert(ctx context.Context, g access.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_permissions (
			id, user_id, child_id,
			can_read, can_write, can_read_sensitive,
			granted_by, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (user_id, child_id) DO UPDATE SET
			can_read = EXCLUDED.can_read,
			can_write = EXCLUDED.can_write,
			can_read_sensitive = EXCLUDED.can_read_sensitive,
			granted_by = EXCLUDED.granted_by,
			updated_at = EXCLUDED.updated_at
	`,
		g.ID,
		g.UserID,
		g.ChildID,
		g.CanRead,
		g.CanWrite,
		g.CanReadSensitive,
		g.GrantedBy,
		g.CreatedAt,
		g.UpdatedAt,
	)
	return err
}

func (r *GrantsRepo) Get(ctx context.Context, userID, childID string) (access.Grant, error) {
	userID = strings.TrimSpace(userID)
	childID = strings.TrimSpace(childID)
	if userID == "" || childID == "" {
		return access.Grant{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id, child_id,
			can_read, can_write, can_read_sensitive,
			granted_by, created_at, updated_at
		FROM user_permissions
		WHERE user_id = $1 AND child_id = $2
	`, userID, childID)

	var g access.Grant
	if err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.ChildID,
		&g.CanRead,
		&g.CanWrite,
		&g.CanReadSensitive,
		&g.GrantedBy,
		&g.CreatedAt,
		&g.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return access.Grant{}, ErrNotFound
		}
		return access.Grant{}, err
	}

	return g, nil
}

func (r *GrantsRepo) ListByChild(ctx context.Context, childID string) ([]access.Grant, error) {
	childID = strings.TrimSpace(childID)
	if childID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id, child_id,
			can_read, can_write, can_read_sensitive,
			granted_by, created_at, updated_at
		FROM user_permissions
		WHERE child_id = $1
		ORDER BY created_at DESC
	`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]access.Grant, 0)
	for rows.Next() {
		var g access.Grant
		if err := rows.Scan(
			&g.ID,
			&g.UserID,
			&g.ChildID,
			&g.CanRead,
			&g.CanWrite,
			&g.CanReadSensitive,
			&g.GrantedBy,
			&g.CreatedAt,
			&g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}

	return out, rows.Err()
}

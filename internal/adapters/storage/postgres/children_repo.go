package postgres

import (
	"context"
	"database/sql"
	"strings"

	"child-wellbeing-log/internal/domain/access"
	"child-wellbeing-log/internal/domain/children"
	"child-wellbeing-log/internal/domain/users"
)

type ChildrenRepo struct {
	db *sql.DB
}

func NewChildrenRepo(db *sql.DB) *ChildrenRepo {
	return &ChildrenRepo{db: db}
}

// Register crea el child, promueve al creador a admin de ese child y
// registra su grant completo en una sola transacción.
func (r *ChildrenRepo) Register(ctx context.Context, c children.Child, g access.Grant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE users
		SET role = $2, child_id = $3, updated_at = $4
		WHERE id = $1
	`, c.CreatedBy, string(users.RoleAdmin), c.ID, c.CreatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO children (id, name, birth_date, created_by, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		c.ID,
		c.Name,
		toNullTime(c.BirthDate),
		c.CreatedBy,
		c.IsActive,
		c.CreatedAt,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_permissions (
			id, user_id, child_id,
			can_read, can_write, can_read_sensitive,
			granted_by, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
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
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ChildrenRepo) GetByID(ctx context.Context, id string) (children.Child, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return children.Child{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, birth_date, created_by, is_active, created_at
		FROM children
		WHERE id = $1
	`, id)

	var c children.Child
	var birthDate sql.NullTime
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&birthDate,
		&c.CreatedBy,
		&c.IsActive,
		&c.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return children.Child{}, ErrNotFound
		}
		return children.Child{}, err
	}

	if birthDate.Valid {
		t := birthDate.Time
		c.BirthDate = &t
	}

	return c, nil
}

func (r *ChildrenRepo) ListActive(ctx context.Context) ([]children.ChildWithCreator, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.name, c.birth_date, c.created_by, c.is_active, c.created_at,
			u.name
		FROM children c
		LEFT JOIN users u ON u.id = c.created_by
		WHERE c.is_active
		ORDER BY c.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]children.ChildWithCreator, 0)
	for rows.Next() {
		var cw children.ChildWithCreator
		var birthDate sql.NullTime
		var creatorName sql.NullString

		if err := rows.Scan(
			&cw.ID,
			&cw.Name,
			&birthDate,
			&cw.CreatedBy,
			&cw.IsActive,
			&cw.CreatedAt,
			&creatorName,
		); err != nil {
			return nil, err
		}

		if birthDate.Valid {
			t := birthDate.Time
			cw.BirthDate = &t
		}
		cw.CreatedByName = creatorName.String

		out = append(out, cw)
	}

	return out, rows.Err()
}

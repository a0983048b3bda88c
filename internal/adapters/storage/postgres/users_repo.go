package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"child-wellbeing-log/internal/domain/users"

	"github.com/jackc/pgx/v5/pgconn"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, role, child_id, is_active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		u.ID,
		u.Name,
		u.Email,
		string(u.Role),
		toNullString(u.ChildID),
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		// El pre-chequeo de email del service pierde frente a una carrera;
		// la violación del UNIQUE es la señal definitiva.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return users.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, child_id, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	return scanUser(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, child_id, is_active, created_at, updated_at
		FROM users
		WHERE lower(email) = $1
	`, email)

	return scanUser(row)
}

func (r *UsersRepo) SetRole(ctx context.Context, userID string, role users.Role, childID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET role = $2, child_id = $3, updated_at = now()
		WHERE id = $1
	`, userID, string(role), toNullString(childID))
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UsersRepo) ListWithChildName(ctx context.Context) ([]users.UserWithChild, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			u.id, u.name, u.email, u.role, u.child_id, u.is_active,
			u.created_at, u.updated_at,
			c.name
		FROM users u
		LEFT JOIN children c ON c.id = u.child_id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.UserWithChild, 0)
	for rows.Next() {
		var uc users.UserWithChild
		var role string
		var childID, childName sql.NullString

		if err := rows.Scan(
			&uc.ID,
			&uc.Name,
			&uc.Email,
			&role,
			&childID,
			&uc.IsActive,
			&uc.CreatedAt,
			&uc.UpdatedAt,
			&childName,
		); err != nil {
			return nil, err
		}

		uc.Role = users.Role(role)
		uc.ChildID = childID.String
		uc.ChildName = childName.String

		out = append(out, uc)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var role string
	var childID sql.NullString

	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&role,
		&childID,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}

	u.Role = users.Role(role)
	u.ChildID = childID.String

	return u, nil
}

// helpers
func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

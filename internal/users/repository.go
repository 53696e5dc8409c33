package users

import (
	"context"
	"time"

	"github.com/PabloPavan/userdir_api/internal/db"
)

type Repository struct {
	base *db.Base
}

func NewRepository(base *db.Base) *Repository {
	return &Repository{base: base}
}

const (
	sqlUserInsert = `INSERT INTO users (id, name, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	sqlUserList = `SELECT id, name, email, role, created_at, updated_at
		FROM users
		ORDER BY created_at DESC`

	sqlUserGetByID = `SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1`

	sqlUserUpdate = `UPDATE users
		SET name = $2, email = $3, role = $4, updated_at = $5
		WHERE id = $1
		RETURNING id, name, email, role, created_at, updated_at`

	sqlUserDelete = `DELETE FROM users
		WHERE id = $1`
)

// Create inserts u and stamps CreatedAt/UpdatedAt at call time. Timestamps
// are always assigned here, never by column defaults.
func (r *Repository) Create(ctx context.Context, u *User) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.base.Q().Exec(ctx, sqlUserInsert, u.ID, u.Name, u.Email, u.Role, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var u User
	err := r.base.Q().QueryRow(ctx, sqlUserGetByID, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if IsNotFound(err) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

// List returns every user, newest first. An empty table yields an empty
// slice, not an error.
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	rows, err := r.base.Q().Query(ctx, sqlUserList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces name/email/role and refreshes updated_at, returning the
// row as stored.
func (r *Repository) Update(ctx context.Context, req *UpdateUserRequest) (*User, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var u User
	err := r.base.Q().QueryRow(ctx, sqlUserUpdate, req.ID, req.Name, req.Email, req.Role, time.Now().UTC()).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if IsNotFound(err) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	tag, err := r.base.Q().Exec(ctx, sqlUserDelete, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

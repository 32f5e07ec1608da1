package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// AdminRepo fetches operator accounts for the admin login flow.
type AdminRepo struct{ db *sql.DB }

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByEmail fetches an admin by normalized email.  sql.ErrNoRows is
// returned untouched; the login handler maps it to an invalid
// credentials response without revealing which part was wrong.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Admin
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM admins WHERE email = ? LIMIT 1`, email).
		Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

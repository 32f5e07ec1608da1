package repository

import (
	"context"
	"database/sql"
	"strings"
)

// GuestRepo manages guest contact records keyed by national ID (NIK).
// Guests are upserted before booking and never deleted.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

// Upsert creates a guest or refreshes name/email/phone when the NIK
// already exists.  All inputs are expected to be pre-validated by the
// handler; the NIK is trimmed here because it is the primary key.
func (r *GuestRepo) Upsert(ctx context.Context, nik, name, email, phone string) error {
	nik = strings.TrimSpace(nik)
	const q = `INSERT INTO guests (nik, name, email, phone)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             name = VALUES(name),
	             email = VALUES(email),
	             phone = VALUES(phone)`
	_, err := r.db.ExecContext(ctx, q, nik, name, email, phone)
	return err
}

// ExistsTx reports whether a guest with the given NIK exists, inside
// the booking transaction so the check stays consistent with the
// inserts that follow it.
func (r *GuestRepo) ExistsTx(ctx context.Context, tx *sql.Tx, nik string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM guests WHERE nik = ? LIMIT 1`, nik).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

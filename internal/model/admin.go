package model

import "time"

// Admin is an operator account allowed to review payments and push
// status transitions.  Passwords are stored as bcrypt hashes.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique login email.
//  PasswordHash – bcrypt hash of the password.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Admin struct {
	ID           uint64    // admins.id
	Name         string    // admins.name
	Email        string    // admins.email
	PasswordHash string    // admins.password_hash
	CreatedAt    time.Time // admins.created_at
	UpdatedAt    time.Time // admins.updated_at
}

package model

import "time"

// Guest is a customer identified by their national ID (NIK).  Guests
// are upserted whenever contact details are submitted before booking;
// there is no deletion path.
//
// Fields:
//  NIK       – national ID string, primary key.
//  Name      – full name as written on the ID document.
//  Email     – contact email.
//  Phone     – contact phone number.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Guest struct {
	NIK       string    // guests.nik
	Name      string    // guests.name
	Email     string    // guests.email
	Phone     string    // guests.phone
	CreatedAt time.Time // guests.created_at
	UpdatedAt time.Time // guests.updated_at
}

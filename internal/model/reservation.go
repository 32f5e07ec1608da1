package model

import "time"

// Reservation records a guest's stay in a room over a half-open date
// range [CheckIn, CheckOut).  The status mirrors the status of the
// associated payment and is only ever written by the booking workflow;
// reservations are never deleted.
//
// Fields:
//  ID        – externally shared reservation code ("RSV" + 6 digits).
//  GuestNIK  – guest who made the reservation.
//  RoomID    – room type being reserved.
//  CheckIn   – arrival date (occupied from this date).
//  CheckOut  – departure date (the date itself is not occupied).
//  Status    – Pending, Confirmed or Cancelled.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        string    // reservations.id
	GuestNIK  string    // reservations.guest_nik
	RoomID    uint64    // reservations.room_id
	CheckIn   time.Time // reservations.check_in
	CheckOut  time.Time // reservations.check_out
	Status    string    // reservations.status
	CreatedAt time.Time // reservations.created_at
	UpdatedAt time.Time // reservations.updated_at
}

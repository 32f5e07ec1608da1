package model

import "time"

// Payment is the single payment record created alongside a reservation.
// The amount is fixed at creation time (nightly price times nights) and
// never changes; only the status is mutated, and only by an admin via
// the booking workflow.
//
// Fields:
//  ID            – payment code ("PAY" + 6 digits).
//  ReservationID – owning reservation (1:1).
//  Method        – Credit Card, Bank Transfer or Virtual Account.
//  Status        – Pending, Paid or Failed.
//  Amount        – total amount in the smallest currency unit.
//  PaidAt        – timestamp recorded when the payment row was created.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Payment struct {
	ID            string    // payments.id
	ReservationID string    // payments.reservation_id
	Method        string    // payments.method
	Status        string    // payments.status
	Amount        int64     // payments.amount
	PaidAt        time.Time // payments.paid_at
	CreatedAt     time.Time // payments.created_at
	UpdatedAt     time.Time // payments.updated_at
}

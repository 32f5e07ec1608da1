// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried on the booking.events queue.
const (
	EventBookingCreated = "booking.created"
	EventPaymentSettled = "payment.settled"
)

// BookingCreatedEvent is published when a reservation and its payment are
// successfully created.  It carries enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type BookingCreatedEvent struct {
	ReservationID string `json:"reservation_id"`
	PaymentID     string `json:"payment_id"`
	GuestNIK      string `json:"guest_nik"`
	RoomID        uint64 `json:"room_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Nights        int    `json:"nights"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`
}

// PaymentSettledEvent is published when an admin moves a payment to a new
// status and the linked reservation has been mirrored.
type PaymentSettledEvent struct {
	PaymentID         string `json:"payment_id"`
	ReservationID     string `json:"reservation_id"`
	PaymentStatus     string `json:"payment_status"`
	ReservationStatus string `json:"reservation_status"`
}

// Envelope wraps one event with its kind and timestamp so a single queue
// can carry every booking event.  Exactly one payload field is set,
// matching Type.
type Envelope struct {
	Type       string               `json:"type"`
	OccurredAt string               `json:"occurred_at"`
	Booking    *BookingCreatedEvent `json:"booking,omitempty"`
	Payment    *PaymentSettledEvent `json:"payment,omitempty"`
}

package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// Workflow orchestrates the paired reservation+payment writes.  Every
// mutation runs inside a single transaction: the availability check
// and the inserts for a new booking, and the payment+reservation
// updates for a status change.  The room row lock taken during
// booking serializes concurrent bookings of the same room, so the
// capacity check can never be invalidated between check and insert.
type Workflow struct {
	db           *sql.DB
	rooms        *repository.RoomRepo
	guests       *repository.GuestRepo
	reservations *repository.ReservationRepo
	payments     *repository.PaymentRepo
	now          func() time.Time
}

// NewWorkflow constructs a Workflow.  All dependencies must be non-nil.
func NewWorkflow(db *sql.DB, rooms *repository.RoomRepo, guests *repository.GuestRepo, reservations *repository.ReservationRepo, payments *repository.PaymentRepo) *Workflow {
	if db == nil || rooms == nil || guests == nil || reservations == nil || payments == nil {
		panic("nil dependency passed to NewWorkflow")
	}
	return &Workflow{
		db:           db,
		rooms:        rooms,
		guests:       guests,
		reservations: reservations,
		payments:     payments,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// BookingResult is returned after a successful CreateBooking.
type BookingResult struct {
	ReservationID string `json:"reservation_id"`
	PaymentID     string `json:"payment_id"`
	Nights        int    `json:"nights"`
	Amount        int64  `json:"amount"`
}

// CreateBooking validates the request, then atomically checks the
// room's remaining capacity over the stay range and inserts the
// reservation (Pending) and its payment (Pending, amount = nightly
// price times nights).  Either both rows exist after the call or
// neither does.
//
// Error mapping: ErrInvalidRange / ErrInvalidMethod for bad input,
// repository.ErrGuestNotFound / repository.ErrRoomNotFound for missing
// references, ErrNoAvailability when the room is fully booked over the
// range, anything else is a persistence failure.
func (w *Workflow) CreateBooking(ctx context.Context, guestNIK string, roomID uint64, checkIn, checkOut time.Time, method string) (*BookingResult, error) {
	if err := ValidateStayRange(checkIn, checkOut); err != nil {
		return nil, err
	}
	if !ValidPaymentMethod(method) {
		return nil, ErrInvalidMethod
	}
	if strings.TrimSpace(guestNIK) == "" {
		return nil, repository.ErrGuestNotFound
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ok, err := w.guests.ExistsTx(ctx, tx, guestNIK)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrGuestNotFound
	}

	nightlyPrice, unitCount, err := w.rooms.LockForBookingTx(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}

	overlapping, err := w.reservations.CountOverlappingActiveTx(ctx, tx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if overlapping >= unitCount {
		return nil, ErrNoAvailability
	}

	nights := Nights(checkIn, checkOut)
	amount := TotalCost(nightlyPrice, nights)

	reservationID, err := w.insertReservation(ctx, tx, guestNIK, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	paymentID, err := w.insertPayment(ctx, tx, reservationID, method, amount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &BookingResult{
		ReservationID: reservationID,
		PaymentID:     paymentID,
		Nights:        nights,
		Amount:        amount,
	}, nil
}

// idAttempts bounds how often a colliding generated code is redrawn
// before the insert is given up on.
const idAttempts = 5

func (w *Workflow) insertReservation(ctx context.Context, tx *sql.Tx, guestNIK string, roomID uint64, checkIn, checkOut time.Time) (string, error) {
	var lastErr error
	for i := 0; i < idAttempts; i++ {
		id, err := NewReservationID()
		if err != nil {
			return "", err
		}
		err = w.reservations.CreateTx(ctx, tx, id, guestNIK, roomID, checkIn, checkOut, ReservationPending)
		if err == nil {
			return id, nil
		}
		if !isDuplicateKey(err) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("reservation id space exhausted: %w", lastErr)
}

func (w *Workflow) insertPayment(ctx context.Context, tx *sql.Tx, reservationID, method string, amount int64) (string, error) {
	var lastErr error
	for i := 0; i < idAttempts; i++ {
		id, err := NewPaymentID()
		if err != nil {
			return "", err
		}
		err = w.payments.CreateTx(ctx, tx, id, reservationID, method, PaymentPending, amount, w.now())
		if err == nil {
			return id, nil
		}
		if !isDuplicateKey(err) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("payment id space exhausted: %w", lastErr)
}

// isDuplicateKey detects a MySQL duplicate-entry error (1062) on the
// generated primary key.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// StatusChange describes the outcome of UpdatePaymentStatus.
type StatusChange struct {
	PaymentID         string `json:"payment_id"`
	ReservationID     string `json:"reservation_id"`
	PaymentStatus     string `json:"payment_status"`
	ReservationStatus string `json:"reservation_status"`
}

// UpdatePaymentStatus applies an admin-driven payment status change
// and mirrors it onto the linked reservation in the same transaction.
// Any status may move to any other status; the mapping is Paid ->
// Confirmed, Failed -> Cancelled, Pending -> Pending.
//
// If the reservation mirror cannot be applied the transaction is
// rolled back and ErrConsistency is returned, so a half-applied update
// is never observable, but the caller can still distinguish a broken
// link from an ordinary database failure.
func (w *Workflow) UpdatePaymentStatus(ctx context.Context, paymentID, newStatus string) (*StatusChange, error) {
	if !ValidPaymentStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	reservationID, _, err := w.payments.GetForUpdateTx(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := w.payments.UpdateStatusTx(ctx, tx, paymentID, newStatus); err != nil {
		return nil, err
	}

	reservationStatus := ReservationStatusFor(newStatus)
	affected, err := w.reservations.UpdateStatusByPaymentTx(ctx, tx, paymentID, reservationStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConsistency, err)
	}
	if affected == 0 {
		// The payment exists but no reservation row mirrors it.
		return nil, ErrConsistency
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &StatusChange{
		PaymentID:         paymentID,
		ReservationID:     reservationID,
		PaymentStatus:     newStatus,
		ReservationStatus: reservationStatus,
	}, nil
}

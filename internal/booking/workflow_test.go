package booking_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

func newWorkflow(t *testing.T) (*booking.Workflow, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	wf := booking.NewWorkflow(db,
		repository.NewRoomRepo(db),
		repository.NewGuestRepo(db),
		repository.NewReservationRepo(db),
		repository.NewPaymentRepo(db),
	)
	return wf, mock
}

func TestCreateBookingSuccess(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM guests`).
		WithArgs("3174012345678901").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT nightly_price, unit_count FROM rooms`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"nightly_price", "unit_count"}).AddRow(int64(500_000), uint32(2)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservations`).
		WithArgs(int64(7), "2025-06-03", "2025-06-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO reservations`).
		WithArgs(sqlmock.AnyArg(), "3174012345678901", int64(7), "2025-06-01", "2025-06-03", "Pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Credit Card", "Pending", int64(1_000_000), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := wf.CreateBooking(context.Background(),
		"3174012345678901", 7, date("2025-06-01"), date("2025-06-03"), booking.MethodCreditCard)
	require.NoError(t, err)
	assert.Regexp(t, `^RSV\d{6}$`, res.ReservationID)
	assert.Regexp(t, `^PAY\d{6}$`, res.PaymentID)
	assert.Equal(t, 2, res.Nights)
	assert.Equal(t, int64(1_000_000), res.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingNoAvailability(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM guests`).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT nightly_price, unit_count FROM rooms`).
		WillReturnRows(sqlmock.NewRows([]string{"nightly_price", "unit_count"}).AddRow(int64(500_000), uint32(2)))
	// Both units already blocked over the range.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservations`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	_, err := wf.CreateBooking(context.Background(),
		"3174012345678901", 7, date("2025-06-01"), date("2025-06-03"), booking.MethodCreditCard)
	assert.ErrorIs(t, err, booking.ErrNoAvailability)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingOverbookedRoom(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM guests`).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT nightly_price, unit_count FROM rooms`).
		WillReturnRows(sqlmock.NewRows([]string{"nightly_price", "unit_count"}).AddRow(int64(500_000), uint32(2)))
	// More active overlaps than units can exist in historical data;
	// the booking is rejected rather than miscounted.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservations`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectRollback()

	_, err := wf.CreateBooking(context.Background(),
		"3174012345678901", 7, date("2025-06-01"), date("2025-06-03"), booking.MethodCreditCard)
	assert.ErrorIs(t, err, booking.ErrNoAvailability)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownGuest(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM guests`).
		WithArgs("9999990000000000").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := wf.CreateBooking(context.Background(),
		"9999990000000000", 7, date("2025-06-01"), date("2025-06-03"), booking.MethodCreditCard)
	assert.ErrorIs(t, err, repository.ErrGuestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM guests`).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT nightly_price, unit_count FROM rooms`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := wf.CreateBooking(context.Background(),
		"3174012345678901", 404, date("2025-06-01"), date("2025-06-03"), booking.MethodCreditCard)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsInput(t *testing.T) {
	wf, mock := newWorkflow(t)

	// Invalid input never reaches the database.
	_, err := wf.CreateBooking(context.Background(),
		"3174012345678901", 7, date("2025-06-03"), date("2025-06-01"), booking.MethodCreditCard)
	assert.ErrorIs(t, err, booking.ErrInvalidRange)

	_, err = wf.CreateBooking(context.Background(),
		"3174012345678901", 7, date("2025-06-01"), date("2025-06-03"), "Cash")
	assert.ErrorIs(t, err, booking.ErrInvalidMethod)

	_, err = wf.CreateBooking(context.Background(),
		"   ", 7, date("2025-06-01"), date("2025-06-03"), booking.MethodCreditCard)
	assert.ErrorIs(t, err, repository.ErrGuestNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRetriesDuplicateCode(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM guests`).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT nightly_price, unit_count FROM rooms`).
		WillReturnRows(sqlmock.NewRows([]string{"nightly_price", "unit_count"}).AddRow(int64(500_000), uint32(2)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservations`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// First draw collides with an existing code, second succeeds.
	mock.ExpectExec(`INSERT INTO reservations`).
		WillReturnError(errors.New("Error 1062: Duplicate entry 'RSV000123' for key 'PRIMARY'"))
	mock.ExpectExec(`INSERT INTO reservations`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := wf.CreateBooking(context.Background(),
		"3174012345678901", 7, date("2025-06-01"), date("2025-06-03"), booking.MethodBankTransfer)
	require.NoError(t, err)
	assert.Regexp(t, `^RSV\d{6}$`, res.ReservationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRollsBackOnPaymentFailure(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM guests`).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT nightly_price, unit_count FROM rooms`).
		WillReturnRows(sqlmock.NewRows([]string{"nightly_price", "unit_count"}).AddRow(int64(500_000), uint32(2)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservations`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO reservations`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := wf.CreateBooking(context.Background(),
		"3174012345678901", 7, date("2025-06-01"), date("2025-06-03"), booking.MethodCreditCard)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusPaidConfirms(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT reservation_id, status FROM payments`).
		WithArgs("PAY000042").
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id", "status"}).AddRow("RSV000123", "Pending"))
	mock.ExpectExec(`UPDATE payments SET status`).
		WithArgs("Paid", "PAY000042").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE reservations r`).
		WithArgs("Confirmed", "PAY000042").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	change, err := wf.UpdatePaymentStatus(context.Background(), "PAY000042", booking.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, "PAY000042", change.PaymentID)
	assert.Equal(t, "RSV000123", change.ReservationID)
	assert.Equal(t, booking.PaymentPaid, change.PaymentStatus)
	assert.Equal(t, booking.ReservationConfirmed, change.ReservationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusFailedCancels(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT reservation_id, status FROM payments`).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id", "status"}).AddRow("RSV000123", "Paid"))
	mock.ExpectExec(`UPDATE payments SET status`).
		WithArgs("Failed", "PAY000042").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE reservations r`).
		WithArgs("Cancelled", "PAY000042").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	change, err := wf.UpdatePaymentStatus(context.Background(), "PAY000042", booking.PaymentFailed)
	require.NoError(t, err)
	assert.Equal(t, booking.ReservationCancelled, change.ReservationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusBrokenLink(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT reservation_id, status FROM payments`).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id", "status"}).AddRow("RSV000123", "Pending"))
	mock.ExpectExec(`UPDATE payments SET status`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// No reservation row mirrors the payment: the whole change is
	// rolled back, not half-applied.
	mock.ExpectExec(`UPDATE reservations r`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := wf.UpdatePaymentStatus(context.Background(), "PAY000042", booking.PaymentPaid)
	assert.ErrorIs(t, err, booking.ErrConsistency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusUnknownPayment(t *testing.T) {
	wf, mock := newWorkflow(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT reservation_id, status FROM payments`).
		WithArgs("PAY999999").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := wf.UpdatePaymentStatus(context.Background(), "PAY999999", booking.PaymentPaid)
	assert.ErrorIs(t, err, repository.ErrPaymentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusRejectsUnknownStatus(t *testing.T) {
	wf, mock := newWorkflow(t)

	_, err := wf.UpdatePaymentStatus(context.Background(), "PAY000042", "Refunded")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

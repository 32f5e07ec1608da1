package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReservationRepo provides writes used by the booking workflow and the
// composite lookup view shown to guests.  Reservation rows are only
// created and status-updated, never deleted.  All timestamp fields are
// stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// CreateTx inserts a reservation within an existing transaction.  The
// caller supplies the generated reservation code and must commit or
// roll back the transaction.  Status should be one of the enumerated
// values ('Pending','Confirmed','Cancelled').
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, id, guestNIK string, roomID uint64, checkIn, checkOut time.Time, status string) error {
	const q = `INSERT INTO reservations (id, guest_nik, room_id, check_in, check_out, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, id, guestNIK, roomID,
		checkIn.Format(dateLayout), checkOut.Format(dateLayout), status)
	return err
}

// CountOverlappingActiveTx counts reservations for the room that block
// a unit over [checkIn, checkOut): status Pending or Confirmed and a
// half-open interval overlap.  Runs inside the booking transaction,
// after the room row has been locked, so the count cannot be outdated
// by a concurrent booking.
func (r *ReservationRepo) CountOverlappingActiveTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut time.Time) (uint32, error) {
	const q = `SELECT COUNT(*) FROM reservations
	           WHERE room_id = ?
	             AND status IN ('Pending','Confirmed')
	             AND check_in < ? AND check_out > ?`
	var n uint32
	err := tx.QueryRowContext(ctx, q, roomID,
		checkOut.Format(dateLayout), checkIn.Format(dateLayout)).Scan(&n)
	return n, err
}

// UpdateStatusByPaymentTx sets the status of the reservation linked to
// the given payment.  It is always driven by a payment status change;
// the reservation status is a mirror, never set independently.  The
// number of affected rows is returned so the workflow can detect a
// broken payment->reservation link.
func (r *ReservationRepo) UpdateStatusByPaymentTx(ctx context.Context, tx *sql.Tx, paymentID, status string) (int64, error) {
	const q = `UPDATE reservations r
	           JOIN payments p ON p.reservation_id = r.id
	           SET r.status = ?
	           WHERE p.id = ?`
	res, err := tx.ExecContext(ctx, q, status, paymentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// LookupGuest is the guest portion of the lookup view.
type LookupGuest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// LookupRoom is the room portion of the lookup view.
type LookupRoom struct {
	RoomType     string   `json:"room_type"`
	NightlyPrice int64    `json:"nightly_price"`
	Facilities   []string `json:"facilities"`
}

// LookupHotel is the hotel portion of the lookup view.
type LookupHotel struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// LookupPayment is the payment portion of the lookup view.  When no
// payment row exists the defaults below stand in: status "Pending",
// method "N/A", amount 0 and no timestamp.
type LookupPayment struct {
	Status string  `json:"status"`
	Method string  `json:"method"`
	Amount int64   `json:"amount"`
	PaidAt *string `json:"paid_at"`
}

// LookupView is the consolidated read model returned when a guest
// checks a reservation code: reservation joined with guest, room,
// hotel and (optionally) payment.
type LookupView struct {
	ReservationID string        `json:"reservation_id"`
	CheckIn       string        `json:"check_in"`
	CheckOut      string        `json:"check_out"`
	Status        string        `json:"status"`
	Guest         LookupGuest   `json:"guest"`
	Room          LookupRoom    `json:"room"`
	Hotel         LookupHotel   `json:"hotel"`
	Payment       LookupPayment `json:"payment"`
}

// LookupByCode resolves a reservation code into the composite view.
// The payment is joined with LEFT JOIN semantics because a reservation
// can momentarily exist without one; missing payment fields fall back
// to their documented defaults.  Returns ErrReservationNotFound when
// the code does not match.
func (r *ReservationRepo) LookupByCode(ctx context.Context, code string) (*LookupView, error) {
	const q = `SELECT res.id, res.check_in, res.check_out, res.status,
	                  g.name, g.email, g.phone,
	                  k.room_type, k.nightly_price, COALESCE(k.facilities, ''),
	                  h.name, h.address,
	                  p.status, p.method, p.amount, p.paid_at
	           FROM reservations res
	           JOIN guests g ON g.nik = res.guest_nik
	           JOIN rooms k ON k.id = res.room_id
	           JOIN hotels h ON h.id = k.hotel_id
	           LEFT JOIN payments p ON p.reservation_id = res.id
	           WHERE res.id = ?`
	var v LookupView
	var checkIn, checkOut time.Time
	var facilities string
	var payStatus, payMethod sql.NullString
	var payAmount sql.NullInt64
	var paidAt sql.NullTime
	err := r.db.QueryRowContext(ctx, q, code).Scan(
		&v.ReservationID, &checkIn, &checkOut, &v.Status,
		&v.Guest.Name, &v.Guest.Email, &v.Guest.Phone,
		&v.Room.RoomType, &v.Room.NightlyPrice, &facilities,
		&v.Hotel.Name, &v.Hotel.Address,
		&payStatus, &payMethod, &payAmount, &paidAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	v.CheckIn = checkIn.Format(dateLayout)
	v.CheckOut = checkOut.Format(dateLayout)
	v.Room.Facilities = decodeStringList(facilities)
	v.Payment = LookupPayment{Status: "Pending", Method: "N/A", Amount: 0}
	if payStatus.Valid {
		v.Payment.Status = payStatus.String
	}
	if payMethod.Valid {
		v.Payment.Method = payMethod.String
	}
	if payAmount.Valid {
		v.Payment.Amount = payAmount.Int64
	}
	if paidAt.Valid {
		iso := paidAt.Time.UTC().Format(time.RFC3339)
		v.Payment.PaidAt = &iso
	}
	return &v, nil
}

package repository

import (
	"context"
	"database/sql"
	"time"
)

// PaymentRepo manages payment rows: one per reservation, created
// together with it, with an immutable amount and an admin-driven
// status.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateTx inserts a payment within an existing transaction.  The
// caller supplies the generated payment code; amount and paidAt are
// fixed at creation and never updated afterwards.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, id, reservationID, method, status string, amount int64, paidAt time.Time) error {
	const q = `INSERT INTO payments (id, reservation_id, method, status, amount, paid_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, id, reservationID, method, status, amount, paidAt.UTC())
	return err
}

// GetForUpdateTx loads a payment's reservation id and current status
// under a row lock so a concurrent admin update on the same payment
// serializes behind this transaction.  Returns ErrPaymentNotFound when
// the id does not exist.
func (r *PaymentRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, paymentID string) (reservationID, status string, err error) {
	const q = `SELECT reservation_id, status FROM payments WHERE id = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, q, paymentID).Scan(&reservationID, &status)
	if err == sql.ErrNoRows {
		return "", "", ErrPaymentNotFound
	}
	return reservationID, status, err
}

// UpdateStatusTx sets the payment status within a transaction.
func (r *PaymentRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, paymentID, status string) error {
	const q = `UPDATE payments SET status = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, status, paymentID)
	return err
}

// AdminPaymentRow is one row of the admin payment console: the payment
// joined with the guest, room type and hotel it belongs to.
type AdminPaymentRow struct {
	PaymentID string `json:"payment_id"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	PaidAt    string `json:"paid_at"`
	GuestName string `json:"guest_name"`
	RoomType  string `json:"room_type"`
	HotelName string `json:"hotel_name"`
}

// ListAll returns every payment with its guest, room and hotel
// context, newest first.  The admin console renders this directly.
func (r *PaymentRepo) ListAll(ctx context.Context) ([]AdminPaymentRow, error) {
	const q = `SELECT p.id, p.method, p.status, p.amount, p.paid_at,
	                  g.name, k.room_type, h.name
	           FROM payments p
	           JOIN reservations res ON res.id = p.reservation_id
	           JOIN guests g ON g.nik = res.guest_nik
	           JOIN rooms k ON k.id = res.room_id
	           JOIN hotels h ON h.id = k.hotel_id
	           ORDER BY p.paid_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AdminPaymentRow, 0)
	for rows.Next() {
		var row AdminPaymentRow
		var paidAt time.Time
		if err := rows.Scan(
			&row.PaymentID, &row.Method, &row.Status, &row.Amount, &paidAt,
			&row.GuestName, &row.RoomType, &row.HotelName,
		); err != nil {
			return nil, err
		}
		row.PaidAt = paidAt.UTC().Format(time.RFC3339)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalIncome sums the amounts of all Paid payments.  Pending and
// Failed payments are not counted as revenue.
func (r *PaymentRepo) TotalIncome(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'Paid'`).Scan(&total)
	return total, err
}

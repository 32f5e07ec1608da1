package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// RoomRepo provides read access to rooms and the availability
// computation over the reservations table.  Rooms are managed out of
// band (catalog management); this service only ever reads them.  All
// date parameters are interpreted as calendar dates in UTC.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so callers can begin transactions
// that span multiple repositories.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// RoomDetail is a room joined with its hotel, as returned to clients.
// Facility and image lists are decoded from their JSON text columns
// before the struct leaves the repository.
type RoomDetail struct {
	ID           uint64   `json:"id"`
	HotelID      uint64   `json:"hotel_id"`
	HotelName    string   `json:"hotel_name"`
	HotelAddress string   `json:"hotel_address"`
	RoomType     string   `json:"room_type"`
	NightlyPrice int64    `json:"nightly_price"`
	UnitCount    uint32   `json:"unit_count"`
	Facilities   []string `json:"facilities"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
}

// GetByID returns a single room with its hotel information.  It
// returns ErrRoomNotFound when the id does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, roomID uint64) (*RoomDetail, error) {
	const q = `SELECT k.id, k.hotel_id, h.name, h.address,
	                  k.room_type, k.nightly_price, k.unit_count,
	                  k.facilities, k.description, k.images
	           FROM rooms k
	           LEFT JOIN hotels h ON h.id = k.hotel_id
	           WHERE k.id = ?`
	var det RoomDetail
	var hotelName, hotelAddress sql.NullString
	var facilities, images sql.NullString
	err := r.db.QueryRowContext(ctx, q, roomID).Scan(
		&det.ID, &det.HotelID, &hotelName, &hotelAddress,
		&det.RoomType, &det.NightlyPrice, &det.UnitCount,
		&facilities, &det.Description, &images,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	det.HotelName = hotelName.String
	det.HotelAddress = hotelAddress.String
	det.Facilities = decodeStringList(facilities.String)
	det.Images = decodeStringList(images.String)
	return &det, nil
}

// NightlyPrice returns only the nightly price for a room.  Used by the
// quote endpoint so clients can estimate the total before submitting a
// booking.  Returns ErrRoomNotFound for unknown ids.
func (r *RoomRepo) NightlyPrice(ctx context.Context, roomID uint64) (int64, error) {
	var price int64
	err := r.db.QueryRowContext(ctx,
		`SELECT nightly_price FROM rooms WHERE id = ?`, roomID).Scan(&price)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrRoomNotFound
		}
		return 0, err
	}
	return price, nil
}

// AvailableUnits returns how many units of the room remain free over
// the half-open range [checkIn, checkOut).  A reservation blocks a
// unit when its status is Pending or Confirmed and its range overlaps
// the query range (existing.check_in < checkOut AND existing.check_out
// > checkIn).  The result is clamped at zero: storage may contain more
// overlapping reservations than units (a historical overbooking), but
// that must never surface as a negative count.
func (r *RoomRepo) AvailableUnits(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (uint32, error) {
	const q = `SELECT k.unit_count,
	                  (SELECT COUNT(*) FROM reservations res
	                   WHERE res.room_id = k.id
	                     AND res.status IN ('Pending','Confirmed')
	                     AND res.check_in < ? AND res.check_out > ?)
	           FROM rooms k WHERE k.id = ?`
	var unitCount uint32
	var overlapping uint32
	err := r.db.QueryRowContext(ctx, q,
		checkOut.Format(dateLayout), checkIn.Format(dateLayout), roomID,
	).Scan(&unitCount, &overlapping)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrRoomNotFound
		}
		return 0, err
	}
	return clampUnits(unitCount, overlapping), nil
}

// LockForBookingTx reads a room's nightly price and unit count under a
// row lock inside the given transaction.  The booking workflow uses
// the lock to serialize concurrent bookings of the same room so the
// capacity check and the insert happen atomically.
func (r *RoomRepo) LockForBookingTx(ctx context.Context, tx *sql.Tx, roomID uint64) (nightlyPrice int64, unitCount uint32, err error) {
	const q = `SELECT nightly_price, unit_count FROM rooms WHERE id = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, q, roomID).Scan(&nightlyPrice, &unitCount)
	if err == sql.ErrNoRows {
		return 0, 0, ErrRoomNotFound
	}
	return nightlyPrice, unitCount, err
}

// clampUnits computes unitCount - overlapping without going below zero.
func clampUnits(unitCount, overlapping uint32) uint32 {
	if overlapping >= unitCount {
		return 0
	}
	return unitCount - overlapping
}

// decodeStringList parses a JSON array of strings as stored in the
// facilities/images text columns.  Empty or malformed values decode to
// an empty slice so callers never deal with nil or raw text.
func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// dateLayout is how calendar dates are rendered into SQL parameters.
const dateLayout = "2006-01-02"

package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// HotelRepo provides read access to hotel properties, used to populate
// the hotel filter on the catalog and the public hotel listing.
type HotelRepo struct{ db *sql.DB }

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// ListAll returns all hotels ordered by name.
func (r *HotelRepo) ListAll(ctx context.Context) ([]model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, created_at, updated_at FROM hotels ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

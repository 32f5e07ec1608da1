package repository

import (
	"context"
	"strings"
	"time"
)

// CatalogQuery defines filters and ordering for the room catalog
// search.  Zero values disable the corresponding filter.  When both
// CheckIn and CheckOut are set, rooms are additionally filtered by
// availability over that half-open range: a room must have at least
// Quantity free units or it is dropped from the result.
type CatalogQuery struct {
	RoomType string    // exact room type match
	Hotel    string    // partial, case-insensitive hotel name match
	MinPrice int64     // inclusive lower price bound
	MaxPrice int64     // inclusive upper price bound
	MinUnits uint32    // minimum raw unit count
	CheckIn  time.Time // start of requested stay (optional)
	CheckOut time.Time // end of requested stay (optional)
	Quantity uint32    // rooms requested; defaults to 1 when dates are set
	SortBy   string    // price_asc | price_desc | popular_desc | rooms_desc | type_asc
}

// HasDates reports whether the query carries a stay range and thus
// availability filtering should apply.
func (q CatalogQuery) HasDates() bool {
	return !q.CheckIn.IsZero() && !q.CheckOut.IsZero()
}

// CatalogRow is one catalog search result: a room annotated with its
// remaining availability and reservation counts over the trailing
// six-month popularity window.
type CatalogRow struct {
	RoomDetail
	AvailableUnits        uint32 `json:"available_units"`
	TotalReservations     int64  `json:"total_reservations"`
	ConfirmedReservations int64  `json:"confirmed_reservations"`
}

// PopularityScore weighs confirmed reservations double so realized
// demand outranks abandoned pending bookings.
func (row CatalogRow) PopularityScore() int64 {
	return row.ConfirmedReservations*2 + row.TotalReservations
}

// buildCatalogQuery renders a CatalogQuery into SQL and its argument
// list.  Kept as a pure function so filter and sort combinations can
// be tested without a database.
//
// The popularity counts come from a LEFT JOIN restricted to
// reservations whose check-in falls inside the trailing six months.
// The overlap count is a correlated subquery; without a stay range it
// is constant zero so every row scans the same columns.
func buildCatalogQuery(q CatalogQuery) (string, []any) {
	args := []any{}

	overlap := `0 AS overlapping`
	if q.HasDates() {
		overlap = `(SELECT COUNT(*) FROM reservations res
	                 WHERE res.room_id = k.id
	                   AND res.status IN ('Pending','Confirmed')
	                   AND res.check_in < ? AND res.check_out > ?) AS overlapping`
		args = append(args, q.CheckOut.Format(dateLayout), q.CheckIn.Format(dateLayout))
	}

	sqlStr := `SELECT k.id, k.hotel_id,
	       COALESCE(h.name, ''), COALESCE(h.address, ''),
	       k.room_type, k.nightly_price, k.unit_count,
	       COALESCE(k.facilities, ''), COALESCE(k.description, ''), COALESCE(k.images, ''),
	       COALESCE(COUNT(r.id), 0) AS total_res,
	       COALESCE(SUM(CASE WHEN r.status = 'Confirmed' THEN 1 ELSE 0 END), 0) AS confirmed_res,
	       ` + overlap + `
	FROM rooms k
	LEFT JOIN hotels h ON h.id = k.hotel_id
	LEFT JOIN reservations r ON r.room_id = k.id
	       AND r.check_in >= CURDATE() - INTERVAL 6 MONTH`

	where := []string{}
	if q.RoomType != "" {
		where = append(where, "k.room_type = ?")
		args = append(args, q.RoomType)
	}
	if q.Hotel != "" {
		where = append(where, "LOWER(h.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Hotel)+"%")
	}
	if q.MinPrice > 0 {
		where = append(where, "k.nightly_price >= ?")
		args = append(args, q.MinPrice)
	}
	if q.MaxPrice > 0 {
		where = append(where, "k.nightly_price <= ?")
		args = append(args, q.MaxPrice)
	}
	if q.MinUnits > 0 {
		where = append(where, "k.unit_count >= ?")
		args = append(args, q.MinUnits)
	}
	if len(where) > 0 {
		sqlStr += "\n\tWHERE " + strings.Join(where, " AND ")
	}

	sqlStr += "\n\tGROUP BY k.id, h.name, h.address"

	if q.HasDates() {
		qty := q.Quantity
		if qty == 0 {
			qty = 1
		}
		sqlStr += "\n\tHAVING GREATEST(CAST(k.unit_count AS SIGNED) - overlapping, 0) >= ?"
		args = append(args, qty)
	}

	switch q.SortBy {
	case "price_desc":
		sqlStr += "\n\tORDER BY k.nightly_price DESC"
	case "popular_desc":
		sqlStr += "\n\tORDER BY confirmed_res DESC, total_res DESC"
	case "rooms_desc":
		if q.HasDates() {
			sqlStr += "\n\tORDER BY GREATEST(CAST(k.unit_count AS SIGNED) - overlapping, 0) DESC"
		} else {
			sqlStr += "\n\tORDER BY k.unit_count DESC"
		}
	case "type_asc":
		sqlStr += "\n\tORDER BY k.room_type ASC"
	default: // price_asc
		sqlStr += "\n\tORDER BY k.nightly_price ASC"
	}

	return sqlStr, args
}

// SearchCatalog runs a catalog query and returns the matching rooms.
// An inverted price range (min above max) simply matches nothing; it
// is not treated as an error.  When no stay range is supplied the
// available unit count equals the raw unit count.
func (r *RoomRepo) SearchCatalog(ctx context.Context, q CatalogQuery) ([]CatalogRow, error) {
	sqlStr, args := buildCatalogQuery(q)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CatalogRow, 0)
	for rows.Next() {
		var row CatalogRow
		var facilities, images string
		var overlapping uint32
		if err := rows.Scan(
			&row.ID, &row.HotelID, &row.HotelName, &row.HotelAddress,
			&row.RoomType, &row.NightlyPrice, &row.UnitCount,
			&facilities, &row.Description, &images,
			&row.TotalReservations, &row.ConfirmedReservations,
			&overlapping,
		); err != nil {
			return nil, err
		}
		row.Facilities = decodeStringList(facilities)
		row.Images = decodeStringList(images)
		row.AvailableUnits = clampUnits(row.UnitCount, overlapping)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RoomTypes returns the distinct room type names, used to populate
// filter dropdowns.
func (r *RoomRepo) RoomTypes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT room_type FROM rooms ORDER BY room_type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	types := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

package model

import "time"

// Room describes a bookable room type belonging to a hotel.  A single
// Room row represents UnitCount physical rooms of the same type, so
// several reservations may hold the same Room for overlapping dates as
// long as the unit count is not exhausted.
//
// Facilities and Images are stored as JSON-encoded string arrays in the
// database; the repository layer decodes them so the rest of the
// application only ever sees []string.
//
// Fields:
//  ID           – primary key identifier.
//  HotelID      – owning hotel.
//  RoomType     – human-readable type name (e.g. "Deluxe").
//  NightlyPrice – price per night in the smallest currency unit (> 0).
//  UnitCount    – number of physical rooms of this type (>= 0).
//  Facilities   – ordered facility names.
//  Description  – marketing description.
//  Images       – ordered image references.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Room struct {
	ID           uint64    // rooms.id
	HotelID      uint64    // rooms.hotel_id
	RoomType     string    // rooms.room_type
	NightlyPrice int64     // rooms.nightly_price
	UnitCount    uint32    // rooms.unit_count
	Facilities   []string  // rooms.facilities (JSON text)
	Description  string    // rooms.description
	Images       []string  // rooms.images (JSON text)
	CreatedAt    time.Time // rooms.created_at
	UpdatedAt    time.Time // rooms.updated_at
}

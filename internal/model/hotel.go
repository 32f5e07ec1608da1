package model

import "time"

// Hotel represents a property that owns one or more room types.
// Rooms reference their hotel via Room.HotelID.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the property.
//  Address   – street address shown to guests.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hotel struct {
	ID        uint64    // hotels.id
	Name      string    // hotels.name
	Address   string    // hotels.address
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}

// Package handler exposes HTTP handlers for both public and admin
// endpoints.  This file defines the public room catalog: searching,
// room detail and the nightly price quote used by clients to estimate
// a stay before booking.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// RoomHandler aggregates repositories needed for unauthenticated
// catalog browsing.
type RoomHandler struct {
	Rooms  *repository.RoomRepo  // room catalog and availability queries
	Hotels *repository.HotelRepo // hotel listing for filter dropdowns
}

// NewRoomHandler constructs a RoomHandler with the provided repositories.
func NewRoomHandler(rooms *repository.RoomRepo, hotels *repository.HotelRepo) *RoomHandler {
	if rooms == nil || hotels == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Hotels: hotels}
}

// catalogItem decorates a catalog row with the derived fields clients
// render directly: the popularity score and the formatted price.
type catalogItem struct {
	repository.CatalogRow
	PopularityScore int64  `json:"popularity_score"`
	FormattedPrice  string `json:"formatted_price"`
}

// ListRooms handles GET /v1/rooms.  Query parameters: type (exact room
// type), hotel (partial name), min_price/max_price (inclusive bounds),
// min_units, check_in/check_out (YYYY-MM-DD; both or neither), rooms
// (requested quantity, default 1) and sort (price_asc, price_desc,
// popular_desc, rooms_desc, type_asc).  When a stay range is supplied
// the result only contains rooms with enough free units over that
// range; without one the raw unit count is reported.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	q := repository.CatalogQuery{
		RoomType: strings.TrimSpace(c.QueryParam("type")),
		Hotel:    strings.TrimSpace(c.QueryParam("hotel")),
		SortBy:   c.QueryParam("sort"),
	}
	if v := c.QueryParam("min_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
		}
		q.MinPrice = n
	}
	if v := c.QueryParam("max_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
		}
		q.MaxPrice = n
	}
	if v := c.QueryParam("min_units"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_units"})
		}
		q.MinUnits = uint32(n)
	}
	if v := c.QueryParam("rooms"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rooms"})
		}
		q.Quantity = uint32(n)
	}

	// A stay range is optional, but when present it must be complete
	// and well-formed; a reversed range is rejected rather than
	// silently producing negative nights.
	inStr, outStr := c.QueryParam("check_in"), c.QueryParam("check_out")
	if inStr != "" || outStr != "" {
		checkIn, err := booking.ParseDate(inStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in"})
		}
		checkOut, err := booking.ParseDate(outStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out"})
		}
		if err := booking.ValidateStayRange(checkIn, checkOut); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
		}
		q.CheckIn, q.CheckOut = checkIn, checkOut
	}

	rows, err := h.Rooms.SearchCatalog(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	items := make([]catalogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, catalogItem{
			CatalogRow:      row,
			PopularityScore: row.PopularityScore(),
			FormattedPrice:  FormatIDR(row.NightlyPrice),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"rooms":       items,
		"total_count": len(items),
	})
}

// GetRoom handles GET /v1/rooms/:id and returns a single room with its
// hotel information and parsed facility/image lists.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	det, err := h.Rooms.GetByID(c.Request().Context(), roomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room":            det,
		"formatted_price": FormatIDR(det.NightlyPrice),
	})
}

// GetQuote handles GET /v1/rooms/:id/quote.  It returns only the
// nightly price so a client can compute the stay total before
// submitting the booking form.
func (h *RoomHandler) GetQuote(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	price, err := h.Rooms.NightlyPrice(c.Request().Context(), roomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"nightly_price": price})
}

// ListHotels handles GET /v1/hotels and returns all hotel properties.
func (h *RoomHandler) ListHotels(c echo.Context) error {
	hotels, err := h.Hotels.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type item struct {
		ID      uint64 `json:"id"`
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	out := make([]item, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, item{ID: h.ID, Name: h.Name, Address: h.Address})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListRoomTypes handles GET /v1/rooms/types, feeding the room type
// filter dropdown.
func (h *RoomHandler) ListRoomTypes(c echo.Context) error {
	types, err := h.Rooms.RoomTypes(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": types})
}

// FormatIDR renders an amount in the smallest currency unit as an
// Indonesian Rupiah display string, e.g. 1000000 -> "Rp 1.000.000".
func FormatIDR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	out := "Rp " + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

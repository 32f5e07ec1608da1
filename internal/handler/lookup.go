package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// LookupHandler resolves reservation codes into the consolidated view
// a guest sees when checking their booking status.
type LookupHandler struct {
	Reservations *repository.ReservationRepo
}

// NewLookupHandler constructs a LookupHandler.
func NewLookupHandler(reservations *repository.ReservationRepo) *LookupHandler {
	if reservations == nil {
		panic("nil repository passed to NewLookupHandler")
	}
	return &LookupHandler{Reservations: reservations}
}

// CheckReservation handles GET /v1/reservations/check?code=RSV123456.
// It joins reservation, guest, room, hotel and payment into one view;
// a reservation without a payment row gets the documented defaults
// instead of nulls.  Unknown codes yield 404.
func (h *LookupHandler) CheckReservation(c echo.Context) error {
	code := strings.TrimSpace(c.QueryParam("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}
	view, err := h.Reservations.LookupByCode(c.Request().Context(), code)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation code not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": view})
}

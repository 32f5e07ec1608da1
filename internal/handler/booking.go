package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	queuepublisher "github.com/iliyamo/hotel-reservation/internal/service"
)

// BookingHandler drives the booking workflow from the public API.  The
// guest must have been upserted first; the workflow validates that
// inside the booking transaction.
type BookingHandler struct {
	Flow *booking.Workflow
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(flow *booking.Workflow) *BookingHandler {
	if flow == nil {
		panic("nil workflow passed to NewBookingHandler")
	}
	return &BookingHandler{Flow: flow}
}

type createBookingReq struct {
	NIK      string `json:"nik"`
	RoomID   uint64 `json:"room_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Method   string `json:"method"`
}

// CreateBooking handles POST /v1/bookings.  On success it returns 201
// with the generated reservation and payment codes, the night count
// and the total amount; both records start in the Pending state.  The
// availability check and the two inserts run in one transaction, so a
// concurrent booking for the last unit gets a 409 instead of driving
// the room's availability negative.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	checkIn, err := booking.ParseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in"})
	}
	checkOut, err := booking.ParseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out"})
	}

	res, err := h.Flow.CreateBooking(c.Request().Context(), req.NIK, req.RoomID, checkIn, checkOut, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidRange):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
		case errors.Is(err, booking.ErrInvalidMethod):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment method"})
		case errors.Is(err, repository.ErrGuestNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest not registered"})
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, booking.ErrNoAvailability):
			return c.JSON(http.StatusConflict, echo.Map{"error": "no units available for the requested dates"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
		}
	}

	// Events are best-effort; a broker outage must not fail the booking.
	go func(res booking.BookingResult) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queuepublisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
			ReservationID: res.ReservationID,
			PaymentID:     res.PaymentID,
			GuestNIK:      req.NIK,
			RoomID:        req.RoomID,
			CheckIn:       req.CheckIn,
			CheckOut:      req.CheckOut,
			Nights:        res.Nights,
			Amount:        res.Amount,
			Method:        req.Method,
		}); err != nil {
			log.Printf("booking: publish booking.created failed: %v", err)
		}
	}(*res)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id": res.ReservationID,
		"payment_id":     res.PaymentID,
		"nights":         res.Nights,
		"amount":         res.Amount,
	})
}

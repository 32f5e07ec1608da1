package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// GuestHandler exposes the guest upsert endpoint.  Guests submit their
// contact details right before booking; the record is keyed by NIK and
// refreshed on every submission.
type GuestHandler struct {
	Guests *repository.GuestRepo
}

// NewGuestHandler constructs a GuestHandler.
func NewGuestHandler(guests *repository.GuestRepo) *GuestHandler {
	if guests == nil {
		panic("nil repository passed to NewGuestHandler")
	}
	return &GuestHandler{Guests: guests}
}

type upsertGuestReq struct {
	NIK   string `json:"nik"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpsertGuest handles POST /v1/guests.  All four fields are required;
// an existing NIK has its contact details overwritten.
func (h *GuestHandler) UpsertGuest(c echo.Context) error {
	var req upsertGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.NIK = strings.TrimSpace(req.NIK)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.NIK == "" || req.Name == "" || req.Email == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nik, name, email and phone are required"})
	}

	if err := h.Guests.Upsert(c.Request().Context(), req.NIK, req.Name, req.Email, req.Phone); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save guest"})
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": true})
}

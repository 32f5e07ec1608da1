package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	queuepublisher "github.com/iliyamo/hotel-reservation/internal/service"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// AdminHandler bundles dependencies for the operator console: login,
// the payment listing and the status transition endpoint.  All routes
// except login sit behind the AdminAuth middleware.
type AdminHandler struct {
	Cfg      config.Config
	Admins   *repository.AdminRepo
	Payments *repository.PaymentRepo
	Flow     *booking.Workflow
}

// NewAdminHandler constructs an AdminHandler with the provided dependencies.
func NewAdminHandler(cfg config.Config, admins *repository.AdminRepo, payments *repository.PaymentRepo, flow *booking.Workflow) *AdminHandler {
	if admins == nil || payments == nil || flow == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Admins: admins, Payments: payments, Flow: flow}
}

// ----- DTOs -----

type adminLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateStatusReq struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// Login handles POST /v1/admin/login.  It verifies the bcrypt password
// hash and returns a signed, time-limited session token.  Both a
// missing account and a wrong password produce the same response so
// the endpoint does not leak which admins exist.
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	session, err := utils.NewSessionToken(h.Cfg.JWTSecret, admin.ID, admin.Name, h.Cfg.SessionTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":   session.Token,
		"expires": session.Exp,
		"name":    admin.Name,
	})
}

// ListPayments handles GET /v1/admin/payments.  Every payment is
// returned with its guest, room type and hotel, newest first, along
// with the total income across Paid payments.
func (h *AdminHandler) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()
	payments, err := h.Payments.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	total, err := h.Payments.TotalIncome(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"payments":     payments,
		"total_income": total,
	})
}

// UpdatePaymentStatus handles PUT /v1/admin/payments.  The new status
// must be Pending, Paid or Failed; the linked reservation mirrors it
// (Paid -> Confirmed, Failed -> Cancelled) inside the same
// transaction.  Any status may move to any other status, which lets an
// operator correct a mistaken settlement.
func (h *AdminHandler) UpdatePaymentStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PaymentID = strings.TrimSpace(req.PaymentID)
	if req.PaymentID == "" || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_id and status are required"})
	}

	change, err := h.Flow.UpdatePaymentStatus(c.Request().Context(), req.PaymentID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		case errors.Is(err, repository.ErrPaymentNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		case errors.Is(err, booking.ErrConsistency):
			// Rolled back, but the payment->reservation link is broken;
			// do not mask it as a generic failure.
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment and reservation status out of step"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment status"})
		}
	}

	go func(change booking.StatusChange) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queuepublisher.PublishPaymentSettled(ctx, queue.PaymentSettledEvent{
			PaymentID:         change.PaymentID,
			ReservationID:     change.ReservationID,
			PaymentStatus:     change.PaymentStatus,
			ReservationStatus: change.ReservationStatus,
		}); err != nil {
			log.Printf("admin: publish payment.settled failed: %v", err)
		}
	}(*change)

	return c.JSON(http.StatusOK, echo.Map{
		"payment_id":         change.PaymentID,
		"payment_status":     change.PaymentStatus,
		"reservation_id":     change.ReservationID,
		"reservation_status": change.ReservationStatus,
	})
}

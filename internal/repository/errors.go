// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the booking workflow to distinguish between different
// failure scenarios without inspecting driver-specific errors.
package repository

import "errors"

// ErrRoomNotFound is returned when a referenced room does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrRoomNotFound = errors.New("room not found")

// ErrGuestNotFound is returned when a booking references a guest NIK
// that has not been upserted yet.
var ErrGuestNotFound = errors.New("guest not found")

// ErrReservationNotFound is returned when a reservation code does not
// match any stored reservation.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrPaymentNotFound is returned when a payment id does not match any
// stored payment.
var ErrPaymentNotFound = errors.New("payment not found")

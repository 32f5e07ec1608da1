// Package booking implements the core of the service: stay range
// validation, nightly pricing, the payment/reservation status mapping
// and the transactional workflow that keeps the two ledgers
// consistent.
package booking

import "errors"

// ErrInvalidRange is returned when a stay range is malformed: missing
// dates or check-out not strictly after check-in.
var ErrInvalidRange = errors.New("invalid stay range")

// ErrInvalidStatus is returned when a payment status outside the
// enumerated set is submitted.
var ErrInvalidStatus = errors.New("invalid payment status")

// ErrInvalidMethod is returned when a payment method outside the
// enumerated set is submitted.
var ErrInvalidMethod = errors.New("invalid payment method")

// ErrNoAvailability is returned when a booking is attempted against a
// room with no free units left over the requested range.
var ErrNoAvailability = errors.New("no units available for the requested dates")

// ErrConsistency is returned when the paired payment+reservation
// update could not be applied as a whole.  The surrounding transaction
// is rolled back, so no partial state is left behind, but callers must
// be able to tell this apart from an ordinary persistence failure.
var ErrConsistency = errors.New("payment and reservation status out of step")

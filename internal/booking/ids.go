package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Reservation and payment codes are a 3-letter prefix followed by six
// digits, e.g. RSV042117.  They are the identifiers guests share over
// the phone, so they stay short; collisions are handled by a bounded
// insert retry in the workflow.

const (
	reservationPrefix = "RSV"
	paymentPrefix     = "PAY"
)

// NewReservationID returns a fresh reservation code.
func NewReservationID() (string, error) { return newCode(reservationPrefix) }

// NewPaymentID returns a fresh payment code.
func NewPaymentID() (string, error) { return newCode(paymentPrefix) }

// newCode draws six cryptographically random digits and prepends the
// prefix, zero-padding to keep the code a fixed nine characters.
func newCode(prefix string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", prefix, n.Int64()), nil
}

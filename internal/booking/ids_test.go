package booking_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/booking"
)

func TestNewReservationID(t *testing.T) {
	pattern := regexp.MustCompile(`^RSV\d{6}$`)
	for i := 0; i < 50; i++ {
		id, err := booking.NewReservationID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
	}
}

func TestNewPaymentID(t *testing.T) {
	pattern := regexp.MustCompile(`^PAY\d{6}$`)
	for i := 0; i < 50; i++ {
		id, err := booking.NewPaymentID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
	}
}

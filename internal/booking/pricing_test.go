package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-reservation/internal/booking"
)

func TestTotalCost(t *testing.T) {
	// Two nights at Rp 500.000.
	assert.Equal(t, int64(1_000_000), booking.TotalCost(500_000, 2))
	assert.Equal(t, int64(500_000), booking.TotalCost(500_000, 1))
	assert.Equal(t, int64(0), booking.TotalCost(0, 7))
	assert.Equal(t, int64(21_000_000), booking.TotalCost(700_000, 30))
}

package booking

import "time"

// Overlaps reports whether two half-open date ranges [aStart, aEnd)
// and [bStart, bEnd) share at least one night.  Ranges that only touch
// at a boundary do not overlap: a guest checking out on the morning a
// new guest checks in frees the unit.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidateStayRange rejects malformed stay ranges before any
// computation or mutation happens.  Check-out must be strictly after
// check-in; equal or reversed dates are an error rather than a
// silently floored one-night stay.
func ValidateStayRange(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return ErrInvalidRange
	}
	if !checkOut.After(checkIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights returns the number of nights between check-in and check-out,
// rounding partial days up and never returning less than 1.  Callers
// are expected to have validated the range first; the floor only
// guards against a zero-length stay slipping through.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		n++
	}
	if n < 1 {
		return 1
	}
	return n
}

// ParseDate parses a calendar date in the wire format used by every
// endpoint ("2006-01-02"), anchored to UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

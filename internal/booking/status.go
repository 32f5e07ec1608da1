package booking

// Payment statuses.  The payment status is the authoritative field;
// the reservation status is derived from it and never set on its own.
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentFailed  = "Failed"
)

// Reservation statuses, mirrors of the payment statuses above.
const (
	ReservationPending   = "Pending"
	ReservationConfirmed = "Confirmed"
	ReservationCancelled = "Cancelled"
)

// Payment methods accepted at booking time.
const (
	MethodCreditCard     = "Credit Card"
	MethodBankTransfer   = "Bank Transfer"
	MethodVirtualAccount = "Virtual Account"
)

// ValidPaymentStatus reports whether s is one of the enumerated
// payment statuses.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is one of the enumerated
// payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCreditCard, MethodBankTransfer, MethodVirtualAccount:
		return true
	}
	return false
}

// ReservationStatusFor maps a payment status to the reservation status
// that must mirror it: Paid confirms, Failed cancels, Pending stays
// pending.  The mapping ignores the reservation's prior state; admins
// may move a payment between any two statuses, including un-paying a
// settled one, and the reservation follows.
func ReservationStatusFor(paymentStatus string) string {
	switch paymentStatus {
	case PaymentPaid:
		return ReservationConfirmed
	case PaymentFailed:
		return ReservationCancelled
	default:
		return ReservationPending
	}
}

package stripe

import "strings"

// NormalizePaymentStatus maps a Checkout Session payment_status onto the
// three states the shop cares about: paid, unpaid or none.
func NormalizePaymentStatus(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "none"
	}
	switch strings.TrimSpace(*s) {
	case "paid", "no_payment_required":
		return "paid"
	case "unpaid":
		return "unpaid"
	default:
		return strings.TrimSpace(*s)
	}
}

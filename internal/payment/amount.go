package payment

import (
	"regexp"
	"strings"
)

// DefaultAmount is charged when the caller gives no usable amount
const DefaultAmount = "0.001"

var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,6})?$`)

// NormalizeAmount returns amount when it is a positive fixed-point decimal
// with at most six fractional digits, otherwise fallback.
func NormalizeAmount(amount, fallback string) string {
	if fallback == "" || !isPositiveAmount(fallback) {
		fallback = DefaultAmount
	}
	amount = strings.TrimSpace(amount)
	if !isPositiveAmount(amount) {
		return fallback
	}
	return amount
}

func isPositiveAmount(s string) bool {
	if !amountPattern.MatchString(s) {
		return false
	}
	return strings.Trim(s, "0.") != ""
}

package payment

import (
	"errors"
	"fmt"
)

// ErrPaymentNotConfigured means no usable Circle credentials were supplied.
// It selects the simulated path and is never surfaced to callers.
var ErrPaymentNotConfigured = errors.New("payment provider not configured")

// PaymentTransportError wraps any failure talking to the payment provider
type PaymentTransportError struct {
	Status int // zero when no response was received
	Err    error
}

func (e *PaymentTransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("payment provider returned HTTP %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("payment provider unreachable: %v", e.Err)
}

func (e *PaymentTransportError) Unwrap() error {
	return e.Err
}

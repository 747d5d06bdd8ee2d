package enums

import "fmt"

// CheckoutState is the client-visible phase of a session's order workflow.
// order_pending means sign-in was initiated but the order write has not
// succeeded yet; the session may retry the write without re-initiating auth.
type CheckoutState string

const (
	CheckoutStateForm                 CheckoutState = "form"
	CheckoutStateOrderPending         CheckoutState = "order_pending"
	CheckoutStateAwaitingVerification CheckoutState = "awaiting_verification"
)

var validCheckoutStates = []CheckoutState{
	CheckoutStateForm,
	CheckoutStateOrderPending,
	CheckoutStateAwaitingVerification,
}

// String implements fmt.Stringer.
func (c CheckoutState) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutState.
func (c CheckoutState) IsValid() bool {
	for _, candidate := range validCheckoutStates {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutState converts raw input into a CheckoutState.
func ParseCheckoutState(value string) (CheckoutState, error) {
	for _, candidate := range validCheckoutStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout state %q", value)
}

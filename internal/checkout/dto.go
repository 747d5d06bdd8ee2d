package checkout

import "github.com/watchlab/storefront-backend/pkg/enums"

// CheckoutInput is the contact and shipping form a shopper submits.
type CheckoutInput struct {
	CustomerName    string `json:"customer_name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,max=40"`
	ShippingAddress string `json:"shipping_address" validate:"required,max=500"`
}

// Result reports the outcome of a successful submit or retry.
type Result struct {
	OrderNumber string              `json:"order_number"`
	Email       string              `json:"email"`
	State       enums.CheckoutState `json:"state"`
}

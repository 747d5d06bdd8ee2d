package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/watchlab/storefront-backend/pkg/enums"
)

// Order is the persisted, immutable record of a completed checkout. The
// storefront never updates it after creation; status transitions happen
// out-of-band by an operator.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	Email           string            `gorm:"column:email;not null"`
	Phone           string            `gorm:"column:phone;not null"`
	ShippingAddress string            `gorm:"column:shipping_address;not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	LineItems       []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

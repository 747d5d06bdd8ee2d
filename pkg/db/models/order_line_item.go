package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/watchlab/storefront-backend/pkg/enums"
)

// OrderLineItem is the snapshot of one cart line embedded in an order.
// The price is the one captured at add-time, never re-derived.
type OrderLineItem struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID          `gorm:"column:order_id;type:uuid;not null"`
	ProductName    string             `gorm:"column:product_name;not null"`
	Color          enums.VariantColor `gorm:"column:color;type:text;not null"`
	Size           enums.VariantSize  `gorm:"column:size;type:text;not null"`
	UnitPriceCents int64              `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
}

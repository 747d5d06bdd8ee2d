package catalog

import (
	"github.com/watchlab/storefront-backend/pkg/enums"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
)

// The store sells exactly one product; only its color/size combination varies.
const (
	ProductName    = "SmartWatch Pro Max"
	UnitPriceCents = int64(49999)
)

// Product describes the single catalog entry and its purchasable variants.
type Product struct {
	Name           string               `json:"name"`
	UnitPriceCents int64                `json:"unit_price_cents"`
	Colors         []enums.VariantColor `json:"colors"`
	Sizes          []enums.VariantSize  `json:"sizes"`
}

// Selection is a validated color/size pair. Two selections with equal fields
// are interchangeable; there is no per-variant identity.
type Selection struct {
	Color enums.VariantColor
	Size  enums.VariantSize
}

// Get returns the catalog entry.
func Get() Product {
	return Product{
		Name:           ProductName,
		UnitPriceCents: UnitPriceCents,
		Colors:         enums.VariantColors(),
		Sizes:          enums.VariantSizes(),
	}
}

// ValidateSelection checks the raw color/size pair against the catalog.
func ValidateSelection(color, size string) (Selection, error) {
	parsedColor, err := enums.ParseVariantColor(color)
	if err != nil {
		return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown product color").
			WithDetails(map[string]any{"color": color})
	}
	parsedSize, err := enums.ParseVariantSize(size)
	if err != nil {
		return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown product size").
			WithDetails(map[string]any{"size": size})
	}
	return Selection{Color: parsedColor, Size: parsedSize}, nil
}

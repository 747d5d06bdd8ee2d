package enums

import "fmt"

// VariantColor enumerates the purchasable colors of the product.
type VariantColor string

const (
	VariantColorMidnightBlack VariantColor = "Midnight Black"
	VariantColorSilver        VariantColor = "Silver"
	VariantColorRoseGold      VariantColor = "Rose Gold"
)

var validVariantColors = []VariantColor{
	VariantColorMidnightBlack,
	VariantColorSilver,
	VariantColorRoseGold,
}

func (v VariantColor) String() string {
	return string(v)
}

func (v VariantColor) IsValid() bool {
	for _, candidate := range validVariantColors {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVariantColor converts raw input into a VariantColor.
func ParseVariantColor(value string) (VariantColor, error) {
	for _, candidate := range validVariantColors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid variant color %q", value)
}

// VariantColors lists the catalog's colors in display order.
func VariantColors() []VariantColor {
	return append([]VariantColor{}, validVariantColors...)
}

// VariantSize enumerates the purchasable case sizes of the product.
type VariantSize string

const (
	VariantSize41mm VariantSize = "41mm"
	VariantSize45mm VariantSize = "45mm"
)

var validVariantSizes = []VariantSize{
	VariantSize41mm,
	VariantSize45mm,
}

func (v VariantSize) String() string {
	return string(v)
}

func (v VariantSize) IsValid() bool {
	for _, candidate := range validVariantSizes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVariantSize converts raw input into a VariantSize.
func ParseVariantSize(value string) (VariantSize, error) {
	for _, candidate := range validVariantSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid variant size %q", value)
}

// VariantSizes lists the catalog's sizes in display order.
func VariantSizes() []VariantSize {
	return append([]VariantSize{}, validVariantSizes...)
}

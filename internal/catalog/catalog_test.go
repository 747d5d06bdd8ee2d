package catalog

import (
	"testing"

	"github.com/watchlab/storefront-backend/pkg/enums"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
)

func TestGetReturnsAllVariants(t *testing.T) {
	product := Get()
	if product.Name != "SmartWatch Pro Max" {
		t.Fatalf("unexpected product name %q", product.Name)
	}
	if product.UnitPriceCents != 49999 {
		t.Fatalf("unexpected price %d", product.UnitPriceCents)
	}
	if len(product.Colors) != 3 {
		t.Fatalf("expected 3 colors, got %d", len(product.Colors))
	}
	if len(product.Sizes) != 2 {
		t.Fatalf("expected 2 sizes, got %d", len(product.Sizes))
	}
}

func TestValidateSelection(t *testing.T) {
	sel, err := ValidateSelection("Rose Gold", "45mm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Color != enums.VariantColorRoseGold || sel.Size != enums.VariantSize45mm {
		t.Fatalf("unexpected selection %+v", sel)
	}
}

func TestValidateSelectionRejectsUnknownColor(t *testing.T) {
	_, err := ValidateSelection("Neon Green", "41mm")
	if err == nil {
		t.Fatal("expected error for unknown color")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestValidateSelectionRejectsUnknownSize(t *testing.T) {
	_, err := ValidateSelection("Silver", "50mm")
	if err == nil {
		t.Fatal("expected error for unknown size")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

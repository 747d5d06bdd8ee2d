package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/watchlab/storefront-backend/pkg/db/models"
)

// Repository persists orders and reads them back for reporting.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}

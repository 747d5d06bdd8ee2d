package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/watchlab/storefront-backend/internal/orders"
	"github.com/watchlab/storefront-backend/internal/support"
	"github.com/watchlab/storefront-backend/pkg/db"
	"github.com/watchlab/storefront-backend/pkg/db/models"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
	"github.com/watchlab/storefront-backend/pkg/genai"
	"github.com/watchlab/storefront-backend/pkg/logger"
)

// recentMessageLimit bounds the chat slice in the overview snapshot.
const recentMessageLimit = 50

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Stats is the order-level aggregate shown on the dashboard.
type Stats struct {
	TotalOrders    int             `json:"total_orders"`
	TotalCustomers int             `json:"total_customers"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// Overview is a point-in-time snapshot; nothing is cached between calls.
type Overview struct {
	Stats          Stats                `json:"stats"`
	Orders         []models.Order       `json:"orders"`
	RecentMessages []models.ChatMessage `json:"recent_messages"`
}

// Service backs the operator dashboard.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	GetOrder(ctx context.Context, orderNumber string) (*models.Order, error)
	DraftReply(ctx context.Context, message string) (string, error)
}

type service struct {
	ordersRepo orders.Repository
	chatRepo   support.Repository
	genai      completer
	logg       *logger.Logger
}

// NewService builds the admin service. The text-generation client is
// optional; without it DraftReply degrades to the canned fallback.
func NewService(ordersRepo orders.Repository, chatRepo support.Repository, genaiClient completer, logg *logger.Logger) (Service, error) {
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if chatRepo == nil {
		return nil, fmt.Errorf("chat repository required")
	}
	return &service{
		ordersRepo: ordersRepo,
		chatRepo:   chatRepo,
		genai:      genaiClient,
		logg:       logg,
	}, nil
}

// Aggregate folds the order list into dashboard stats. Customers are counted
// by distinct email, compared byte-for-byte; revenue is the sum of line-item
// prices in dollars.
func Aggregate(orderList []models.Order) Stats {
	emails := make(map[string]struct{}, len(orderList))
	revenue := decimal.Zero

	for _, order := range orderList {
		emails[order.Email] = struct{}{}
		for _, item := range order.LineItems {
			revenue = revenue.Add(decimal.NewFromInt(item.UnitPriceCents).Shift(-2))
		}
	}

	return Stats{
		TotalOrders:    len(orderList),
		TotalCustomers: len(emails),
		TotalRevenue:   revenue,
	}
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	orderList, err := s.ordersRepo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "orders could not be read")
	}

	messages, err := s.chatRepo.ListRecent(ctx, recentMessageLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "chat log could not be read")
	}

	return &Overview{
		Stats:          Aggregate(orderList),
		Orders:         orderList,
		RecentMessages: messages,
	}, nil
}

// GetOrder looks up a single order by its customer-facing reference.
func (s *service) GetOrder(ctx context.Context, orderNumber string) (*models.Order, error) {
	trimmed := strings.TrimSpace(orderNumber)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}

	order, err := s.ordersRepo.FindByOrderNumber(ctx, trimmed)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order could not be read")
	}
	return order, nil
}

// DraftReply asks the text-generation collaborator for a suggested response
// to a customer message. Collaborator failure never fails the request; the
// operator gets the fallback text instead.
func (s *service) DraftReply(ctx context.Context, message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "message required")
	}

	if s.genai == nil {
		return genai.Fallback, nil
	}

	text, err := s.genai.Complete(ctx, trimmed)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "draft reply generation failed", err)
		}
		return genai.Fallback, nil
	}
	return text, nil
}

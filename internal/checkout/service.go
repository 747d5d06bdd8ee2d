package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watchlab/storefront-backend/internal/auth"
	"github.com/watchlab/storefront-backend/internal/cart"
	"github.com/watchlab/storefront-backend/internal/orders"
	"github.com/watchlab/storefront-backend/pkg/db/models"
	"github.com/watchlab/storefront-backend/pkg/enums"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
	"github.com/watchlab/storefront-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes the cart-to-order workflow. Checkout succeeds only when
// both the sign-in initiation and the order write have succeeded; a write
// failure after a delivered magic link parks the session in order_pending so
// the persist can be retried without emailing the shopper again.
type Service interface {
	Submit(ctx context.Context, sessionID string, input CheckoutInput) (*Result, error)
	Retry(ctx context.Context, sessionID string) (*Result, error)
	State(sessionID string) enums.CheckoutState
	Sweep(now time.Time) int
}

type pendingCheckout struct {
	state      enums.CheckoutState
	order      *models.Order
	lastAccess time.Time
}

type service struct {
	tx         txRunner
	cartSvc    cart.Service
	ordersRepo orders.Repository
	magicLink  auth.MagicLinkSender
	logg       *logger.Logger

	mu       sync.Mutex
	sessions map[string]*pendingCheckout
	ttl      time.Duration
	now      func() time.Time
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartSvc cart.Service,
	ordersRepo orders.Repository,
	magicLink auth.MagicLinkSender,
	logg *logger.Logger,
	sessionTTL time.Duration,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if magicLink == nil {
		return nil, fmt.Errorf("magic link sender required")
	}
	if sessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &service{
		tx:         tx,
		cartSvc:    cartSvc,
		ordersRepo: ordersRepo,
		magicLink:  magicLink,
		logg:       logg,
		sessions:   make(map[string]*pendingCheckout),
		ttl:        sessionTTL,
		now:        time.Now,
	}, nil
}

func (s *service) Submit(ctx context.Context, sessionID string, input CheckoutInput) (*Result, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	switch s.State(sessionID) {
	case enums.CheckoutStateOrderPending:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order persist pending, use retry").
			WithDetails(map[string]any{"state": enums.CheckoutStateOrderPending})
	case enums.CheckoutStateAwaitingVerification:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already submitted").
			WithDetails(map[string]any{"state": enums.CheckoutStateAwaitingVerification})
	}

	lines := s.cartSvc.List(ctx, sessionID)
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}

	// Initiate sign-in first: an order must never exist for an email that was
	// never sent a link. A failure here leaves the session untouched.
	if err := s.magicLink.SendMagicLink(ctx, input.Email); err != nil {
		return nil, err
	}

	order := buildOrder(input, lines)

	if err := s.persist(ctx, order); err != nil {
		s.setState(sessionID, &pendingCheckout{
			state: enums.CheckoutStateOrderPending,
			order: order,
		})
		if s.logg != nil {
			s.logg.Error(s.logg.WithOrderNumber(ctx, order.OrderNumber), "order persist failed after sign-in initiation", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order could not be saved").
			WithDetails(map[string]any{"state": enums.CheckoutStateOrderPending})
	}

	return s.finish(ctx, sessionID, order), nil
}

func (s *service) Retry(ctx context.Context, sessionID string) (*Result, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session required")
	}

	pending := s.pending(sessionID)
	if pending == nil || pending.state != enums.CheckoutStateOrderPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no pending order to retry")
	}

	// The magic link already went out; only the write is replayed.
	if err := s.persist(ctx, pending.order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order could not be saved").
			WithDetails(map[string]any{"state": enums.CheckoutStateOrderPending})
	}

	return s.finish(ctx, sessionID, pending.order), nil
}

func (s *service) State(sessionID string) enums.CheckoutState {
	if pending := s.pending(sessionID); pending != nil {
		return pending.state
	}
	return enums.CheckoutStateForm
}

// Sweep drops session records idle past the TTL and reports how many were
// removed. An order already persisted is unaffected; only the in-memory
// state machine is reclaimed.
func (s *service) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sessionID, pending := range s.sessions {
		if now.Sub(pending.lastAccess) > s.ttl {
			delete(s.sessions, sessionID)
			removed++
		}
	}
	return removed
}

func (s *service) persist(ctx context.Context, order *models.Order) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.ordersRepo.WithTx(tx).Create(ctx, order)
		return err
	})
}

func (s *service) finish(ctx context.Context, sessionID string, order *models.Order) *Result {
	// The cart is consumed only once the order is durably written.
	s.cartSvc.Clear(ctx, sessionID)
	s.setState(sessionID, &pendingCheckout{
		state: enums.CheckoutStateAwaitingVerification,
		order: order,
	})

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderNumber(ctx, order.OrderNumber), "checkout completed, awaiting email verification")
	}

	return &Result{
		OrderNumber: order.OrderNumber,
		Email:       order.Email,
		State:       enums.CheckoutStateAwaitingVerification,
	}
}

func (s *service) pending(sessionID string) *pendingCheckout {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.sessions[sessionID]
	if pending != nil {
		pending.lastAccess = s.now()
	}
	return pending
}

func (s *service) setState(sessionID string, pending *pendingCheckout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending.lastAccess = s.now()
	s.sessions[sessionID] = pending
}

func buildOrder(input CheckoutInput, lines []cart.Line) *models.Order {
	items := make([]models.OrderLineItem, len(lines))
	for i, line := range lines {
		items[i] = models.OrderLineItem{
			ID:             uuid.New(),
			ProductName:    line.ProductName,
			Color:          line.Color,
			Size:           line.Size,
			UnitPriceCents: line.UnitPriceCents,
		}
	}

	return &models.Order{
		ID:              uuid.New(),
		OrderNumber:     newOrderNumber(),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		Email:           strings.TrimSpace(strings.ToLower(input.Email)),
		Phone:           strings.TrimSpace(input.Phone),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		Status:          enums.OrderStatusPending,
		LineItems:       items,
	}
}

func validateInput(input CheckoutInput) error {
	missing := []string{}
	if strings.TrimSpace(input.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		missing = append(missing, "shipping_address")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required checkout fields").
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}

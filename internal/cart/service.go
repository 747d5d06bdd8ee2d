package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/watchlab/storefront-backend/internal/catalog"
	"github.com/watchlab/storefront-backend/pkg/enums"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
)

// Line is one selected variant in a session's cart. The price is captured at
// add-time and never re-derived from the catalog afterwards.
type Line struct {
	ProductName    string             `json:"product_name"`
	Color          enums.VariantColor `json:"color"`
	Size           enums.VariantSize  `json:"size"`
	UnitPriceCents int64              `json:"unit_price_cents"`
	AddedAt        time.Time          `json:"added_at"`
}

// Service owns the unpersisted, session-scoped carts. Carts live only in
// process memory and die with the session; the persistence boundary is never
// involved before checkout.
type Service interface {
	Add(ctx context.Context, sessionID, color, size string) (Line, error)
	List(ctx context.Context, sessionID string) []Line
	Clear(ctx context.Context, sessionID string)
	Sweep(now time.Time) int
}

type sessionCart struct {
	lines      []Line
	lastAccess time.Time
}

type service struct {
	mu    sync.Mutex
	carts map[string]*sessionCart
	ttl   time.Duration
	now   func() time.Time
}

// NewService builds the in-memory cart store. Carts idle longer than ttl are
// dropped by Sweep.
func NewService(ttl time.Duration) (Service, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &service{
		carts: make(map[string]*sessionCart),
		ttl:   ttl,
		now:   time.Now,
	}, nil
}

func (s *service) Add(ctx context.Context, sessionID, color, size string) (Line, error) {
	if sessionID == "" {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "session required")
	}

	selection, err := catalog.ValidateSelection(color, size)
	if err != nil {
		return Line{}, err
	}

	line := Line{
		ProductName:    catalog.ProductName,
		Color:          selection.Color,
		Size:           selection.Size,
		UnitPriceCents: catalog.UnitPriceCents,
		AddedAt:        s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[sessionID]
	if cart == nil {
		cart = &sessionCart{}
		s.carts[sessionID] = cart
	}
	// Each add is a plain append; duplicate selections are separate lines.
	cart.lines = append(cart.lines, line)
	cart.lastAccess = s.now()

	return line, nil
}

func (s *service) List(ctx context.Context, sessionID string) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[sessionID]
	if cart == nil {
		return []Line{}
	}
	cart.lastAccess = s.now()

	lines := make([]Line, len(cart.lines))
	copy(lines, cart.lines)
	return lines
}

func (s *service) Clear(ctx context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Sweep drops carts idle past the TTL and reports how many were removed.
func (s *service) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sessionID, cart := range s.carts {
		if now.Sub(cart.lastAccess) > s.ttl {
			delete(s.carts, sessionID)
			removed++
		}
	}
	return removed
}

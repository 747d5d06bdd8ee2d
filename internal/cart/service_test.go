package cart

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestAddAppendsWithoutDedup(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "session-1", "Silver", "41mm"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Add(ctx, "session-1", "Silver", "41mm"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := svc.List(ctx, "session-1")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].UnitPriceCents != 49999 {
		t.Fatalf("expected snapshot price 49999, got %d", lines[0].UnitPriceCents)
	}
}

func TestAddRejectsUnknownVariant(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.Add(context.Background(), "session-1", "Chartreuse", "41mm")
	if err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestCartsAreSessionScoped(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "session-a", "Silver", "41mm"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lines := svc.List(ctx, "session-b"); len(lines) != 0 {
		t.Fatalf("expected empty cart for other session, got %d lines", len(lines))
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "session-1", "Midnight Black", "45mm"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Clear(ctx, "session-1")

	if lines := svc.List(ctx, "session-1"); len(lines) != 0 {
		t.Fatalf("expected cleared cart, got %d lines", len(lines))
	}
}

func TestSweepDropsIdleCarts(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "session-1", "Silver", "41mm"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if removed := svc.Sweep(time.Now()); removed != 0 {
		t.Fatalf("fresh cart should survive sweep, removed=%d", removed)
	}
	if removed := svc.Sweep(time.Now().Add(2 * time.Hour)); removed != 1 {
		t.Fatalf("expected idle cart removed, removed=%d", removed)
	}
	if lines := svc.List(ctx, "session-1"); len(lines) != 0 {
		t.Fatalf("expected cart gone after sweep")
	}
}

func TestListReturnsCopy(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "session-1", "Silver", "41mm"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := svc.List(ctx, "session-1")
	lines[0].ProductName = "mutated"

	fresh := svc.List(ctx, "session-1")
	if fresh[0].ProductName != "SmartWatch Pro Max" {
		t.Fatalf("internal state should not be mutable through List")
	}
}

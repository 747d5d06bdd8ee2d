package support

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/watchlab/storefront-backend/pkg/db/models"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// failSecondInsert lets the first insert through and fails the second, to
// exercise rollback of the pair.
type failSecondInsert struct {
	Repository
	calls int
}

func (f *failSecondInsert) WithTx(tx *gorm.DB) Repository {
	return &wrappedTxRepo{inner: f.Repository.WithTx(tx), parent: f}
}

type wrappedTxRepo struct {
	inner  Repository
	parent *failSecondInsert
}

func (w *wrappedTxRepo) WithTx(tx *gorm.DB) Repository { return w }

func (w *wrappedTxRepo) Insert(ctx context.Context, message *models.ChatMessage) error {
	w.parent.calls++
	if w.parent.calls >= 2 {
		return errors.New("disk full")
	}
	return w.inner.Insert(ctx, message)
}

func (w *wrappedTxRepo) ListBySession(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	return w.inner.ListBySession(ctx, sessionID)
}

func (w *wrappedTxRepo) ListRecent(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	return w.inner.ListRecent(ctx, limit)
}

func newSupportFixture(t *testing.T) (Service, Repository) {
	t.Helper()

	db := setupChatTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(gormTxRunner{db: db}, repo, nil)
	require.NoError(t, err)
	return svc, repo
}

func TestSendWritesPair(t *testing.T) {
	svc, repo := newSupportFixture(t)
	ctx := context.Background()

	exchange, err := svc.Send(ctx, "session-1", "What is your shipping time?")
	require.NoError(t, err)

	assert.False(t, exchange.Customer.IsAutomated)
	assert.True(t, exchange.Automated.IsAutomated)
	assert.Equal(t, ReplyShipping, exchange.Automated.Message)
	assert.Equal(t, "session-1", exchange.Automated.SessionID)
	assert.True(t, exchange.Automated.CreatedAt.After(exchange.Customer.CreatedAt))

	messages, err := repo.ListBySession(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "What is your shipping time?", messages[0].Message)
	assert.Equal(t, ReplyShipping, messages[1].Message)
}

func TestSendRollsBackPairOnFailure(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewRepository(db)
	failing := &failSecondInsert{Repository: repo}

	svc, err := NewService(gormTxRunner{db: db}, failing, nil)
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), "session-1", "warranty question")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())

	messages, err := repo.ListBySession(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Empty(t, messages, "a customer message must never persist without its reply")
}

func TestSendValidation(t *testing.T) {
	svc, _ := newSupportFixture(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "", "hello")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Send(ctx, "session-1", "   ")
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestHistoryIsSessionScoped(t *testing.T) {
	svc, _ := newSupportFixture(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "session-a", "return policy?")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "session-b", "hello")
	require.NoError(t, err)

	history, err := svc.History(ctx, "session-a")
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, msg := range history {
		assert.Equal(t, "session-a", msg.SessionID)
	}
	assert.Equal(t, ReplyReturn, history[1].Message)
}

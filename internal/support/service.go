package support

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watchlab/storefront-backend/pkg/db/models"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
	"github.com/watchlab/storefront-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Exchange is the customer message and its automated reply, written as a pair.
type Exchange struct {
	Customer  models.ChatMessage `json:"customer"`
	Automated models.ChatMessage `json:"automated"`
}

// Service runs the automated support responder over the persisted chat log.
type Service interface {
	Send(ctx context.Context, sessionID, message string) (*Exchange, error)
	History(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
}

type service struct {
	tx   txRunner
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the support service.
func NewService(tx txRunner, repo Repository, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("chat repository required")
	}
	return &service{
		tx:   tx,
		repo: repo,
		logg: logg,
		now:  time.Now,
	}, nil
}

// Send stores the customer message together with its automated reply in one
// transaction; the log never holds a customer message without its reply.
func (s *service) Send(ctx context.Context, sessionID, message string) (*Exchange, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session required")
	}
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message required")
	}

	sentAt := s.now()
	customer := models.ChatMessage{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Message:     trimmed,
		IsAutomated: false,
		CreatedAt:   sentAt,
	}
	automated := models.ChatMessage{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Message:     Classify(trimmed),
		IsAutomated: true,
		// Strictly after the customer record so created_at ordering holds.
		CreatedAt: sentAt.Add(time.Millisecond),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Insert(ctx, &customer); err != nil {
			return err
		}
		return repo.Insert(ctx, &automated)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "support message could not be saved")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithSessionID(ctx, sessionID), "support exchange recorded")
	}

	return &Exchange{Customer: customer, Automated: automated}, nil
}

// History returns the session's conversation, oldest first.
func (s *service) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session required")
	}

	messages, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "support history could not be read")
	}
	return messages, nil
}

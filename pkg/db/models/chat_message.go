package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry of a session-scoped support conversation.
// Customer and automated records are written as a pair in one transaction;
// ordering by created_at ascending defines the conversation sequence.
type ChatMessage struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID   string    `gorm:"column:session_id;not null;index"`
	Message     string    `gorm:"column:message;not null"`
	IsAutomated bool      `gorm:"column:is_automated;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

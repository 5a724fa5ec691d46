package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/workshop_backend/config"
)

const (
	OutboxPublishStatusPending    = "PENDING"
	OutboxPublishStatusProcessing = "PROCESSING"
	OutboxPublishStatusFailed     = "FAILED"
	OutboxPublishStatusSent       = "SENT"
	OutboxPublishStatusDead       = "DEAD"
)

// LedgerEvent is the outbox row written in the same transaction as the
// business change it describes.
type LedgerEvent struct {
	ID               int        `gorm:"primary_key" json:"id"`
	EventId          string     `gorm:"size:36;uniqueIndex;not null" json:"event_id"`
	AggregateType    string     `gorm:"size:64;not null" json:"aggregate_type"`
	AggregateId      int        `gorm:"not null" json:"aggregate_id"`
	Action           string     `gorm:"size:64;not null" json:"action"`
	Payload          string     `gorm:"type:text" json:"payload"`
	CorrelationId    string     `gorm:"size:64" json:"correlation_id"`
	PublishStatus    string     `gorm:"size:16;not null;default:PENDING;index" json:"publish_status"`
	PublishAttempts  int        `gorm:"not null;default:0" json:"publish_attempts"`
	NextAttemptAt    *time.Time `json:"next_attempt_at"`
	LockedAt         *time.Time `json:"locked_at"`
	LockedBy         *string    `gorm:"size:36" json:"locked_by"`
	LastPublishError *string    `gorm:"type:text" json:"last_publish_error"`
	PublishedAt      *time.Time `json:"published_at"`
	PubSubMessageId  *string    `gorm:"size:128" json:"pub_sub_message_id"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func NewLedgerEvent(aggregateType string, aggregateId int, action string, payload any, correlationId string) (*LedgerEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &LedgerEvent{
		EventId:       uuid.NewString(),
		AggregateType: aggregateType,
		AggregateId:   aggregateId,
		Action:        action,
		Payload:       string(data),
		CorrelationId: correlationId,
		PublishStatus: OutboxPublishStatusPending,
	}, nil
}

func (e LedgerEvent) ToMessage() config.LedgerEventMessage {
	return config.LedgerEventMessage{
		EventId:       e.EventId,
		AggregateType: e.AggregateType,
		AggregateId:   e.AggregateId,
		Action:        e.Action,
		OccurredAt:    e.CreatedAt,
		Payload:       json.RawMessage(e.Payload),
		CorrelationId: e.CorrelationId,
	}
}

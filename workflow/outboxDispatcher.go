// Package workflow holds the background work that runs beside the ledger:
// publishing outbox events and serialising maintenance jobs.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PublishFunc sends one ledger event and returns the broker's message id.
type PublishFunc func(ctx context.Context, msg config.LedgerEventMessage) (string, error)

// OutboxDispatcher publishes committed ledger_events rows. Rows are claimed
// in a short transaction, published outside it, then marked SENT or FAILED
// with exponential backoff until MaxAttempts moves them to DEAD.
type OutboxDispatcher struct {
	DB           *gorm.DB
	Logger       *logrus.Logger
	Publish      PublishFunc
	DispatcherID string

	BatchSize      int
	PollInterval   time.Duration
	LockTimeout    time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
}

func NewOutboxDispatcher(db *gorm.DB, logger *logrus.Logger) *OutboxDispatcher {
	return &OutboxDispatcher{
		DB:             db,
		Logger:         logger,
		Publish:        config.PublishLedgerEventWithResult,
		DispatcherID:   uuid.NewString(),
		BatchSize:      50,
		PollInterval:   500 * time.Millisecond,
		LockTimeout:    30 * time.Second,
		MaxAttempts:    20,
		InitialBackoff: 5 * time.Second,
	}
}

func (d *OutboxDispatcher) Run(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		d.DispatchOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.PollInterval):
		}
	}
}

// DispatchOnce claims one batch and publishes it. It returns how many events
// were sent.
func (d *OutboxDispatcher) DispatchOnce(ctx context.Context) int {
	if d.DB == nil || d.Publish == nil {
		return 0
	}
	now := time.Now().UTC()

	claimed, err := d.claim(ctx, now)
	if err != nil {
		config.LogError(d.Logger, "workflow", "OutboxDispatcher", "claim batch", nil, err)
		return 0
	}

	var sent int
	for _, event := range claimed {
		// rows marked DEAD in the claim transaction
		if event.PublishStatus == models.OutboxPublishStatusDead {
			continue
		}
		msgId, pubErr := d.Publish(ctx, event.ToMessage())
		if pubErr != nil {
			d.markPublishFailed(ctx, event, pubErr)
			continue
		}
		d.markPublishSent(ctx, event.ID, msgId, now)
		sent++
	}
	return sent
}

func (d *OutboxDispatcher) claim(ctx context.Context, now time.Time) ([]models.LedgerEvent, error) {
	staleBefore := now.Add(-d.LockTimeout)

	var claimed []models.LedgerEvent
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Eligible:
		// - PENDING / FAILED and ready to retry
		// - PROCESSING with a stale lock (dispatcher died mid-batch)
		q := tx.
			Where(`
				(
					publish_status IN ? AND (next_attempt_at IS NULL OR next_attempt_at <= ?)
				)
				OR
				(
					publish_status = ? AND locked_at IS NOT NULL AND locked_at <= ?
				)
			`, []string{models.OutboxPublishStatusPending, models.OutboxPublishStatusFailed}, now, models.OutboxPublishStatusProcessing, staleBefore).
			Order("id ASC").
			Limit(d.BatchSize)
		if tx.Dialector.Name() != "sqlite" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}
		if err := q.Find(&claimed).Error; err != nil {
			return err
		}

		for i := range claimed {
			if d.MaxAttempts > 0 && claimed[i].PublishAttempts >= d.MaxAttempts {
				msg := fmt.Sprintf("max publish attempts exceeded (%d)", d.MaxAttempts)
				claimed[i].PublishStatus = models.OutboxPublishStatusDead
				if err := tx.Model(&models.LedgerEvent{}).Where("id = ?", claimed[i].ID).Updates(map[string]interface{}{
					"publish_status":     models.OutboxPublishStatusDead,
					"last_publish_error": &msg,
					"next_attempt_at":    nil,
					"locked_at":          nil,
					"locked_by":          nil,
				}).Error; err != nil {
					return err
				}
				continue
			}

			claimed[i].PublishStatus = models.OutboxPublishStatusProcessing
			claimed[i].LockedAt = &now
			claimed[i].LockedBy = &d.DispatcherID
			claimed[i].PublishAttempts++
			if err := tx.Model(&models.LedgerEvent{}).Where("id = ?", claimed[i].ID).Updates(map[string]interface{}{
				"publish_status":     claimed[i].PublishStatus,
				"locked_at":          claimed[i].LockedAt,
				"locked_by":          claimed[i].LockedBy,
				"publish_attempts":   gorm.Expr("publish_attempts + 1"),
				"last_publish_error": nil,
				"next_attempt_at":    nil,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return claimed, err
}

func (d *OutboxDispatcher) markPublishSent(ctx context.Context, eventId int, pubsubMsgId string, now time.Time) {
	id := pubsubMsgId
	err := d.DB.WithContext(ctx).Model(&models.LedgerEvent{}).
		Where("id = ?", eventId).
		Updates(map[string]interface{}{
			"publish_status":     models.OutboxPublishStatusSent,
			"published_at":       &now,
			"pub_sub_message_id": &id,
			"locked_at":          nil,
			"locked_by":          nil,
			"next_attempt_at":    nil,
		}).Error
	if err != nil {
		config.LogError(d.Logger, "workflow", "OutboxDispatcher", "mark sent", eventId, err)
	}
}

func (d *OutboxDispatcher) markPublishFailed(ctx context.Context, event models.LedgerEvent, err error) {
	db := d.DB.WithContext(ctx)
	msg := err.Error()
	attempt := event.PublishAttempts

	if d.MaxAttempts > 0 && attempt >= d.MaxAttempts {
		_ = db.Model(&models.LedgerEvent{}).
			Where("id = ?", event.ID).
			Updates(map[string]interface{}{
				"publish_status":     models.OutboxPublishStatusDead,
				"last_publish_error": &msg,
				"next_attempt_at":    nil,
				"locked_at":          nil,
				"locked_by":          nil,
			}).Error
		if d.Logger != nil {
			d.Logger.WithFields(logrus.Fields{
				"field":          "OutboxDispatcher",
				"event_id":       event.EventId,
				"aggregate_type": event.AggregateType,
				"aggregate_id":   event.AggregateId,
				"attempt":        attempt,
			}).Error("outbox publish moved to DEAD after max attempts: " + msg)
		}
		return
	}

	next := time.Now().UTC().Add(d.backoff(attempt))
	_ = db.Model(&models.LedgerEvent{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"publish_status":     models.OutboxPublishStatusFailed,
			"last_publish_error": &msg,
			"next_attempt_at":    &next,
			"locked_at":          nil,
			"locked_by":          nil,
		}).Error

	if d.Logger != nil {
		d.Logger.WithFields(logrus.Fields{
			"field":           "OutboxDispatcher",
			"event_id":        event.EventId,
			"attempt":         attempt,
			"next_attempt_at": next.Format(time.RFC3339Nano),
		}).Error("outbox publish failed: " + msg)
	}
}

// backoff doubles InitialBackoff per attempt, capped at ten minutes.
func (d *OutboxDispatcher) backoff(attempt int) time.Duration {
	backoff := d.InitialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
		if backoff > 10*time.Minute {
			return 10 * time.Minute
		}
	}
	return backoff
}

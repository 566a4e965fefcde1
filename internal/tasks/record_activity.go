package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/skillexchange/internal/entities"
)

// ActivityWriter persists activity events.
type ActivityWriter interface {
	LogEvent(event *entities.ActivityEvent) error
}

// RecordActivityTask writes one activity event in the background.
type RecordActivityTask struct {
	UserID      uint                    `json:"user_id"`
	Action      entities.ActivityAction `json:"action"`
	ExchangeID  *uint                   `json:"exchange_id,omitempty"`
	Description string                  `json:"description"`
	OccurredAt  time.Time               `json:"occurred_at"`
}

// Config returns the queue configuration for activity tasks.
func (t RecordActivityTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "record_activity",
		MaxAttempts: 3,
		Backoff:     10 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// Event converts the task into the entity it records.
func (t RecordActivityTask) Event() *entities.ActivityEvent {
	return &entities.ActivityEvent{
		UserID:      t.UserID,
		Action:      t.Action,
		ExchangeID:  t.ExchangeID,
		Description: t.Description,
		CreatedAt:   t.OccurredAt,
	}
}

// RecordActivityProcessor creates a processor function for RecordActivityTask.
func RecordActivityProcessor(writer ActivityWriter) backlite.QueueProcessor[RecordActivityTask] {
	return func(ctx context.Context, task RecordActivityTask) error {
		if writer == nil {
			return fmt.Errorf("activity writer not configured")
		}
		if err := writer.LogEvent(task.Event()); err != nil {
			return fmt.Errorf("record activity %s for user %d: %w", task.Action, task.UserID, err)
		}
		return nil
	}
}

// NewRecordActivityQueue creates a backlite queue for activity tasks.
func NewRecordActivityQueue(writer ActivityWriter) backlite.Queue {
	return backlite.NewQueue(RecordActivityProcessor(writer))
}

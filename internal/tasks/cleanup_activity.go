package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultActivityRetentionDays applies when a cleanup task carries no retention.
const DefaultActivityRetentionDays = 90

// ActivityCleaner deletes activity events created before a cutoff.
type ActivityCleaner interface {
	DeleteOldEvents(olderThan time.Time) (int64, error)
}

// CleanupActivityTask removes activity events older than the retention period.
type CleanupActivityTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for activity cleanup tasks.
func (t CleanupActivityTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_activity_events",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupActivityProcessor creates a processor function for CleanupActivityTask.
func CleanupActivityProcessor(cleaner ActivityCleaner) backlite.QueueProcessor[CleanupActivityTask] {
	return func(ctx context.Context, task CleanupActivityTask) error {
		_, err := RunActivityCleanup(cleaner, task.RetentionDays, time.Now())
		return err
	}
}

// RunActivityCleanup deletes events older than retentionDays before now.
func RunActivityCleanup(cleaner ActivityCleaner, retentionDays int, now time.Time) (int64, error) {
	if cleaner == nil {
		return 0, fmt.Errorf("activity cleaner not configured")
	}
	if retentionDays <= 0 {
		retentionDays = DefaultActivityRetentionDays
	}

	cutoff := now.Add(-time.Duration(retentionDays) * 24 * time.Hour)
	deleted, err := cleaner.DeleteOldEvents(cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup activity events: %w", err)
	}

	log.Printf("[TASK] Cleaned up %d activity events older than %d days", deleted, retentionDays)
	return deleted, nil
}

// NewCleanupActivityQueue creates a backlite queue for activity cleanup tasks.
func NewCleanupActivityQueue(cleaner ActivityCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupActivityProcessor(cleaner))
}

// Package activity records what users do on the network: registrations,
// logins and exchange requests/acceptances.
package activity

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/skillexchange/internal/database/activity"
	"github.com/mrlokans/skillexchange/internal/entities"
	"github.com/mrlokans/skillexchange/internal/tasks"
)

// DefaultFeedSize is how many events the activity feed shows.
const DefaultFeedSize = 20

// Enqueuer hands a task to the background queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// Service records activity events through the task queue, writing directly
// in a goroutine when no queue is configured or enqueueing fails.
type Service struct {
	repo  *activity.Repository
	queue Enqueuer
	wg    sync.WaitGroup
}

// NewService creates a new activity service. queue may be nil.
func NewService(repo *activity.Repository, queue Enqueuer) *Service {
	return &Service{repo: repo, queue: queue}
}

// Record stores an event without blocking the caller.
func (s *Service) Record(userID uint, action entities.ActivityAction, exchangeID *uint, description string) {
	task := tasks.RecordActivityTask{
		UserID:      userID,
		Action:      action,
		ExchangeID:  exchangeID,
		Description: truncate(description, 500),
		OccurredAt:  time.Now(),
	}

	if s.queue != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := s.queue.Enqueue(ctx, task)
		cancel()
		if err == nil {
			return
		}
		log.Printf("Failed to enqueue activity event, writing directly: %v", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(task.Event()); err != nil {
			log.Printf("Failed to log activity event: %v", err)
		}
	}()
}

// Wait blocks until background writes started by Record have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// RecentForUser returns a user's latest events, newest first.
func (s *Service) RecentForUser(userID uint, limit int) ([]entities.ActivityEvent, error) {
	if limit <= 0 {
		limit = DefaultFeedSize
	}
	return s.repo.GetEventsForUser(userID, limit)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

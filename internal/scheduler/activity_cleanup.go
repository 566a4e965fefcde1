package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/skillexchange/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateCronSchedule checks a five-field cron expression or a descriptor
// such as "@daily" or "@every 6h".
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// TaskEnqueuer hands a task to the background queue.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// ActivityCleanupScheduler periodically prunes old activity events. When a
// task queue is available the cleanup is enqueued so it gets retries;
// otherwise it runs inline on the cron goroutine.
type ActivityCleanupScheduler struct {
	cleaner       tasks.ActivityCleaner
	queue         TaskEnqueuer
	schedule      string
	retentionDays int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isStopping bool
	isCleaning bool
	cancelFunc context.CancelFunc
}

// NewActivityCleanupScheduler creates a new scheduler instance. queue may be nil.
func NewActivityCleanupScheduler(cleaner tasks.ActivityCleaner, queue TaskEnqueuer, schedule string, retentionDays int) *ActivityCleanupScheduler {
	return &ActivityCleanupScheduler{
		cleaner:       cleaner,
		queue:         queue,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules the cleanup job. An empty schedule disables it.
func (s *ActivityCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Printf("Activity cleanup scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Activity cleanup scheduler: started with schedule '%s', retention %d days",
		s.schedule, s.retentionDays)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running cleanup to
// finish. The lock is released while waiting because the job takes it too.
func (s *ActivityCleanupScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning || s.isStopping {
		s.mu.Unlock()
		return
	}
	s.isStopping = true
	c := s.cron
	cancel := s.cancelFunc
	s.mu.Unlock()

	// Stop accepting new jobs and wait for running jobs to complete
	<-c.Stop().Done()

	if cancel != nil {
		cancel()
	}

	s.mu.Lock()
	s.isRunning = false
	s.isStopping = false
	s.cancelFunc = nil
	s.mu.Unlock()

	log.Printf("Activity cleanup scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *ActivityCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will occur
func (s *ActivityCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *ActivityCleanupScheduler) runCleanup() {
	s.mu.Lock()
	if s.isCleaning {
		s.mu.Unlock()
		log.Printf("Activity cleanup: skipped (already running)")
		return
	}
	s.isCleaning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isCleaning = false
		s.mu.Unlock()
	}()

	if s.queue != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := s.queue.Enqueue(ctx, tasks.CleanupActivityTask{RetentionDays: s.retentionDays})
		if err == nil {
			return
		}
		log.Printf("Activity cleanup: enqueue failed, running inline: %v", err)
	}

	if _, err := tasks.RunActivityCleanup(s.cleaner, s.retentionDays, time.Now()); err != nil {
		log.Printf("Activity cleanup: %v", err)
	}
}

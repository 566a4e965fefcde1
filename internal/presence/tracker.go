// Package presence keeps a per-process record of recently active users.
package presence

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultWindow is how long a user counts as live after their last request.
const DefaultWindow = 5 * time.Minute

// Tracker maps user IDs to the time they were last seen. Entries older than
// the window are ignored on read and evicted by Sweep.
type Tracker struct {
	mu       sync.Mutex
	lastSeen map[uint]time.Time
	window   time.Duration
	now      func() time.Time

	cron    *cron.Cron
	running bool
}

// NewTracker creates a tracker. A non-positive window falls back to
// DefaultWindow.
func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{
		lastSeen: make(map[uint]time.Time),
		window:   window,
		now:      time.Now,
	}
}

// Touch marks a user as seen now. Anonymous visitors (ID 0) are not tracked.
func (t *Tracker) Touch(userID uint) {
	if userID == 0 {
		return
	}
	t.mu.Lock()
	t.lastSeen[userID] = t.now()
	t.mu.Unlock()
}

// Count returns the number of users seen within the window.
func (t *Tracker) Count() int {
	cutoff := t.now().Add(-t.window)

	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, seen := range t.lastSeen {
		if seen.After(cutoff) {
			n++
		}
	}
	return n
}

// LiveCount is the number shown to a visitor: tracked users plus the
// visitor themselves when anonymous, never less than one.
func (t *Tracker) LiveCount(authenticated bool) int {
	n := t.Count()
	if !authenticated {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Sweep removes stale entries and returns how many were dropped.
func (t *Tracker) Sweep() int {
	cutoff := t.now().Add(-t.window)

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, seen := range t.lastSeen {
		if !seen.After(cutoff) {
			delete(t.lastSeen, id)
			removed++
		}
	}
	return removed
}

// Start runs Sweep on the given cron schedule until Stop is called.
func (t *Tracker) Start(schedule string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return nil
	}

	c := cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
	if _, err := c.AddFunc(schedule, func() {
		if removed := t.Sweep(); removed > 0 {
			log.Printf("Presence: evicted %d stale users", removed)
		}
	}); err != nil {
		return fmt.Errorf("invalid presence sweep schedule %q: %w", schedule, err)
	}

	c.Start()
	t.cron = c
	t.running = true
	log.Printf("Presence tracker: sweeping with schedule '%s', window %v", schedule, t.window)
	return nil
}

// Stop halts the sweep job and waits for a running sweep to finish.
func (t *Tracker) Stop() {
	t.mu.Lock()
	c := t.cron
	running := t.running
	t.cron = nil
	t.running = false
	t.mu.Unlock()

	if !running {
		return
	}
	<-c.Stop().Done()
	log.Printf("Presence tracker: stopped")
}

// IsRunning reports whether the sweep job is scheduled.
func (t *Tracker) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

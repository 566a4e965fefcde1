// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - UserStore: Account creation and lookup (internal/auth/service.go)
//   - ProfileStore: A user with their taught and learned skills (internal/http/stores.go)
//   - SkillCatalog: Skill listing, search and teachers (internal/http/stores.go)
//   - ExchangeStore: Requesting, accepting and listing exchanges (internal/http/stores.go)
//   - StatsReader: Row counts for /api/stats (internal/http/stores.go)
//
// ## Activity Interfaces
//
//   - ActivityRecorder: Fire-and-forget event recording (internal/http/stores.go, internal/auth/handlers.go)
//   - ActivityFeed: Recent events for the current user (internal/http/stores.go)
//   - ActivityWriter / ActivityCleaner: Task queue persistence (internal/tasks/)
//
// ## Background Work Interfaces
//
//   - Enqueuer / TaskEnqueuer: Hand tasks to the backlite queue (internal/activity, internal/scheduler)
//   - PresenceTracker: Live user counting (internal/http/stores.go)
//
// # Adding a New Background Task
//
//  1. Define the task type and its queue config in internal/tasks/
//
//     type NotifyTeacherTask struct {
//         ExchangeID uint `json:"exchange_id"`
//     }
//
//     func (t NotifyTeacherTask) Config() backlite.QueueConfig
//
//  2. Register the queue in entrypoint.go
//
//  3. Enqueue it from the handler through an Enqueuer
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces

package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/skillexchange/internal/activity"
	"github.com/mrlokans/skillexchange/internal/auth"
	"github.com/mrlokans/skillexchange/internal/database"
	activityRepo "github.com/mrlokans/skillexchange/internal/database/activity"
	"github.com/mrlokans/skillexchange/internal/database/exchanges"
	"github.com/mrlokans/skillexchange/internal/database/skills"
	"github.com/mrlokans/skillexchange/internal/database/stats"
	"github.com/mrlokans/skillexchange/internal/database/users"
	"github.com/mrlokans/skillexchange/internal/http"
	"github.com/mrlokans/skillexchange/internal/presence"
	"github.com/mrlokans/skillexchange/internal/scheduler"
	"github.com/mrlokans/skillexchange/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ auth.UserStore = (*users.Repository)(nil)
var _ http.ProfileStore = (*users.Repository)(nil)

var _ http.SkillCatalog = (*skills.Repository)(nil)
var _ auth.SkillLister = (*skills.Repository)(nil)

var _ http.ExchangeStore = (*exchanges.Repository)(nil)

var _ http.StatsReader = (*stats.Repository)(nil)

var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Activity Log
// =============================================================================

var _ http.ActivityFeed = (*activity.Service)(nil)
var _ http.ActivityRecorder = (*activity.Service)(nil)
var _ auth.ActivityRecorder = (*activity.Service)(nil)

var _ tasks.ActivityWriter = (*activityRepo.Repository)(nil)
var _ tasks.ActivityCleaner = (*activityRepo.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ activity.Enqueuer = (*tasks.Client)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)

var _ http.PresenceTracker = (*presence.Tracker)(nil)
var _ http.CleanupSchedule = (*scheduler.ActivityCleanupScheduler)(nil)

package http

import (
	"time"

	"github.com/mrlokans/skillexchange/internal/entities"
)

// Each controller depends on the narrow interface below instead of concrete
// repositories, so handlers can be tested with fakes.

// ProfileStore reads a user and the skills they offer or want.
type ProfileStore interface {
	GetByID(id uint) (*entities.User, error)
	TeachingSkills(userID uint) ([]entities.TaughtSkill, error)
	LearningSkills(userID uint) ([]entities.LearnedSkill, error)
}

// SkillCatalog reads skills and who teaches them.
type SkillCatalog interface {
	ListAll() ([]entities.Skill, error)
	GetByID(id uint) (*entities.Skill, error)
	Browse(search string) ([]entities.SkillSummary, error)
	Teachers(skillID, excludeUserID uint) ([]entities.SkillTeacher, error)
}

// ExchangeStore creates, accepts and lists exchanges.
type ExchangeStore interface {
	Request(teacherID, learnerID, skillID uint) (*entities.Exchange, error)
	Accept(id, teacherID uint) error
	ForUser(userID uint) ([]entities.ExchangeView, error)
	AcceptedForUser(userID uint) ([]entities.ExchangeView, error)
}

// StatsReader reports table counts.
type StatsReader interface {
	Counts() (entities.Stats, error)
}

// ActivityFeed reads a user's recent activity.
type ActivityFeed interface {
	RecentForUser(userID uint, limit int) ([]entities.ActivityEvent, error)
}

// ActivityRecorder records user actions. Implementations must not block.
type ActivityRecorder interface {
	Record(userID uint, action entities.ActivityAction, exchangeID *uint, description string)
}

// PresenceTracker counts recently active users.
type PresenceTracker interface {
	Touch(userID uint)
	LiveCount(authenticated bool) int
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping() error
}

// CleanupSchedule reports when activity retention runs next.
type CleanupSchedule interface {
	GetNextRunTime() *time.Time
}

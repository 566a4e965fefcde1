package entities

import "time"

type ExchangeStatus string

const (
	ExchangeStatusPending  ExchangeStatus = "pending"
	ExchangeStatusAccepted ExchangeStatus = "accepted"
)

type ExchangeRole string

const (
	RoleTeaching ExchangeRole = "Teaching"
	RoleLearning ExchangeRole = "Learning"
)

// Exchange links a teacher, a learner and a skill. The (teacher, learner,
// skill) triple is unique.
type Exchange struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TeacherID   uint           `gorm:"not null;uniqueIndex:idx_exchanges_triple;index" json:"teacher_id"`
	LearnerID   uint           `gorm:"not null;uniqueIndex:idx_exchanges_triple;index" json:"learner_id"`
	SkillID     uint           `gorm:"not null;uniqueIndex:idx_exchanges_triple" json:"skill_id"`
	Status      ExchangeStatus `gorm:"size:20;default:'pending'" json:"status"`
	SessionTime *string        `gorm:"size:100" json:"session_time,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`

	Teacher User  `gorm:"foreignKey:TeacherID" json:"-"`
	Learner User  `gorm:"foreignKey:LearnerID" json:"-"`
	Skill   Skill `gorm:"foreignKey:SkillID" json:"-"`
}

// RoleFor returns the role userID plays in the exchange.
func (e Exchange) RoleFor(userID uint) ExchangeRole {
	if e.TeacherID == userID {
		return RoleTeaching
	}
	return RoleLearning
}

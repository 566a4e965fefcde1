package entities

import "time"

// Read models assembled from join queries for page rendering.

type TaughtSkill struct {
	SkillID       uint   `json:"skill_id"`
	Name          string `json:"name"`
	AvailableTime string `json:"available_time"`
}

type LearnedSkill struct {
	SkillID uint   `json:"skill_id"`
	Name    string `json:"name"`
}

// SkillSummary is a skill with the number of distinct users teaching it.
type SkillSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	TeacherCount int64  `json:"teacher_count"`
}

// SkillTeacher is a user offering a given skill.
type SkillTeacher struct {
	UserID        uint   `json:"user_id"`
	Name          string `json:"name"`
	Division      string `json:"division"`
	AvailableTime string `json:"available_time"`
}

// ExchangeView is an exchange seen from one participant's side.
type ExchangeView struct {
	ID           uint           `json:"id"`
	TeacherID    uint           `json:"teacher_id"`
	LearnerID    uint           `json:"learner_id"`
	Status       ExchangeStatus `json:"status"`
	SessionTime  *string        `json:"session_time,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	SkillName    string         `json:"skill_name"`
	PartnerName  string         `json:"partner_name"`
	PartnerEmail string         `json:"partner_email"`
	Role         ExchangeRole   `json:"role"`
}

// CanAccept reports whether the viewing user may accept this exchange.
func (v ExchangeView) CanAccept() bool {
	return v.Role == RoleTeaching && v.Status == ExchangeStatusPending
}

// Stats holds the row counts reported by the stats API.
type Stats struct {
	UserCount     int64 `json:"user_count"`
	SkillCount    int64 `json:"skill_count"`
	ExchangeCount int64 `json:"exchange_count"`
}

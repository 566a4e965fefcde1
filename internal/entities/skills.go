package entities

const DefaultSkillCategory = "General"

type Skill struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Category string `gorm:"size:50;default:'General'" json:"category"`
}

// Teaching records that a user offers to teach a skill.
type Teaching struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        uint   `gorm:"index;not null" json:"user_id"`
	SkillID       uint   `gorm:"index;not null" json:"skill_id"`
	AvailableTime string `gorm:"size:255" json:"available_time"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Skill Skill `gorm:"foreignKey:SkillID" json:"-"`
}

func (Teaching) TableName() string {
	return "user_teaches"
}

// Learning records that a user wants to learn a skill.
type Learning struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"index;not null" json:"user_id"`
	SkillID uint `gorm:"index;not null" json:"skill_id"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Skill Skill `gorm:"foreignKey:SkillID" json:"-"`
}

func (Learning) TableName() string {
	return "user_learns"
}

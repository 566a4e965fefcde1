// Package users provides database operations for user accounts and the
// skills each user teaches or wants to learn.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	err := repo.CreateWithSkills(&user, teachIDs, learnIDs, "Weekends")
//	taught, err := repo.TeachingSkills(user.ID)
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/skillexchange/internal/database"
	"github.com/mrlokans/skillexchange/internal/entities"
)

// ErrEmailTaken is returned when a user with the same email already exists.
var ErrEmailTaken = errors.New("email already exists")

// DefaultAvailableTime is stored for taught skills when no availability is given.
const DefaultAvailableTime = "Flexible"

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithSkills inserts the user together with one teaching row per
// teach skill (sharing availableTime) and one learning row per learn skill.
// Either everything is stored or nothing is.
func (r *Repository) CreateWithSkills(user *entities.User, teach, learn []uint, availableTime string) error {
	if availableTime == "" {
		availableTime = DefaultAvailableTime
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}

		for _, skillID := range teach {
			row := entities.Teaching{UserID: user.ID, SkillID: skillID, AvailableTime: availableTime}
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to add teaching skill %d: %w", skillID, err)
			}
		}

		for _, skillID := range learn {
			row := entities.Learning{UserID: user.ID, SkillID: skillID}
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to add learning skill %d: %w", skillID, err)
			}
		}
		return nil
	})
	if err != nil {
		user.ID = 0
		if database.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TeachingSkills lists the skills a user teaches with their availability.
func (r *Repository) TeachingSkills(userID uint) ([]entities.TaughtSkill, error) {
	var skills []entities.TaughtSkill
	err := r.db.Table("user_teaches AS ut").
		Select("s.id AS skill_id, s.name AS name, ut.available_time AS available_time").
		Joins("JOIN skills s ON s.id = ut.skill_id").
		Where("ut.user_id = ?", userID).
		Order("s.name").
		Scan(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load teaching skills: %w", err)
	}
	return skills, nil
}

// LearningSkills lists the skills a user wants to learn.
func (r *Repository) LearningSkills(userID uint) ([]entities.LearnedSkill, error) {
	var skills []entities.LearnedSkill
	err := r.db.Table("user_learns AS ul").
		Select("s.id AS skill_id, s.name AS name").
		Joins("JOIN skills s ON s.id = ul.skill_id").
		Where("ul.user_id = ?", userID).
		Order("s.name").
		Scan(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load learning skills: %w", err)
	}
	return skills, nil
}

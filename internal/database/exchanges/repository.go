// Package exchanges provides database operations for exchange requests
// between learners and teachers.
//
// # Usage
//
//	repo := exchanges.NewRepository(db)
//	exchange, err := repo.Request(teacherID, learnerID, skillID)
//	err = repo.Accept(exchange.ID, teacherID)
//	history, err := repo.ForUser(learnerID)
package exchanges

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/skillexchange/internal/database"
	"github.com/mrlokans/skillexchange/internal/entities"
)

var (
	// ErrExchangeExists is returned when the learner already requested the
	// same teacher and skill.
	ErrExchangeExists = errors.New("exchange already requested")

	// ErrExchangeNotFound is returned when no exchange matches both the id
	// and the accepting teacher.
	ErrExchangeNotFound = errors.New("exchange not found or unauthorized")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Request creates a pending exchange. Neither the teacher nor the skill is
// checked for existence.
func (r *Repository) Request(teacherID, learnerID, skillID uint) (*entities.Exchange, error) {
	var count int64
	err := r.db.Model(&entities.Exchange{}).
		Where("teacher_id = ? AND learner_id = ? AND skill_id = ?", teacherID, learnerID, skillID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing exchange: %w", err)
	}
	if count > 0 {
		return nil, ErrExchangeExists
	}

	exchange := &entities.Exchange{
		TeacherID: teacherID,
		LearnerID: learnerID,
		SkillID:   skillID,
		Status:    entities.ExchangeStatusPending,
	}
	if err := r.db.Omit(clause.Associations).Create(exchange).Error; err != nil {
		// a concurrent identical request won the race
		if database.IsUniqueViolation(err) {
			return nil, ErrExchangeExists
		}
		return nil, fmt.Errorf("failed to create exchange: %w", err)
	}
	return exchange, nil
}

// Accept marks the exchange accepted when teacherID is its teacher.
func (r *Repository) Accept(id, teacherID uint) error {
	result := r.db.Model(&entities.Exchange{}).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		Update("status", entities.ExchangeStatusAccepted)
	if result.Error != nil {
		return fmt.Errorf("failed to accept exchange %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExchangeNotFound
	}
	return nil
}

const viewSelect = `
SELECT e.id, e.teacher_id, e.learner_id, e.status, e.session_time, e.created_at,
       s.name AS skill_name,
       CASE WHEN e.teacher_id = @user THEN l.name ELSE t.name END AS partner_name,
       CASE WHEN e.teacher_id = @user THEN l.email ELSE t.email END AS partner_email,
       CASE WHEN e.teacher_id = @user THEN 'Teaching' ELSE 'Learning' END AS role
FROM exchanges e
JOIN skills s ON s.id = e.skill_id
LEFT JOIN users t ON t.id = e.teacher_id
LEFT JOIN users l ON l.id = e.learner_id
WHERE (e.teacher_id = @user OR e.learner_id = @user)`

const viewOrder = ` ORDER BY e.created_at DESC, e.id DESC`

// ForUser lists every exchange the user takes part in, newest first, as
// seen from that user's side.
func (r *Repository) ForUser(userID uint) ([]entities.ExchangeView, error) {
	return r.views(viewSelect+viewOrder, map[string]any{"user": userID})
}

// AcceptedForUser lists the user's accepted exchanges, newest first.
func (r *Repository) AcceptedForUser(userID uint) ([]entities.ExchangeView, error) {
	return r.views(viewSelect+` AND e.status = @status`+viewOrder, map[string]any{
		"user":   userID,
		"status": string(entities.ExchangeStatusAccepted),
	})
}

func (r *Repository) views(query string, args map[string]any) ([]entities.ExchangeView, error) {
	var views []entities.ExchangeView
	if err := r.db.Raw(query, args).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to load exchanges: %w", err)
	}
	return views, nil
}

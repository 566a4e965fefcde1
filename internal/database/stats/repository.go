// Package stats reports row counts across the main tables.
package stats

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/skillexchange/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Counts returns the number of users, skills and exchanges.
func (r *Repository) Counts() (entities.Stats, error) {
	var stats entities.Stats

	if err := r.db.Model(&entities.User{}).Count(&stats.UserCount).Error; err != nil {
		return entities.Stats{}, fmt.Errorf("failed to count users: %w", err)
	}
	if err := r.db.Model(&entities.Skill{}).Count(&stats.SkillCount).Error; err != nil {
		return entities.Stats{}, fmt.Errorf("failed to count skills: %w", err)
	}
	if err := r.db.Model(&entities.Exchange{}).Count(&stats.ExchangeCount).Error; err != nil {
		return entities.Stats{}, fmt.Errorf("failed to count exchanges: %w", err)
	}
	return stats, nil
}

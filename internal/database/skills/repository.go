// Package skills provides read access to the skill catalogue.
package skills

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/skillexchange/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll returns every skill ordered by name.
func (r *Repository) ListAll() ([]entities.Skill, error) {
	var skills []entities.Skill
	if err := r.db.Order("name").Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

// GetByID retrieves a skill by ID.
func (r *Repository) GetByID(id uint) (*entities.Skill, error) {
	var skill entities.Skill
	if err := r.db.First(&skill, id).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// Browse returns skills with the number of distinct users teaching each,
// most taught first. A non-empty search keeps only skills whose name
// contains it, ignoring case.
func (r *Repository) Browse(search string) ([]entities.SkillSummary, error) {
	query := r.db.Table("skills AS s").
		Select("s.id AS id, s.name AS name, COUNT(DISTINCT ut.user_id) AS teacher_count").
		Joins("LEFT JOIN user_teaches ut ON ut.skill_id = s.id")

	if search = strings.TrimSpace(search); search != "" {
		query = query.Where(`LOWER(s.name) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(search)+"%")
	}

	var summaries []entities.SkillSummary
	err := query.Group("s.id, s.name").
		Order("teacher_count DESC, s.name ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to browse skills: %w", err)
	}
	return summaries, nil
}

// Teachers lists users teaching the skill ordered by name. A non-zero
// excludeUserID is left out of the result.
func (r *Repository) Teachers(skillID, excludeUserID uint) ([]entities.SkillTeacher, error) {
	query := r.db.Table("user_teaches AS ut").
		Select("u.id AS user_id, u.name AS name, u.division AS division, ut.available_time AS available_time").
		Joins("JOIN users u ON u.id = ut.user_id").
		Where("ut.skill_id = ?", skillID)

	if excludeUserID != 0 {
		query = query.Where("u.id <> ?", excludeUserID)
	}

	var teachers []entities.SkillTeacher
	if err := query.Order("u.name").Scan(&teachers).Error; err != nil {
		return nil, fmt.Errorf("failed to load teachers for skill %d: %w", skillID, err)
	}
	return teachers, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

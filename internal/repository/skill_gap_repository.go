package repository

import (
	"placement_prep_backend/internal/model"

	"gorm.io/gorm"
)

type SkillGapRepository struct {
	DB *gorm.DB
}

func NewSkillGapRepository(db *gorm.DB) *SkillGapRepository {
	return &SkillGapRepository{DB: db}
}

// Replace swaps the student's whole backlog in one transaction. The analyzer
// always pushes a full snapshot, never a delta.
func (r *SkillGapRepository) Replace(userID uint, gaps []model.SkillGap) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).
			Delete(&model.SkillGap{}).Error; err != nil {
			return err
		}
		for i := range gaps {
			gaps[i].ID = 0
			gaps[i].UserID = userID
			if err := tx.Create(&gaps[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SkillGapRepository) FindByUser(userID uint) ([]model.SkillGap, error) {
	var gaps []model.SkillGap
	err := r.DB.Where("user_id = ?", userID).Order("id asc").Find(&gaps).Error
	return gaps, err
}

package repository

import (
	"context"
	"placement_prep_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) Create(res *model.LearningResource) error {
	return r.DB.Create(res).Error
}

func (r *ResourceRepository) FindByID(id uint) (*model.LearningResource, error) {
	var res model.LearningResource
	err := r.DB.First(&res, id).Error
	return &res, err
}

// FindBySkill returns enabled resources for a skill in insertion order.
// Type preference is applied by the catalog adapter.
func (r *ResourceRepository) FindBySkill(ctx context.Context, skill string) ([]model.LearningResource, error) {
	var rs []model.LearningResource
	err := r.DB.WithContext(ctx).Where("skill = ? AND enabled = ?", skill, true).
		Order("id asc").Find(&rs).Error
	return rs, err
}

func (r *ResourceRepository) List(skill string, page, limit int) ([]model.LearningResource, int64, error) {
	var rs []model.LearningResource
	var total int64
	query := r.DB.Model(&model.LearningResource{})
	if skill != "" {
		query = query.Where("skill = ?", skill)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("skill asc, id asc").Offset(offset).Limit(limit).Find(&rs).Error
	return rs, total, err
}

func (r *ResourceRepository) Update(res *model.LearningResource) error {
	return r.DB.Save(res).Error
}

func (r *ResourceRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LearningResource{}, id).Error
}

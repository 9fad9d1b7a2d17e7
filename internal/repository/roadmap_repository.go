package repository

import (
	"errors"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/util"

	"gorm.io/gorm"
)

type RoadmapRepository struct {
	DB *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{DB: db}
}

// CreateAndActivate persists a fully assembled roadmap and atomically makes
// it the student's active one. Any previously active roadmap for the student
// is archived in the same transaction, so at most one is ever active.
func (r *RoadmapRepository) CreateAndActivate(roadmap *model.Roadmap) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Roadmap{}).
			Where("user_id = ? AND status = ?", roadmap.UserID, model.RoadmapActive).
			Update("status", model.RoadmapArchived).Error; err != nil {
			return err
		}
		roadmap.Status = model.RoadmapActive
		return tx.Create(roadmap).Error
	})
}

// FindByID loads a roadmap with its full week/day/task tree in assembly order.
func (r *RoadmapRepository) FindByID(id string) (*model.Roadmap, error) {
	var roadmap model.Roadmap
	err := r.DB.
		Preload("Weeks", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number asc")
		}).
		Preload("Weeks.Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_index asc")
		}).
		Preload("Weeks.Days.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Where("id = ?", id).First(&roadmap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRoadmapNotFound
	}
	return &roadmap, err
}

// OwnerOf resolves just the owning user id, for access checks that do not
// need the full tree.
func (r *RoadmapRepository) OwnerOf(id string) (uint, error) {
	var stub model.Roadmap
	err := r.DB.Select("user_id").Where("id = ?", id).First(&stub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, util.ErrRoadmapNotFound
	}
	return stub.UserID, err
}

// FindActiveByUser returns the student's single active roadmap, fully loaded.
func (r *RoadmapRepository) FindActiveByUser(userID uint) (*model.Roadmap, error) {
	var stub model.Roadmap
	err := r.DB.Select("id").
		Where("user_id = ? AND status = ?", userID, model.RoadmapActive).
		Order("created_at desc").First(&stub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoActiveRoadmap
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(stub.ID)
}

// SaveProgress writes the rollup produced by a completion event in one
// transaction: the task flags plus the derived counters up the tree.
func (r *RoadmapRepository) SaveProgress(roadmap *model.Roadmap, task *model.RoadmapTask, week *model.RoadmapWeek, day *model.RoadmapDay) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.RoadmapTask{}).Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"completed":    task.Completed,
				"completed_at": task.CompletedAt,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.RoadmapDay{}).Where("id = ?", day.ID).
			Update("completed_tasks", day.CompletedTasks).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.RoadmapWeek{}).Where("id = ?", week.ID).
			Update("completed_tasks", week.CompletedTasks).Error; err != nil {
			return err
		}
		return tx.Model(&model.Roadmap{}).Where("id = ?", roadmap.ID).
			Updates(map[string]interface{}{
				"completed_tasks": roadmap.CompletedTasks,
				"progress":        roadmap.Progress,
				"current_week":    roadmap.CurrentWeek,
			}).Error
	})
}

// UpdateCurrentWeek persists pointer advancement driven by calendar time alone.
func (r *RoadmapRepository) UpdateCurrentWeek(roadmapID string, week int) error {
	return r.DB.Model(&model.Roadmap{}).Where("id = ?", roadmapID).
		Update("current_week", week).Error
}

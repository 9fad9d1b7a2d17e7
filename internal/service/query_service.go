package service

import (
	"context"
	"fmt"
	"placement_prep_backend/internal/config"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/util"
	"placement_prep_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MilestoneView is one entry of the milestone projection.
type MilestoneView struct {
	WeekNumber int    `json:"weekNumber"`
	Milestone  string `json:"milestone"`
	Reached    bool   `json:"reached"`
}

// QueryService is the read path over roadmap state. Reads are snapshot reads
// of committed rows; they never block on a writer beyond the row fetch.
type QueryService struct {
	Repo     *repository.RoadmapRepository
	Progress *ProgressService
	Redis    *redis.Client // optional; nil disables the active-roadmap cache
	cacheTTL time.Duration
}

func NewQueryService(repo *repository.RoadmapRepository, progress *ProgressService, rdb *redis.Client, policy config.PlannerConfig) *QueryService {
	return &QueryService{
		Repo:     repo,
		Progress: progress,
		Redis:    rdb,
		cacheTTL: policy.ActiveCacheTTL(),
	}
}

func activeKey(userID uint) string {
	return fmt.Sprintf("roadmap:active:%d", userID)
}

// GetActive returns the student's active roadmap, redis-cached by id.
func (s *QueryService) GetActive(ctx context.Context, userID uint) (*model.Roadmap, error) {
	if s.Redis != nil {
		if id, err := s.Redis.Get(ctx, activeKey(userID)).Result(); err == nil && id != "" {
			roadmap, err := s.Repo.FindByID(id)
			if err == nil && roadmap.Status == model.RoadmapActive {
				s.refreshPointer(roadmap)
				return roadmap, nil
			}
			// stale cache entry; fall through to the store
		}
	}

	roadmap, err := s.Repo.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	s.CacheActive(ctx, userID, roadmap.ID)
	s.refreshPointer(roadmap)
	return roadmap, nil
}

// CacheActive records the student's active roadmap id. Best effort: cache
// failures only get logged.
func (s *QueryService) CacheActive(ctx context.Context, userID uint, roadmapID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Set(ctx, activeKey(userID), roadmapID, s.cacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache active roadmap", zap.Error(err))
	}
}

func (s *QueryService) refreshPointer(roadmap *model.Roadmap) {
	if err := s.Progress.RefreshCurrentWeek(roadmap); err != nil {
		logger.Log.Warn("failed to refresh current week", zap.String("roadmap", roadmap.ID), zap.Error(err))
	}
}

// OwnerOf resolves the owning user of a roadmap.
func (s *QueryService) OwnerOf(roadmapID string) (uint, error) {
	return s.Repo.OwnerOf(roadmapID)
}

func (s *QueryService) GetRoadmap(id string) (*model.Roadmap, error) {
	roadmap, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.refreshPointer(roadmap)
	return roadmap, nil
}

// GetWeek returns the week-N view of a roadmap.
func (s *QueryService) GetWeek(roadmapID string, weekNumber int) (*model.RoadmapWeek, error) {
	roadmap, err := s.Repo.FindByID(roadmapID)
	if err != nil {
		return nil, err
	}
	if weekNumber < 1 || weekNumber > roadmap.DurationWeeks {
		return nil, util.ErrWeekOutOfRange
	}
	for w := range roadmap.Weeks {
		if roadmap.Weeks[w].WeekNumber == weekNumber {
			return &roadmap.Weeks[w], nil
		}
	}
	return nil, util.ErrWeekOutOfRange
}

// GetMilestones lists all week milestones in week order.
func (s *QueryService) GetMilestones(roadmapID string) ([]MilestoneView, error) {
	roadmap, err := s.Repo.FindByID(roadmapID)
	if err != nil {
		return nil, err
	}
	var views []MilestoneView
	for w := range roadmap.Weeks {
		week := &roadmap.Weeks[w]
		if week.Milestone == "" {
			continue
		}
		views = append(views, MilestoneView{
			WeekNumber: week.WeekNumber,
			Milestone:  week.Milestone,
			Reached:    week.TotalTasks > 0 && week.CompletedTasks == week.TotalTasks,
		})
	}
	return views, nil
}

// Today delegates to the tracker's date-resolved view.
func (s *QueryService) Today(roadmapID string, asOf time.Time) (*model.RoadmapDay, error) {
	return s.Progress.TodaysTasks(roadmapID, asOf)
}

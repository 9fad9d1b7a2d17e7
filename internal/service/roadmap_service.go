package service

import (
	"context"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/util"
	"placement_prep_backend/pkg/logger"
	"placement_prep_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// RoadmapService orchestrates generation: plan, assemble, persist, activate.
type RoadmapService struct {
	Planner   *PlannerService
	Assembler *AssemblerService
	Repo      *repository.RoadmapRepository
	GapRepo   *repository.SkillGapRepository
	Query     *QueryService
}

func NewRoadmapService(
	planner *PlannerService,
	assembler *AssemblerService,
	repo *repository.RoadmapRepository,
	gapRepo *repository.SkillGapRepository,
	query *QueryService,
) *RoadmapService {
	return &RoadmapService{
		Planner:   planner,
		Assembler: assembler,
		Repo:      repo,
		GapRepo:   gapRepo,
		Query:     query,
	}
}

// Generate builds and activates a new roadmap for the student, superseding
// any prior active one. Nothing is persisted if planning fails or the caller
// cancels before the commit.
func (s *RoadmapService) Generate(ctx context.Context, req *GenerationRequest) (*model.Roadmap, error) {
	// A nil backlog means "use what the skill-gap analyzer stored"; an
	// explicit empty backlog means the student is fully prepared.
	if req.Backlog == nil {
		gaps, err := s.GapRepo.FindByUser(req.UserID)
		if err != nil {
			return nil, err
		}
		if len(gaps) == 0 {
			return nil, util.ErrEmptyBacklog
		}
		req.Backlog = make([]SkillBacklogEntry, 0, len(gaps))
		for _, g := range gaps {
			req.Backlog = append(req.Backlog, SkillBacklogEntry{
				Skill:              g.Skill,
				Priority:           g.Priority,
				CurrentProficiency: g.CurrentProficiency,
				TargetProficiency:  g.TargetProficiency,
			})
			if req.TargetCompany == "" {
				req.TargetCompany = g.TargetCompany
			}
			if req.TargetRole == "" {
				req.TargetRole = g.TargetRole
			}
		}
	}

	skeleton, err := s.Planner.Plan(req)
	if err != nil {
		return nil, err
	}

	roadmap, err := s.Assembler.Assemble(ctx, req, skeleton)
	if err != nil {
		return nil, err
	}

	// Cancelled callers must not leave a half-activated roadmap behind.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateAndActivate(roadmap); err != nil {
		return nil, err
	}

	s.Query.CacheActive(ctx, req.UserID, roadmap.ID)
	monitoring.RoadmapGenerated.Inc()
	logger.Log.Info("roadmap generated",
		zap.String("roadmap", roadmap.ID),
		zap.Uint("user", req.UserID),
		zap.Int("weeks", roadmap.DurationWeeks),
		zap.Int("tasks", roadmap.TotalTasks),
	)

	return roadmap, nil
}

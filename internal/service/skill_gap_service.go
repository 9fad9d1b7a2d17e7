package service

import (
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/util"
)

// SkillGapService is the intake side of the skill-gap analyzer integration:
// it stores the backlog snapshots the analyzer pushes and serves them back.
type SkillGapService struct {
	Repo *repository.SkillGapRepository
}

func NewSkillGapService(repo *repository.SkillGapRepository) *SkillGapService {
	return &SkillGapService{Repo: repo}
}

type SkillGapUpload struct {
	TargetCompany string              `json:"targetCompany"`
	TargetRole    string              `json:"targetRole"`
	Backlog       []SkillBacklogEntry `json:"backlog" binding:"required"`
}

func (s *SkillGapService) Replace(userID uint, upload *SkillGapUpload) ([]model.SkillGap, error) {
	gaps := make([]model.SkillGap, 0, len(upload.Backlog))
	for _, e := range upload.Backlog {
		if e.Skill == "" || !model.ValidPriority(e.Priority) ||
			e.CurrentProficiency < 0 || e.TargetProficiency > 100 ||
			e.CurrentProficiency > e.TargetProficiency {
			return nil, util.ErrInvalidBacklogEntry
		}
		gaps = append(gaps, model.SkillGap{
			UserID:             userID,
			Skill:              model.NormalizeSkill(e.Skill),
			Priority:           e.Priority,
			CurrentProficiency: e.CurrentProficiency,
			TargetProficiency:  e.TargetProficiency,
			TargetCompany:      upload.TargetCompany,
			TargetRole:         upload.TargetRole,
		})
	}
	if err := s.Repo.Replace(userID, gaps); err != nil {
		return nil, err
	}
	return s.Repo.FindByUser(userID)
}

func (s *SkillGapService) List(userID uint) ([]model.SkillGap, error) {
	return s.Repo.FindByUser(userID)
}

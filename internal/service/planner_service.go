package service

import (
	"fmt"
	"placement_prep_backend/internal/config"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/util"
	"sort"
)

// SkillBacklogEntry is one prioritized skill gap fed into planning.
type SkillBacklogEntry struct {
	Skill              string            `json:"skill" binding:"required"`
	Priority           model.GapPriority `json:"priority" binding:"required"`
	CurrentProficiency int               `json:"currentProficiency"`
	TargetProficiency  int               `json:"targetProficiency"`
}

// GenerationRequest describes one roadmap to build.
type GenerationRequest struct {
	UserID             uint               `json:"-"`
	DurationWeeks      int                `json:"durationWeeks" binding:"required"`
	DailyBudgetMinutes int                `json:"dailyBudgetMinutes" binding:"required"`
	TargetCompany      string             `json:"targetCompany"`
	TargetRole         string             `json:"targetRole"`
	// Backlog nil means "use the stored skill-gap backlog"; an explicit empty
	// slice means the student is fully prepared and gets an all-rest roadmap.
	Backlog []SkillBacklogEntry `json:"backlog"`
}

// Slot is one unbound unit of study time: a skill and the minutes allotted to
// it, before any catalog resource is attached.
type Slot struct {
	Skill   string
	Minutes int
	Review  bool
}

type SkeletonDay struct {
	Slots []Slot
}

type SkeletonWeek struct {
	Theme     string
	Milestone string
	Days      [model.DaysPerWeek]SkeletonDay
}

// Skeleton is the planner output: the full week/day/slot structure with
// themes and milestones, but no resources bound yet.
type Skeleton struct {
	Weeks []SkeletonWeek
}

// PlannerService turns a prioritized backlog into a skeleton by
// priority-weighted bin packing. It is pure: no I/O, no persistence.
type PlannerService struct {
	Policy config.PlannerConfig
}

func NewPlannerService(policy config.PlannerConfig) *PlannerService {
	return &PlannerService{Policy: policy}
}

func (s *PlannerService) weight(p model.GapPriority) int {
	switch p {
	case model.PriorityCritical:
		return s.Policy.PriorityWeights.Critical
	case model.PriorityHigh:
		return s.Policy.PriorityWeights.High
	case model.PriorityMedium:
		return s.Policy.PriorityWeights.Medium
	default:
		return s.Policy.PriorityWeights.Low
	}
}

func (s *PlannerService) validate(req *GenerationRequest) error {
	supported := false
	for _, d := range s.Policy.SupportedDurations {
		if req.DurationWeeks == d {
			supported = true
			break
		}
	}
	if !supported {
		return util.ErrUnsupportedDuration
	}
	if req.DailyBudgetMinutes <= 0 {
		return util.ErrInvalidDailyBudget
	}
	for _, e := range req.Backlog {
		if e.Skill == "" || !model.ValidPriority(e.Priority) {
			return util.ErrInvalidBacklogEntry
		}
		if e.CurrentProficiency < 0 || e.TargetProficiency > 100 ||
			e.CurrentProficiency > e.TargetProficiency {
			return util.ErrInvalidBacklogEntry
		}
	}
	return nil
}

// Plan validates the request and packs the backlog into a skeleton.
//
// Each entry gets an allotment: its priority-weight share of the roadmap's
// total study minutes, capped at the entry's estimated demand
// (gap x minutes_per_gap_point). Days are filled highest priority first in
// chunks bounded by [min_chunk, max_chunk]. The last day of each week stays a
// rest day unless total demand exceeds the six-day capacity. When every
// allotment is spent, remaining days become review passes over the skills
// already scheduled.
func (s *PlannerService) Plan(req *GenerationRequest) (*Skeleton, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	// Entries already at target are satisfied and never scheduled.
	type allocEntry struct {
		SkillBacklogEntry
		weight    int
		remaining int
	}
	var entries []allocEntry
	for _, e := range req.Backlog {
		if e.TargetProficiency-e.CurrentProficiency <= 0 {
			continue
		}
		entries = append(entries, allocEntry{SkillBacklogEntry: e, weight: s.weight(e.Priority)})
	}

	skeleton := &Skeleton{Weeks: make([]SkeletonWeek, req.DurationWeeks)}
	if len(entries) == 0 {
		for w := range skeleton.Weeks {
			skeleton.Weeks[w].Theme = model.FocusRest
		}
		return skeleton, nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		gi := entries[i].TargetProficiency - entries[i].CurrentProficiency
		gj := entries[j].TargetProficiency - entries[j].CurrentProficiency
		return gi > gj
	})

	// Rest days are the first capacity sacrificed when demand exceeds the
	// six-day week.
	totalDemand := 0
	for i := range entries {
		gap := entries[i].TargetProficiency - entries[i].CurrentProficiency
		entries[i].remaining = gap * s.Policy.MinutesPerGapPoint
		totalDemand += entries[i].remaining
	}
	studyDays := model.DaysPerWeek - 1
	if totalDemand > req.DurationWeeks*studyDays*req.DailyBudgetMinutes {
		studyDays = model.DaysPerWeek
	}
	capacity := req.DurationWeeks * studyDays * req.DailyBudgetMinutes

	weightSum := 0
	for i := range entries {
		weightSum += entries[i].weight
	}
	for i := range entries {
		share := capacity * entries[i].weight / weightSum
		if share < entries[i].remaining {
			entries[i].remaining = share
		}
	}

	var scheduled []string // insertion-ordered distinct skills, for review weeks
	seen := make(map[string]bool)
	idx := 0

	for w := range skeleton.Weeks {
		week := &skeleton.Weeks[w]
		for d := 0; d < model.DaysPerWeek; d++ {
			if d >= studyDays {
				continue // rest day
			}
			remaining := req.DailyBudgetMinutes

			for remaining >= s.Policy.MinChunkMinutes && idx < len(entries) {
				if entries[idx].remaining <= 0 {
					idx++
					continue
				}
				chunk := entries[idx].remaining
				if chunk > s.Policy.MaxChunkMinutes {
					chunk = s.Policy.MaxChunkMinutes
				}
				if chunk > remaining {
					chunk = remaining
				}
				week.Days[d].Slots = append(week.Days[d].Slots, Slot{
					Skill:   entries[idx].Skill,
					Minutes: chunk,
				})
				if !seen[entries[idx].Skill] {
					seen[entries[idx].Skill] = true
					scheduled = append(scheduled, entries[idx].Skill)
				}
				entries[idx].remaining -= chunk
				remaining -= chunk
				if entries[idx].remaining <= 0 && week.Milestone == "" {
					week.Milestone = fmt.Sprintf("Reached target proficiency in %s", entries[idx].Skill)
				}
			}

			// Backlog exhausted: spaced-repetition review over what was
			// already scheduled, instead of empty days.
			for idx < len(entries) && entries[idx].remaining <= 0 {
				idx++
			}
			if idx >= len(entries) {
				r := 0
				for remaining >= s.Policy.MinChunkMinutes && len(scheduled) > 0 {
					chunk := s.Policy.ReviewChunkMinutes
					if chunk > remaining {
						chunk = remaining
					}
					week.Days[d].Slots = append(week.Days[d].Slots, Slot{
						Skill:   scheduled[r%len(scheduled)],
						Minutes: chunk,
						Review:  true,
					})
					remaining -= chunk
					r++
				}
			}
		}
		week.Theme = pluralitySkill(week)
	}

	// The closing milestone from the product's original plan format.
	final := &skeleton.Weeks[len(skeleton.Weeks)-1]
	if final.Milestone == "" {
		final.Milestone = "Complete full preparation - ready for interviews"
	}

	return skeleton, nil
}

// pluralitySkill returns the skill with the most scheduled minutes in the
// week, or "rest" for an empty week.
func pluralitySkill(week *SkeletonWeek) string {
	var slots []Slot
	for d := range week.Days {
		slots = append(slots, week.Days[d].Slots...)
	}
	return dominantSkill(slots)
}

// FocusArea returns the dominant skill of a skeleton day.
func (d *SkeletonDay) FocusArea() string {
	return dominantSkill(d.Slots)
}

func dominantSkill(slots []Slot) string {
	minutes := make(map[string]int)
	var order []string
	for _, slot := range slots {
		if minutes[slot.Skill] == 0 {
			order = append(order, slot.Skill)
		}
		minutes[slot.Skill] += slot.Minutes
	}
	if len(order) == 0 {
		return model.FocusRest
	}
	best := order[0]
	for _, skill := range order[1:] {
		if minutes[skill] > minutes[best] {
			best = skill
		}
	}
	return best
}

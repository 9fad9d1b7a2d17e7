package service

import (
	"context"
	"fmt"
	"placement_prep_backend/internal/config"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/pkg/monitoring"
	"time"
)

// modalityRotation diversifies task types across consecutive slots.
var modalityRotation = []model.ResourceType{
	model.ResourceVideo,
	model.ResourceArticle,
	model.ResourcePractice,
}

// AssemblerService binds catalog resources to skeleton slots and produces the
// immutable roadmap structure. Catalog failures are never fatal: a slot that
// cannot be bound gets a generic practice task.
type AssemblerService struct {
	Catalog CatalogAdapter
	Policy  config.PlannerConfig
	now     func() time.Time
}

func NewAssemblerService(catalog CatalogAdapter, policy config.PlannerConfig) *AssemblerService {
	return &AssemblerService{Catalog: catalog, Policy: policy, now: time.Now}
}

// Assemble materializes the skeleton into a Roadmap rooted at assembly time.
// Day dates derive from created_at: week w, day d falls on
// created_at + (w*7 + d) days, with day 0 of week 1 being creation day.
func (s *AssemblerService) Assemble(ctx context.Context, req *GenerationRequest, skeleton *Skeleton) (*model.Roadmap, error) {
	createdAt := s.now()
	start := time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, createdAt.Location())

	roadmap := &model.Roadmap{
		UserID:             req.UserID,
		TargetCompany:      req.TargetCompany,
		TargetRole:         req.TargetRole,
		DurationWeeks:      req.DurationWeeks,
		DailyBudgetMinutes: req.DailyBudgetMinutes,
		Status:             model.RoadmapActive,
		CurrentWeek:        1,
	}
	roadmap.ID = model.GenerateUUID()
	roadmap.CreatedAt = createdAt

	slotCounter := 0
	for w := range skeleton.Weeks {
		sw := &skeleton.Weeks[w]
		week := model.RoadmapWeek{
			RoadmapID:  roadmap.ID,
			WeekNumber: w + 1,
			Theme:      sw.Theme,
			Milestone:  sw.Milestone,
		}

		for d := 0; d < model.DaysPerWeek; d++ {
			day := model.RoadmapDay{
				DayIndex:  d,
				Date:      start.AddDate(0, 0, w*model.DaysPerWeek+d),
				FocusArea: sw.Days[d].FocusArea(),
			}

			planned := 0
			for _, slot := range sw.Days[d].Slots {
				planned += slot.Minutes
			}

			dayMinutes := 0
			for order, slot := range sw.Days[d].Slots {
				planned -= slot.Minutes
				task := s.bindSlot(ctx, roadmap, slot, slotCounter, dayMinutes+planned, req.DailyBudgetMinutes)
				task.SortOrder = order
				dayMinutes += task.DurationMinutes
				day.Tasks = append(day.Tasks, task)
				slotCounter++
			}

			day.TotalTasks = len(day.Tasks)
			week.TotalTasks += day.TotalTasks
			week.Days = append(week.Days, day)
		}

		roadmap.TotalTasks += week.TotalTasks
		roadmap.Weeks = append(roadmap.Weeks, week)
	}

	// An all-rest roadmap has nothing left to do; by convention it reads as
	// fully complete.
	if roadmap.TotalTasks == 0 {
		roadmap.Progress = 100
	}

	return roadmap, nil
}

// bindSlot resolves one slot against the catalog. Misses and timeouts fall
// back to a generic practice task so no slot is ever left without one.
// otherMinutes is everything else bound or still planned for the day; it
// bounds how far a resource may stretch this slot.
func (s *AssemblerService) bindSlot(ctx context.Context, roadmap *model.Roadmap, slot Slot, slotCounter, otherMinutes, budget int) model.RoadmapTask {
	task := model.RoadmapTask{
		RoadmapID:       roadmap.ID,
		Skill:           slot.Skill,
		DurationMinutes: slot.Minutes,
	}
	task.ID = model.GenerateUUID()

	preferred := modalityRotation[slotCounter%len(modalityRotation)]
	if slot.Review {
		preferred = model.ResourcePractice
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.Policy.CatalogTimeout())
	defer cancel()
	res, err := s.Catalog.Lookup(lookupCtx, slot.Skill, preferred)
	if err != nil || res == nil {
		monitoring.CatalogMisses.Inc()
		task.ResourceType = model.ResourcePractice
		task.Title = fmt.Sprintf("Practice %s exercises", slot.Skill)
		task.Description = fmt.Sprintf("Hands-on practice: solve %s problems and review your mistakes", slot.Skill)
		if slot.Review {
			task.Title = fmt.Sprintf("Review %s", slot.Skill)
			task.Description = fmt.Sprintf("Revisit your %s notes and redo earlier exercises", slot.Skill)
		}
		return task
	}

	task.ResourceType = res.Type
	task.ResourceURL = res.URL
	task.Title = res.Title
	task.Description = fmt.Sprintf("Focus session on %s: work through \"%s\"", slot.Skill, res.Title)
	if slot.Review {
		task.Description = fmt.Sprintf("Review %s with \"%s\"", slot.Skill, res.Title)
	}

	// A single resource may stretch its slot a little rather than be split,
	// as long as the day stays within budget x tolerance.
	if res.DurationMinutes > slot.Minutes {
		stretched := otherMinutes + res.DurationMinutes
		if float64(stretched) <= float64(budget)*s.Policy.ToleranceFactor {
			task.DurationMinutes = res.DurationMinutes
		}
	}

	return task
}

package service

import (
	"placement_prep_backend/internal/config"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanner() *PlannerService {
	return NewPlannerService(config.DefaultPlanner())
}

func TestPlanRejectsUnsupportedDuration(t *testing.T) {
	_, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      5,
		DailyBudgetMinutes: 120,
	})
	assert.ErrorIs(t, err, util.ErrUnsupportedDuration)
}

func TestPlanRejectsInvalidBudget(t *testing.T) {
	_, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      4,
		DailyBudgetMinutes: 0,
	})
	assert.ErrorIs(t, err, util.ErrInvalidDailyBudget)
}

func TestPlanRejectsInvalidBacklogEntries(t *testing.T) {
	cases := []SkillBacklogEntry{
		{Skill: "", Priority: model.PriorityHigh, TargetProficiency: 50},
		{Skill: "sql", Priority: "urgent", TargetProficiency: 50},
		{Skill: "sql", Priority: model.PriorityHigh, CurrentProficiency: 80, TargetProficiency: 50},
		{Skill: "sql", Priority: model.PriorityHigh, CurrentProficiency: -1, TargetProficiency: 50},
		{Skill: "sql", Priority: model.PriorityHigh, CurrentProficiency: 10, TargetProficiency: 101},
	}
	for _, entry := range cases {
		_, err := newPlanner().Plan(&GenerationRequest{
			DurationWeeks:      4,
			DailyBudgetMinutes: 120,
			Backlog:            []SkillBacklogEntry{entry},
		})
		assert.ErrorIs(t, err, util.ErrInvalidBacklogEntry)
	}
}

func TestPlanWeightsCriticalSkillFirst(t *testing.T) {
	skeleton, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      4,
		DailyBudgetMinutes: 150,
		Backlog: []SkillBacklogEntry{
			{Skill: "dsa", Priority: model.PriorityMedium, CurrentProficiency: 40, TargetProficiency: 80},
			{Skill: "sql", Priority: model.PriorityCritical, CurrentProficiency: 20, TargetProficiency: 80},
		},
	})
	require.NoError(t, err)
	require.Len(t, skeleton.Weeks, 4)

	// The critical skill dominates the opening week.
	assert.Equal(t, "sql", skeleton.Weeks[0].Theme)
	for _, slot := range skeleton.Weeks[0].Days[0].Slots {
		assert.Equal(t, "sql", slot.Skill)
	}

	// Demand fits the six-day weeks, so every seventh day stays a rest day.
	for w := range skeleton.Weeks {
		assert.Empty(t, skeleton.Weeks[w].Days[6].Slots, "week %d should keep its rest day", w+1)
	}

	// No day exceeds the daily budget.
	for w := range skeleton.Weeks {
		for d := range skeleton.Weeks[w].Days {
			total := 0
			for _, slot := range skeleton.Weeks[w].Days[d].Slots {
				total += slot.Minutes
			}
			assert.LessOrEqual(t, total, 150)
		}
	}
}

func TestPlanMilestoneOnAllotmentExhaustion(t *testing.T) {
	// sql demand: 60 points x 30 min = 1800 min, spent at 150/day over the
	// six-day weeks, so it exhausts on day 12, inside week 2.
	skeleton, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      4,
		DailyBudgetMinutes: 150,
		Backlog: []SkillBacklogEntry{
			{Skill: "sql", Priority: model.PriorityCritical, CurrentProficiency: 20, TargetProficiency: 80},
			{Skill: "dsa", Priority: model.PriorityMedium, CurrentProficiency: 40, TargetProficiency: 80},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, skeleton.Weeks[0].Milestone)
	assert.Equal(t, "Reached target proficiency in sql", skeleton.Weeks[1].Milestone)
}

func TestPlanFinalWeekMilestone(t *testing.T) {
	skeleton, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      4,
		DailyBudgetMinutes: 120,
		Backlog: []SkillBacklogEntry{
			{Skill: "sql", Priority: model.PriorityHigh, CurrentProficiency: 90, TargetProficiency: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Complete full preparation - ready for interviews",
		skeleton.Weeks[3].Milestone)
}

func TestPlanReviewSlotsFillExhaustedBacklog(t *testing.T) {
	// Tiny demand: everything exhausts in week 1, the rest becomes review.
	skeleton, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      4,
		DailyBudgetMinutes: 120,
		Backlog: []SkillBacklogEntry{
			{Skill: "sql", Priority: model.PriorityHigh, CurrentProficiency: 90, TargetProficiency: 100},
			{Skill: "oop", Priority: model.PriorityLow, CurrentProficiency: 95, TargetProficiency: 100},
		},
	})
	require.NoError(t, err)

	sawReview := false
	for w := range skeleton.Weeks {
		for d := range skeleton.Weeks[w].Days {
			for _, slot := range skeleton.Weeks[w].Days[d].Slots {
				if slot.Review {
					sawReview = true
					assert.Contains(t, []string{"sql", "oop"}, slot.Skill,
						"review must revisit scheduled skills only")
				}
			}
		}
	}
	assert.True(t, sawReview)
}

func TestPlanSacrificesRestDayUnderHeavyDemand(t *testing.T) {
	// Demand 3000 min against a six-day capacity of 1440: day seven is
	// conscripted into study.
	skeleton, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      4,
		DailyBudgetMinutes: 60,
		Backlog: []SkillBacklogEntry{
			{Skill: "dsa", Priority: model.PriorityCritical, CurrentProficiency: 0, TargetProficiency: 100},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, skeleton.Weeks[0].Days[6].Slots)
}

func TestPlanSatisfiedBacklogYieldsRestRoadmap(t *testing.T) {
	skeleton, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      8,
		DailyBudgetMinutes: 90,
		Backlog: []SkillBacklogEntry{
			{Skill: "react", Priority: model.PriorityLow, CurrentProficiency: 80, TargetProficiency: 80},
		},
	})
	require.NoError(t, err)
	require.Len(t, skeleton.Weeks, 8)
	for w := range skeleton.Weeks {
		assert.Equal(t, model.FocusRest, skeleton.Weeks[w].Theme)
		for d := range skeleton.Weeks[w].Days {
			assert.Empty(t, skeleton.Weeks[w].Days[d].Slots)
		}
	}
}

func TestPlanEmptyBacklogYieldsRestRoadmap(t *testing.T) {
	skeleton, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      4,
		DailyBudgetMinutes: 90,
		Backlog:            []SkillBacklogEntry{},
	})
	require.NoError(t, err)
	for w := range skeleton.Weeks {
		assert.Equal(t, model.FocusRest, skeleton.Weeks[w].Theme)
	}
}

func TestPlanChunksRespectBounds(t *testing.T) {
	skeleton, err := newPlanner().Plan(&GenerationRequest{
		DurationWeeks:      4,
		DailyBudgetMinutes: 120,
		Backlog: []SkillBacklogEntry{
			{Skill: "java", Priority: model.PriorityHigh, CurrentProficiency: 10, TargetProficiency: 90},
			{Skill: "sql", Priority: model.PriorityMedium, CurrentProficiency: 30, TargetProficiency: 70},
		},
	})
	require.NoError(t, err)
	for w := range skeleton.Weeks {
		for d := range skeleton.Weeks[w].Days {
			for _, slot := range skeleton.Weeks[w].Days[d].Slots {
				assert.LessOrEqual(t, slot.Minutes, 60)
				assert.Greater(t, slot.Minutes, 0)
			}
		}
	}
}

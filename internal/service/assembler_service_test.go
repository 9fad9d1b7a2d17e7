package service

import (
	"context"
	"fmt"
	"placement_prep_backend/internal/config"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssembler(catalog CatalogAdapter) *AssemblerService {
	a := NewAssemblerService(catalog, config.DefaultPlanner())
	a.now = fixedTime
	return a
}

func missingCatalog() CatalogAdapter {
	return &stubCatalog{fn: func(ctx context.Context, skill string, preferred model.ResourceType) (*model.LearningResource, error) {
		return nil, util.ErrCatalogMiss
	}}
}

func echoCatalog(duration int) CatalogAdapter {
	return &stubCatalog{fn: func(ctx context.Context, skill string, preferred model.ResourceType) (*model.LearningResource, error) {
		return &model.LearningResource{
			Skill:           skill,
			Type:            preferred,
			Title:           fmt.Sprintf("%s via %s", skill, preferred),
			URL:             "https://example.com/" + skill,
			DurationMinutes: duration,
		}, nil
	}}
}

func planFixture(t *testing.T, req *GenerationRequest) *Skeleton {
	t.Helper()
	skeleton, err := newPlanner().Plan(req)
	require.NoError(t, err)
	return skeleton
}

func TestAssembleFallsBackToPracticeOnCatalogMiss(t *testing.T) {
	req := &GenerationRequest{
		UserID:             1,
		DurationWeeks:      4,
		DailyBudgetMinutes: 60,
		Backlog: []SkillBacklogEntry{
			{Skill: "dsa", Priority: model.PriorityHigh, CurrentProficiency: 0, TargetProficiency: 20},
		},
	}
	roadmap, err := newAssembler(missingCatalog()).Assemble(context.Background(), req, planFixture(t, req))
	require.NoError(t, err)

	for _, week := range roadmap.Weeks {
		for _, day := range week.Days {
			for _, task := range day.Tasks {
				assert.Equal(t, model.ResourcePractice, task.ResourceType)
				assert.Empty(t, task.ResourceURL)
				assert.NotEmpty(t, task.Title)
			}
		}
	}
	assert.Greater(t, roadmap.TotalTasks, 0)
}

func TestAssembleStructureAndDates(t *testing.T) {
	req := &GenerationRequest{
		UserID:             1,
		DurationWeeks:      4,
		DailyBudgetMinutes: 90,
		Backlog: []SkillBacklogEntry{
			{Skill: "sql", Priority: model.PriorityCritical, CurrentProficiency: 20, TargetProficiency: 80},
		},
	}
	roadmap, err := newAssembler(missingCatalog()).Assemble(context.Background(), req, planFixture(t, req))
	require.NoError(t, err)

	require.Len(t, roadmap.Weeks, 4)
	start := fixedTime()
	seen := make(map[string]bool)
	taskCount := 0
	for w, week := range roadmap.Weeks {
		assert.Equal(t, w+1, week.WeekNumber)
		require.Len(t, week.Days, model.DaysPerWeek)
		weekTasks := 0
		for d, day := range week.Days {
			wantDate := start.AddDate(0, 0, w*model.DaysPerWeek+d)
			assert.Equal(t, wantDate.Year(), day.Date.Year())
			assert.Equal(t, wantDate.YearDay(), day.Date.YearDay())
			assert.Equal(t, len(day.Tasks), day.TotalTasks)
			weekTasks += day.TotalTasks
			for _, task := range day.Tasks {
				assert.False(t, seen[task.ID], "task ids must be unique")
				seen[task.ID] = true
				assert.Equal(t, roadmap.ID, task.RoadmapID)
				taskCount++
			}
		}
		assert.Equal(t, weekTasks, week.TotalTasks)
	}
	assert.Equal(t, taskCount, roadmap.TotalTasks)
	assert.Equal(t, 1, roadmap.CurrentWeek)
	assert.Equal(t, 0, roadmap.Progress)
	assert.Equal(t, model.RoadmapActive, roadmap.Status)
}

func TestAssembleRotatesModalities(t *testing.T) {
	req := &GenerationRequest{
		UserID:             1,
		DurationWeeks:      4,
		DailyBudgetMinutes: 180,
		Backlog: []SkillBacklogEntry{
			{Skill: "java", Priority: model.PriorityHigh, CurrentProficiency: 0, TargetProficiency: 60},
		},
	}
	roadmap, err := newAssembler(echoCatalog(10)).Assemble(context.Background(), req, planFixture(t, req))
	require.NoError(t, err)

	day := roadmap.Weeks[0].Days[0]
	require.GreaterOrEqual(t, len(day.Tasks), 3)
	assert.Equal(t, model.ResourceVideo, day.Tasks[0].ResourceType)
	assert.Equal(t, model.ResourceArticle, day.Tasks[1].ResourceType)
	assert.Equal(t, model.ResourcePractice, day.Tasks[2].ResourceType)
}

func TestAssembleStretchesWithinTolerance(t *testing.T) {
	skeleton := &Skeleton{Weeks: []SkeletonWeek{{Theme: "sql"}}}
	skeleton.Weeks[0].Days[0].Slots = []Slot{{Skill: "sql", Minutes: 60}}

	req := &GenerationRequest{UserID: 1, DurationWeeks: 4, DailyBudgetMinutes: 60}
	roadmap, err := newAssembler(echoCatalog(70)).Assemble(context.Background(), req, skeleton)
	require.NoError(t, err)

	// 70 <= 60 x 1.25, so the single resource absorbs the whole slot.
	assert.Equal(t, 70, roadmap.Weeks[0].Days[0].Tasks[0].DurationMinutes)
}

func TestAssembleRefusesStretchBeyondTolerance(t *testing.T) {
	skeleton := &Skeleton{Weeks: []SkeletonWeek{{Theme: "sql"}}}
	skeleton.Weeks[0].Days[0].Slots = []Slot{
		{Skill: "sql", Minutes: 60},
		{Skill: "sql", Minutes: 60},
	}

	req := &GenerationRequest{UserID: 1, DurationWeeks: 4, DailyBudgetMinutes: 120}
	roadmap, err := newAssembler(echoCatalog(100)).Assemble(context.Background(), req, skeleton)
	require.NoError(t, err)

	// Stretching either slot to 100 would push the day past 120 x 1.25.
	tasks := roadmap.Weeks[0].Days[0].Tasks
	assert.Equal(t, 60, tasks[0].DurationMinutes)
	assert.Equal(t, 60, tasks[1].DurationMinutes)
}

func TestAssembleEmptySkeletonReadsComplete(t *testing.T) {
	skeleton := &Skeleton{Weeks: make([]SkeletonWeek, 4)}
	for w := range skeleton.Weeks {
		skeleton.Weeks[w].Theme = model.FocusRest
	}

	req := &GenerationRequest{UserID: 1, DurationWeeks: 4, DailyBudgetMinutes: 60}
	roadmap, err := newAssembler(missingCatalog()).Assemble(context.Background(), req, skeleton)
	require.NoError(t, err)

	assert.Equal(t, 0, roadmap.TotalTasks)
	assert.Equal(t, 100, roadmap.Progress)
	for _, week := range roadmap.Weeks {
		assert.Equal(t, model.FocusRest, week.Days[0].FocusArea)
	}
}

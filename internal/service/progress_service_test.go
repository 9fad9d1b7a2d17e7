package service

import (
	"context"
	"math"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRoadmap plans, assembles and persists a roadmap against the test db,
// returning it reloaded through the repository.
func buildRoadmap(t *testing.T, repo *repository.RoadmapRepository, req *GenerationRequest) *model.Roadmap {
	t.Helper()
	roadmap, err := newAssembler(missingCatalog()).Assemble(context.Background(), req, planFixture(t, req))
	require.NoError(t, err)
	require.NoError(t, repo.CreateAndActivate(roadmap))

	loaded, err := repo.FindByID(roadmap.ID)
	require.NoError(t, err)
	return loaded
}

func smallRequest(userID uint) *GenerationRequest {
	return &GenerationRequest{
		UserID:             userID,
		DurationWeeks:      4,
		DailyBudgetMinutes: 60,
		Backlog: []SkillBacklogEntry{
			{Skill: "dsa", Priority: model.PriorityHigh, CurrentProficiency: 0, TargetProficiency: 20},
		},
	}
}

func newProgress(repo *repository.RoadmapRepository, now time.Time) *ProgressService {
	svc := NewProgressService(repo)
	svc.Now = func() time.Time { return now }
	return svc
}

func TestRecordCompletionUpdatesRollups(t *testing.T) {
	repo := repository.NewRoadmapRepository(newTestDB(t))
	roadmap := buildRoadmap(t, repo, smallRequest(1))
	svc := newProgress(repo, fixedTime())

	task := roadmap.Weeks[0].Days[0].Tasks[0]
	rollup, err := svc.RecordCompletion(roadmap.ID, task.ID, fixedTime())
	require.NoError(t, err)

	assert.False(t, rollup.AlreadyCompleted)
	assert.Equal(t, 1, rollup.CompletedTasks)
	assert.Equal(t, roadmap.TotalTasks, rollup.TotalTasks)
	want := int(math.Round(1.0 / float64(roadmap.TotalTasks) * 100))
	assert.Equal(t, want, rollup.Progress)

	// Flags and counters survive the round trip.
	reloaded, err := repo.FindByID(roadmap.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.CompletedTasks)
	assert.Equal(t, 1, reloaded.Weeks[0].CompletedTasks)
	assert.Equal(t, 1, reloaded.Weeks[0].Days[0].CompletedTasks)
	assert.True(t, reloaded.Weeks[0].Days[0].Tasks[0].Completed)
	require.NotNil(t, reloaded.Weeks[0].Days[0].Tasks[0].CompletedAt)
}

func TestRecordCompletionIsIdempotent(t *testing.T) {
	repo := repository.NewRoadmapRepository(newTestDB(t))
	roadmap := buildRoadmap(t, repo, smallRequest(1))
	svc := newProgress(repo, fixedTime())

	task := roadmap.Weeks[0].Days[0].Tasks[0]
	first, err := svc.RecordCompletion(roadmap.ID, task.ID, fixedTime())
	require.NoError(t, err)
	second, err := svc.RecordCompletion(roadmap.ID, task.ID, fixedTime().Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, second.AlreadyCompleted)
	assert.Equal(t, first.CompletedTasks, second.CompletedTasks)
	assert.Equal(t, first.Progress, second.Progress)

	// The original completion timestamp is preserved.
	reloaded, err := repo.FindByID(roadmap.ID)
	require.NoError(t, err)
	got := reloaded.Weeks[0].Days[0].Tasks[0].CompletedAt
	require.NotNil(t, got)
	assert.True(t, got.Equal(fixedTime()))
}

func TestRecordCompletionUnknownTask(t *testing.T) {
	repo := repository.NewRoadmapRepository(newTestDB(t))
	roadmap := buildRoadmap(t, repo, smallRequest(1))
	svc := newProgress(repo, fixedTime())

	_, err := svc.RecordCompletion(roadmap.ID, "no-such-task", fixedTime())
	assert.ErrorIs(t, err, util.ErrTaskNotFound)

	_, err = svc.RecordCompletion("no-such-roadmap", "whatever", fixedTime())
	assert.ErrorIs(t, err, util.ErrRoadmapNotFound)
}

func TestCurrentWeekStaysPutWhenFinishingEarly(t *testing.T) {
	repo := repository.NewRoadmapRepository(newTestDB(t))
	roadmap := buildRoadmap(t, repo, smallRequest(1))

	// Still on day two of week one.
	svc := newProgress(repo, fixedTime().Add(24*time.Hour))

	var rollup *Rollup
	for _, day := range roadmap.Weeks[0].Days {
		for _, task := range day.Tasks {
			var err error
			rollup, err = svc.RecordCompletion(roadmap.ID, task.ID, svc.Now())
			require.NoError(t, err)
		}
	}
	require.NotNil(t, rollup)

	// Week one is done early but week two has not begun yet.
	assert.Equal(t, 1, rollup.CurrentWeek)
}

func TestCurrentWeekFollowsIncompleteWork(t *testing.T) {
	repo := repository.NewRoadmapRepository(newTestDB(t))
	roadmap := buildRoadmap(t, repo, smallRequest(1))

	// Week three on the calendar, but week one was never touched.
	svc := newProgress(repo, fixedTime().AddDate(0, 0, 15))
	task := roadmap.Weeks[0].Days[0].Tasks[0]
	rollup, err := svc.RecordCompletion(roadmap.ID, task.ID, svc.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, rollup.CurrentWeek, "unfinished begun weeks hold the pointer")
}

func TestRefreshCurrentWeekAdvancesByCalendar(t *testing.T) {
	repo := repository.NewRoadmapRepository(newTestDB(t))
	roadmap := buildRoadmap(t, repo, smallRequest(1))

	// Complete everything, then look again in week two.
	done := newProgress(repo, fixedTime())
	for _, week := range roadmap.Weeks {
		for _, day := range week.Days {
			for _, task := range day.Tasks {
				_, err := done.RecordCompletion(roadmap.ID, task.ID, fixedTime())
				require.NoError(t, err)
			}
		}
	}

	later := newProgress(repo, fixedTime().AddDate(0, 0, 8))
	reloaded, err := repo.FindByID(roadmap.ID)
	require.NoError(t, err)
	require.NoError(t, later.RefreshCurrentWeek(reloaded))
	assert.Equal(t, 2, reloaded.CurrentWeek)

	// Past the roadmap's end the pointer clamps to the last week.
	final := newProgress(repo, fixedTime().AddDate(0, 0, 100))
	reloaded, err = repo.FindByID(roadmap.ID)
	require.NoError(t, err)
	require.NoError(t, final.RefreshCurrentWeek(reloaded))
	assert.Equal(t, roadmap.DurationWeeks, reloaded.CurrentWeek)
}

func TestRefreshCurrentWeekIgnoresStaleSnapshots(t *testing.T) {
	repo := repository.NewRoadmapRepository(newTestDB(t))
	stale := buildRoadmap(t, repo, smallRequest(1))

	// Week one gets completed behind the snapshot's back.
	writer := newProgress(repo, fixedTime())
	for _, day := range stale.Weeks[0].Days {
		for _, task := range day.Tasks {
			_, err := writer.RecordCompletion(stale.ID, task.ID, fixedTime())
			require.NoError(t, err)
		}
	}
	stale.CurrentWeek = 1

	// The snapshot still shows week one incomplete; the store decides.
	svc := newProgress(repo, fixedTime().AddDate(0, 0, 8))
	require.NoError(t, svc.RefreshCurrentWeek(stale))
	assert.Equal(t, 2, stale.CurrentWeek)

	reloaded, err := repo.FindByID(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.CurrentWeek)
}

func TestTodaysTasksResolvesByDate(t *testing.T) {
	repo := repository.NewRoadmapRepository(newTestDB(t))
	roadmap := buildRoadmap(t, repo, smallRequest(1))
	svc := newProgress(repo, fixedTime())

	day, err := svc.TodaysTasks(roadmap.ID, fixedTime().AddDate(0, 0, 8))
	require.NoError(t, err)
	assert.Equal(t, 1, day.DayIndex)

	_, err = svc.TodaysTasks(roadmap.ID, fixedTime().AddDate(1, 0, 0))
	assert.ErrorIs(t, err, util.ErrNoDayForDate)
}

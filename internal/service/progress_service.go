package service

import (
	"math"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/util"
	"placement_prep_backend/pkg/monitoring"
	"sync"
	"time"
)

// Rollup is the derived progress state returned after a completion event.
type Rollup struct {
	RoadmapID        string `json:"roadmapId"`
	Progress         int    `json:"progress"`
	CurrentWeek      int    `json:"currentWeek"`
	CompletedTasks   int    `json:"completedTasks"`
	TotalTasks       int    `json:"totalTasks"`
	AlreadyCompleted bool   `json:"alreadyCompleted"`
}

// ProgressService owns all mutation of a roadmap after assembly: completion
// flags, rollups and the current-week pointer. Mutations to one roadmap are
// serialized through a per-roadmap mutex, so a rollup never sees a
// half-updated task set and duplicate events cannot double count.
type ProgressService struct {
	Repo  *repository.RoadmapRepository
	locks sync.Map // roadmap id -> *sync.Mutex
	Now   func() time.Time
}

func NewProgressService(repo *repository.RoadmapRepository) *ProgressService {
	return &ProgressService{Repo: repo, Now: time.Now}
}

func (s *ProgressService) lock(roadmapID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(roadmapID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// RecordCompletion marks a task complete and recomputes the rollups. Task
// completion is one way: repeating the event is an idempotent no-op that
// returns the unchanged rollup.
func (s *ProgressService) RecordCompletion(roadmapID, taskID string, ts time.Time) (*Rollup, error) {
	mu := s.lock(roadmapID)
	mu.Lock()
	defer mu.Unlock()

	roadmap, err := s.Repo.FindByID(roadmapID)
	if err != nil {
		return nil, err
	}

	var task *model.RoadmapTask
	var day *model.RoadmapDay
	var week *model.RoadmapWeek
	for w := range roadmap.Weeks {
		for d := range roadmap.Weeks[w].Days {
			for t := range roadmap.Weeks[w].Days[d].Tasks {
				if roadmap.Weeks[w].Days[d].Tasks[t].ID == taskID {
					week = &roadmap.Weeks[w]
					day = &roadmap.Weeks[w].Days[d]
					task = &roadmap.Weeks[w].Days[d].Tasks[t]
				}
			}
		}
	}
	if task == nil {
		return nil, util.ErrTaskNotFound
	}

	if task.Completed {
		return s.rollup(roadmap, true), nil
	}

	task.Completed = true
	task.CompletedAt = &ts
	day.CompletedTasks++
	week.CompletedTasks++
	roadmap.CompletedTasks++
	roadmap.Progress = progressPercent(roadmap.CompletedTasks, roadmap.TotalTasks)
	roadmap.CurrentWeek = currentWeek(roadmap, s.Now())

	if err := s.Repo.SaveProgress(roadmap, task, week, day); err != nil {
		return nil, err
	}
	monitoring.TaskCompletions.Inc()

	return s.rollup(roadmap, false), nil
}

// RefreshCurrentWeek advances the pointer by calendar time alone, used on the
// read path so an idle roadmap still points at the right week. The target is
// recomputed from a fresh load under the roadmap's lock; a value derived from
// the caller's snapshot could overwrite a pointer a concurrent completion
// event just committed.
func (s *ProgressService) RefreshCurrentWeek(roadmap *model.Roadmap) error {
	mu := s.lock(roadmap.ID)
	mu.Lock()
	defer mu.Unlock()

	fresh, err := s.Repo.FindByID(roadmap.ID)
	if err != nil {
		return err
	}
	want := currentWeek(fresh, s.Now())
	roadmap.CurrentWeek = want
	if want == fresh.CurrentWeek {
		return nil
	}
	return s.Repo.UpdateCurrentWeek(roadmap.ID, want)
}

// TodaysTasks resolves the day whose derived date equals asOf, regardless of
// where the current-week pointer is.
func (s *ProgressService) TodaysTasks(roadmapID string, asOf time.Time) (*model.RoadmapDay, error) {
	roadmap, err := s.Repo.FindByID(roadmapID)
	if err != nil {
		return nil, err
	}
	for w := range roadmap.Weeks {
		for d := range roadmap.Weeks[w].Days {
			day := &roadmap.Weeks[w].Days[d]
			if sameDate(day.Date, asOf) {
				return day, nil
			}
		}
	}
	return nil, util.ErrNoDayForDate
}

func (s *ProgressService) rollup(roadmap *model.Roadmap, already bool) *Rollup {
	return &Rollup{
		RoadmapID:        roadmap.ID,
		Progress:         roadmap.Progress,
		CurrentWeek:      roadmap.CurrentWeek,
		CompletedTasks:   roadmap.CompletedTasks,
		TotalTasks:       roadmap.TotalTasks,
		AlreadyCompleted: already,
	}
}

func progressPercent(completed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// currentWeek picks where attention should be: the earliest week that has
// begun and still holds an incomplete task. When every begun week is done the
// pointer follows the calendar, so finishing early never skips ahead of time
// and a finished past week never holds it back.
func currentWeek(roadmap *model.Roadmap, now time.Time) int {
	for w := range roadmap.Weeks {
		week := &roadmap.Weeks[w]
		if week.Started(now) && week.HasIncomplete() {
			return week.WeekNumber
		}
	}
	return calendarWeek(roadmap, now)
}

func calendarWeek(roadmap *model.Roadmap, now time.Time) int {
	if len(roadmap.Weeks) == 0 || len(roadmap.Weeks[0].Days) == 0 {
		return 1
	}
	start := roadmap.Weeks[0].Days[0].Date
	days := int(now.Sub(start).Hours() / 24)
	week := days/model.DaysPerWeek + 1
	if week < 1 {
		return 1
	}
	if week > roadmap.DurationWeeks {
		return roadmap.DurationWeeks
	}
	return week
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

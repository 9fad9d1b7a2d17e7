package model

import (
	"time"
)

type RoadmapStatus string

const (
	RoadmapActive   RoadmapStatus = "active"
	RoadmapArchived RoadmapStatus = "archived"
)

// DaysPerWeek is fixed: every roadmap week holds exactly seven days, Mon..Sun.
const DaysPerWeek = 7

// FocusRest marks a day with no scheduled tasks.
const FocusRest = "rest"

// Roadmap is the root of a generated study plan. Its structure is frozen at
// assembly time; only CurrentWeek, Progress, the counters and the completion
// flags of its tasks ever change afterwards.
// swagger:model Roadmap
type Roadmap struct {
	UUIDBase
	UserID             uint          `gorm:"index;not null" json:"userId"`
	TargetCompany      string        `gorm:"size:255" json:"targetCompany"`
	TargetRole         string        `gorm:"size:255" json:"targetRole"`
	DurationWeeks      int           `gorm:"not null" json:"durationWeeks"`
	DailyBudgetMinutes int           `gorm:"not null" json:"dailyBudgetMinutes"`
	Status             RoadmapStatus `gorm:"size:20;default:'active';index" json:"status"`
	CurrentWeek        int           `gorm:"default:1" json:"currentWeek"`
	Progress           int           `gorm:"default:0" json:"progress"` // 0-100
	TotalTasks         int           `gorm:"default:0" json:"totalTasks"`
	CompletedTasks     int           `gorm:"default:0" json:"completedTasks"`
	Weeks              []RoadmapWeek `gorm:"foreignKey:RoadmapID;constraint:OnDelete:CASCADE" json:"weeks,omitempty"`
}

func (Roadmap) TableName() string {
	return "roadmaps"
}

// swagger:model RoadmapWeek
type RoadmapWeek struct {
	BaseModel
	RoadmapID      string       `gorm:"index;type:varchar(36);not null" json:"roadmapId"`
	WeekNumber     int          `gorm:"not null" json:"weekNumber"` // 1-based
	Theme          string       `gorm:"size:100" json:"theme"`
	Milestone      string       `gorm:"size:255" json:"milestone,omitempty"`
	TotalTasks     int          `gorm:"default:0" json:"totalTasks"`
	CompletedTasks int          `gorm:"default:0" json:"completedTasks"`
	Days           []RoadmapDay `gorm:"foreignKey:WeekID;constraint:OnDelete:CASCADE" json:"days,omitempty"`
}

func (RoadmapWeek) TableName() string {
	return "roadmap_weeks"
}

// swagger:model RoadmapDay
type RoadmapDay struct {
	BaseModel
	WeekID         uint          `gorm:"index;not null" json:"weekId"`
	DayIndex       int           `gorm:"not null" json:"dayIndex"` // 0=Mon .. 6=Sun
	Date           time.Time     `gorm:"not null" json:"date"`
	FocusArea      string        `gorm:"size:100" json:"focusArea"`
	TotalTasks     int           `gorm:"default:0" json:"totalTasks"`
	CompletedTasks int           `gorm:"default:0" json:"completedTasks"`
	Tasks          []RoadmapTask `gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

func (RoadmapDay) TableName() string {
	return "roadmap_days"
}

// swagger:model RoadmapTask
type RoadmapTask struct {
	UUIDBase
	DayID           uint         `gorm:"index;not null" json:"dayId"`
	RoadmapID       string       `gorm:"index;type:varchar(36);not null" json:"roadmapId"`
	Skill           string       `gorm:"size:100;not null" json:"skill"`
	Title           string       `gorm:"size:255;not null" json:"title"`
	Description     string       `gorm:"type:text" json:"description"`
	ResourceType    ResourceType `gorm:"size:20;default:'practice'" json:"resourceType"`
	ResourceURL     string       `gorm:"size:512" json:"resourceUrl,omitempty"`
	DurationMinutes int          `gorm:"not null" json:"durationMinutes"`
	SortOrder       int          `gorm:"default:0" json:"sortOrder"`
	Completed       bool         `gorm:"default:false" json:"completed"`
	CompletedAt     *time.Time   `json:"completedAt,omitempty"`
}

func (RoadmapTask) TableName() string {
	return "roadmap_tasks"
}

// StartDate returns the first calendar day of the week (midnight).
func (w *RoadmapWeek) StartDate() time.Time {
	if len(w.Days) == 0 {
		return time.Time{}
	}
	return w.Days[0].Date
}

// Started reports whether the week's date range has begun as of now.
func (w *RoadmapWeek) Started(now time.Time) bool {
	if len(w.Days) == 0 {
		return false
	}
	return !now.Before(w.Days[0].Date)
}

// HasIncomplete reports whether any task of the week is still pending.
func (w *RoadmapWeek) HasIncomplete() bool {
	for i := range w.Days {
		for j := range w.Days[i].Tasks {
			if !w.Days[i].Tasks[j].Completed {
				return true
			}
		}
	}
	return false
}

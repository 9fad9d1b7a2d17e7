package model

type ResourceType string

const (
	ResourceVideo    ResourceType = "video"
	ResourceArticle  ResourceType = "article"
	ResourcePractice ResourceType = "practice"
	ResourceOther    ResourceType = "other"
)

// LearningResource is one entry of the read-only learning catalog
// (courses, videos, practice sites) keyed by skill.
// swagger:model LearningResource
type LearningResource struct {
	BaseModel
	Skill           string       `gorm:"size:100;index;not null" json:"skill"`
	Type            ResourceType `gorm:"size:20;default:'other'" json:"type"`
	Title           string       `gorm:"size:255;not null" json:"title"`
	Description     string       `gorm:"type:text" json:"description"`
	URL             string       `gorm:"size:512" json:"url"`
	DurationMinutes int          `gorm:"default:45" json:"durationMinutes"`
	Level           string       `gorm:"size:20;default:'all'" json:"level"` // beginner, intermediate, advanced, all
	Enabled         bool         `gorm:"default:true" json:"enabled"`
}

func (LearningResource) TableName() string {
	return "learning_resources"
}

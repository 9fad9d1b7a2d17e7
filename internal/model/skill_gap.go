package model

import "strings"

type GapPriority string

const (
	PriorityCritical GapPriority = "critical"
	PriorityHigh     GapPriority = "high"
	PriorityMedium   GapPriority = "medium"
	PriorityLow      GapPriority = "low"
)

// ValidPriority reports whether p is one of the four known ordinals.
func ValidPriority(p GapPriority) bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// NormalizeSkill canonicalizes a skill name to the catalog's key form:
// lower-case, trimmed, inner whitespace collapsed. "System  Design" and
// "system design" address the same catalog entries.
func NormalizeSkill(skill string) string {
	return strings.Join(strings.Fields(strings.ToLower(skill)), " ")
}

// SkillGap is one backlog entry pushed by the skill-gap analyzer:
// how far a student currently is from the proficiency a target role expects.
// swagger:model SkillGap
type SkillGap struct {
	BaseModel
	UserID             uint        `gorm:"index:idx_user_skill,unique;not null" json:"userId"`
	Skill              string      `gorm:"size:100;index:idx_user_skill,unique;not null" json:"skill"`
	Priority           GapPriority `gorm:"size:20;default:'medium'" json:"priority"`
	CurrentProficiency int         `gorm:"default:0" json:"currentProficiency"` // 0-100
	TargetProficiency  int         `gorm:"default:0" json:"targetProficiency"`  // 0-100
	TargetCompany      string      `gorm:"size:255" json:"targetCompany"`
	TargetRole         string      `gorm:"size:255" json:"targetRole"`
}

func (SkillGap) TableName() string {
	return "skill_gaps"
}

// Gap returns the proficiency distance still to close.
func (g *SkillGap) Gap() int {
	d := g.TargetProficiency - g.CurrentProficiency
	if d < 0 {
		return 0
	}
	return d
}

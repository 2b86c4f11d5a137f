package models

import "gorm.io/gorm"

// Skill levels accepted for a course
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

type Course struct {
	gorm.Model
	Title                string `gorm:"not null" json:"title"`
	Description          string `gorm:"type:text;not null" json:"description"`
	Weeks                string `gorm:"not null" json:"weeks"`
	Tuition              uint   `gorm:"not null" json:"tuition"`
	MinimumSkill         string `gorm:"not null" json:"minimumSkill"` // beginner, intermediate, advanced
	ScholarshipAvailable bool   `gorm:"default:false" json:"scholarshipAvailable"`
	BootcampID           uint   `gorm:"not null" json:"bootcamp"`
	UserID               uint   `gorm:"not null" json:"user"`
}

// ValidSkill reports whether the given minimum skill is one of the accepted levels.
func ValidSkill(skill string) bool {
	return skill == SkillBeginner || skill == SkillIntermediate || skill == SkillAdvanced
}

package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Bootcamp struct {
	gorm.Model
	Name          string         `gorm:"unique;not null" json:"name"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Website       string         `gorm:"default:''" json:"website"`
	Phone         string         `gorm:"default:''" json:"phone"`
	Email         string         `gorm:"default:''" json:"email"`
	Address       string         `gorm:"not null" json:"address"`
	Latitude      float64        `gorm:"default:0" json:"latitude"`
	Longitude     float64        `gorm:"default:0" json:"longitude"`
	Careers       datatypes.JSON `json:"careers"`
	Housing       bool           `gorm:"default:false" json:"housing"`
	JobAssistance bool           `gorm:"default:false" json:"jobAssistance"`
	JobGuarantee  bool           `gorm:"default:false" json:"jobGuarantee"`
	AcceptGi      bool           `gorm:"default:false" json:"acceptGi"`
	AverageCost   uint           `gorm:"default:0" json:"averageCost"`   // derived from course tuition
	AverageRating float64        `gorm:"default:0" json:"averageRating"` // derived from review ratings
	Photo         string         `gorm:"default:'no-photo.jpg'" json:"photo"`
	UserID        uint           `gorm:"not null" json:"user"`
	Courses       []Course       `json:"courses,omitempty"`
	Members       []*User        `gorm:"many2many:bootcamp_members" json:"joinedUsers,omitempty"`
}

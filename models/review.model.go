package models

import "gorm.io/gorm"

// A user may leave at most one review per bootcamp, enforced by the
// composite unique index on (bootcamp_id, user_id). Review deletes are hard
// deletes, so removing a review frees the slot for a new one.
type Review struct {
	gorm.Model
	Title      string    `gorm:"not null" json:"title"`
	Text       string    `gorm:"type:text;size:500;not null" json:"text"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 10" json:"rating"` // 1-10
	BootcampID uint      `gorm:"not null;uniqueIndex:idx_review_bootcamp_user" json:"bootcamp"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_review_bootcamp_user" json:"user"`
	Bootcamp   *Bootcamp `json:"bootcampDetail,omitempty"`
}

package utils

import (
	"database/sql"
	"log"
	"math"

	"devcamper/models"

	"gorm.io/gorm"
)

// Derived bootcamp fields. Controllers call these explicitly after a course
// or review write or delete has completed, so the triggering record is
// already visible (or already gone) when the mean is taken. Failures are
// logged and swallowed, they must never fail the triggering request.

// RecalcAverageCost recomputes a bootcamp's average course tuition, rounded
// up to the nearest multiple of 10. Set to 0 when no courses remain.
func RecalcAverageCost(db *gorm.DB, bootcampID uint) {
	var avg sql.NullFloat64
	if err := db.Model(&models.Course{}).
		Where("bootcamp_id = ?", bootcampID).
		Select("AVG(tuition)").
		Scan(&avg).Error; err != nil {
		log.Printf("Error computing average cost for bootcamp %d: %v", bootcampID, err)
		return
	}

	cost := uint(0)
	if avg.Valid {
		cost = uint(math.Ceil(avg.Float64/10) * 10)
	}

	if err := db.Model(&models.Bootcamp{}).
		Where("id = ?", bootcampID).
		Update("average_cost", cost).Error; err != nil {
		log.Printf("Error updating average cost for bootcamp %d: %v", bootcampID, err)
	}
}

// RecalcAverageRating recomputes a bootcamp's average review rating. The raw
// mean is stored unrounded. Set to 0 when no reviews remain.
func RecalcAverageRating(db *gorm.DB, bootcampID uint) {
	var avg sql.NullFloat64
	if err := db.Model(&models.Review{}).
		Where("bootcamp_id = ?", bootcampID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		log.Printf("Error computing average rating for bootcamp %d: %v", bootcampID, err)
		return
	}

	rating := float64(0)
	if avg.Valid {
		rating = avg.Float64
	}

	if err := db.Model(&models.Bootcamp{}).
		Where("id = ?", bootcampID).
		Update("average_rating", rating).Error; err != nil {
		log.Printf("Error updating average rating for bootcamp %d: %v", bootcampID, err)
	}
}

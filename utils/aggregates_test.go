package utils

import (
	"testing"

	"devcamper/database"
	"devcamper/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAggregatesTest(t *testing.T) (*gorm.DB, models.Bootcamp) {
	t.Helper()

	db, err := database.ConnectTestDb()
	require.NoError(t, err)

	bootcamp := models.Bootcamp{
		Name:        "Devworks Bootcamp",
		Description: "Full stack web development",
		Address:     "233 Bay State Rd Boston MA 02215",
		UserID:      1,
	}
	require.NoError(t, db.Create(&bootcamp).Error)

	return db, bootcamp
}

func addCourse(t *testing.T, db *gorm.DB, bootcampID uint, tuition uint) models.Course {
	t.Helper()

	course := models.Course{
		Title:        "Course",
		Description:  "Description",
		Weeks:        "8",
		Tuition:      tuition,
		MinimumSkill: models.SkillBeginner,
		BootcampID:   bootcampID,
		UserID:       1,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func TestRecalcAverageCost(t *testing.T) {
	db, bootcamp := setupAggregatesTest(t)

	addCourse(t, db, bootcamp.ID, 100)
	addCourse(t, db, bootcamp.ID, 200)
	addCourse(t, db, bootcamp.ID, 300)

	RecalcAverageCost(db, bootcamp.ID)

	require.NoError(t, db.First(&bootcamp, bootcamp.ID).Error)
	require.Equal(t, uint(200), bootcamp.AverageCost)
}

func TestRecalcAverageCostRoundsUp(t *testing.T) {
	db, bootcamp := setupAggregatesTest(t)

	// mean 97.5 rounds up to the next multiple of 10
	addCourse(t, db, bootcamp.ID, 95)
	addCourse(t, db, bootcamp.ID, 100)

	RecalcAverageCost(db, bootcamp.ID)

	require.NoError(t, db.First(&bootcamp, bootcamp.ID).Error)
	require.Equal(t, uint(100), bootcamp.AverageCost)
}

func TestRecalcAverageCostNoCourses(t *testing.T) {
	db, bootcamp := setupAggregatesTest(t)

	course := addCourse(t, db, bootcamp.ID, 500)
	RecalcAverageCost(db, bootcamp.ID)

	require.NoError(t, db.Delete(&course).Error)
	RecalcAverageCost(db, bootcamp.ID)

	require.NoError(t, db.First(&bootcamp, bootcamp.ID).Error)
	require.Equal(t, uint(0), bootcamp.AverageCost)
}

func TestRecalcAverageRating(t *testing.T) {
	db, bootcamp := setupAggregatesTest(t)

	for i, rating := range []int{6, 7} {
		review := models.Review{
			Title:      "Review",
			Text:       "Text",
			Rating:     rating,
			BootcampID: bootcamp.ID,
			UserID:     uint(i + 1),
		}
		require.NoError(t, db.Create(&review).Error)
	}

	RecalcAverageRating(db, bootcamp.ID)

	require.NoError(t, db.First(&bootcamp, bootcamp.ID).Error)
	// the raw mean is stored unrounded
	require.InDelta(t, 6.5, bootcamp.AverageRating, 0.0001)
}

func TestRecalcAverageRatingNoReviews(t *testing.T) {
	db, bootcamp := setupAggregatesTest(t)

	review := models.Review{
		Title:      "Review",
		Text:       "Text",
		Rating:     9,
		BootcampID: bootcamp.ID,
		UserID:     1,
	}
	require.NoError(t, db.Create(&review).Error)
	RecalcAverageRating(db, bootcamp.ID)

	require.NoError(t, db.Delete(&review).Error)
	RecalcAverageRating(db, bootcamp.ID)

	require.NoError(t, db.First(&bootcamp, bootcamp.ID).Error)
	require.Equal(t, float64(0), bootcamp.AverageRating)
}

package reviewController

import (
	"fmt"
	"strconv"

	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"
	"devcamper/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetReviews lists reviews. On the nested route the result is scoped to the
// bootcamp; the top level route goes through the AdvancedResults middleware.
func GetReviews(c *fiber.Ctx) error {
	if bootcampParam := c.Params("bootcampId"); bootcampParam != "" {
		bootcampID, err := strconv.ParseUint(bootcampParam, 10, 32)
		if err != nil {
			return err
		}

		var reviews []models.Review
		if err := database.Database.Db.Where("bootcamp_id = ?", bootcampID).Find(&reviews).Error; err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"count":   len(reviews),
			"data":    reviews,
		})
	}

	return c.Status(fiber.StatusOK).JSON(c.Locals("advancedResults"))
}

// GetReview returns a single review with its bootcamp resolved inline
func GetReview(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	var review models.Review
	if err := database.Database.Db.
		Preload("Bootcamp", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "description")
		}).
		First(&review, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No review found with the id of %d", id))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, review)
}

type reviewRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// AddReview creates a review for a bootcamp the acting user has joined and
// refreshes the bootcamp's average rating. The composite unique index keeps
// a user to one review per bootcamp.
func AddReview(c *fiber.Ctx) error {
	bootcampID, err := strconv.ParseUint(c.Params("bootcampId"), 10, 32)
	if err != nil {
		return err
	}

	reqData := new(reviewRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var bootcamp models.Bootcamp
	if err := db.First(&bootcamp, bootcampID).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No bootcamp found with id of %d", bootcampID))
	}

	user := middleware.CurrentUser(c)

	if user.Role != models.RoleAdmin {
		var joined int64
		if err := db.Table("bootcamp_members").
			Where("bootcamp_id = ? AND user_id = ?", bootcamp.ID, user.ID).
			Count(&joined).Error; err != nil {
			return err
		}
		if joined == 0 {
			return middleware.NewErrorResponse(fiber.StatusBadRequest,
				fmt.Sprintf("User %d must join bootcamp %d before reviewing it", user.ID, bootcamp.ID))
		}
	}

	review := models.Review{
		Title:      reqData.Title,
		Text:       reqData.Text,
		Rating:     reqData.Rating,
		BootcampID: bootcamp.ID,
		UserID:     user.ID,
	}

	if err := db.Create(&review).Error; err != nil {
		// a second review by the same user trips the unique index and is
		// normalized to a duplicate error by the error handler
		return err
	}

	utils.RecalcAverageRating(db, bootcamp.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, review)
}

type reviewUpdateRequest struct {
	Title  *string `json:"title"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

// UpdateReview mutates an owned review and refreshes the bootcamp's average
// rating
func UpdateReview(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	reqData := new(reviewUpdateRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var review models.Review
	if err := db.First(&review, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No review with the id of %d", id))
	}

	user := middleware.CurrentUser(c)
	if review.UserID != user.ID && user.Role != models.RoleAdmin {
		return middleware.NewErrorResponse(fiber.StatusForbidden,
			fmt.Sprintf("Not authorized to update review %d", review.ID))
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Text != nil {
		updates["text"] = *reqData.Text
	}
	if reqData.Rating != nil {
		updates["rating"] = *reqData.Rating
	}

	if len(updates) > 0 {
		if err := db.Model(&review).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := db.First(&review, id).Error; err != nil {
		return err
	}

	utils.RecalcAverageRating(db, review.BootcampID)

	return middleware.JsonResponse(c, fiber.StatusOK, review)
}

// DeleteReview removes an owned review and refreshes the bootcamp's average
// rating once the record is gone
func DeleteReview(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	db := database.Database.Db

	var review models.Review
	if err := db.First(&review, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No review with the id of %d", id))
	}

	user := middleware.CurrentUser(c)
	if review.UserID != user.ID && user.Role != models.RoleAdmin {
		return middleware.NewErrorResponse(fiber.StatusForbidden,
			fmt.Sprintf("Not authorized to delete review %d", review.ID))
	}

	// hard delete, so the (bootcamp, user) slot frees up for a new review
	if err := db.Unscoped().Delete(&review).Error; err != nil {
		return err
	}

	utils.RecalcAverageRating(db, review.BootcampID)

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{})
}

package courseController

import (
	"fmt"
	"strconv"

	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"
	"devcamper/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCourses lists courses. On the nested route the result is scoped to the
// bootcamp; the top level route goes through the AdvancedResults middleware.
func GetCourses(c *fiber.Ctx) error {
	if bootcampParam := c.Params("bootcampId"); bootcampParam != "" {
		bootcampID, err := strconv.ParseUint(bootcampParam, 10, 32)
		if err != nil {
			return err
		}

		var courses []models.Course
		if err := database.Database.Db.Where("bootcamp_id = ?", bootcampID).Find(&courses).Error; err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"count":   len(courses),
			"data":    courses,
		})
	}

	return c.Status(fiber.StatusOK).JSON(c.Locals("advancedResults"))
}

// GetCourse returns a single course by id
func GetCourse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	var course models.Course
	if err := database.Database.Db.First(&course, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No course found with the id of %d", id))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, course)
}

type courseRequest struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Weeks                string `json:"weeks"`
	Tuition              uint   `json:"tuition"`
	MinimumSkill         string `json:"minimumSkill"`
	ScholarshipAvailable bool   `json:"scholarshipAvailable"`
}

// AddCourse creates a course under a bootcamp owned by the acting user and
// refreshes the bootcamp's average cost
func AddCourse(c *fiber.Ctx) error {
	bootcampID, err := strconv.ParseUint(c.Params("bootcampId"), 10, 32)
	if err != nil {
		return err
	}

	reqData := new(courseRequest)
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
	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return middleware.NewErrorResponse(fiber.StatusForbidden,
			fmt.Sprintf("User %d is not authorized to add a course to bootcamp %d", user.ID, bootcamp.ID))
	}

	course := models.Course{
		Title:                reqData.Title,
		Description:          reqData.Description,
		Weeks:                reqData.Weeks,
		Tuition:              reqData.Tuition,
		MinimumSkill:         reqData.MinimumSkill,
		ScholarshipAvailable: reqData.ScholarshipAvailable,
		BootcampID:           bootcamp.ID,
		UserID:               user.ID,
	}

	if err := db.Create(&course).Error; err != nil {
		return err
	}

	utils.RecalcAverageCost(db, bootcamp.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, course)
}

type courseUpdateRequest struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Weeks                *string `json:"weeks"`
	Tuition              *uint   `json:"tuition"`
	MinimumSkill         *string `json:"minimumSkill"`
	ScholarshipAvailable *bool   `json:"scholarshipAvailable"`
}

// UpdateCourse mutates an owned course and refreshes the bootcamp's average
// cost
func UpdateCourse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	reqData := new(courseUpdateRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No course with the id of %d", id))
	}

	user := middleware.CurrentUser(c)
	if course.UserID != user.ID && user.Role != models.RoleAdmin {
		return middleware.NewErrorResponse(fiber.StatusForbidden,
			fmt.Sprintf("User %d is not authorized to update course %d", user.ID, course.ID))
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Weeks != nil {
		updates["weeks"] = *reqData.Weeks
	}
	if reqData.Tuition != nil {
		updates["tuition"] = *reqData.Tuition
	}
	if reqData.MinimumSkill != nil {
		updates["minimum_skill"] = *reqData.MinimumSkill
	}
	if reqData.ScholarshipAvailable != nil {
		updates["scholarship_available"] = *reqData.ScholarshipAvailable
	}

	if len(updates) > 0 {
		if err := db.Model(&course).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := db.First(&course, id).Error; err != nil {
		return err
	}

	utils.RecalcAverageCost(db, course.BootcampID)

	return middleware.JsonResponse(c, fiber.StatusOK, course)
}

// DeleteCourse removes an owned course and refreshes the bootcamp's average
// cost once the record is gone
func DeleteCourse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No course with the id of %d", id))
	}

	user := middleware.CurrentUser(c)
	if course.UserID != user.ID && user.Role != models.RoleAdmin {
		return middleware.NewErrorResponse(fiber.StatusForbidden,
			fmt.Sprintf("User %d is not authorized to delete course %d", user.ID, course.ID))
	}

	if err := db.Unscoped().Delete(&course).Error; err != nil {
		return err
	}

	utils.RecalcAverageCost(db, course.BootcampID)

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{})
}

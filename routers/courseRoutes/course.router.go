package courseRoutes

import (
	courseController "devcamper/controllers/course"
	"devcamper/middleware"
	"devcamper/models"
	courseValidator "devcamper/validators/course"

	"github.com/gofiber/fiber/v2"
)

// courseResource describes the course collection for the list middleware
func courseResource() middleware.Resource {
	return middleware.Resource{
		Model:    &models.Course{},
		NewSlice: func() interface{} { return &[]models.Course{} },
		Fields: map[string]string{
			"title":                "title",
			"description":          "description",
			"weeks":                "weeks",
			"tuition":              "tuition",
			"minimumSkill":         "minimum_skill",
			"scholarshipAvailable": "scholarship_available",
			"bootcamp":             "bootcamp_id",
			"user":                 "user_id",
			"createdAt":            "created_at",
		},
	}
}

func SetupCourseRoutes(router fiber.Router) {
	courseGroup := router.Group("/courses")

	courseGroup.Get("/", middleware.AdvancedResults(courseResource()), courseController.GetCourses)
	courseGroup.Get("/:id", courseController.GetCourse)
	courseGroup.Put("/:id", courseValidator.Update(), middleware.Protect,
		middleware.Authorize(models.RolePublisher, models.RoleAdmin), courseController.UpdateCourse)
	courseGroup.Delete("/:id", middleware.Protect,
		middleware.Authorize(models.RolePublisher, models.RoleAdmin), courseController.DeleteCourse)
}

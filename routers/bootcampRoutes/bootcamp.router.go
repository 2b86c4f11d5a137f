package bootcampRoutes

import (
	bootcampController "devcamper/controllers/bootcamp"
	courseController "devcamper/controllers/course"
	reviewController "devcamper/controllers/review"
	"devcamper/middleware"
	"devcamper/models"
	bootcampValidator "devcamper/validators/bootcamp"
	courseValidator "devcamper/validators/course"
	reviewValidator "devcamper/validators/review"

	"github.com/gofiber/fiber/v2"
)

// bootcampResource describes the bootcamp collection for the list middleware
func bootcampResource() middleware.Resource {
	return middleware.Resource{
		Model:    &models.Bootcamp{},
		NewSlice: func() interface{} { return &[]models.Bootcamp{} },
		Fields: map[string]string{
			"name":          "name",
			"description":   "description",
			"website":       "website",
			"phone":         "phone",
			"email":         "email",
			"address":       "address",
			"housing":       "housing",
			"jobAssistance": "job_assistance",
			"jobGuarantee":  "job_guarantee",
			"acceptGi":      "accept_gi",
			"averageCost":   "average_cost",
			"averageRating": "average_rating",
			"photo":         "photo",
			"createdAt":     "created_at",
		},
		Preloads: []string{"Courses"},
	}
}

func SetupBootcampRoutes(router fiber.Router) {
	bootcampGroup := router.Group("/bootcamps")

	bootcampGroup.Get("/radius/:zipcode/:distance", bootcampController.GetBootcampsInRadius)

	bootcampGroup.Get("/", middleware.AdvancedResults(bootcampResource()), bootcampController.GetBootcamps)
	bootcampGroup.Post("/", bootcampValidator.Create(), middleware.Protect,
		middleware.Authorize(models.RolePublisher, models.RoleAdmin), bootcampController.CreateBootcamp)

	bootcampGroup.Get("/:id", bootcampController.GetBootcamp)
	bootcampGroup.Put("/:id", bootcampValidator.Update(), middleware.Protect,
		middleware.Authorize(models.RolePublisher, models.RoleAdmin), bootcampController.UpdateBootcamp)
	bootcampGroup.Delete("/:id", middleware.Protect,
		middleware.Authorize(models.RolePublisher, models.RoleAdmin), bootcampController.DeleteBootcamp)

	bootcampGroup.Put("/:id/photo", middleware.Protect,
		middleware.Authorize(models.RolePublisher, models.RoleAdmin), bootcampController.UploadBootcampPhoto)
	bootcampGroup.Put("/:bootcampId/join", middleware.Protect,
		middleware.Authorize(models.RoleUser), bootcampController.JoinBootcamp)

	// nested resource routes
	bootcampGroup.Get("/:bootcampId/courses", courseController.GetCourses)
	bootcampGroup.Post("/:bootcampId/courses", courseValidator.Add(), middleware.Protect,
		middleware.Authorize(models.RolePublisher, models.RoleAdmin), courseController.AddCourse)
	bootcampGroup.Get("/:bootcampId/reviews", reviewController.GetReviews)
	bootcampGroup.Post("/:bootcampId/reviews", reviewValidator.Add(), middleware.Protect,
		middleware.Authorize(models.RoleUser, models.RoleAdmin), reviewController.AddReview)
}

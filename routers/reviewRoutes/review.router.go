package reviewRoutes

import (
	reviewController "devcamper/controllers/review"
	"devcamper/middleware"
	"devcamper/models"
	reviewValidator "devcamper/validators/review"

	"github.com/gofiber/fiber/v2"
)

// reviewResource describes the review collection for the list middleware
func reviewResource() middleware.Resource {
	return middleware.Resource{
		Model:    &models.Review{},
		NewSlice: func() interface{} { return &[]models.Review{} },
		Fields: map[string]string{
			"title":     "title",
			"rating":    "rating",
			"bootcamp":  "bootcamp_id",
			"user":      "user_id",
			"createdAt": "created_at",
		},
	}
}

func SetupReviewRoutes(router fiber.Router) {
	reviewGroup := router.Group("/reviews")

	reviewGroup.Get("/", middleware.AdvancedResults(reviewResource()), reviewController.GetReviews)
	reviewGroup.Get("/:id", reviewController.GetReview)
	reviewGroup.Put("/:id", reviewValidator.Update(), middleware.Protect,
		middleware.Authorize(models.RoleUser, models.RoleAdmin), reviewController.UpdateReview)
	reviewGroup.Delete("/:id", middleware.Protect,
		middleware.Authorize(models.RoleUser, models.RoleAdmin), reviewController.DeleteReview)
}

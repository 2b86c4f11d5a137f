package userRoutes

import (
	userController "devcamper/controllers/user"
	"devcamper/middleware"
	"devcamper/models"
	userValidator "devcamper/validators/user"

	"github.com/gofiber/fiber/v2"
)

// userResource describes the user collection for the list middleware
func userResource() middleware.Resource {
	return middleware.Resource{
		Model:    &models.User{},
		NewSlice: func() interface{} { return &[]models.User{} },
		Fields: map[string]string{
			"name":      "name",
			"email":     "email",
			"role":      "role",
			"createdAt": "created_at",
		},
	}
}

func SetupUserRoutes(router fiber.Router) {
	userGroup := router.Group("/users")

	// every user route is admin only
	userGroup.Use(middleware.Protect)
	userGroup.Use(middleware.Authorize(models.RoleAdmin))

	userGroup.Get("/", middleware.AdvancedResults(userResource()), userController.GetUsers)
	userGroup.Post("/", userValidator.Add(), userController.AddUser)
	userGroup.Get("/:id", userController.GetUser)
	userGroup.Put("/:id", userValidator.Update(), userController.UpdateUser)
	userGroup.Delete("/:id", userController.DeleteUser)
}

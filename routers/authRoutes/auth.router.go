package authRoutes

import (
	authController "devcamper/controllers/auth"
	"devcamper/middleware"
	authValidator "devcamper/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(router fiber.Router) {
	authGroup := router.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/logout", authController.Logout)
	authGroup.Get("/me", middleware.Protect, authController.GetMe)
	authGroup.Put("/updatedetails", authValidator.UpdateDetails(), middleware.Protect, authController.UpdateDetails)
	authGroup.Put("/updatepassword", authValidator.UpdatePassword(), middleware.Protect, authController.UpdatePassword)
	authGroup.Post("/forgotpassword", authValidator.ForgotPassword(), authController.ForgotPassword)
	authGroup.Put("/resetpassword/:resettoken", authValidator.ResetPassword(), authController.ResetPassword)
}

package authValidator

import (
	"regexp"
	"strings"

	"devcamper/middleware"
	"devcamper/models"

	"github.com/gofiber/fiber/v2"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if strings.TrimSpace(reqData.Name) == "" {
			messages = append(messages, "Please add a name")
		}
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			messages = append(messages, "Please add a valid email")
		}
		if len(reqData.Password) < 6 {
			messages = append(messages, "Password must be at least 6 characters")
		}
		if reqData.Role != "" && !models.ValidRole(reqData.Role) {
			messages = append(messages, "Role must be either user or publisher")
		}

		if len(messages) > 0 {
			return middleware.NewValidationError(messages...)
		}

		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.Email == "" || reqData.Password == "" {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Please provide both email and password")
		}

		return c.Next()
	}
}

// UpdateDetails validator middleware
func UpdateDetails() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if strings.TrimSpace(reqData.Name) == "" {
			messages = append(messages, "Please add a name")
		}
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			messages = append(messages, "Please add a valid email")
		}

		if len(messages) > 0 {
			return middleware.NewValidationError(messages...)
		}

		return c.Next()
	}
}

// UpdatePassword validator middleware
func UpdatePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if reqData.CurrentPassword == "" {
			messages = append(messages, "Please provide the current password")
		}
		if len(reqData.NewPassword) < 6 {
			messages = append(messages, "Password must be at least 6 characters")
		}

		if len(messages) > 0 {
			return middleware.NewValidationError(messages...)
		}

		return c.Next()
	}
}

// ForgotPassword validator middleware
func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email string `json:"email"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			return middleware.NewValidationError("Please add a valid email")
		}

		return c.Next()
	}
}

// ResetPassword validator middleware
func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		if len(reqData.Password) < 6 {
			return middleware.NewValidationError("Password must be at least 6 characters")
		}

		return c.Next()
	}
}

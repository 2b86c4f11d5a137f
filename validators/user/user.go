package userValidator

import (
	"regexp"
	"strings"

	"devcamper/middleware"
	"devcamper/models"

	"github.com/gofiber/fiber/v2"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validRole(role string) bool {
	return models.ValidRole(role) || role == models.RoleAdmin
}

// Add validator middleware
func Add() fiber.Handler {
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
		if reqData.Email == "" || !emailRe.MatchString(reqData.Email) {
			messages = append(messages, "Please add a valid email")
		}
		if len(reqData.Password) < 6 {
			messages = append(messages, "Password must be at least 6 characters")
		}
		if reqData.Role != "" && !validRole(reqData.Role) {
			messages = append(messages, "Role must be user, publisher or admin")
		}

		if len(messages) > 0 {
			return middleware.NewValidationError(messages...)
		}

		return c.Next()
	}
}

// Update validator middleware, only provided fields are checked
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     *string `json:"name"`
			Email    *string `json:"email"`
			Password *string `json:"password"`
			Role     *string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			messages = append(messages, "Please add a name")
		}
		if reqData.Email != nil && !emailRe.MatchString(*reqData.Email) {
			messages = append(messages, "Please add a valid email")
		}
		if reqData.Password != nil && len(*reqData.Password) < 6 {
			messages = append(messages, "Password must be at least 6 characters")
		}
		if reqData.Role != nil && !validRole(*reqData.Role) {
			messages = append(messages, "Role must be user, publisher or admin")
		}

		if len(messages) > 0 {
			return middleware.NewValidationError(messages...)
		}

		return c.Next()
	}
}

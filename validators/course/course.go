package courseValidator

import (
	"strings"

	"devcamper/middleware"
	"devcamper/models"

	"github.com/gofiber/fiber/v2"
)

// Add validator middleware
func Add() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Weeks        string `json:"weeks"`
			Tuition      uint   `json:"tuition"`
			MinimumSkill string `json:"minimumSkill"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if strings.TrimSpace(reqData.Title) == "" {
			messages = append(messages, "Please add a course title")
		}
		if strings.TrimSpace(reqData.Description) == "" {
			messages = append(messages, "Please add a description")
		}
		if strings.TrimSpace(reqData.Weeks) == "" {
			messages = append(messages, "Please add number of weeks")
		}
		if reqData.Tuition == 0 {
			messages = append(messages, "Please add a tuition cost")
		}
		if !models.ValidSkill(reqData.MinimumSkill) {
			messages = append(messages, "Minimum skill must be beginner, intermediate or advanced")
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
			Title        *string `json:"title"`
			Description  *string `json:"description"`
			Weeks        *string `json:"weeks"`
			Tuition      *uint   `json:"tuition"`
			MinimumSkill *string `json:"minimumSkill"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			messages = append(messages, "Please add a course title")
		}
		if reqData.Description != nil && strings.TrimSpace(*reqData.Description) == "" {
			messages = append(messages, "Please add a description")
		}
		if reqData.Weeks != nil && strings.TrimSpace(*reqData.Weeks) == "" {
			messages = append(messages, "Please add number of weeks")
		}
		if reqData.Tuition != nil && *reqData.Tuition == 0 {
			messages = append(messages, "Please add a tuition cost")
		}
		if reqData.MinimumSkill != nil && !models.ValidSkill(*reqData.MinimumSkill) {
			messages = append(messages, "Minimum skill must be beginner, intermediate or advanced")
		}

		if len(messages) > 0 {
			return middleware.NewValidationError(messages...)
		}

		return c.Next()
	}
}

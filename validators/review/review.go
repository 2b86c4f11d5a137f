package reviewValidator

import (
	"strings"

	"devcamper/middleware"

	"github.com/gofiber/fiber/v2"
)

// Add validator middleware
func Add() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title  string `json:"title"`
			Text   string `json:"text"`
			Rating int    `json:"rating"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if strings.TrimSpace(reqData.Title) == "" {
			messages = append(messages, "Please add a title for the review")
		} else if len(reqData.Title) > 100 {
			messages = append(messages, "Title can not be more than 100 characters")
		}
		if strings.TrimSpace(reqData.Text) == "" {
			messages = append(messages, "Please add some text")
		} else if len(reqData.Text) > 500 {
			messages = append(messages, "Text can not be more than 500 characters")
		}
		if reqData.Rating < 1 || reqData.Rating > 10 {
			messages = append(messages, "Please add a rating between 1 and 10")
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
			Title  *string `json:"title"`
			Text   *string `json:"text"`
			Rating *int    `json:"rating"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			messages = append(messages, "Please add a title for the review")
		}
		if reqData.Text != nil {
			if strings.TrimSpace(*reqData.Text) == "" {
				messages = append(messages, "Please add some text")
			} else if len(*reqData.Text) > 500 {
				messages = append(messages, "Text can not be more than 500 characters")
			}
		}
		if reqData.Rating != nil && (*reqData.Rating < 1 || *reqData.Rating > 10) {
			messages = append(messages, "Please add a rating between 1 and 10")
		}

		if len(messages) > 0 {
			return middleware.NewValidationError(messages...)
		}

		return c.Next()
	}
}

package bootcampValidator

import (
	"regexp"
	"strings"

	"devcamper/middleware"

	"github.com/gofiber/fiber/v2"
)

var websiteRe = regexp.MustCompile(`^https?://`)

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Address     string `json:"address"`
			Website     string `json:"website"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if strings.TrimSpace(reqData.Name) == "" {
			messages = append(messages, "Please add a name")
		} else if len(reqData.Name) > 50 {
			messages = append(messages, "Name can not be more than 50 characters")
		}
		if strings.TrimSpace(reqData.Description) == "" {
			messages = append(messages, "Please add a description")
		} else if len(reqData.Description) > 500 {
			messages = append(messages, "Description can not be more than 500 characters")
		}
		if strings.TrimSpace(reqData.Address) == "" {
			messages = append(messages, "Please add an address")
		}
		if reqData.Website != "" && !websiteRe.MatchString(reqData.Website) {
			messages = append(messages, "Please use a valid URL with HTTP or HTTPS")
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
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Address     *string `json:"address"`
			Website     *string `json:"website"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
		}

		var messages []string

		if reqData.Name != nil {
			if strings.TrimSpace(*reqData.Name) == "" {
				messages = append(messages, "Please add a name")
			} else if len(*reqData.Name) > 50 {
				messages = append(messages, "Name can not be more than 50 characters")
			}
		}
		if reqData.Description != nil {
			if strings.TrimSpace(*reqData.Description) == "" {
				messages = append(messages, "Please add a description")
			} else if len(*reqData.Description) > 500 {
				messages = append(messages, "Description can not be more than 500 characters")
			}
		}
		if reqData.Address != nil && strings.TrimSpace(*reqData.Address) == "" {
			messages = append(messages, "Please add an address")
		}
		if reqData.Website != nil && *reqData.Website != "" && !websiteRe.MatchString(*reqData.Website) {
			messages = append(messages, "Please use a valid URL with HTTP or HTTPS")
		}

		if len(messages) > 0 {
			return middleware.NewValidationError(messages...)
		}

		return c.Next()
	}
}

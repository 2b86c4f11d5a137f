package middleware

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorResponse is the typed failure controllers return. The ErrorHandler
// below is the single place these become client-visible JSON.
type ErrorResponse struct {
	StatusCode int
	Messages   []string
}

func (e *ErrorResponse) Error() string {
	return strings.Join(e.Messages, ", ")
}

// NewErrorResponse builds a single-message typed failure
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{StatusCode: statusCode, Messages: []string{message}}
}

// NewValidationError carries one message per failed field
func NewValidationError(messages ...string) *ErrorResponse {
	return &ErrorResponse{StatusCode: fiber.StatusBadRequest, Messages: messages}
}

// JsonResponse writes the uniform success envelope
func JsonResponse(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// ErrorHandler is installed as the fiber error handler. It maps typed
// failures, gorm errors and bad numeric ids to the {success:false, error}
// envelope. Store or library detail never leaks past the message text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	statusCode := fiber.StatusInternalServerError
	messages := []string{"Server Error"}

	var resp *ErrorResponse
	var numErr *strconv.NumError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &resp):
		statusCode = resp.StatusCode
		messages = resp.Messages
	case errors.Is(err, gorm.ErrRecordNotFound), errors.As(err, &numErr):
		// missing row or malformed id in the path
		statusCode = fiber.StatusNotFound
		messages = []string{"Resource not found"}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = fiber.StatusBadRequest
		messages = []string{"Duplicate field value entered"}
	case errors.As(err, &fiberErr):
		statusCode = fiberErr.Code
		messages = []string{fiberErr.Message}
	default:
		log.Printf("Unhandled error: %v", err)
	}

	var errValue interface{} = messages[0]
	if len(messages) > 1 {
		errValue = messages
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"error":   errValue,
	})
}

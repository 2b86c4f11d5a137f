package middleware

import (
	"fmt"
	"strings"
	"time"

	"devcamper/config"
	"devcamper/database"
	"devcamper/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a signed token carrying the user id
func GenerateJWT(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Duration(config.AppConfig.JWTExpireHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// Protect validates the bearer credential from the Authorization header or
// the token cookie, resolves the user and stores it in the request context.
func Protect(c *fiber.Ctx) error {
	var tokenString string

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = authHeader[len("Bearer "):]
	} else if cookie := c.Cookies("token"); cookie != "" && cookie != "none" {
		tokenString = cookie
	}

	if tokenString == "" {
		return NewErrorResponse(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return NewErrorResponse(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return NewErrorResponse(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	// JWT numeric claims decode as float64
	id, ok := claims["id"].(float64)
	if !ok {
		return NewErrorResponse(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	var user models.User
	if err := database.Database.Db.First(&user, uint(id)).Error; err != nil {
		return NewErrorResponse(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	c.Locals("user", user)

	return c.Next()
}

// Authorize returns a middleware that rejects principals whose role is not
// in the accepted set. Must run after Protect.
func Authorize(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return NewErrorResponse(fiber.StatusForbidden,
			fmt.Sprintf("User role %s is not authorized to access this route", user.Role))
	}
}

// CurrentUser returns the principal stored by Protect
func CurrentUser(c *fiber.Ctx) models.User {
	user, _ := c.Locals("user").(models.User)
	return user
}

// SendTokenResponse issues a signed token as both a JSON field and an
// http-only cookie. The cookie is marked secure in production.
func SendTokenResponse(c *fiber.Ctx, user models.User, statusCode int) error {
	token, err := GenerateJWT(user.ID)
	if err != nil {
		return NewErrorResponse(fiber.StatusInternalServerError, "Failed to generate token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(time.Duration(config.AppConfig.JWTCookieExpireDays) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   config.AppConfig.Env == "production",
	})

	return c.Status(statusCode).JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

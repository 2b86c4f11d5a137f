package authController

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"devcamper/config"
	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"
	"devcamper/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a user and issues a token
func Register(c *fiber.Ctx) error {
	reqData := new(registerRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleUser
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.NewErrorResponse(fiber.StatusInternalServerError, "Failed to process your request")
	}

	user := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Role:     role,
		Password: string(hashedPassword),
	}

	if err := database.Database.Db.Create(&user).Error; err != nil {
		// a duplicate email surfaces as gorm.ErrDuplicatedKey and is
		// normalized by the error handler
		return err
	}

	return middleware.SendTokenResponse(c, user, fiber.StatusOK)
}

// Login validates credentials and issues a token
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.NewErrorResponse(fiber.StatusUnauthorized, "Invalid credentials")
	}

	return middleware.SendTokenResponse(c, user, fiber.StatusOK)
}

// Logout clears the token cookie
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "none",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{})
}

// GetMe returns the acting principal
func GetMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	return middleware.JsonResponse(c, fiber.StatusOK, user)
}

// UpdateDetails updates the principal's name and email
func UpdateDetails(c *fiber.Ctx) error {
	reqData := new(struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	user := middleware.CurrentUser(c)
	db := database.Database.Db

	if err := db.Model(&user).Updates(map[string]interface{}{
		"name":  reqData.Name,
		"email": reqData.Email,
	}).Error; err != nil {
		return err
	}

	if err := db.First(&user, user.ID).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, user)
}

// UpdatePassword changes the principal's password after verifying the
// current one, then issues a fresh token
func UpdatePassword(c *fiber.Ctx) error {
	reqData := new(struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	user := middleware.CurrentUser(c)

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.NewErrorResponse(fiber.StatusUnauthorized, "Password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.NewErrorResponse(fiber.StatusInternalServerError, "Failed to process your request")
	}

	if err := database.Database.Db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		return err
	}

	return middleware.SendTokenResponse(c, user, fiber.StatusOK)
}

// ForgotPassword stores a hashed reset token valid for ten minutes and mails
// the plain token to the user
func ForgotPassword(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound, "User with that email does not exist")
	}

	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		log.Printf("Error generating reset token: %v", err)
		return middleware.NewErrorResponse(fiber.StatusInternalServerError, "Failed to process your request")
	}
	resetToken := hex.EncodeToString(buf)

	// only the sha256 of the token is stored
	hash := sha256.Sum256([]byte(resetToken))
	expire := time.Now().Add(10 * time.Minute)

	if err := db.Model(&user).Updates(map[string]interface{}{
		"reset_password_token":  hex.EncodeToString(hash[:]),
		"reset_password_expire": expire,
	}).Error; err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s://%s/api/v1/auth/resetpassword/%s", c.Protocol(), c.Hostname(), resetToken)

	if err := utils.SendResetPasswordEmail(user.Email, user.Name, resetURL); err != nil {
		// the mail never went out, roll the token back
		if rollbackErr := db.Model(&user).Updates(map[string]interface{}{
			"reset_password_token":  "",
			"reset_password_expire": nil,
		}).Error; rollbackErr != nil {
			log.Printf("Error rolling back reset token for user %d: %v", user.ID, rollbackErr)
		}
		return middleware.NewErrorResponse(fiber.StatusInternalServerError, "Email could not be sent")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Email sent")
}

// ResetPassword consumes a reset token and sets the new password
func ResetPassword(c *fiber.Ctx) error {
	reqData := new(struct {
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	hash := sha256.Sum256([]byte(c.Params("resettoken")))

	db := database.Database.Db

	var user models.User
	if err := db.Where("reset_password_token = ? AND reset_password_expire > ?",
		hex.EncodeToString(hash[:]), time.Now()).First(&user).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.NewErrorResponse(fiber.StatusInternalServerError, "Failed to process your request")
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"password":              string(hashedPassword),
		"reset_password_token":  "",
		"reset_password_expire": nil,
	}).Error; err != nil {
		return err
	}

	return middleware.SendTokenResponse(c, user, fiber.StatusOK)
}

package userController

import (
	"fmt"
	"log"
	"strconv"

	"devcamper/config"
	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Admin-only user management. All routes in this controller sit behind
// Protect and Authorize(admin).

// GetUsers emits the envelope prepared by the AdvancedResults middleware
func GetUsers(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(c.Locals("advancedResults"))
}

// GetUser returns a single user by id
func GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	var user models.User
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No user found with the id of %d", id))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, user)
}

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AddUser creates a user with any role, including admin
func AddUser(c *fiber.Ctx) error {
	reqData := new(userRequest)
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
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, user)
}

type userUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UpdateUser mutates a user. The password is rehashed only when a new
// plaintext value is supplied.
func UpdateUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	reqData := new(userUpdateRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No user found with the id of %d", id))
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Email != nil {
		updates["email"] = *reqData.Email
	}
	if reqData.Role != nil {
		updates["role"] = *reqData.Role
	}
	if reqData.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.NewErrorResponse(fiber.StatusInternalServerError, "Failed to process your request")
		}
		updates["password"] = string(hashedPassword)
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := db.First(&user, id).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, user)
}

// DeleteUser removes a user
func DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No user found with the id of %d", id))
	}

	// hard delete, so the email stays usable for a future account
	if err := db.Model(&user).Association("JoinedBootcamps").Clear(); err != nil {
		return err
	}
	if err := db.Unscoped().Delete(&user).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{})
}

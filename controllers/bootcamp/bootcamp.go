package bootcampController

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"devcamper/config"
	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"
	"devcamper/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type bootcampRequest struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Website       string         `json:"website"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	Address       string         `json:"address"`
	Careers       datatypes.JSON `json:"careers"`
	Housing       bool           `json:"housing"`
	JobAssistance bool           `json:"jobAssistance"`
	JobGuarantee  bool           `json:"jobGuarantee"`
	AcceptGi      bool           `json:"acceptGi"`
}

// GetBootcamps emits the envelope prepared by the AdvancedResults middleware
func GetBootcamps(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(c.Locals("advancedResults"))
}

// GetBootcamp returns a single bootcamp by id
func GetBootcamp(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	var bootcamp models.Bootcamp
	if err := database.Database.Db.First(&bootcamp, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("Bootcamp not found with id %d", id))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, bootcamp)
}

// CreateBootcamp creates a bootcamp owned by the acting user. A non-admin
// publisher may own at most one.
func CreateBootcamp(c *fiber.Ctx) error {
	reqData := new(bootcampRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	user := middleware.CurrentUser(c)
	db := database.Database.Db

	if user.Role != models.RoleAdmin {
		var published models.Bootcamp
		if err := db.Where("user_id = ?", user.ID).First(&published).Error; err == nil {
			return middleware.NewErrorResponse(fiber.StatusBadRequest,
				fmt.Sprintf("The user with ID %d has already published a bootcamp", user.ID))
		}
	}

	bootcamp := models.Bootcamp{
		Name:          reqData.Name,
		Description:   reqData.Description,
		Website:       reqData.Website,
		Phone:         reqData.Phone,
		Email:         reqData.Email,
		Address:       reqData.Address,
		Careers:       reqData.Careers,
		Housing:       reqData.Housing,
		JobAssistance: reqData.JobAssistance,
		JobGuarantee:  reqData.JobGuarantee,
		AcceptGi:      reqData.AcceptGi,
		UserID:        user.ID,
	}

	// Geocoding failures leave the location unset rather than failing the
	// create. The address is still stored and can be re-geocoded on update.
	if loc, err := utils.Geocode(reqData.Address); err != nil {
		log.Printf("Error geocoding address for bootcamp %q: %v", reqData.Name, err)
	} else {
		bootcamp.Latitude = loc.Latitude
		bootcamp.Longitude = loc.Longitude
	}

	if err := db.Create(&bootcamp).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, bootcamp)
}

type bootcampUpdateRequest struct {
	Name          *string        `json:"name"`
	Description   *string        `json:"description"`
	Website       *string        `json:"website"`
	Phone         *string        `json:"phone"`
	Email         *string        `json:"email"`
	Address       *string        `json:"address"`
	Careers       datatypes.JSON `json:"careers"`
	Housing       *bool          `json:"housing"`
	JobAssistance *bool          `json:"jobAssistance"`
	JobGuarantee  *bool          `json:"jobGuarantee"`
	AcceptGi      *bool          `json:"acceptGi"`
}

// UpdateBootcamp mutates an owned bootcamp. Only fields present in the body
// are applied.
func UpdateBootcamp(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	reqData := new(bootcampUpdateRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var bootcamp models.Bootcamp
	if err := db.First(&bootcamp, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("Bootcamp not found with id %d", id))
	}

	user := middleware.CurrentUser(c)
	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return middleware.NewErrorResponse(fiber.StatusForbidden,
			fmt.Sprintf("User %d is not authorized to update this bootcamp", user.ID))
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Website != nil {
		updates["website"] = *reqData.Website
	}
	if reqData.Phone != nil {
		updates["phone"] = *reqData.Phone
	}
	if reqData.Email != nil {
		updates["email"] = *reqData.Email
	}
	if reqData.Careers != nil {
		updates["careers"] = reqData.Careers
	}
	if reqData.Housing != nil {
		updates["housing"] = *reqData.Housing
	}
	if reqData.JobAssistance != nil {
		updates["job_assistance"] = *reqData.JobAssistance
	}
	if reqData.JobGuarantee != nil {
		updates["job_guarantee"] = *reqData.JobGuarantee
	}
	if reqData.AcceptGi != nil {
		updates["accept_gi"] = *reqData.AcceptGi
	}
	if reqData.Address != nil && *reqData.Address != bootcamp.Address {
		updates["address"] = *reqData.Address
		if loc, err := utils.Geocode(*reqData.Address); err != nil {
			log.Printf("Error geocoding address for bootcamp %d: %v", bootcamp.ID, err)
		} else {
			updates["latitude"] = loc.Latitude
			updates["longitude"] = loc.Longitude
		}
	}

	if len(updates) > 0 {
		if err := db.Model(&bootcamp).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := db.First(&bootcamp, id).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, bootcamp)
}

// DeleteBootcamp removes an owned bootcamp along with its courses and reviews
func DeleteBootcamp(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	db := database.Database.Db

	var bootcamp models.Bootcamp
	if err := db.First(&bootcamp, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("Bootcamp not found with id %d", id))
	}

	user := middleware.CurrentUser(c)
	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return middleware.NewErrorResponse(fiber.StatusForbidden,
			fmt.Sprintf("User %d is not authorized to delete this bootcamp", user.ID))
	}

	// hard deletes throughout, so the unique bootcamp name and the review
	// slots do not stay occupied by dead rows
	if err := db.Unscoped().Where("bootcamp_id = ?", bootcamp.ID).Delete(&models.Course{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("bootcamp_id = ?", bootcamp.ID).Delete(&models.Review{}).Error; err != nil {
		return err
	}
	if err := db.Model(&bootcamp).Association("Members").Clear(); err != nil {
		return err
	}
	if err := db.Unscoped().Delete(&bootcamp).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{})
}

// GetBootcampsInRadius lists bootcamps within the given distance in miles of
// a zipcode. The radius in radians is distance divided by the earth radius
// of 3963 miles.
func GetBootcampsInRadius(c *fiber.Ctx) error {
	distance, err := strconv.ParseFloat(c.Params("distance"), 64)
	if err != nil {
		return err
	}

	loc, err := utils.Geocode(c.Params("zipcode"))
	if err != nil {
		log.Printf("Error geocoding zipcode %s: %v", c.Params("zipcode"), err)
		return middleware.NewErrorResponse(fiber.StatusInternalServerError, "Unable to geocode the zipcode")
	}

	radius := distance / 3963

	var bootcamps []models.Bootcamp
	if err := database.Database.Db.Find(&bootcamps).Error; err != nil {
		return err
	}

	within := make([]models.Bootcamp, 0)
	for _, bootcamp := range bootcamps {
		angle := utils.CentralAngle(loc.Latitude, loc.Longitude, bootcamp.Latitude, bootcamp.Longitude)
		if angle <= radius {
			within = append(within, bootcamp)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(within),
		"data":    within,
	})
}

// UploadBootcampPhoto stores an image for an owned bootcamp and records the
// generated filename
func UploadBootcampPhoto(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return err
	}

	db := database.Database.Db

	var bootcamp models.Bootcamp
	if err := db.First(&bootcamp, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("Bootcamp not found with id %d", id))
	}

	user := middleware.CurrentUser(c)
	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return middleware.NewErrorResponse(fiber.StatusForbidden,
			fmt.Sprintf("User %d is not authorized to update this bootcamp", user.ID))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Please upload a file")
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image") {
		return middleware.NewErrorResponse(fiber.StatusBadRequest, "Please upload a valid image file")
	}

	if file.Size > int64(config.AppConfig.MaxFileUpload) {
		return middleware.NewErrorResponse(fiber.StatusBadRequest,
			fmt.Sprintf("Please upload an image having size less than %d bytes", config.AppConfig.MaxFileUpload))
	}

	filename := fmt.Sprintf("photo_%d%s", bootcamp.ID, filepath.Ext(file.Filename))

	if _, err := utils.SaveUploadedFile(file, config.AppConfig.FileUploadPath, filename); err != nil {
		log.Printf("Error saving uploaded photo for bootcamp %d: %v", bootcamp.ID, err)
		return middleware.NewErrorResponse(fiber.StatusInternalServerError, "Problem with file upload")
	}

	if err := db.Model(&bootcamp).Update("photo", filename).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, filename)
}

// JoinBootcamp adds the acting user to the bootcamp's member list. Both
// sides of the relation live in the bootcamp_members join table, so a single
// append keeps them consistent.
func JoinBootcamp(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("bootcampId"), 10, 32)
	if err != nil {
		return err
	}

	db := database.Database.Db

	var bootcamp models.Bootcamp
	if err := db.First(&bootcamp, id).Error; err != nil {
		return middleware.NewErrorResponse(fiber.StatusNotFound,
			fmt.Sprintf("No bootcamp with the id of %d", id))
	}

	user := middleware.CurrentUser(c)

	var joined int64
	if err := db.Table("bootcamp_members").
		Where("bootcamp_id = ? AND user_id = ?", bootcamp.ID, user.ID).
		Count(&joined).Error; err != nil {
		return err
	}
	if joined > 0 {
		return middleware.NewErrorResponse(fiber.StatusBadRequest,
			fmt.Sprintf("User %d has already joined bootcamp %d", user.ID, bootcamp.ID))
	}

	if err := db.Model(&bootcamp).Association("Members").Append(&user); err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, bootcamp)
}

package utils

import (
	"log"
	"time"

	"devcamper/database"
	"devcamper/models"

	"github.com/robfig/cron/v3"
)

// StartResetTokenJanitor schedules an hourly sweep clearing password reset
// tokens whose ten minute validity window has passed.
func StartResetTokenJanitor() *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		result := database.Database.Db.Model(&models.User{}).
			Where("reset_password_expire IS NOT NULL AND reset_password_expire < ?", time.Now()).
			Updates(map[string]interface{}{
				"reset_password_token":  "",
				"reset_password_expire": nil,
			})
		if result.Error != nil {
			log.Printf("Error clearing expired reset tokens: %v", result.Error)
			return
		}
		if result.RowsAffected > 0 {
			log.Printf("Cleared %d expired password reset tokens", result.RowsAffected)
		}
	})
	if err != nil {
		log.Printf("Error scheduling reset token janitor: %v", err)
	}

	c.Start()
	return c
}

package utils

import (
	"fmt"
	"log"

	"devcamper/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a plain-text mail through SendGrid
func SendEmail(to, subject, message string) error {
	from := mail.NewEmail(config.AppConfig.FromName, config.AppConfig.FromEmail)
	m := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), message, message)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(m)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}

	return nil
}

// SendResetPasswordEmail mails the reset link for a requested password reset
func SendResetPasswordEmail(to, name, resetURL string) error {
	subject := "DevCamper password reset"
	message := fmt.Sprintf(
		"Dear %s,\n\nYou (or someone else) has requested a password reset for your account.\n\n"+
			"Please make a PUT request to %s to change the password.\n\n"+
			"If this was not you, ignore this email.",
		name, resetURL,
	)

	return SendEmail(to, subject, message)
}

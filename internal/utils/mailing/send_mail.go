package mailing

import (
	"Recipe-Vault-Backend/internal/utils"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", emailConfig.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func SendVerificationMail(toEmail string, name string, token string) error {
	appURL := utils.GetConfig("APP_URL")
	link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", appURL, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Confirm your email address by clicking the link below:</p><p><a href=%q>Verify Email</a></p>",
		name, link,
	)
	return SendMail(toEmail, "Verify your email", body)
}

func SendPasswordResetMail(toEmail string, name string, token string) error {
	appURL := utils.GetConfig("APP_URL")
	link := fmt.Sprintf("%s/reset-password?token=%s", appURL, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received a request to reset your password. Use the link below within 15 minutes:</p><p><a href=%q>Reset Password</a></p>",
		name, link,
	)
	return SendMail(toEmail, "Reset your password", body)
}

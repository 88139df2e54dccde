package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"deckbuilder/config"
)

type EmailService struct {
	host     string
	port     string
	username string
	password string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     config.MailHost,
		port:     config.MailPort,
		username: config.MailUsername,
		password: config.MailPassword,
	}
}

// Enabled reports whether an SMTP server is configured
func (s *EmailService) Enabled() bool {
	return s.host != ""
}

// PasswordResetLink builds the client URL a reset email points to
func PasswordResetLink(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(config.ClientUrl, "/"), token)
}

func (s *EmailService) SendPasswordResetEmail(to, resetToken string) error {
	if !s.Enabled() {
		return fmt.Errorf("mail server not configured")
	}
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	htmlTemplate := strings.TrimSpace(`
To: %s
MIME-version: 1.0
Content-Type: text/html; charset="UTF-8"
Subject: Reset your Deck Builder password

<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Reset your password</title>
</head>
<body style="background-color: #f4f1ea; margin: 0; padding: 0; font-family: Georgia, serif;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <tr>
            <td style="background-color: #2b1d3a; padding: 40px 20px; text-align: center; border-radius: 12px;">
                <h1 style="color: #f5d76e; margin-bottom: 30px; font-size: 24px;">Reset your password</h1>
                <p style="color: #d8cfe6; margin-bottom: 30px; font-size: 16px;">Use the button below to choose a new password. The link expires in 1 hour.</p>
                <a href="%s" style="display: inline-block; background-color: #7b3fa0; color: #ffffff; text-decoration: none; padding: 12px 30px; border-radius: 25px; font-weight: bold;">Choose a new password</a>
                <p style="color: #d8cfe6; font-size: 14px; margin-top: 30px;">If you did not ask for this, you can ignore this email. Your decks are safe.</p>
            </td>
        </tr>
    </table>
</body>
</html>
`)

	msg := []byte(fmt.Sprintf(htmlTemplate, to, PasswordResetLink(resetToken)))
	return smtp.SendMail(s.host+":"+s.port, auth, s.username, []string{to}, msg)
}

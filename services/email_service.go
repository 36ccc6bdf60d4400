// services/email_service.go
package services

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends the formatted notification emails the auth flows trigger.
type Mailer interface {
	SendVerificationEmail(to, name, otp string) error
	SendPasswordResetEmail(to, name, otp string) error
}

// EmailService sends HTML emails over authenticated SMTP.
type EmailService struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewEmailService builds the mailer from SMTP_* environment variables.
func NewEmailService() (*EmailService, error) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("FROM_EMAIL")

	if host == "" || portStr == "" || user == "" || pass == "" || from == "" {
		return nil, fmt.Errorf("missing SMTP configuration")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %v", err)
	}

	return &EmailService{
		host: host,
		port: port,
		user: user,
		pass: pass,
		from: from,
	}, nil
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendVerificationEmail sends the email-confirmation code issued at
// registration.
func (s *EmailService) SendVerificationEmail(to, name, otp string) error {
	subject := "Confirm your email address"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to MeetingApp</h2>
			<p>Hello %s,</p>
			<p>Please use the following code to confirm your email address:</p>
			<h3 style="background-color: #f0f0f0; padding: 10px; font-size: 24px; letter-spacing: 5px; text-align: center;">%s</h3>
			<p>This code will expire in 10 minutes.</p>
			<p>If you did not create an account, please ignore this email.</p>
			<p>Thank you,<br>The MeetingApp Team</p>
		</body>
		</html>
	`, name, otp)

	return s.send(to, subject, body)
}

// SendPasswordResetEmail sends the forgot-password code.
func (s *EmailService) SendPasswordResetEmail(to, name, otp string) error {
	subject := "Password Reset OTP"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Reset Your Password</h2>
			<p>Hello %s,</p>
			<p>You have requested to reset your password. Please use the following code to verify your request:</p>
			<h3 style="background-color: #f0f0f0; padding: 10px; font-size: 24px; letter-spacing: 5px; text-align: center;">%s</h3>
			<p>This code will expire in 10 minutes.</p>
			<p>If you did not request a password reset, please ignore this email or contact support if you have concerns.</p>
			<p>Thank you,<br>The MeetingApp Team</p>
		</body>
		</html>
	`, name, otp)

	return s.send(to, subject, body)
}

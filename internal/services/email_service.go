package services

import (
	"fmt"
	"net/smtp"

	"expensely/internal/config"
	apperrors "expensely/internal/errors"
	"expensely/internal/logger"
)

// emailService sends transactional email over SMTP. When SMTP credentials
// are not configured (development), it logs the reset link instead of
// sending, so the flow stays testable end to end.
type emailService struct {
	host     string
	port     string
	username string
	password string
	from     string
	baseURL  string
}

// NewEmailService creates a new EmailServicer from the application config.
func NewEmailService(cfg *config.Config) EmailServicer {
	return &emailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		baseURL:  cfg.AppBaseURL,
	}
}

// SendPasswordReset emails the single-use reset link to the user.
func (s *emailService) SendPasswordReset(toEmail, resetToken string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, resetToken)

	if s.username == "" || s.password == "" {
		logger.Get().Infow("SMTP not configured, logging reset link instead",
			"email", toEmail,
			"reset_link", resetLink,
		)
		return nil
	}

	body := fmt.Sprintf(`Hello,

You requested to reset your password.

Click the link below to reset it:
%s

This link will expire in 1 hour.

If you did not request this password reset, please ignore this email.
`, resetLink)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Password Reset Request\r\n\r\n%s",
		s.from, toEmail, body)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, auth, s.from, []string{toEmail}, []byte(msg)); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("password reset email sent", "email", toEmail)
	return nil
}

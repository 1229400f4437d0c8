package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

var ErrEmailNotConfigured = errors.New("email service not configured (missing RESEND_API_KEY)")

type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
}

type EmailConfig struct {
	APIKey  string
	From    string
	AppName string
	// Dev logs messages instead of sending them.
	Dev bool
}

type emailService struct {
	client *resend.Client
	from   string
	app    string
	dev    bool
	log    *logger.Logger
}

func NewEmailService(log *logger.Logger, cfg EmailConfig) Mailer {
	var client *resend.Client
	if cfg.APIKey != "" && !cfg.Dev {
		client = resend.NewClient(cfg.APIKey)
	}
	app := cfg.AppName
	if app == "" {
		app = "Youthcare"
	}
	return &emailService{
		client: client,
		from:   cfg.From,
		app:    app,
		dev:    cfg.Dev,
		log:    log.With("service", "EmailService"),
	}
}

func (s *emailService) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	subject := s.app + " - Password Reset"
	text := fmt.Sprintf("Hi %s,\n\nYou requested a password reset.\n\nOpen the link below to choose a new password:\n%s\n\nThe link expires in one hour. If you did not request this, you can ignore this email.", name, resetURL)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>You requested a password reset.</p><p><a href="%s">Reset your password</a></p><p>The link expires in one hour. If you did not request this, you can ignore this email.</p>`, name, resetURL)

	if s.dev {
		s.log.Info("email sent (dev mode)", "type", "password_reset", "to", to, "subject", subject, "url", resetURL)
		return nil
	}
	if s.client == nil {
		return ErrEmailNotConfigured
	}
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Text:    text,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	s.log.Info("email sent", "type", "password_reset", "to", to)
	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	appURL    string
	appName   string
}

// NewEmailService sends through Resend when apiKey is set. Without a key every
// message is only logged.
func NewEmailService(apiKey, fromEmail, appURL, appName string) *EmailService {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	setupURL := fmt.Sprintf("%s/profile-setup.html", s.appURL)
	subject, body := welcomeEmailTemplate(name, setupURL, s.appName)

	if s.client == nil {
		slog.Info("email sent (log mode)", "type", "welcome", "to", email, "subject", subject, "url", setupURL)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "welcome", "to", email)
	}
	return err
}

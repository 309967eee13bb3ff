package client

import (
	"context"
	"errors"
	"fmt"
	"funnel-billing/internal/config"

	"github.com/mrz1836/postmark"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

var ErrFailedToSendEmail = errors.New("failed to send email")

type Email struct {
	To      string
	From    string
	Subject string
	HTML    string
	Text    string
}

type MailClient interface {
	Send(ctx context.Context, email *Email) error
}

// NewMailClient picks the transport named by cfg.Driver.
func NewMailClient(cfg *config.Email) (MailClient, error) {
	switch cfg.Driver {
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp mail driver requires EMAIL_SMTP_HOST")
		}
		return &smtpMailClient{
			dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		}, nil
	case "postmark":
		if cfg.PostmarkServerToken == "" {
			return nil, fmt.Errorf("postmark mail driver requires EMAIL_POSTMARK_SERVER_TOKEN")
		}
		return &postmarkMailClient{
			client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		}, nil
	case "log", "":
		return &logMailClient{}, nil
	default:
		return nil, fmt.Errorf("unsupported mail driver %q", cfg.Driver)
	}
}

type smtpMailClient struct {
	dialer *gomail.Dialer
}

func (c *smtpMailClient) Send(ctx context.Context, email *Email) error {
	m := gomail.NewMessage()
	m.SetHeader("From", email.From)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Text)
	m.AddAlternative("text/html", email.HTML)

	if err := c.dialer.DialAndSend(m); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}

type postmarkMailClient struct {
	client *postmark.Client
}

func (c *postmarkMailClient) Send(ctx context.Context, email *Email) error {
	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:     email.From,
		To:       email.To,
		Subject:  email.Subject,
		HTMLBody: email.HTML,
		TextBody: email.Text,
		Tag:      "renewal",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

// logMailClient only records the email; used in development.
type logMailClient struct{}

func (c *logMailClient) Send(ctx context.Context, email *Email) error {
	log.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Msg("email not sent (log driver)")
	return nil
}

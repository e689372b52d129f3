package mailer

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
)

// Mailer sends transactional CRM mail.
type Mailer interface {
	SendWelcome(ctx context.Context, to, firstName string) error
}

// New returns a Postmark-backed mailer, or a no-op mailer when no server
// token is configured so registration keeps working without mail delivery.
func New(serverToken, accountToken, sender string) Mailer {
	if serverToken == "" || sender == "" {
		return noopMailer{}
	}
	return &postmarkMailer{
		client: postmark.NewClient(serverToken, accountToken),
		sender: sender,
	}
}

type postmarkMailer struct {
	client *postmark.Client
	sender string
}

func (m *postmarkMailer) SendWelcome(ctx context.Context, to, firstName string) error {
	name := firstName
	if name == "" {
		name = "there"
	}
	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.sender,
		To:       to,
		Subject:  "Welcome to your CRM workspace",
		TextBody: fmt.Sprintf("Hi %s,\n\nYour CRM account is ready. Log in to start managing customers, deals and appointments.\n", name),
		Tag:      "welcome",
	})
	if err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("send welcome mail: postmark error %d: %s", resp.ErrorCode, resp.Message)
	}
	return nil
}

type noopMailer struct{}

func (noopMailer) SendWelcome(context.Context, string, string) error { return nil }

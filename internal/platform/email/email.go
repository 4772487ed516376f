// Package email abstracts outbound transactional email behind the EmailSender
// interface. The current implementation uses the Resend API; swapping providers only
// means writing a new implementation and changing the constructor call in main.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender sends account emails. Services depend on this interface, not on the
// concrete Resend implementation.
type EmailSender interface {
	// SendConfirmation sends an email confirmation link to a newly registered user.
	// token is the email-scope JWT to embed in the link, baseURL the public origin
	// of the API.
	SendConfirmation(ctx context.Context, toEmail, username, token, baseURL string) error
}

type resendSender struct {
	client    *resend.Client
	fromEmail string
}

// NewResendSender creates an EmailSender backed by the Resend API.
func NewResendSender(apiKey, fromEmail string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (s *resendSender) SendConfirmation(ctx context.Context, toEmail, username, token, baseURL string) error {
	confirmLink := fmt.Sprintf("%s/api/v1/auth/confirm/%s", baseURL, token)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,Helvetica,sans-serif;background-color:#f4f4f7;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#1f2937;font-size:22px;margin:0 0 16px 0;">Confirm your email</h1>
              <p style="color:#4b5563;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                Hi %s, thanks for signing up. Click the button below to confirm your email address.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#2563eb;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Confirm Email
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#6b7280;font-size:13px;line-height:1.6;margin:0;">
                This link expires in 7 days. If you did not create an account, you can ignore this email.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, username, confirmLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Contacts <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: "Confirm your email address",
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

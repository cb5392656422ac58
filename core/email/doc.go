// Package email delivers rendered email documents through pluggable
// providers. It defines the EmailSender interface consumed by the delivery
// integrations, validates send parameters, and ships a development sender
// that writes emails to disk instead of sending them.
//
// # Usage
//
// The package centers around the EmailSender interface, implemented by the
// integrations under integration/email and by DevSender:
//
//	import "github.com/dmitrymomot/postcard/core/email"
//
//	// For development
//	sender := email.NewDevSender("./dev_emails")
//
//	params := email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Welcome to our service",
//		BodyHTML: htmlDoc,
//		BodyText: textDoc,
//		Tag:      "welcome_email",
//	}
//
//	if err := sender.SendEmail(context.Background(), params); err != nil {
//		log.Error("failed to send email", logger.Error(err))
//	}
//
// # Renderer Integration
//
// BodyHTML and BodyText are the two outputs of the postcard renderer; pass
// both so providers can build a multipart/alternative message:
//
//	r := postcard.New()
//
//	htmlDoc, err := r.Render(ctx, "welcome", src, opts)
//	if err != nil {
//		return err
//	}
//	textDoc, err := r.RenderPlainText(ctx, "welcome", src, opts)
//	if err != nil {
//		return err
//	}
//
//	return sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   user.Email,
//		Subject:  "Welcome!",
//		BodyHTML: htmlDoc,
//		BodyText: textDoc,
//		Tag:      "welcome",
//	})
//
// # Development Mode
//
// DevSender saves each email under a timestamped base name so the
// directory lists chronologically:
//
//	// ./dev_emails/2026_01_15_143052_welcome_email.html
//	// ./dev_emails/2026_01_15_143052_welcome_email.txt
//	// ./dev_emails/2026_01_15_143052_welcome_email.json
//
// The JSON sidecar records recipient, subject, tag and which body files
// were written, which keeps rendered output reviewable in a browser while
// the metadata stays greppable.
//
// # Error Handling
//
// Failures wrap one of the package sentinels:
//
//	err := sender.SendEmail(ctx, params)
//	switch {
//	case errors.Is(err, email.ErrInvalidParams):
//		// bad recipient, empty subject or missing HTML body
//	case errors.Is(err, email.ErrInvalidConfig):
//		// provider constructed with incomplete configuration
//	case errors.Is(err, email.ErrFailedToSendEmail):
//		// delivery failed after validation passed
//	}
//
// # Testing
//
// The single-method interface keeps mocks trivial:
//
//	type captureSender struct {
//		sent []email.SendEmailParams
//	}
//
//	func (c *captureSender) SendEmail(_ context.Context, p email.SendEmailParams) error {
//		c.sent = append(c.sent, p)
//		return nil
//	}
package email

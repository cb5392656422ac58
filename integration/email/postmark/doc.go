// Package postmark delivers rendered emails through Postmark's
// transactional API.
//
// It implements the core email.EmailSender interface: the HTML document
// and optional plain text rendition produced by the postcard renderer map
// onto Postmark's HTML and text bodies, so recipients get a proper
// multipart/alternative message. Open tracking and HTML-only link tracking
// are on by default, and Reply-To is set to the configured support address.
//
// # Configuration
//
// Config loads from the environment through core/config:
//
//	var cfg postmark.Config
//	config.MustLoad(&cfg)
//	sender := postmark.MustNewClient(cfg)
//
// # Usage
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
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Welcome!",
//		BodyHTML: htmlDoc,
//		BodyText: textDoc,
//		Tag:      "welcome",
//	})
//
// Failures wrap email.ErrInvalidConfig, email.ErrInvalidParams or
// email.ErrFailedToSendEmail; Postmark API errors carry the provider's
// error code and message in the joined error.
package postmark

// Package smtp provides an SMTP-based implementation of the
// email.EmailSender interface.
//
// It delivers rendered emails through any SMTP server with support for
// STARTTLS, direct TLS and plain connections. When the send parameters
// carry both the HTML document and the plain text rendition from the
// postcard renderer, the message is assembled as multipart/alternative so
// clients pick the richest part they support; with HTML only, a plain
// text/html message is sent.
//
// Basic usage:
//
//	import (
//		"context"
//
//		"github.com/dmitrymomot/postcard/core/email"
//		"github.com/dmitrymomot/postcard/integration/email/smtp"
//	)
//
//	cfg := smtp.Config{
//		Host:         "smtp.example.com",
//		Port:         587,
//		Username:     "mailer@example.com",
//		Password:     "app-password",
//		TLSMode:      "starttls",
//		SenderEmail:  "noreply@example.com",
//		SupportEmail: "support@example.com",
//	}
//
//	sender, err := smtp.New(cfg)
//	if err != nil {
//		// invalid configuration
//	}
//
//	err = sender.SendEmail(context.Background(), email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Welcome!",
//		BodyHTML: htmlDoc,
//		BodyText: textDoc,
//		Tag:      "welcome",
//	})
//
// Config loads from the environment through core/config (SMTP_HOST,
// SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_TLS_MODE, SENDER_EMAIL,
// SUPPORT_EMAIL). Failures wrap email.ErrInvalidConfig,
// email.ErrInvalidParams or email.ErrFailedToSendEmail.
package smtp

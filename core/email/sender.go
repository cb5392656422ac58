package email

import (
	"context"
	"fmt"
	"regexp"
)

// EmailSender abstracts the delivery channel for rendered emails. Senders
// must be safe for concurrent use.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams carries one rendered email through a sender. BodyHTML is
// the document produced by the renderer; BodyText is the optional
// text/plain alternative for multipart delivery.
type SendEmailParams struct {
	SendTo   string
	Subject  string
	BodyHTML string
	BodyText string
	Tag      string
}

// Validate checks the parameters before sending. Returned errors wrap
// ErrInvalidParams with the failing field.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" || !isValidEmail(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	return nil
}

// emailRegex is a simple regex for validating email addresses.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// isValidEmail checks if the provided string is a valid email address.
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

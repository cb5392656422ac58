package email

import "errors"

// Error variables define delivery failures that senders wrap with detailed
// context for comprehensive error reporting.
var (
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrInvalidConfig     = errors.New("invalid email configuration")
	ErrInvalidParams     = errors.New("invalid email parameters")
)

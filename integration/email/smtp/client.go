package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/postcard/core/email"
)

// Client delivers rendered emails over plain SMTP. It supports STARTTLS,
// direct TLS and unencrypted connections and is safe for concurrent use;
// every send opens its own connection.
type Client struct {
	config Config
	auth   smtp.Auth
}

// New creates an SMTP-backed email sender. All configuration fields are
// validated up front so a misconfigured deployment fails at construction.
func New(cfg Config) (email.EmailSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: Username is required", email.ErrInvalidConfig)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", email.ErrInvalidConfig)
	}
	if cfg.TLSMode != "starttls" && cfg.TLSMode != "tls" && cfg.TLSMode != "plain" {
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", email.ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" || !isValidEmail(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if cfg.SupportEmail == "" || !isValidEmail(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", email.ErrInvalidConfig)
	}

	return &Client{
		config: cfg,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}, nil
}

// MustNewClient creates an SMTP client that panics on invalid config, for
// startup wiring where a broken sender should stop the process.
func MustNewClient(cfg Config) email.EmailSender {
	client, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail implements EmailSender over SMTP. The rendered HTML document
// and the optional plain text rendition are assembled into a
// multipart/alternative MIME message; without a text part a plain
// text/html message is sent.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	message := c.buildMessage(params)
	serverAddr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	var err error
	switch c.config.TLSMode {
	case "tls":
		err = c.sendWithTLS(serverAddr, params.SendTo, message)
	case "starttls":
		err = c.sendWithSTARTTLS(serverAddr, params.SendTo, message)
	case "plain":
		err = c.sendPlain(serverAddr, params.SendTo, message)
	}
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	return nil
}

// buildMessage assembles the MIME message. Headers are written in a fixed
// order so messages are reproducible.
func (c *Client) buildMessage(params email.SendEmailParams) []byte {
	now := time.Now()
	messageID := fmt.Sprintf("<%d.%s@%s>",
		now.UnixNano(),
		safeTagPart(params.Tag),
		c.config.Host,
	)

	var b strings.Builder
	writeHeader := func(key, value string) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}

	writeHeader("From", c.config.SenderEmail)
	writeHeader("To", params.SendTo)
	writeHeader("Reply-To", c.config.SupportEmail)
	writeHeader("Subject", params.Subject)
	writeHeader("Date", now.Format(time.RFC1123Z))
	writeHeader("Message-ID", messageID)
	writeHeader("MIME-Version", "1.0")

	if params.BodyText == "" {
		writeHeader("Content-Type", `text/html; charset="UTF-8"`)
		b.WriteString("\r\n")
		b.WriteString(params.BodyHTML)
		return []byte(b.String())
	}

	// Multipart/alternative: text part first, HTML last, so clients pick
	// the richest part they support.
	boundary := fmt.Sprintf("postcard-%d", now.UnixNano())
	writeHeader("Content-Type", fmt.Sprintf(`multipart/alternative; boundary="%s"`, boundary))
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(params.BodyText)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(params.BodyHTML)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

// sendWithTLS sends the message over a direct TLS connection.
func (c *Client) sendWithTLS(serverAddr, recipient string, message []byte) error {
	tlsConfig := &tls.Config{
		ServerName: c.config.Host,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server with TLS: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return c.transact(client, recipient, message)
}

// sendWithSTARTTLS connects in the clear and upgrades the session.
func (c *Client) sendWithSTARTTLS(serverAddr, recipient string, message []byte) error {
	client, err := smtp.Dial(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = client.Close() }()

	tlsConfig := &tls.Config{
		ServerName: c.config.Host,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return c.transact(client, recipient, message)
}

// sendPlain sends without encryption, for local relays and test servers.
func (c *Client) sendPlain(serverAddr, recipient string, message []byte) error {
	client, err := smtp.Dial(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = client.Close() }()

	return c.transact(client, recipient, message)
}

// transact runs the SMTP envelope exchange and data transfer.
func (c *Client) transact(client *smtp.Client, recipient string, message []byte) error {
	if err := client.Auth(c.auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := client.Mail(c.config.SenderEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// Quit errors are non-fatal: the message is already accepted and some
	// servers drop the connection right after DATA.
	_ = client.Quit()
	return nil
}

// safeTagPart reduces a tag to a Message-ID-safe token.
func safeTagPart(tag string) string {
	if tag == "" {
		return "postcard"
	}
	return strings.ReplaceAll(tag, " ", "_")
}

// emailRegex is a simple regex for validating email addresses.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// isValidEmail checks if the provided string is a valid email address.
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

package smtp_test

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postcard/core/email"
	"github.com/dmitrymomot/postcard/integration/email/smtp"
)

func validConfig() smtp.Config {
	return smtp.Config{
		Host:         "smtp.example.com",
		Port:         587,
		Username:     "user@example.com",
		Password:     "password",
		TLSMode:      "starttls",
		SenderEmail:  "sender@example.com",
		SupportEmail: "support@example.com",
	}
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*smtp.Config)
		errMsg string
	}{
		{
			name:   "valid config",
			mutate: func(*smtp.Config) {},
		},
		{
			name:   "empty host",
			mutate: func(c *smtp.Config) { c.Host = "" },
			errMsg: "Host is required",
		},
		{
			name:   "invalid port - zero",
			mutate: func(c *smtp.Config) { c.Port = 0 },
			errMsg: "Port must be between 1 and 65535",
		},
		{
			name:   "invalid port - too high",
			mutate: func(c *smtp.Config) { c.Port = 70000 },
			errMsg: "Port must be between 1 and 65535",
		},
		{
			name:   "empty username",
			mutate: func(c *smtp.Config) { c.Username = "" },
			errMsg: "Username is required",
		},
		{
			name:   "empty password",
			mutate: func(c *smtp.Config) { c.Password = "" },
			errMsg: "Password is required",
		},
		{
			name:   "invalid TLS mode",
			mutate: func(c *smtp.Config) { c.TLSMode = "ssl" },
			errMsg: "TLSMode must be starttls, tls, or plain",
		},
		{
			name:   "valid TLS mode - tls",
			mutate: func(c *smtp.Config) { c.TLSMode = "tls" },
		},
		{
			name:   "valid TLS mode - plain",
			mutate: func(c *smtp.Config) { c.TLSMode = "plain" },
		},
		{
			name:   "empty sender email",
			mutate: func(c *smtp.Config) { c.SenderEmail = "" },
			errMsg: "SenderEmail must be a valid email address",
		},
		{
			name:   "invalid sender email",
			mutate: func(c *smtp.Config) { c.SenderEmail = "not-an-email" },
			errMsg: "SenderEmail must be a valid email address",
		},
		{
			name:   "invalid support email",
			mutate: func(c *smtp.Config) { c.SupportEmail = "invalid@" },
			errMsg: "SupportEmail must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			client, err := smtp.New(cfg)
			if tt.errMsg != "" {
				assert.Error(t, err)
				assert.Nil(t, client)
				assert.ErrorIs(t, err, email.ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestMustNewClient(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() {
			client := smtp.MustNewClient(validConfig())
			assert.NotNil(t, client)
		})
	})

	t.Run("invalid config panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			smtp.MustNewClient(smtp.Config{})
		})
	})
}

func TestClient_SendEmail_Validation(t *testing.T) {
	t.Parallel()

	client, err := smtp.New(validConfig())
	require.NoError(t, err)

	ctx := context.Background()

	tests := []struct {
		name   string
		params email.SendEmailParams
	}{
		{
			name: "empty SendTo",
			params: email.SendEmailParams{
				Subject:  "Test",
				BodyHTML: "<p>Test</p>",
			},
		},
		{
			name: "invalid recipient",
			params: email.SendEmailParams{
				SendTo:   "invalid-email",
				Subject:  "Test",
				BodyHTML: "<p>Test</p>",
			},
		},
		{
			name: "empty subject",
			params: email.SendEmailParams{
				SendTo:   "user@example.com",
				BodyHTML: "<p>Test</p>",
			},
		},
		{
			name: "empty HTML body",
			params: email.SendEmailParams{
				SendTo:  "user@example.com",
				Subject: "Test",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := client.SendEmail(ctx, tt.params)
			assert.Error(t, err)
			assert.ErrorIs(t, err, email.ErrInvalidParams)
		})
	}
}

func TestClient_SendEmail_ConnectionError(t *testing.T) {
	t.Parallel()

	// Grab a port nothing listens on.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	cfg := validConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.TLSMode = "plain"

	client, err := smtp.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = client.SendEmail(ctx, email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Test Email",
		BodyHTML: "<p>Test content</p>",
		Tag:      "test",
	})
	assert.Error(t, err)
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.Contains(t, err.Error(), "failed to connect to SMTP server")
}

func TestClient_SendEmail_CancelledContext(t *testing.T) {
	t.Parallel()

	client, err := smtp.New(validConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = client.SendEmail(ctx, email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Test",
		BodyHTML: "<p>Test</p>",
	})
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.ErrorIs(t, err, context.Canceled)
}

// fakeSMTPServer accepts one connection, speaks just enough ESMTP to get
// through AUTH/MAIL/RCPT/DATA and captures the DATA payload.
func fakeSMTPServer(t *testing.T, payload chan<- string) (host string, port int) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		write := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }

		write("220 test ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				write("250-test")
				write("250-AUTH PLAIN LOGIN")
				write("250 8BITMIME")
			case strings.HasPrefix(cmd, "AUTH"):
				write("235 2.7.0 Authentication successful")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				write("250 OK")
			case strings.HasPrefix(cmd, "DATA"):
				write("354 End data with <CR><LF>.<CR><LF>")
				var b strings.Builder
				for {
					dataLine, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if strings.TrimRight(dataLine, "\r\n") == "." {
						break
					}
					b.WriteString(dataLine)
				}
				payload <- b.String()
				write("250 OK")
			case strings.HasPrefix(cmd, "QUIT"):
				write("221 Bye")
				return
			default:
				write("250 OK")
			}
		}
	}()

	addr := listener.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port
}

func TestClient_SendEmail_MultipartMessage(t *testing.T) {
	t.Parallel()

	payload := make(chan string, 1)
	host, port := fakeSMTPServer(t, payload)

	cfg := validConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.TLSMode = "plain"

	client, err := smtp.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = client.SendEmail(ctx, email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Your order",
		BodyHTML: "<p>Thanks for your order!</p>",
		BodyText: "Thanks for your order!",
		Tag:      "order confirmation",
	})
	require.NoError(t, err)

	select {
	case msg := <-payload:
		assert.Contains(t, msg, "From: sender@example.com")
		assert.Contains(t, msg, "To: user@example.com")
		assert.Contains(t, msg, "Reply-To: support@example.com")
		assert.Contains(t, msg, "Subject: Your order")
		assert.Contains(t, msg, "multipart/alternative")
		assert.Contains(t, msg, `Content-Type: text/plain; charset="UTF-8"`)
		assert.Contains(t, msg, `Content-Type: text/html; charset="UTF-8"`)
		assert.Contains(t, msg, "<p>Thanks for your order!</p>")
		assert.Contains(t, msg, "Message-ID: <")
		assert.Contains(t, msg, "order_confirmation")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive a message")
	}
}

func TestClient_SendEmail_HTMLOnlyMessage(t *testing.T) {
	t.Parallel()

	payload := make(chan string, 1)
	host, port := fakeSMTPServer(t, payload)

	cfg := validConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.TLSMode = "plain"

	client, err := smtp.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = client.SendEmail(ctx, email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Plain HTML",
		BodyHTML: "<p>No text part</p>",
	})
	require.NoError(t, err)

	select {
	case msg := <-payload:
		assert.Contains(t, msg, `Content-Type: text/html; charset="UTF-8"`)
		assert.NotContains(t, msg, "multipart/alternative")
		assert.Contains(t, msg, "<p>No text part</p>")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive a message")
	}
}

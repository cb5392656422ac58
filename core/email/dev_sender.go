package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements EmailSender for local development. Instead of
// delivering anything it writes each email to a directory: the rendered
// HTML document, the text/plain alternative when present, and a JSON
// metadata file, all under one timestamped base name so a directory
// listing reads chronologically.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender writing into dir. The
// directory is created on first send.
func NewDevSender(dir string) EmailSender {
	return &DevSender{dir: dir}
}

// devMetadata is the JSON sidecar saved next to the rendered bodies.
type devMetadata struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
	HTMLFile  string `json:"html_file"`
	TextFile  string `json:"text_file,omitempty"`
}

// SendEmail writes the email to disk. The HTML body always produces a
// .html file; a non-empty BodyText adds a .txt file alongside it.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrFailedToSendEmail, err)
	}

	// Tag beats subject for the file name; both go through the same
	// filesystem-safe reduction.
	identifier := params.Tag
	if identifier == "" {
		identifier = params.Subject
	}

	now := time.Now()
	base := now.Format("2006_01_02_150405") + "_" + safeFilename(identifier)

	meta := devMetadata{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
		HTMLFile:  base + ".html",
	}

	if err := d.write(meta.HTMLFile, []byte(params.BodyHTML)); err != nil {
		return err
	}
	if params.BodyText != "" {
		meta.TextFile = base + ".txt"
		if err := d.write(meta.TextFile, []byte(params.BodyText)); err != nil {
			return err
		}
	}

	sidecar, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal metadata: %v", ErrFailedToSendEmail, err)
	}
	return d.write(base+".json", sidecar)
}

func (d *DevSender) write(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrFailedToSendEmail, name, err)
	}
	return nil
}

// unsafeCharRegex matches characters that are dropped from file names.
var unsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// safeFilename reduces an arbitrary identifier to a lowercase
// filesystem-safe name, truncated to keep paths portable.
func safeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeCharRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}

package render

import (
	"fmt"
	"strings"

	"github.com/ajramos/mm3commander/internal/mailman"
	"github.com/jhillyerd/enmime"
)

// PreviewOptions controls how much of a held message is rendered
type PreviewOptions struct {
	// WrapWidth wraps the body; zero disables wrapping
	WrapWidth int
	// MaxBodyLines truncates the body; zero shows all of it
	MaxBodyLines int
}

// HeldPreview renders subject, message id, hold reason and the plain-text
// body of a held message. A message that cannot be parsed still yields the
// metadata block followed by the parse error.
func HeldPreview(m mailman.HeldMessage, opts PreviewOptions) string {
	subject := m.Subject
	messageID := m.MessageID
	var body string
	var parseErr error

	if strings.TrimSpace(m.Msg) != "" {
		env, err := enmime.ReadEnvelope(strings.NewReader(m.Msg))
		if err != nil {
			parseErr = err
		} else {
			if subject == "" {
				subject = env.GetHeader("Subject")
			}
			if messageID == "" {
				messageID = env.GetHeader("Message-ID")
			}
			body = env.Text
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Subject:    %s\n", singleLine(subject))
	fmt.Fprintf(&b, "Message-ID: %s\n", singleLine(messageID))
	fmt.Fprintf(&b, "Reason:     %s\n", singleLine(m.Reason))
	if m.Sender != "" {
		fmt.Fprintf(&b, "Sender:     %s\n", singleLine(m.Sender))
	}
	b.WriteString("\n")

	switch {
	case parseErr != nil:
		fmt.Fprintf(&b, "(message could not be parsed: %v)", parseErr)
	case strings.TrimSpace(body) == "":
		b.WriteString("(no plain-text body)")
	default:
		b.WriteString(formatBody(body, opts))
	}
	return b.String()
}

func formatBody(body string, opts PreviewOptions) string {
	body = strings.TrimSpace(sanitizeForTerminal(normalizeNewlines(body)))
	if opts.WrapWidth > 0 {
		body = WrapText(body, opts.WrapWidth)
	}
	if opts.MaxBodyLines > 0 {
		lines := strings.Split(body, "\n")
		if len(lines) > opts.MaxBodyLines {
			lines = append(lines[:opts.MaxBodyLines], fmt.Sprintf("[... %d more lines]", len(lines)-opts.MaxBodyLines))
			body = strings.Join(lines, "\n")
		}
	}
	return body
}

package render

import (
	"strings"
	"testing"

	"github.com/ajramos/mm3commander/internal/mailman"
	"github.com/stretchr/testify/assert"
)

const rawHeld = "From: Anne <anne@example.com>\r\n" +
	"To: ant@example.com\r\n" +
	"Subject: Header subject\r\n" +
	"Message-ID: <held-1@example.com>\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Hello ants,\r\n" +
	"please approve me.\r\n"

func TestHeldPreview(t *testing.T) {
	out := HeldPreview(mailman.HeldMessage{
		RequestID: 1,
		Sender:    "anne@example.com",
		Subject:   "Queue subject",
		Reason:    "The message is not from a list member",
		Msg:       rawHeld,
	}, PreviewOptions{})

	assert.Contains(t, out, "Subject:    Queue subject")
	assert.Contains(t, out, "Message-ID: <held-1@example.com>")
	assert.Contains(t, out, "Reason:     The message is not from a list member")
	assert.Contains(t, out, "Hello ants,\nplease approve me.")
}

func TestHeldPreview_FallsBackToHeaders(t *testing.T) {
	out := HeldPreview(mailman.HeldMessage{RequestID: 1, Msg: rawHeld}, PreviewOptions{})
	assert.Contains(t, out, "Subject:    Header subject")
}

func TestHeldPreview_EmptyMessage(t *testing.T) {
	out := HeldPreview(mailman.HeldMessage{RequestID: 2, Subject: "s", Reason: "r"}, PreviewOptions{})
	assert.Contains(t, out, "(no plain-text body)")
}

func TestHeldPreview_TruncatesBody(t *testing.T) {
	var body strings.Builder
	for i := 0; i < 20; i++ {
		body.WriteString("line\r\n")
	}
	raw := "Subject: long\r\nContent-Type: text/plain\r\n\r\n" + body.String()
	out := HeldPreview(mailman.HeldMessage{Msg: raw}, PreviewOptions{MaxBodyLines: 5})
	assert.Contains(t, out, "[... 15 more lines]")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "aaa bbb\nccc", WrapText("aaa bbb ccc", 7))
	assert.Equal(t, "> one two\n> three", WrapText("> one two three", 9))
	assert.Equal(t, "abcd\nefgh\nij", WrapText("abcdefghij", 4))
	assert.Equal(t, "untouched text", WrapText("untouched text", 0))
}

func TestSanitizeForTerminal(t *testing.T) {
	assert.Equal(t, "Line ... with - \"quotes\"", sanitizeForTerminal("Line \u2026 with \u2013 \u201Cquotes\u201D"))
	assert.Equal(t, "ab", sanitizeForTerminal("a\u200Bb\x07"))
}

package render

import (
	"fmt"

	"github.com/ajramos/mm3commander/internal/mailman"
)

// Fixed space reserved on every held-message line
const (
	HeldIDWidth        = 5
	heldSeparatorWidth = 4 // two "  " gaps between the three columns
	heldChromeWidth    = 4 // menu border and cursor
)

// HeldColumns holds the display widths of one held-message line
type HeldColumns struct {
	ID      int
	Sender  int
	Subject int
}

// HeldColumnsFor splits the terminal width between sender and subject. After
// reserving the id, the separators and the menu chrome, two thirds of what is
// left go to the sender and the rest to the subject. No width is ever negative.
func HeldColumnsFor(termWidth int) HeldColumns {
	remaining := termWidth - HeldIDWidth - heldSeparatorWidth - heldChromeWidth
	if remaining < 0 {
		remaining = 0
	}
	sender := remaining * 2 / 3
	return HeldColumns{
		ID:      HeldIDWidth,
		Sender:  sender,
		Subject: remaining - sender,
	}
}

// FormatHeldLine renders one queue entry as "   12  sender  subject"
func FormatHeldLine(m mailman.HeldMessage, cols HeldColumns) string {
	sender := m.Sender
	if sender == "" {
		sender = "(No sender)"
	}
	subject := m.Subject
	if subject == "" {
		subject = "(No subject)"
	}
	return fmt.Sprintf("%*d  %s  %s",
		cols.ID, m.RequestID,
		fitWidth(singleLine(sender), cols.Sender),
		fitWidth(singleLine(subject), cols.Subject))
}

// HeldLines renders the whole queue for a terminal of the given width
func HeldLines(held []mailman.HeldMessage, termWidth int) []string {
	cols := HeldColumnsFor(termWidth)
	lines := make([]string, 0, len(held))
	for _, m := range held {
		lines = append(lines, FormatHeldLine(m, cols))
	}
	return lines
}

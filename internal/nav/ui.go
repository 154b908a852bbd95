package nav

import (
	"context"
	"errors"
)

// Keys that every menu accepts
const (
	KeyEnter  = "enter"
	KeyEscape = "esc"
)

// ErrClosed is returned by a UI whose terminal has gone away
var ErrClosed = errors.New("terminal closed")

// MenuRequest describes one blocking menu
type MenuRequest struct {
	Title string
	// Help is a one-line hint shown under the menu
	Help  string
	Items []string
	// AcceptKeys are the shortcut keys besides enter and esc that end the menu
	AcceptKeys []string
	// ReportOtherKeys also ends the menu on any other printable key
	ReportOtherKeys bool
	// Cursor is the initially highlighted item
	Cursor int
	// CycleCursor wraps the cursor around the ends of the list
	CycleCursor bool
	// Preview, when set, renders a side panel for the highlighted item
	Preview func(index int) string
}

// Selection is the result of a menu. Index is -1 when the menu had no items.
type Selection struct {
	Index     int
	Key       string
	Cancelled bool
}

// UI is the menu primitive the navigator renders through. Every call blocks
// until the user answers.
type UI interface {
	// Show displays a menu and returns the highlighted item and the key that ended it
	Show(ctx context.Context, req MenuRequest) (Selection, error)

	// Input prompts for one line of text; ok is false when the prompt was escaped
	Input(ctx context.Context, title, label string) (text string, ok bool, err error)

	// Notify shows a message and waits for it to be dismissed
	Notify(ctx context.Context, message string) error

	// Size reports the current terminal geometry
	Size() (width, height int)
}

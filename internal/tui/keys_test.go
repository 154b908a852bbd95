package tui

import (
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		name  string
		event *tcell.EventKey
		want  string
	}{
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), "g"},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), "Q"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt+x"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), "ctrl+d"},
		{"ctrl c left to the app", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ""},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ""},
		{"arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyName(tt.event))
		})
	}
}

func TestIsReportable(t *testing.T) {
	assert.True(t, isReportable("x"))
	assert.True(t, isReportable("ctrl+x"))
	assert.False(t, isReportable(""))
	assert.False(t, isReportable(" "))
	assert.False(t, isReportable("\t"))
}

func TestStep(t *testing.T) {
	t.Run("cycling wraps both ends", func(t *testing.T) {
		assert.Equal(t, 2, step(0, -1, 3, true))
		assert.Equal(t, 0, step(2, 1, 3, true))
		assert.Equal(t, 1, step(0, 1, 3, true))
	})
	t.Run("non-cycling stops at the ends", func(t *testing.T) {
		assert.Equal(t, 0, step(0, -1, 3, false))
		assert.Equal(t, 2, step(2, 1, 3, false))
	})
	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, 0, step(0, 1, 0, true))
		assert.Equal(t, 0, step(0, -1, 0, false))
	})
}

func TestContains(t *testing.T) {
	keys := []string{"g", "q"}
	assert.True(t, contains(keys, "q"))
	assert.False(t, contains(keys, "Q"))
	assert.False(t, contains(nil, "q"))
}

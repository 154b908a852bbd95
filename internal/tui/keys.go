package tui

import (
	"unicode"

	"github.com/ajramos/mm3commander/internal/nav"
	"github.com/derailed/tcell/v2"
)

// keyName maps a key event onto the names used by menu accept keys.
// Navigation keys map to "" and are left to the focused primitive.
func keyName(event *tcell.EventKey) string {
	switch event.Key() {
	case tcell.KeyEnter:
		return nav.KeyEnter
	case tcell.KeyEscape:
		return nav.KeyEscape
	case tcell.KeyRune:
		r := event.Rune()
		if event.Modifiers()&tcell.ModAlt != 0 {
			return "alt+" + string(r)
		}
		return string(r)
	}
	if k := event.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		switch k {
		case tcell.KeyTab, tcell.KeyBackspace, tcell.KeyCtrlC:
			return ""
		}
		return "ctrl+" + string(rune('a'+int(k-tcell.KeyCtrlA)))
	}
	return ""
}

// isReportable reports whether an unbound key should end a menu that asked
// for other keys. Space is left to the list.
func isReportable(name string) bool {
	if name == "" || name == " " {
		return false
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// step moves a cursor by delta over count items. Cycling wraps around the
// ends, otherwise the cursor stops at them.
func step(current, delta, count int, cycle bool) int {
	if count == 0 {
		return 0
	}
	next := current + delta
	if cycle {
		return ((next % count) + count) % count
	}
	if next < 0 {
		return 0
	}
	if next >= count {
		return count - 1
	}
	return next
}

// contains reports whether key is in keys
func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

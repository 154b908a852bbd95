package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// normalizeNewlines converts CRLF and CR to LF and collapses runs of blank lines
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}

// sanitizeForTerminal replaces rich-text glyphs that render as tofu in most
// terminals and drops control characters other than newline and tab
func sanitizeForTerminal(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\u00A0', '\u202F':
			b.WriteRune(' ')
		case '\u200B', '\u200C', '\u200D', '\uFEFF', '\u00AD', '\u2060':
			// zero-width, drop
		case '\u2013', '\u2014':
			b.WriteRune('-')
		case '\u2018', '\u2019':
			b.WriteRune('\'')
		case '\u201C', '\u201D':
			b.WriteRune('"')
		case '\u2026':
			b.WriteString("...")
		default:
			if unicode.IsControl(r) && r != '\n' && r != '\t' {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// singleLine flattens s so it can never add lines to a menu item
func singleLine(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(sanitizeForTerminal(s))
}

// fitWidth truncates by display width and pads on the right to exactly width
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "...")
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// WrapText soft-wraps every line of input at width display cells, keeping
// quote prefixes ("> ") on continuation lines. Words wider than a line are
// hard-cut.
func WrapText(input string, width int) string {
	if width <= 0 {
		return input
	}
	lines := strings.Split(normalizeNewlines(input), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		prefix := ""
		rest := line
		for strings.HasPrefix(rest, "> ") {
			prefix += "> "
			rest = strings.TrimPrefix(rest, "> ")
		}
		words := strings.Fields(rest)
		if len(words) == 0 {
			out = append(out, strings.TrimRight(prefix, " "))
			continue
		}

		room := width - runewidth.StringWidth(prefix)
		if room < 1 {
			room = 1
		}
		cur := ""
		flush := func() {
			out = append(out, prefix+cur)
			cur = ""
		}
		for _, w := range words {
			for runewidth.StringWidth(w) > room {
				if cur != "" {
					flush()
				}
				head := runewidth.Truncate(w, room, "")
				if head == "" {
					// a single rune wider than the line
					head = string([]rune(w)[:1])
				}
				out = append(out, prefix+head)
				w = w[len(head):]
			}
			if w == "" {
				continue
			}
			switch {
			case cur == "":
				cur = w
			case runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) <= room:
				cur += " " + w
			default:
				flush()
				cur = w
			}
		}
		if cur != "" {
			flush()
		}
	}
	return strings.Join(out, "\n")
}

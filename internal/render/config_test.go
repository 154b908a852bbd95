package render

import (
	"testing"

	"github.com/ajramos/mm3commander/internal/mailman"
	"github.com/stretchr/testify/assert"
)

func TestConfigLine_EscapesNewlines(t *testing.T) {
	assert.Equal(t, `footer: line one\nline two`, ConfigLine("footer", "line one\nline two"))
	assert.Equal(t, `crlf: a\nb`, ConfigLine("crlf", "a\r\nb"))
	assert.Equal(t, "plain: value", ConfigLine("plain", "value"))
}

func TestSectionLines_SortedByKey(t *testing.T) {
	lines := SectionLines(map[string]string{
		"zeta":  "1",
		"alpha": "two\nlines",
		"mid":   "",
	})
	assert.Equal(t, []string{`alpha: two\nlines`, "mid: ", "zeta: 1"}, lines)
}

func TestSettingLines(t *testing.T) {
	s := mailman.NewSettings("ant.example.com", map[string]mailman.SettingValue{
		"max_message_size": mailman.IntValue(40),
		"advertised":       mailman.BoolValue(true),
		"footer":           mailman.TextValue("-- \nant"),
	}, nil)
	assert.Equal(t, []string{
		"advertised: true",
		`footer: -- \nant`,
		"max_message_size: 40",
	}, SettingLines(s))
}

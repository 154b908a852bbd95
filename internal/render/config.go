package render

import (
	"sort"
	"strings"

	"github.com/ajramos/mm3commander/internal/mailman"
)

// lineEscaper keeps multi-line values on a single menu row
var lineEscaper = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`)

// ConfigLine renders "key: value" with embedded line breaks escaped
func ConfigLine(key, value string) string {
	return key + ": " + lineEscaper.Replace(value)
}

// SortedKeys returns the keys of m in lexicographic order
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SectionLines renders a configuration section sorted by key
func SectionLines(section map[string]string) []string {
	keys := SortedKeys(section)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, ConfigLine(k, section[k]))
	}
	return lines
}

// SettingLines renders the settings of a list in key order
func SettingLines(s *mailman.Settings) []string {
	keys := s.Keys()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := s.Get(k)
		lines = append(lines, ConfigLine(k, v.String()))
	}
	return lines
}

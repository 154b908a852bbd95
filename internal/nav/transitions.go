package nav

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ajramos/mm3commander/internal/config"
)

// ScreenID identifies a menu screen
type ScreenID int

const (
	ScreenMain ScreenID = iota
	ScreenListManagement
	ScreenGlobalSections
	ScreenGlobalSection
	ScreenMembership
	ScreenMemberDetail
	ScreenSettings
	ScreenModeration
	ScreenDelete
)

var screenNames = map[ScreenID]string{
	ScreenMain:           "main",
	ScreenListManagement: "list management",
	ScreenGlobalSections: "global configuration",
	ScreenGlobalSection:  "global configuration section",
	ScreenMembership:     "membership",
	ScreenMemberDetail:   "member detail",
	ScreenSettings:       "settings",
	ScreenModeration:     "moderation",
	ScreenDelete:         "delete list",
}

func (s ScreenID) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Command is what a key does on a screen
type Command int

const (
	CmdNone Command = iota
	// CmdOpen acts on the highlighted item
	CmdOpen
	CmdGlobalConfig
	CmdQuit
	CmdMembers
	CmdModeration
	CmdSettings
	CmdDelete
)

// Key binding errors reported when the tables are built
var (
	ErrDuplicateKey = errors.New("key bound twice on the same screen")
	ErrUnmappedKey  = errors.New("command has no key")
	ErrReservedKey  = errors.New("key is reserved")
)

// Transitions maps (screen, key) to a command
type Transitions struct {
	table map[ScreenID]map[string]Command
}

// BuildTransitions creates the transition tables from the configured bindings
func BuildTransitions(keys config.KeyBindings) (*Transitions, error) {
	t := &Transitions{table: map[ScreenID]map[string]Command{}}

	main := map[string]Command{KeyEnter: CmdOpen}
	shortcuts := []struct {
		name string
		key  string
		cmd  Command
	}{
		{"global_config", keys.GlobalConfig, CmdGlobalConfig},
		{"quit", keys.Quit, CmdQuit},
		{"members", keys.Members, CmdMembers},
		{"moderation", keys.Moderation, CmdModeration},
		{"settings", keys.Settings, CmdSettings},
		{"delete", keys.Delete, CmdDelete},
	}
	for _, s := range shortcuts {
		key := strings.TrimSpace(s.key)
		switch {
		case key == "":
			return nil, fmt.Errorf("%s on %s screen: %w", s.name, ScreenMain, ErrUnmappedKey)
		case strings.EqualFold(key, KeyEnter) || strings.EqualFold(key, KeyEscape):
			return nil, fmt.Errorf("%s on %s screen: %q: %w", s.name, ScreenMain, key, ErrReservedKey)
		}
		if _, taken := main[key]; taken {
			return nil, fmt.Errorf("%s on %s screen: %q: %w", s.name, ScreenMain, key, ErrDuplicateKey)
		}
		main[key] = s.cmd
	}
	t.table[ScreenMain] = main

	for _, s := range []ScreenID{
		ScreenListManagement, ScreenGlobalSections, ScreenGlobalSection, ScreenMembership,
		ScreenMemberDetail, ScreenSettings, ScreenModeration, ScreenDelete,
	} {
		t.table[s] = map[string]Command{KeyEnter: CmdOpen}
	}
	return t, nil
}

// Lookup returns the command bound to key on screen
func (t *Transitions) Lookup(screen ScreenID, key string) (Command, bool) {
	cmd, ok := t.table[screen][key]
	return cmd, ok
}

// AcceptKeys returns the shortcut keys of a screen, enter excluded, sorted
func (t *Transitions) AcceptKeys(screen ScreenID) []string {
	keys := make([]string, 0, len(t.table[screen]))
	for k := range t.table[screen] {
		if k == KeyEnter {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeyFor returns the key bound to cmd on screen
func (t *Transitions) KeyFor(screen ScreenID, cmd Command) string {
	for k, c := range t.table[screen] {
		if c == cmd {
			return k
		}
	}
	return ""
}

package nav

import (
	"context"
	"fmt"

	"github.com/ajramos/mm3commander/internal/render"
)

// List management items, in display order
var listManagementItems = []string{
	"List Configuration",
	"Membership Management",
	"Moderation Tasks",
	"Delete List",
}

// listManagement offers the sub-screens of one list. It returns to the
// main screen once the list has been deleted.
func (n *Navigator) listManagement(ctx context.Context, fqdn string) error {
	cursor := 0
	for {
		sel, cmd, err := n.show(ctx, ScreenListManagement, MenuRequest{
			Title:       banner("Manage " + fqdn),
			Items:       listManagementItems,
			Cursor:      cursor,
			CycleCursor: true,
		})
		if err != nil || sel.Cancelled {
			return err
		}
		if cmd != CmdOpen {
			continue
		}
		cursor = sel.Index

		switch sel.Index {
		case 0:
			err = n.settings(ctx, fqdn)
		case 1:
			err = n.membership(ctx, fqdn)
		case 2:
			err = n.moderation(ctx, fqdn)
		case 3:
			deleted, derr := n.deleteList(ctx, fqdn)
			if derr != nil || deleted {
				return derr
			}
		}
		if err != nil {
			return err
		}
	}
}

// globalConfig browses the read-only server configuration, section first
func (n *Navigator) globalConfig(ctx context.Context) error {
	cursor := 0
	for {
		conf, err := n.svc.Lists.Configuration(ctx)
		if err != nil {
			return n.report(ctx, "loading", "global configuration", err)
		}
		sections := render.SortedKeys(conf)

		sel, cmd, err := n.show(ctx, ScreenGlobalSections, MenuRequest{
			Title:  banner("Global Configuration Browser"),
			Help:   "Choose a section from the menu, or hit ESC to go back",
			Items:  sections,
			Cursor: cursor,
		})
		if err != nil || sel.Cancelled {
			return err
		}
		if cmd != CmdOpen || sel.Index < 0 || sel.Index >= len(sections) {
			continue
		}
		cursor = sel.Index

		name := sections[sel.Index]
		if err := n.configSection(ctx, name, conf[name]); err != nil {
			return err
		}
	}
}

// configSection lists "key: value" lines of one section until escaped
func (n *Navigator) configSection(ctx context.Context, name string, section map[string]string) error {
	lines := render.SectionLines(section)
	cursor := 0
	for {
		sel, _, err := n.show(ctx, ScreenGlobalSection, MenuRequest{
			Title:  banner("Global Configuration [" + name + "]"),
			Help:   "Read-only. Hit ESC to go back",
			Items:  lines,
			Cursor: cursor,
		})
		if err != nil || sel.Cancelled {
			return err
		}
		cursor = sel.Index
	}
}

// membership shows "Add Member", a separator and the roster. Members are
// resolved by position, never by parsing the label.
func (n *Navigator) membership(ctx context.Context, fqdn string) error {
	cursor := 0
	for {
		roster, err := n.svc.Members.Roster(ctx, fqdn)
		if err != nil {
			return n.report(ctx, "loading members of", fqdn, err)
		}
		items := make([]string, 0, len(roster.Members)+2)
		items = append(items, "Add Member", Separator)
		for _, m := range roster.Members {
			items = append(items, m.Email)
		}

		sel, cmd, err := n.show(ctx, ScreenMembership, MenuRequest{
			Title:       banner(fmt.Sprintf("Membership of %s (%d)", fqdn, len(roster.Members))),
			Items:       items,
			Cursor:      cursor,
			CycleCursor: true,
		})
		if err != nil || sel.Cancelled {
			return err
		}
		if cmd != CmdOpen {
			continue
		}
		cursor = sel.Index

		switch {
		case sel.Index == 0:
			err = n.addMember(ctx, fqdn)
		case sel.Index >= 2 && sel.Index-2 < len(roster.Members):
			err = n.memberDetail(ctx, fqdn, roster.Members[sel.Index-2].Email)
		}
		if err != nil {
			return err
		}
	}
}

func (n *Navigator) addMember(ctx context.Context, fqdn string) error {
	address, ok, err := n.ui.Input(ctx, banner("Add Member to "+fqdn), "Email address: ")
	if err != nil || !ok {
		return err
	}
	if _, err := n.svc.Members.Subscribe(ctx, fqdn, address); err != nil {
		return n.report(ctx, "subscribing "+address+" to", fqdn, err)
	}
	return nil
}

// memberDetail offers removal of one member. It returns to the roster once
// the member is gone; a declined confirmation shows the screen again.
func (n *Navigator) memberDetail(ctx context.Context, fqdn, address string) error {
	for {
		sel, cmd, err := n.show(ctx, ScreenMemberDetail, MenuRequest{
			Title: banner(address + " @ " + fqdn),
			Items: []string{"Remove from list"},
		})
		if err != nil || sel.Cancelled {
			return err
		}
		if cmd != CmdOpen || sel.Index != 0 {
			continue
		}

		answer, ok, err := n.ui.Input(ctx, banner("Remove "+address),
			fmt.Sprintf("Remove %s from %s? Type yes to confirm: ", address, fqdn))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		removed, err := n.svc.Members.Unsubscribe(ctx, fqdn, address, answer)
		if err != nil {
			if err := n.report(ctx, "unsubscribing "+address+" from", fqdn, err); err != nil {
				return err
			}
			continue
		}
		if removed {
			return nil
		}
	}
}

// settings lists "key: value" lines and edits the chosen one
func (n *Navigator) settings(ctx context.Context, fqdn string) error {
	cursor := 0
	for {
		s, err := n.svc.Settings.Settings(ctx, fqdn)
		if err != nil {
			return n.report(ctx, "loading settings of", fqdn, err)
		}
		keys := s.Keys()

		sel, cmd, err := n.show(ctx, ScreenSettings, MenuRequest{
			Title:  banner("Settings of " + fqdn),
			Items:  render.SettingLines(s),
			Cursor: cursor,
		})
		if err != nil || sel.Cancelled {
			return err
		}
		if cmd != CmdOpen || sel.Index < 0 || sel.Index >= len(keys) {
			continue
		}
		cursor = sel.Index

		key := keys[sel.Index]
		current, _ := s.Get(key)
		input, ok, err := n.ui.Input(ctx, banner("Edit "+key),
			fmt.Sprintf("%s (%s, now %q): ", key, current.Kind, current.String()))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if _, err := n.svc.Settings.UpdateSetting(ctx, fqdn, key, input); err != nil {
			if err := n.report(ctx, "updating "+key+" of", fqdn, err); err != nil {
				return err
			}
		}
	}
}

// moderation lists the held messages. Highlighting one previews it in the
// side panel; enter fetches it again and shows the full preview.
func (n *Navigator) moderation(ctx context.Context, fqdn string) error {
	cursor := 0
	for {
		queue, err := n.svc.Moderation.Queue(ctx, fqdn)
		if err != nil {
			return n.report(ctx, "loading held messages of", fqdn, err)
		}
		width, _ := n.ui.Size()
		held := queue.Messages

		sel, cmd, err := n.show(ctx, ScreenModeration, MenuRequest{
			Title:  banner(fmt.Sprintf("Moderation of %s: %d held", fqdn, queue.Count)),
			Help:   "enter: full preview  esc: back",
			Items:  render.HeldLines(held, width),
			Cursor: cursor,
			Preview: func(i int) string {
				if i < 0 || i >= len(held) {
					return ""
				}
				return render.HeldPreview(held[i], render.PreviewOptions{WrapWidth: width / 2, MaxBodyLines: 40})
			},
		})
		if err != nil || sel.Cancelled {
			return err
		}
		if cmd != CmdOpen || sel.Index < 0 || sel.Index >= len(held) {
			continue
		}
		cursor = sel.Index

		id := held[sel.Index].RequestID
		m, err := n.svc.Moderation.HeldMessage(ctx, fqdn, id)
		if err != nil {
			if err := n.report(ctx, fmt.Sprintf("loading held message %d of", id), fqdn, err); err != nil {
				return err
			}
			continue
		}
		if err := n.ui.Notify(ctx, render.HeldPreview(*m, render.PreviewOptions{WrapWidth: width - 8})); err != nil {
			return err
		}
	}
}

// deleteList asks twice before deleting: a No/Yes choice, then the exact
// list name. It reports whether the list was deleted.
func (n *Navigator) deleteList(ctx context.Context, fqdn string) (bool, error) {
	sel, cmd, err := n.show(ctx, ScreenDelete, MenuRequest{
		Title: banner("Delete " + fqdn),
		Items: []string{"No", "Yes, delete"},
	})
	if err != nil || sel.Cancelled || cmd != CmdOpen || sel.Index != 1 {
		return false, err
	}

	name, ok, err := n.ui.Input(ctx, banner("Delete "+fqdn), "Type the list name to confirm: ")
	if err != nil || !ok {
		return false, err
	}
	deleted, err := n.svc.Lists.DeleteList(ctx, fqdn, name)
	if err != nil {
		return false, n.report(ctx, "deleting", fqdn, err)
	}
	if deleted {
		n.logf("list %s deleted", fqdn)
		if err := n.ui.Notify(ctx, fmt.Sprintf("%s deleted", fqdn)); err != nil {
			return true, err
		}
	}
	return deleted, nil
}

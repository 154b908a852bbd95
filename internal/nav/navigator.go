package nav

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ajramos/mm3commander/internal/config"
	"github.com/ajramos/mm3commander/internal/services"
	"github.com/ajramos/mm3commander/internal/version"
)

// Separator is the inert entry between "Add Member" and the roster
const Separator = "------------------------------"

// Services bundles the remote operations the screens use
type Services struct {
	Lists      services.ListService
	Members    services.MembershipService
	Settings   services.SettingsService
	Moderation services.ModerationService
}

// Options configures a Navigator
type Options struct {
	Keys config.KeyBindings
	// UnknownKeyPause is how long to wait after reporting an unrecognized key
	UnknownKeyPause time.Duration
	Logger          *log.Logger
}

// Navigator drives the menu screens. It runs on a single goroutine and issues
// at most one remote call at a time.
type Navigator struct {
	ui          UI
	svc         Services
	transitions *Transitions
	pause       time.Duration
	logger      *log.Logger
}

// New creates a Navigator; it fails when the key bindings are inconsistent
func New(ui UI, svc Services, opts Options) (*Navigator, error) {
	if ui == nil {
		return nil, errors.New("navigator: ui is required")
	}
	if svc.Lists == nil || svc.Members == nil || svc.Settings == nil || svc.Moderation == nil {
		return nil, errors.New("navigator: all services are required")
	}
	t, err := BuildTransitions(opts.Keys)
	if err != nil {
		return nil, fmt.Errorf("navigator: %w", err)
	}
	return &Navigator{
		ui:          ui,
		svc:         svc,
		transitions: t,
		pause:       opts.UnknownKeyPause,
		logger:      opts.Logger,
	}, nil
}

func (n *Navigator) logf(format string, args ...interface{}) {
	if n.logger != nil {
		n.logger.Printf(format, args...)
	}
}

// banner renders "---[ Main Menu @ Mailman3 Commander ]---"
func banner(name string) string {
	return fmt.Sprintf("---[ %s @ %s ]---", name, version.ProductName)
}

// report logs a failed operation and tells the user about it
func (n *Navigator) report(ctx context.Context, op, target string, err error) error {
	n.logf("%s %s failed: %v", op, target, err)
	return n.ui.Notify(ctx, fmt.Sprintf("%s %s failed:\n\n%v", op, target, err))
}

// unknownKey reports an unrecognized key and pauses before the screen is shown again
func (n *Navigator) unknownKey(ctx context.Context, screen ScreenID, key string) error {
	n.logf("unknown key %q on %s screen", key, screen)
	if err := n.ui.Notify(ctx, "Unknown option"); err != nil {
		return err
	}
	if n.pause <= 0 {
		return nil
	}
	timer := time.NewTimer(n.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// show renders a menu, routing the returned key through the transition table
func (n *Navigator) show(ctx context.Context, screen ScreenID, req MenuRequest) (Selection, Command, error) {
	for {
		if req.AcceptKeys == nil {
			req.AcceptKeys = n.transitions.AcceptKeys(screen)
		}
		sel, err := n.ui.Show(ctx, req)
		if err != nil {
			return Selection{}, CmdNone, err
		}
		if sel.Cancelled {
			return sel, CmdNone, nil
		}
		cmd, ok := n.transitions.Lookup(screen, sel.Key)
		if ok {
			return sel, cmd, nil
		}
		if err := n.unknownKey(ctx, screen, sel.Key); err != nil {
			return Selection{}, CmdNone, err
		}
		if sel.Index >= 0 {
			req.Cursor = sel.Index
		}
	}
}

func (n *Navigator) mainHelp() string {
	k := func(cmd Command) string { return n.transitions.KeyFor(ScreenMain, cmd) }
	return strings.Join([]string{
		"enter: manage",
		k(CmdMembers) + ": members",
		k(CmdModeration) + ": moderation",
		k(CmdSettings) + ": settings",
		k(CmdDelete) + ": delete",
		k(CmdGlobalConfig) + ": global config",
		k(CmdQuit) + ": quit",
	}, "  ")
}

// Run shows the main screen until the user quits. It returns nil on quit and
// an error only when the terminal fails.
func (n *Navigator) Run(ctx context.Context) error {
	cursor := 0
	for {
		names, err := n.svc.Lists.Names(ctx)
		if err != nil {
			if err := n.report(ctx, "loading", "mailing lists", err); err != nil {
				return err
			}
			names = nil
		}

		sel, cmd, err := n.show(ctx, ScreenMain, MenuRequest{
			Title:           banner("Main Menu"),
			Help:            n.mainHelp(),
			Items:           names,
			Cursor:          cursor,
			CycleCursor:     true,
			ReportOtherKeys: true,
		})
		if err != nil {
			return err
		}
		if sel.Cancelled {
			n.logf("quit from main screen")
			return nil
		}
		cursor = sel.Index

		switch cmd {
		case CmdQuit:
			n.logf("quit from main screen")
			return nil
		case CmdGlobalConfig:
			err = n.globalConfig(ctx)
		default:
			if sel.Index < 0 || sel.Index >= len(names) {
				continue
			}
			err = n.dispatchList(ctx, cmd, names[sel.Index])
		}
		if err != nil {
			return err
		}
	}
}

// dispatchList opens the screen a main-screen command names for one list
func (n *Navigator) dispatchList(ctx context.Context, cmd Command, fqdn string) error {
	switch cmd {
	case CmdOpen:
		return n.listManagement(ctx, fqdn)
	case CmdMembers:
		return n.membership(ctx, fqdn)
	case CmdModeration:
		return n.moderation(ctx, fqdn)
	case CmdSettings:
		return n.settings(ctx, fqdn)
	case CmdDelete:
		_, err := n.deleteList(ctx, fqdn)
		return err
	default:
		return nil
	}
}

package nav

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ajramos/mm3commander/internal/mailman"
)

// step is one scripted answer of the fake terminal
type step struct {
	menu bool
	sel  Selection
	text string
	ok   bool
}

func pick(i int) step { return step{menu: true, sel: Selection{Index: i, Key: KeyEnter}} }
func press(k string, i int) step { return step{menu: true, sel: Selection{Index: i, Key: k}} }
func esc() step { return step{menu: true, sel: Selection{Index: -1, Cancelled: true}} }
func typed(s string) step { return step{text: s, ok: true} }
func escInput() step { return step{} }

var errScript = errors.New("script out of sync")

// fakeUI plays a script. Once the script is exhausted every menu is escaped,
// which unwinds the navigator back to the main screen and quits.
type fakeUI struct {
	t      *testing.T
	steps  []step
	menus  []MenuRequest
	labels []string
	notes  []string
	width  int
}

func newFakeUI(t *testing.T, steps ...step) *fakeUI {
	return &fakeUI{t: t, steps: steps, width: 80}
}

func (f *fakeUI) next() (step, bool) {
	if len(f.steps) == 0 {
		return step{}, false
	}
	s := f.steps[0]
	f.steps = f.steps[1:]
	return s, true
}

func (f *fakeUI) Show(ctx context.Context, req MenuRequest) (Selection, error) {
	f.menus = append(f.menus, req)
	s, ok := f.next()
	if !ok {
		return Selection{Index: -1, Cancelled: true}, nil
	}
	if !s.menu {
		f.t.Errorf("menu %q shown while the script expected a prompt", req.Title)
		return Selection{}, errScript
	}
	return s.sel, nil
}

func (f *fakeUI) Input(ctx context.Context, title, label string) (string, bool, error) {
	f.labels = append(f.labels, label)
	s, ok := f.next()
	if !ok {
		return "", false, nil
	}
	if s.menu {
		f.t.Errorf("prompt %q shown while the script expected a menu", label)
		return "", false, errScript
	}
	return s.text, s.ok, nil
}

func (f *fakeUI) Notify(ctx context.Context, message string) error {
	f.notes = append(f.notes, message)
	return nil
}

func (f *fakeUI) Size() (int, int) { return f.width, 24 }

func (f *fakeUI) titles() []string {
	out := make([]string, 0, len(f.menus))
	for _, m := range f.menus {
		out = append(out, m.Title)
	}
	return out
}

func (f *fakeUI) last() MenuRequest { return f.menus[len(f.menus)-1] }

// fakeDirectory is an in-memory Mailman core that records every mutation
type fakeDirectory struct {
	lists    []mailman.List
	members  map[string][]mailman.Member
	settings map[string]map[string]mailman.SettingValue
	held     map[string][]mailman.HeldMessage
	conf     mailman.Configuration

	listsErr     error
	subscribeErr error
	heldCountErr error

	mutations []string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		lists: []mailman.List{
			{ListID: "zoo.example.com", FQDNListname: "zoo@example.com"},
			{ListID: "ant.example.com", FQDNListname: "ant@example.com"},
		},
		members: map[string][]mailman.Member{
			"ant.example.com": {
				{MemberID: "1", Email: "anne@example.com"},
				{MemberID: "2", Email: "[red]bart@example.com"},
			},
		},
		settings: map[string]map[string]mailman.SettingValue{
			"ant.example.com": {
				"advertised":       mailman.BoolValue(true),
				"display_name":     mailman.TextValue("Ant"),
				"max_message_size": mailman.IntValue(40),
			},
		},
		held: map[string][]mailman.HeldMessage{
			"ant.example.com": {
				{RequestID: 7, Sender: "spam@example.net", Subject: "Buy now", Reason: "Not a member"},
				{RequestID: 8, Sender: "cleo@example.com", Subject: "Hello", Reason: "Too big"},
			},
		},
		conf: mailman.Configuration{
			"webservice": {"port": "8001", "hostname": "localhost"},
			"mailman":    {"site_owner": "owner@example.com", "footer": "line one\nline two"},
		},
	}
}

func (d *fakeDirectory) Handshake(ctx context.Context) (string, error) { return "3.1", nil }

func (d *fakeDirectory) Lists(ctx context.Context) ([]mailman.List, error) {
	if d.listsErr != nil {
		return nil, d.listsErr
	}
	return append([]mailman.List(nil), d.lists...), nil
}

func (d *fakeDirectory) List(ctx context.Context, fqdn string) (*mailman.List, error) {
	for _, l := range d.lists {
		if l.FQDNListname == fqdn {
			l := l
			return &l, nil
		}
	}
	return nil, fmt.Errorf("list %s: %w", fqdn, mailman.ErrNotFound)
}

func (d *fakeDirectory) DeleteList(ctx context.Context, fqdn string) error {
	d.mutations = append(d.mutations, "delete "+fqdn)
	for i, l := range d.lists {
		if l.FQDNListname == fqdn {
			d.lists = append(d.lists[:i], d.lists[i+1:]...)
			return nil
		}
	}
	return mailman.ErrNotFound
}

func (d *fakeDirectory) Members(ctx context.Context, listID string) ([]mailman.Member, error) {
	return append([]mailman.Member(nil), d.members[listID]...), nil
}

func (d *fakeDirectory) Subscribe(ctx context.Context, req mailman.SubscribeRequest) (*mailman.Member, error) {
	d.mutations = append(d.mutations, fmt.Sprintf("subscribe %s %s display=%s approved=%t",
		req.ListID, req.Subscriber, req.DisplayName, req.PreVerified && req.PreConfirmed && req.PreApproved))
	if d.subscribeErr != nil {
		return nil, d.subscribeErr
	}
	m := mailman.Member{Email: req.Subscriber, DisplayName: req.DisplayName}
	d.members[req.ListID] = append(d.members[req.ListID], m)
	return &m, nil
}

func (d *fakeDirectory) Unsubscribe(ctx context.Context, listID, email string) error {
	d.mutations = append(d.mutations, "unsubscribe "+listID+" "+email)
	kept := d.members[listID][:0]
	for _, m := range d.members[listID] {
		if !strings.EqualFold(m.Email, email) {
			kept = append(kept, m)
		}
	}
	d.members[listID] = kept
	return nil
}

func (d *fakeDirectory) Settings(ctx context.Context, listID string) (*mailman.Settings, error) {
	values := map[string]mailman.SettingValue{}
	for k, v := range d.settings[listID] {
		values[k] = v
	}
	return mailman.NewSettings(listID, values, d), nil
}

func (d *fakeDirectory) SaveSettings(ctx context.Context, listID string, changes map[string]mailman.SettingValue) error {
	for k, v := range changes {
		d.mutations = append(d.mutations, fmt.Sprintf("save %s %s=%s(%s)", listID, k, v.String(), v.Kind))
		d.settings[listID][k] = v
	}
	return nil
}

func (d *fakeDirectory) HeldCount(ctx context.Context, listID string) (int, error) {
	if d.heldCountErr != nil {
		return 0, d.heldCountErr
	}
	return len(d.held[listID]), nil
}

func (d *fakeDirectory) HeldMessages(ctx context.Context, listID string) ([]mailman.HeldMessage, error) {
	return d.held[listID], nil
}

func (d *fakeDirectory) HeldMessage(ctx context.Context, listID string, requestID int) (*mailman.HeldMessage, error) {
	for _, m := range d.held[listID] {
		if m.RequestID == requestID {
			m := m
			return &m, nil
		}
	}
	return nil, mailman.ErrNotFound
}

func (d *fakeDirectory) Configuration(ctx context.Context) (mailman.Configuration, error) {
	return d.conf, nil
}

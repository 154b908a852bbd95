package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/ajramos/mm3commander/internal/config"
	"github.com/ajramos/mm3commander/internal/nav"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	pageMenu   = "menu"
	pageDialog = "dialog"

	cursorMark = "> "
	blankMark  = "  "

	// geometry reported before the first draw
	defaultWidth  = 80
	defaultHeight = 24
)

// Terminal implements nav.UI on top of a tview application. The application
// owns the main goroutine; the navigator calls in from another goroutine and
// blocks until the user answers.
type Terminal struct {
	*tview.Application
	pages  *tview.Pages
	colors *config.ColorsConfig
	logger *log.Logger

	mu     sync.Mutex
	width  int
	height int

	closed    chan struct{}
	closeOnce sync.Once
}

var _ nav.UI = (*Terminal)(nil)

// NewTerminal creates the application and applies the color theme
func NewTerminal(colors *config.ColorsConfig, logger *log.Logger) *Terminal {
	if colors == nil {
		colors = config.DefaultColors()
	}
	t := &Terminal{
		Application: tview.NewApplication(),
		pages:       tview.NewPages(),
		colors:      colors,
		logger:      logger,
		width:       defaultWidth,
		height:      defaultHeight,
		closed:      make(chan struct{}),
	}

	tview.Styles.PrimitiveBackgroundColor = colors.Body.BgColor.Color()
	tview.Styles.PrimaryTextColor = colors.Body.FgColor.Color()
	tview.Styles.BorderColor = colors.Frame.BorderColor.Color()
	tview.Styles.TitleColor = colors.Frame.TitleColor.Color()

	t.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		w, h := screen.Size()
		t.mu.Lock()
		t.width, t.height = w, h
		t.mu.Unlock()
		return false
	})
	t.SetRoot(t.pages, true)
	return t
}

// Run starts the event loop on the calling goroutine and runs body on
// another one. The loop stops when body returns; body sees nav.ErrClosed
// once the loop has stopped on its own (e.g. Ctrl+C).
func (t *Terminal) Run(ctx context.Context, body func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var bodyErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		bodyErr = body(ctx)
		t.queue(t.Stop)
	}()

	runErr := t.Application.Run()
	t.markClosed()
	cancel()
	<-done

	if runErr != nil {
		return fmt.Errorf("terminal: %w", runErr)
	}
	if errors.Is(bodyErr, nav.ErrClosed) {
		return nil
	}
	return bodyErr
}

func (t *Terminal) markClosed() {
	t.closeOnce.Do(func() { close(t.closed) })
}

func (t *Terminal) isClosed() bool {
	select {
	case <-t.closed:
		return true
	default:
		return false
	}
}

// queue schedules f on the event loop unless the loop has stopped
func (t *Terminal) queue(f func()) {
	if t.isClosed() {
		return
	}
	t.QueueUpdateDraw(f)
}

func (t *Terminal) logf(format string, args ...interface{}) {
	if t.logger != nil {
		t.logger.Printf(format, args...)
	}
}

// Size reports the geometry of the last draw
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// Show renders a menu and blocks until it is answered
func (t *Terminal) Show(ctx context.Context, req nav.MenuRequest) (nav.Selection, error) {
	if t.isClosed() {
		return nav.Selection{}, nav.ErrClosed
	}
	result := make(chan nav.Selection, 1)
	t.queue(func() {
		root, list := t.buildMenu(req, func(sel nav.Selection) {
			select {
			case result <- sel:
			default:
			}
		})
		t.pages.RemovePage(pageDialog)
		t.pages.AddPage(pageMenu, root, true, true)
		t.SetFocus(list)
	})

	select {
	case sel := <-result:
		t.logf("menu %q -> index=%d key=%q", req.Title, sel.Index, sel.Key)
		return sel, nil
	case <-t.closed:
		return nav.Selection{}, nav.ErrClosed
	case <-ctx.Done():
		return nav.Selection{}, ctx.Err()
	}
}

// menuLabel renders one item with the cursor mark in front of it
func (t *Terminal) menuLabel(item string, current bool) string {
	mark := blankMark
	if current {
		mark = fmt.Sprintf("[%s]%s[-]", t.colors.Menu.CursorColor.String(), cursorMark)
	}
	if item == nav.Separator {
		return fmt.Sprintf("%s[%s]%s[-]", mark, t.colors.Menu.SeparatorColor.String(), item)
	}
	return mark + tview.Escape(item)
}

// buildMenu lays out the list, the optional preview panel and the help line.
// answer is called with the selection once a key ends the menu.
func (t *Terminal) buildMenu(req nav.MenuRequest, answer func(nav.Selection)) (*tview.Flex, *tview.List) {
	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true)
	list.SetTitle(" " + tview.Escape(req.Title) + " ")
	list.SetTitleAlign(tview.AlignLeft)
	list.SetTitleColor(t.colors.Frame.TitleColor.Color())
	list.SetBorderColor(t.colors.Frame.BorderColor.Color())
	list.SetMainTextColor(t.colors.Menu.FgColor.Color())
	list.SetSelectedTextColor(t.colors.Menu.HighlightFgColor.Color()).
		SetSelectedBackgroundColor(t.colors.Menu.HighlightBgColor.Color())

	cursor := req.Cursor
	if cursor < 0 || cursor >= len(req.Items) {
		cursor = 0
	}
	for i, item := range req.Items {
		list.AddItem(t.menuLabel(item, i == cursor), "", 0, nil)
	}

	var preview *tview.TextView
	if req.Preview != nil {
		preview = tview.NewTextView().SetWrap(true).SetScrollable(true)
		preview.SetBorder(true)
		preview.SetTitle(" Preview ")
		preview.SetBorderColor(t.colors.Frame.BorderColor.Color())
	}

	last := cursor
	list.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		if last >= 0 && last < len(req.Items) {
			list.SetItemText(last, t.menuLabel(req.Items[last], false), "")
		}
		if index >= 0 && index < len(req.Items) {
			list.SetItemText(index, t.menuLabel(req.Items[index], true), "")
			if preview != nil {
				preview.SetText(req.Preview(index))
				preview.ScrollToBeginning()
			}
		}
		last = index
	})
	if len(req.Items) > 0 {
		list.SetCurrentItem(cursor)
		if preview != nil {
			preview.SetText(req.Preview(cursor))
		}
	}

	finish := func(key string) {
		sel := nav.Selection{Index: -1, Key: key, Cancelled: key == nav.KeyEscape}
		if list.GetItemCount() > 0 {
			sel.Index = list.GetCurrentItem()
		}
		answer(sel)
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		count := list.GetItemCount()
		switch event.Key() {
		case tcell.KeyUp:
			list.SetCurrentItem(step(list.GetCurrentItem(), -1, count, req.CycleCursor))
			return nil
		case tcell.KeyDown, tcell.KeyTab:
			list.SetCurrentItem(step(list.GetCurrentItem(), 1, count, req.CycleCursor))
			return nil
		case tcell.KeyBacktab:
			list.SetCurrentItem(step(list.GetCurrentItem(), -1, count, req.CycleCursor))
			return nil
		}

		name := keyName(event)
		switch {
		case name == nav.KeyEnter || name == nav.KeyEscape:
			finish(name)
			return nil
		case contains(req.AcceptKeys, name):
			finish(name)
			return nil
		case req.ReportOtherKeys && isReportable(name):
			finish(name)
			return nil
		case event.Key() == tcell.KeyRune:
			// the list's own rune navigation would bypass the cursor rules
			return nil
		}
		return event
	})

	help := tview.NewTextView().SetText(req.Help)

	body := tview.NewFlex().SetDirection(tview.FlexColumn)
	if preview != nil {
		body.AddItem(list, 0, 2, true)
		body.AddItem(preview, 0, 3, false)
	} else {
		body.AddItem(list, 0, 1, true)
	}

	root := tview.NewFlex().SetDirection(tview.FlexRow)
	root.AddItem(body, 0, 1, true)
	root.AddItem(help, 1, 0, false)
	return root, list
}

// Input prompts for one line of text. Escape cancels the prompt.
func (t *Terminal) Input(ctx context.Context, title, label string) (string, bool, error) {
	if t.isClosed() {
		return "", false, nav.ErrClosed
	}
	type answer struct {
		text string
		ok   bool
	}
	result := make(chan answer, 1)

	t.queue(func() {
		field := tview.NewInputField().
			SetLabel(tview.Escape(label)).
			SetFieldWidth(0).
			SetLabelColor(t.colors.Menu.HighlightFgColor.Color()).
			SetFieldBackgroundColor(t.colors.Menu.HighlightBgColor.Color()).
			SetFieldTextColor(tcell.ColorWhite)
		field.SetBorder(true)
		field.SetTitle(" " + tview.Escape(title) + " ")
		field.SetTitleAlign(tview.AlignLeft)
		field.SetBorderColor(t.colors.Frame.BorderColor.Color())
		field.SetDoneFunc(func(key tcell.Key) {
			var a answer
			switch key {
			case tcell.KeyEnter:
				a = answer{text: field.GetText(), ok: true}
			case tcell.KeyEscape:
				a = answer{}
			default:
				return
			}
			t.pages.RemovePage(pageDialog)
			select {
			case result <- a:
			default:
			}
		})
		t.showDialog(field, 3)
	})

	select {
	case a := <-result:
		return a.text, a.ok, nil
	case <-t.closed:
		return "", false, nav.ErrClosed
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// Notify shows a message box until it is dismissed with enter or escape
func (t *Terminal) Notify(ctx context.Context, message string) error {
	if t.isClosed() {
		return nav.ErrClosed
	}
	dismissed := make(chan struct{}, 1)

	t.queue(func() {
		text := tview.NewTextView().
			SetText(message).
			SetWrap(true).
			SetScrollable(true)
		text.SetBorder(true)
		text.SetBorderColor(t.colors.Frame.BorderColor.Color())
		text.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			switch event.Key() {
			case tcell.KeyEnter, tcell.KeyEscape:
				t.pages.RemovePage(pageDialog)
				select {
				case dismissed <- struct{}{}:
				default:
				}
				return nil
			}
			return event
		})
		w, h := t.Size()
		t.showDialog(text, dialogHeight(message, w, h))
	})

	select {
	case <-dismissed:
		return nil
	case <-t.closed:
		return nav.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// showDialog centers p over the current menu; it must run on the event loop
func (t *Terminal) showDialog(p tview.Primitive, height int) {
	column := tview.NewFlex().SetDirection(tview.FlexRow)
	column.AddItem(tview.NewBox(), 0, 1, false)
	column.AddItem(p, height, 0, true)
	column.AddItem(tview.NewBox(), 0, 1, false)

	row := tview.NewFlex().SetDirection(tview.FlexColumn)
	row.AddItem(tview.NewBox(), 0, 1, false)
	row.AddItem(column, 0, 4, true)
	row.AddItem(tview.NewBox(), 0, 1, false)

	t.pages.AddPage(pageDialog, row, true, true)
	t.SetFocus(p)
}

// dialogHeight sizes a message box to its text, bordered and capped to the
// screen. Long messages scroll.
func dialogHeight(message string, screenWidth, screenHeight int) int {
	inner := screenWidth*4/6 - 2
	if inner < 10 {
		inner = 10
	}
	lines := 0
	for _, line := range strings.Split(message, "\n") {
		lines += 1 + len([]rune(line))/inner
	}
	height := lines + 2
	if limit := screenHeight - 4; height > limit {
		height = limit
	}
	if height < 3 {
		height = 3
	}
	return height
}

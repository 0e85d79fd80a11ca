package tui

import (
	"fmt"
	"strings"
	"time"

	"qrscan/internal/clip"
	"qrscan/internal/content"
	"qrscan/internal/decoder"
	"qrscan/internal/history"
	"qrscan/internal/i18n"
	"qrscan/internal/scan"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const noticeTTL = 2 * time.Second

// --- Tea Messages ---

// DecodedMsg 解码器产生的一条结果
// DecodedMsg carries one payload from the decoder.
type DecodedMsg struct{ Text string }

// sourceClosedMsg signals that the decoder event channel is drained.
type sourceClosedMsg struct{}

type copyDoneMsg struct{ OK bool }

type noticeExpiredMsg struct{ seq int }

// Options 构建 App 所需依赖
// Options are the dependencies of the TUI.
type Options struct {
	Session   *scan.Session
	Clipboard *clip.Adapter
	// Events carries payloads from scanner.device. Nil leaves the input line
	// as the only source.
	Events <-chan decoder.Event
	Locale *i18n.Catalog
}

// App Bubble Tea 主 Model
// App is the main Bubble Tea model
type App struct {
	// 布局 / Layout
	width  int
	height int

	session *scan.Session
	clip    *clip.Adapter
	events  <-chan decoder.Event

	historyView viewport.Model
	input       textinput.Model

	// 渲染缓存 / Render cache
	state      scan.State
	entries    []history.Entry
	resultBody string
	// selected indexes entries; -1 targets the current result.
	selected int

	notice    string
	noticeErr bool
	noticeSeq int

	theme  Theme
	keys   KeyMap
	locale *i18n.Catalog
}

// NewApp 创建 TUI 应用
// NewApp creates a new TUI application
func NewApp(opts Options) App {
	loc := opts.Locale
	if loc == nil {
		loc = i18n.Global()
	}

	ti := textinput.New()
	ti.Placeholder = loc.T("input.placeholder")
	ti.CharLimit = 4096
	ti.Prompt = "› "
	ti.Focus()

	a := App{
		session:     opts.Session,
		clip:        opts.Clipboard,
		events:      opts.Events,
		input:       ti,
		historyView: viewport.New(80, 6),
		theme:       DarkTheme(),
		keys:        DefaultKeyMap(),
		locale:      loc,
		selected:    -1,
	}
	a.refresh()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(a.events))
}

// waitForEvent blocks on the decoder channel and turns the next payload into
// a DecodedMsg. A nil channel yields no command.
func waitForEvent(events <-chan decoder.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return sourceClosedMsg{}
		}
		return DecodedMsg{Text: ev.Text}
	}
}

func copyCmd(adapter *clip.Adapter, text string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{OK: adapter.CopyText(text)}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if model, cmd, handled := a.handleKey(msg); handled {
			return model, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case DecodedMsg:
		a.decode(msg.Text)
		return a, waitForEvent(a.events)

	case sourceClosedMsg:
		return a, nil

	case copyDoneMsg:
		if msg.OK {
			return a, a.setNotice(a.locale.T("copy.ok"), false)
		}
		return a, a.setNotice(a.locale.T("copy.failed"), true)

	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
			a.noticeErr = false
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit, true

	case key.Matches(msg, a.keys.Submit):
		raw := a.input.Value()
		a.input.Reset()
		a.decode(raw)
		return a, nil, true

	case key.Matches(msg, a.keys.Pause):
		a.session.Pause()
		a.refresh()
		return a, nil, true

	case key.Matches(msg, a.keys.Resume):
		a.session.Resume()
		a.refresh()
		return a, nil, true

	case key.Matches(msg, a.keys.CycleType):
		a.session.SetExpectedType(content.Next(a.state.ExpectedType))
		a.refresh()
		return a, nil, true

	case key.Matches(msg, a.keys.Copy):
		text, ok := a.copyTarget()
		if !ok || a.clip == nil {
			return a, nil, true
		}
		return a, copyCmd(a.clip, text), true

	case key.Matches(msg, a.keys.SelectUp):
		if a.selected >= 0 {
			a.selected--
			a.refresh()
		}
		return a, nil, true

	case key.Matches(msg, a.keys.SelectDown):
		if a.selected < len(a.entries)-1 {
			a.selected++
			a.refresh()
		}
		return a, nil, true

	case key.Matches(msg, a.keys.ClearCurrent):
		a.session.ClearCurrent()
		a.refresh()
		return a, nil, true

	case key.Matches(msg, a.keys.ClearHistory):
		a.session.ClearHistory()
		a.refresh()
		return a, a.setNotice(a.locale.T("history.cleared"), false), true

	case key.Matches(msg, a.keys.Torch):
		if !a.session.Torch().Available() {
			return a, a.setNotice(a.locale.T("line.torch_na"), true), true
		}
		if err := a.session.ToggleTorch(); err != nil {
			return a, a.setNotice(err.Error(), true), true
		}
		return a, nil, true

	case key.Matches(msg, a.keys.PageUp):
		a.historyView.HalfPageUp()
		return a, nil, true

	case key.Matches(msg, a.keys.PageDown):
		a.historyView.HalfPageDown()
		return a, nil, true
	}
	return a, nil, false
}

func (a *App) decode(raw string) {
	if a.session.OnDecoded(raw) == scan.OutcomeAccepted {
		a.selected = -1
	}
	a.refresh()
}

// copyTarget is the selected history row, or the current result when no row
// is selected.
func (a App) copyTarget() (string, bool) {
	if a.selected >= 0 && a.selected < len(a.entries) {
		return a.entries[a.selected].Raw, true
	}
	if a.state.Current == nil {
		return "", false
	}
	return a.state.Current.Raw, true
}

func (a *App) setNotice(text string, isErr bool) tea.Cmd {
	a.noticeSeq++
	a.notice = text
	a.noticeErr = isErr
	seq := a.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// refresh re-reads the session so View never takes the session lock.
func (a *App) refresh() {
	if a.session == nil {
		return
	}
	a.state = a.session.Snapshot()
	a.entries = a.session.History()
	a.resultBody = RenderMarkdown(ResultMarkdown(a.state.Current, a.locale), a.contentWidth())
	if a.selected >= len(a.entries) {
		a.selected = len(a.entries) - 1
	}
	a.historyView.SetContent(HistoryLines(a.entries, a.theme, a.locale, a.contentWidth(), a.selected))
	switch {
	case a.selected < 0:
		a.historyView.GotoTop()
	case a.selected < a.historyView.YOffset:
		a.historyView.SetYOffset(a.selected)
	case a.selected >= a.historyView.YOffset+a.historyView.Height:
		a.historyView.SetYOffset(a.selected - a.historyView.Height + 1)
	}
}

func (a *App) relayout() {
	histHeight := a.height / 3
	if histHeight < 3 {
		histHeight = 3
	}
	a.historyView = viewport.New(a.contentWidth(), histHeight)
	a.input.Width = a.contentWidth() - 4
	a.refresh()
}

func (a App) contentWidth() int {
	w := a.width - 4
	if w < 20 {
		w = 76
	}
	return w
}

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Initializing..."
	}

	parts := []string{
		a.renderStatusBar(a.width),
		a.renderAdvisory(),
		a.renderPanel(a.locale.T("panel.result"), a.resultBody),
		a.renderPanel(a.locale.T("panel.history"), a.historyView.View()),
		a.theme.InputStyle.Width(a.contentWidth()).Render(a.input.View()),
		a.renderHelp(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// --- 渲染方法 / Render methods ---

func (a App) renderStatusBar(width int) string {
	badge := a.theme.PausedStyle.Render(a.locale.T("status.paused"))
	if a.state.Active {
		badge = a.theme.ScanningStyle.Render(a.locale.T("status.scanning"))
	}

	left := fmt.Sprintf(" %s %s · %s: %s",
		a.theme.TitleStyle.Render(a.locale.T("panel.camera")),
		badge,
		a.locale.T("status.expected"),
		a.locale.Label(a.state.ExpectedType),
	)

	right := ""
	if a.session != nil && a.session.Torch().Available() {
		if a.session.Torch().IsOn() {
			right = a.locale.T("status.torch_on") + "  "
		} else {
			right = a.locale.T("status.torch_off") + "  "
		}
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	bar := left + strings.Repeat(" ", gap) + right
	return a.theme.StatusBarStyle.Width(width).Render(bar)
}

func (a App) renderAdvisory() string {
	switch {
	case a.notice != "" && a.noticeErr:
		return a.theme.ErrorStyle.Render(" " + a.notice)
	case a.notice != "":
		return a.theme.SuccessStyle.Render(" " + a.notice)
	case a.state.Advisory != "":
		return a.theme.AdvisoryStyle.Render(" ⚠ " + a.locale.T("advisory.mismatch"))
	case a.state.Active:
		return a.theme.MutedStyle.Render(" " + a.locale.T("status.hint"))
	default:
		return ""
	}
}

func (a App) renderPanel(title, body string) string {
	head := a.theme.TitleStyle.Render(title)
	return a.theme.PanelStyle.Width(a.contentWidth()).Render(head + "\n" + body)
}

func (a App) renderHelp() string {
	keys := []string{"keys.pause", "keys.type", "keys.copy", "keys.clear", "keys.clear_history", "keys.select", "keys.torch", "keys.quit"}
	if !a.state.Active {
		keys[0] = "keys.resume"
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, a.locale.T(k))
	}
	return a.theme.MutedStyle.Render(" " + strings.Join(parts, " · "))
}

// Run 启动 Bubble Tea TUI
// Run starts the Bubble Tea TUI application
func Run(opts Options) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package banner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/connectinfo"
	"github.com/muurk/trycartridge/internal/demouri"
	"github.com/muurk/trycartridge/internal/logging"
	"github.com/muurk/trycartridge/internal/reset"
)

// Banner and modal copy
const (
	BannerText        = "Your demo server is created. Temporary address of your server: "
	ConnectButton     = "How to connect?"
	ResetButton       = "Reset configuration"
	ConnectModalTitle = "Connect info"
	ResetModalTitle   = "Reset configuration"
	ResetQuestion     = "Do you really want to reset your settings?"
	ResetWarning      = "This action will result in data loss."
)

// Options configures a banner. URI is the only required field.
type Options struct {
	URI       string               // Demo address, "" when not in demo mode
	Validator demouri.Validator    // Format check (default: demouri.Validate)
	Catalog   *connectinfo.Catalog // Connect walkthroughs (default: built-in)
	Navigator reset.Navigator      // Performs the flush navigation
	Clipboard func(string) error   // Copy action (default: system clipboard)
	Delay     time.Duration        // Reset delay (default: reset.Delay)
	Context   context.Context      // Parent of the reset timer (default: Background)
}

// copiedMsg reports the outcome of the copy action
type copiedMsg struct {
	err error
}

// ResetDoneMsg is sent when a scheduled reset navigation finished or was cancelled
type ResetDoneMsg struct {
	Result reset.Result
}

// Model is the demo banner. It renders nothing unless it has a valid demo
// address.
type Model struct {
	uri     string
	visible bool

	tabs      connectinfo.TabSet
	activeTab int
	viewport  viewport.Model

	showReset       bool
	showConnectInfo bool

	ctx       context.Context
	scheduler *reset.Scheduler
	clipboard func(string) error

	status      string
	statusStyle lipgloss.Style
	flushed     *reset.Result

	help help.Model

	Width  int
	Height int
}

// New creates a banner for opts.URI
func New(opts Options) Model {
	validate := opts.Validator
	if validate == nil {
		validate = demouri.Validate
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = connectinfo.DefaultCatalog()
	}
	delay := opts.Delay
	if delay <= 0 {
		delay = reset.Delay
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	nav := opts.Navigator
	if nav == nil {
		nav = reset.NavigatorFunc(func(ctx context.Context, target string) error {
			return fmt.Errorf("no navigator configured for %s", target)
		})
	}

	m := Model{
		uri:       opts.URI,
		visible:   opts.URI != "" && validate(opts.URI),
		ctx:       ctx,
		scheduler: reset.NewScheduler(nav, delay),
		clipboard: copyFn,
		help:      help.New(),
		viewport:  viewport.New(MaxModalWidth-8, 20),
	}

	if !m.visible {
		if opts.URI != "" {
			logging.Warn("Demo banner hidden: invalid demo address",
				zap.String("uri", logging.RedactURI(opts.URI)))
		}
		return m
	}

	m.tabs = connectinfo.BuildTabs(catalog, opts.URI)
	m.syncViewport()
	return m
}

// Visible reports whether the banner renders anything
func (m Model) Visible() bool { return m.visible }

// URI returns the demo address
func (m Model) URI() string { return m.uri }

// ResetShown reports whether the reset confirmation modal is open
func (m Model) ResetShown() bool { return m.showReset }

// ConnectInfoShown reports whether the connect info modal is open
func (m Model) ConnectInfoShown() bool { return m.showConnectInfo }

// Tabs returns the rendered connect walkthroughs and any skipped languages
func (m Model) Tabs() connectinfo.TabSet { return m.tabs }

// ActiveTab returns the index of the selected language tab
func (m Model) ActiveTab() int { return m.activeTab }

// ResetPending reports whether a reset navigation is armed
func (m Model) ResetPending() bool { return m.scheduler.Pending() }

// Flushed returns the result of a completed reset, or nil
func (m Model) Flushed() *reset.Result { return m.flushed }

// ShowReset opens the reset confirmation modal
func (m Model) ShowReset() Model {
	m.showReset = true
	return m
}

// HideReset closes the reset confirmation modal
func (m Model) HideReset() Model {
	m.showReset = false
	return m
}

// ShowConnectInfo opens the connect info modal
func (m Model) ShowConnectInfo() Model {
	m.showConnectInfo = true
	m.viewport.GotoTop()
	return m
}

// HideConnectInfo closes the connect info modal
func (m Model) HideConnectInfo() Model {
	m.showConnectInfo = false
	return m
}

// ConfirmReset arms the delayed flush navigation. The modal stays open; the
// navigation replaces the screen.
func (m Model) ConfirmReset() (Model, tea.Cmd) {
	if !m.scheduler.Schedule(m.ctx) {
		return m, nil
	}
	m.setStatus("Resetting configuration...", warningStyle)
	return m, waitForReset(m.scheduler)
}

// Close cancels a pending reset. Call it when the banner is torn down.
func (m Model) Close() {
	m.scheduler.Stop()
}

// SelectTab switches to tab i, wrapping around
func (m Model) SelectTab(i int) Model {
	n := len(m.tabs.Tabs)
	if n == 0 {
		return m
	}
	m.activeTab = ((i % n) + n) % n
	m.syncViewport()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resizeViewport()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setStatus("Copy failed: "+msg.err.Error(), errorStyle)
		} else {
			m.setStatus("Address copied to clipboard", successStyle)
		}
		return m, nil

	case ResetDoneMsg:
		return m.handleResetDone(msg.Result)

	case tea.KeyMsg:
		if key.Matches(msg, forceQuitKey) {
			m.Close()
			return m, tea.Quit
		}
		if !m.visible {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes a key press to the top-most open modal, then the banner
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showReset {
		switch {
		case key.Matches(msg, resetKeys.Confirm):
			return m.ConfirmReset()
		case key.Matches(msg, resetKeys.Cancel):
			return m.HideReset(), nil
		}
		return m, nil
	}

	if m.showConnectInfo {
		switch {
		case key.Matches(msg, connectKeys.Close):
			return m.HideConnectInfo(), nil
		case key.Matches(msg, connectKeys.Reset):
			return m.ShowReset(), nil
		case key.Matches(msg, connectKeys.NextTab):
			return m.SelectTab(m.activeTab + 1), nil
		case key.Matches(msg, connectKeys.PrevTab):
			return m.SelectTab(m.activeTab - 1), nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, bannerKeys.Connect):
		return m.ShowConnectInfo(), nil
	case key.Matches(msg, bannerKeys.Reset):
		return m.ShowReset(), nil
	case key.Matches(msg, bannerKeys.Copy):
		return m, copyAddress(m.clipboard, m.uri)
	case key.Matches(msg, bannerKeys.Quit):
		m.Close()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleResetDone(res reset.Result) (tea.Model, tea.Cmd) {
	switch {
	case res.Cancelled:
		m.setStatus("Reset cancelled", mutedStyle)
		return m, nil
	case res.Err != nil:
		m.showReset = false
		m.setStatus("Reset failed: "+res.Err.Error(), errorStyle)
		return m, nil
	default:
		m.flushed = &res
		m.setStatus("Demo session flushed", successStyle)
		return m, tea.Quit
	}
}

// View implements tea.Model
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	switch {
	case m.showReset && m.showConnectInfo:
		// Reset opens on top of connect info
		return placeModal(lipgloss.JoinVertical(lipgloss.Center,
			m.renderConnectModal(), m.renderResetModal()), m.Width, m.Height)
	case m.showReset:
		return placeModal(m.renderResetModal(), m.Width, m.Height)
	case m.showConnectInfo:
		return placeModal(m.renderConnectModal(), m.Width, m.Height)
	}

	return m.renderBanner()
}

func (m Model) renderBanner() string {
	var b strings.Builder

	b.WriteString(BannerText)
	b.WriteString(addressStyle.Render(m.uri))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		buttonStyle.Render(ConnectButton),
		buttonStyle.Render(ResetButton),
	))

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.statusStyle.Render(m.status))
	}

	box := bannerStyle
	if m.Width > 0 {
		box = box.Width(m.Width - 4)
	}
	return box.Render(b.String()) + "\n" + m.help.View(bannerKeys)
}

func (m Model) renderConnectModal() string {
	width := modalWidth(m.Width)

	var b strings.Builder
	b.WriteString(modalTitleStyle.Render(ConnectModalTitle))
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")

	if len(m.tabs.Tabs) > 0 {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(mutedStyle.Render("No connect instructions available."))
	}

	for _, s := range m.tabs.Skipped {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Skipped " + s.Error()))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(connectKeys))

	return modalStyle(width, PrimaryColor).Render(b.String())
}

func (m Model) renderTabBar() string {
	labels := make([]string, 0, len(m.tabs.Tabs))
	for i, t := range m.tabs.Tabs {
		if i == m.activeTab {
			labels = append(labels, activeTabStyle.Render(t.Label))
		} else {
			labels = append(labels, inactiveTabStyle.Render(t.Label))
		}
	}
	return strings.Join(labels, mutedStyle.Render("│"))
}

func (m Model) renderResetModal() string {
	width := modalWidth(m.Width)
	if width > 64 {
		width = 64
	}

	var b strings.Builder
	b.WriteString(modalTitleStyle.Foreground(WarningColor).Render("⚠  " + ResetModalTitle))
	b.WriteString("\n")
	b.WriteString(ResetQuestion)
	b.WriteString("\n")
	b.WriteString(ResetWarning)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		buttonStyle.Render("Cancel"),
		primaryButtonStyle.Render("Reset"),
	))

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.statusStyle.Render(m.status))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(resetKeys))

	return modalStyle(width, WarningColor).Render(b.String())
}

func (m *Model) setStatus(text string, style lipgloss.Style) {
	m.status = text
	m.statusStyle = style
}

func (m *Model) syncViewport() {
	if len(m.tabs.Tabs) == 0 {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(RenderMarkdown(m.tabs.Tabs[m.activeTab].Content, m.viewport.Width))
	m.viewport.GotoTop()
}

func (m *Model) resizeViewport() {
	m.viewport.Width = modalWidth(m.Width) - 8
	h := m.Height - modalChromeRows - len(m.tabs.Skipped)
	if h < MinModalHeight {
		h = MinModalHeight
	}
	m.viewport.Height = h
	m.syncViewport()
}

// copyAddress copies uri off the update loop
func copyAddress(copyFn func(string) error, uri string) tea.Cmd {
	return func() tea.Msg {
		err := copyFn(uri)
		if err != nil {
			logging.Warn("Clipboard copy failed", zap.Error(err))
		}
		return copiedMsg{err: err}
	}
}

// waitForReset blocks until the scheduler reports back
func waitForReset(s *reset.Scheduler) tea.Cmd {
	return func() tea.Msg {
		return ResetDoneMsg{Result: <-s.Done()}
	}
}

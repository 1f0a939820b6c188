package banner

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/trycartridge/internal/logging"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - borders, active tab
	SuccessColor = lipgloss.Color("#43BF6D") // Green - copied, flushed
	WarningColor = lipgloss.Color("#FFA500") // Orange - reset modal
	ErrorColor   = lipgloss.Color("#FF5555") // Red - failures
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary text
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinWidth        = 60
	MaxModalWidth   = 100
	MinModalHeight  = 8
	modalChromeRows = 9 // title, tab bar, borders, footer
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2).
			Margin(1, 1)

	addressStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			MarginLeft(2)

	primaryButtonStyle = buttonStyle.
				Background(PrimaryColor).
				Bold(true)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			MarginBottom(1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	successStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	errorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	warningStyle = lipgloss.NewStyle().Foreground(WarningColor)
)

// modalStyle returns the bordered box for a modal of the given width
func modalStyle(width int, border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Width(width-2).
		Padding(1, 2)
}

// modalWidth caps a modal to the terminal width
func modalWidth(terminalWidth int) int {
	if terminalWidth <= 0 {
		return MaxModalWidth
	}
	w := terminalWidth - 4
	if w > MaxModalWidth {
		w = MaxModalWidth
	}
	if w < MinWidth {
		w = MinWidth
	}
	return w
}

// placeModal centers content on screen, dimming the background
func placeModal(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}

// MarkdownStyle is the glamour standard style used for walkthroughs
var MarkdownStyle = "dark"

// RenderMarkdown renders a connect walkthrough for the terminal, word-wrapped
// to width. Markdown that glamour cannot render is returned as is.
func RenderMarkdown(md string, width int) string {
	if width < MinWidth {
		width = MinWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(MarkdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.Warn("Markdown renderer unavailable", zap.Error(err))
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		logging.Warn("Failed to render markdown", zap.Error(err))
		return md
	}
	return strings.Trim(out, "\n")
}

// TerminalWidth returns the stdout width clamped to the modal bounds
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MaxModalWidth
	}
	return modalWidth(width + 4)
}

// RenderSnippet renders one connect walkthrough in a titled box, for output
// outside the interactive banner
func RenderSnippet(language, markdown string, width int) string {
	if width <= 0 {
		width = MaxModalWidth
	}
	title := modalTitleStyle.Render(ConnectModalTitle + ": " + language)
	return modalStyle(width, PrimaryColor).Render(title + "\n\n" + RenderMarkdown(markdown, width-8))
}

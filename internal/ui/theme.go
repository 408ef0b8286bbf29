package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colours for the application.
type Theme struct {
	Surface lipgloss.Color
	Border  lipgloss.Color

	Text       lipgloss.Color
	TextMuted  lipgloss.Color
	TextSubtle lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color

	Added   lipgloss.Color
	Deleted lipgloss.Color
	Renamed lipgloss.Color

	Error lipgloss.Color
	Info  lipgloss.Color
}

// DarkTheme returns the default dark theme (Catppuccin Mocha).
func DarkTheme() Theme {
	return Theme{
		Surface: lipgloss.Color("#282840"),
		Border:  lipgloss.Color("#3b3b5c"),

		Text:       lipgloss.Color("#cdd6f4"),
		TextMuted:  lipgloss.Color("#9399b2"),
		TextSubtle: lipgloss.Color("#6c7086"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),

		Added:   lipgloss.Color("#a6e3a1"),
		Deleted: lipgloss.Color("#f38ba8"),
		Renamed: lipgloss.Color("#89dceb"),

		Error: lipgloss.Color("#f38ba8"),
		Info:  lipgloss.Color("#89b4fa"),
	}
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	StatusBar lipgloss.Style
	StatusErr lipgloss.Style
	StatusMsg lipgloss.Style
	HelpBox   lipgloss.Style

	// Text
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style

	// File boxes
	FileBorder lipgloss.Style
	FileName   lipgloss.Style
	FileRename lipgloss.Style

	// Diff
	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffFiller     lipgloss.Style
	DiffHunkHeader lipgloss.Style
	DiffLineNum    lipgloss.Style
	DiffSeparator  lipgloss.Style

	Scrollbar      lipgloss.Style
	ScrollbarThumb lipgloss.Style

	Spinner lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	s.StatusErr = lipgloss.NewStyle().Foreground(t.Error).Background(t.Surface).Bold(true)
	s.StatusMsg = lipgloss.NewStyle().Foreground(t.Info).Background(t.Surface)
	s.HelpBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary).Padding(0, 2)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Bold = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.FileBorder = lipgloss.NewStyle().Foreground(t.Border)
	s.FileName = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.FileRename = lipgloss.NewStyle().Foreground(t.Renamed).Bold(true)

	s.DiffAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.DiffRemoved = lipgloss.NewStyle().Foreground(t.Deleted)
	s.DiffContext = lipgloss.NewStyle().Foreground(t.Text)
	s.DiffFiller = lipgloss.NewStyle().Foreground(t.TextSubtle)
	s.DiffHunkHeader = lipgloss.NewStyle().Foreground(t.TextSubtle).Italic(true)
	s.DiffLineNum = lipgloss.NewStyle().Foreground(t.TextSubtle)
	s.DiffSeparator = lipgloss.NewStyle().Foreground(t.Border)

	s.Scrollbar = lipgloss.NewStyle().Foreground(t.Border)
	s.ScrollbarThumb = lipgloss.NewStyle().Foreground(t.Primary)

	s.Spinner = lipgloss.NewStyle().Foreground(t.Primary)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

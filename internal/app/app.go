package app

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sbsdiff/sbs/internal/common"
	"github.com/sbsdiff/sbs/internal/config"
	"github.com/sbsdiff/sbs/internal/diff"
	"github.com/sbsdiff/sbs/internal/git"
	"github.com/sbsdiff/sbs/internal/nav"
	"github.com/sbsdiff/sbs/internal/ui"
	"github.com/sbsdiff/sbs/internal/ui/components"
	"github.com/sbsdiff/sbs/internal/ui/views"
)

// How long status bar messages stay visible.
const (
	errorTTL = 5 * time.Second
	infoTTL  = 3 * time.Second
)

// mouseScrollStep is the number of rows one wheel notch scrolls.
const mouseScrollStep = 3

// Options configures a Model.
type Options struct {
	Source  git.Source
	Config  *config.Config
	Range   string // revision range passed to the source; empty for default
	Label   string // range shown in the status bar
	Version string
	Files   []diff.File // result of the initial load
}

// Model is the top-level Bubbletea model. It owns the navigation state and
// runs reloads in the background; at most one reload is in flight.
type Model struct {
	ctx    context.Context
	src    git.Source
	rng    string
	label  string
	opts   git.DiffOptions
	styles ui.Styles
	keys   KeyMap

	nav      *nav.Navigator
	view     *views.DiffView
	overlay  nav.HelpOverlay
	helpLine help.Model
	spinner  spinner.Model

	width  int
	height int

	loading bool
	loadSeq int
	// reloadQueued records a refresh request that arrived mid-reload.
	reloadQueued bool

	statusMsg string
	statusErr bool
	statusSeq int
}

// New creates a new application model. Cancelling ctx aborts any running
// reload.
func New(ctx context.Context, o Options) Model {
	styles := ui.DefaultStyles()
	cfg := o.Config

	hl := help.New()
	hl.Styles.ShortKey = styles.KeyBind
	hl.Styles.ShortDesc = styles.KeyDesc
	hl.Styles.ShortSeparator = styles.Muted

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Spinner

	label := o.Label
	if label == "" {
		label = o.Range
	}

	return Model{
		ctx:    ctx,
		src:    o.Source,
		rng:    o.Range,
		label:  label,
		opts:   git.DiffOptions{ExcludeUntracked: cfg.ExcludeUntracked, ContextLines: cfg.DiffContextLines},
		styles: styles,
		keys:   NewKeyMap(cfg.Keys),

		nav:      nav.New(o.Files, cfg.Mode()),
		view:     views.NewDiffView(styles, o.Version, cfg.TabWidth),
		helpLine: hl,
		spinner:  sp,
	}
}

// Init sets the terminal title.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("sbs " + m.label)
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.nav.SetHeight(m.contentHeight())
		m.view.SetSize(m.width, m.contentHeight())
		m.helpLine.Width = m.width / 2
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.overlay.Visible() {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.nav.ScrollBy(-mouseScrollStep)
		case tea.MouseButtonWheelDown:
			m.nav.ScrollBy(mouseScrollStep)
		}
		return m, nil

	case common.HelpExpiredMsg:
		m.overlay.Expire(msg.Token)
		return m, nil

	case common.RefreshMsg:
		return m.startReload()

	case common.LoadedMsg:
		return m.finishReload(msg)

	case common.ErrMsg:
		return m, m.setStatus(msg.Err.Error(), true)

	case common.ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		delay, token := m.overlay.Trigger()
		return m, tea.Tick(delay, func(time.Time) tea.Msg {
			return common.HelpExpiredMsg{Token: token}
		})
	}
	// The overlay swallows everything else while it is up.
	if m.overlay.Visible() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.overlay.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.nav.ScrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.nav.ScrollBy(-1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.nav.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.nav.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.nav.Top()
	case key.Matches(msg, m.keys.Bottom):
		m.nav.Bottom()
	case key.Matches(msg, m.keys.NextFile):
		m.nav.NextFile()
	case key.Matches(msg, m.keys.PrevFile):
		m.nav.PrevFile()
	case key.Matches(msg, m.keys.ToggleCollapse):
		m.nav.ToggleCollapse()
	case key.Matches(msg, m.keys.CloseFile):
		m.nav.CloseFile()
	case key.Matches(msg, m.keys.ShiftRight):
		m.nav.ShiftViewRight()
	case key.Matches(msg, m.keys.ShiftLeft):
		m.nav.ShiftViewLeft()
	case key.Matches(msg, m.keys.Reload):
		return m.startReload()
	}
	return m, nil
}

// ── Reload ──────────────────────────────────────────────────────────────────

// startReload runs the diff source off the update loop. A request made while
// a reload is running is queued and served once it finishes.
func (m Model) startReload() (tea.Model, tea.Cmd) {
	if m.loading {
		m.reloadQueued = true
		return m, nil
	}
	m.loading = true
	m.loadSeq++

	ctx, src, rng, opts, seq := m.ctx, m.src, m.rng, m.opts, m.loadSeq
	log.Printf("reload %d started (range %q)", seq, rng)
	load := func() tea.Msg {
		files, err := git.Load(ctx, src, rng, opts)
		return common.LoadedMsg{Seq: seq, Files: files, Err: err}
	}
	return m, tea.Batch(load, m.spinner.Tick)
}

// finishReload applies a reload result. A failed reload leaves files,
// scroll position and visibility untouched.
func (m Model) finishReload(msg common.LoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.loadSeq {
		return m, nil
	}
	m.loading = false

	var cmds []tea.Cmd
	if msg.Err != nil {
		log.Printf("reload %d failed: %v", msg.Seq, msg.Err)
		cmds = append(cmds, m.setStatus(msg.Err.Error(), true))
	} else {
		log.Printf("reload %d finished: %d files", msg.Seq, len(msg.Files))
		m.nav.SetFiles(msg.Files)
		if len(msg.Files) == 0 {
			cmds = append(cmds, m.setStatus("No changes", false))
		}
	}

	if m.reloadQueued {
		m.reloadQueued = false
		next, cmd := m.startReload()
		m = next.(Model)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// setStatus shows text in the status bar and schedules its removal.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusMsg = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	ttl := infoTTL
	if isErr {
		ttl = errorTTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg { return common.ClearStatusMsg{Seq: seq} })
}

// ── View ────────────────────────────────────────────────────────────────────

// View renders the entire UI. It performs no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var content string
	if m.overlay.Visible() {
		content = components.RenderHelp(m.styles, m.keys.HelpEntries(), m.width, m.contentHeight())
	} else {
		content = m.view.Render(m.nav)
	}

	pos, total := m.nav.Position()
	bar := components.StatusBarData{
		Range:     m.label,
		Mode:      m.nav.Mode().String(),
		FilePos:   pos,
		FileTotal: total,
		Message:   m.statusMsg,
		IsError:   m.statusErr,
		Help:      m.helpLine.View(m.keys),
	}
	if m.loading {
		bar.Spinner = m.spinner.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, components.RenderStatusBar(m.styles, bar, m.width))
}

// contentHeight is the terminal height minus the status bar.
func (m Model) contentHeight() int {
	return max(m.height-1, 1)
}

// Navigator exposes the navigation state, mainly for tests.
func (m Model) Navigator() *nav.Navigator { return m.nav }

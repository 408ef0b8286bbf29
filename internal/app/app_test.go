package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/sbsdiff/sbs/internal/common"
	"github.com/sbsdiff/sbs/internal/config"
	"github.com/sbsdiff/sbs/internal/diff"
	"github.com/sbsdiff/sbs/internal/git"
	"github.com/sbsdiff/sbs/internal/nav"
)

const twoFileDiff = `diff --git a/a.go b/a.go
--- a/a.go
+++ b/a.go
@@ -1,3 +1,3 @@
 package a
-var x = 1
+var x = 2
 // end
diff --git a/b.go b/b.go
--- a/b.go
+++ b/b.go
@@ -1,2 +1,3 @@
 package b
+var y = 3
 // end
`

// scriptedSource answers Diff with canned output.
type scriptedSource struct {
	out   string
	err   error
	calls int
}

func (s *scriptedSource) RepoRoot() string { return "/repo" }
func (s *scriptedSource) GitDir() string   { return "/repo/.git" }

func (s *scriptedSource) DefaultBranch(context.Context) (string, error) { return "main", nil }

func (s *scriptedSource) Diff(context.Context, string, git.DiffOptions) (string, error) {
	s.calls++
	return s.out, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		ViewMode:         "both",
		DiffContextLines: 3,
		TabWidth:         4,
		Keys:             config.DefaultKeyBindings(),
	}
}

func newModel(t *testing.T, src *scriptedSource) Model {
	t.Helper()
	files, err := git.Load(context.Background(), src, "", git.DiffOptions{})
	require.NoError(t, err)
	m := New(context.Background(), Options{
		Source:  src,
		Config:  testConfig(),
		Label:   "main",
		Version: "test",
		Files:   files,
	})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 8})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(Model), cmd
}

// runCmd executes cmd and every command it batches, returning the messages
// produced. Only use it on commands that do not wait on a timer.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func loaded(t *testing.T, msgs []tea.Msg) common.LoadedMsg {
	t.Helper()
	for _, msg := range msgs {
		if l, ok := msg.(common.LoadedMsg); ok {
			return l
		}
	}
	t.Fatal("no LoadedMsg produced")
	return common.LoadedMsg{}
}

func TestModel_Scrolling(t *testing.T) {
	m := newModel(t, &scriptedSource{out: twoFileDiff})
	require.Equal(t, 7, m.Navigator().Height())

	m, _ = press(t, m, "j")
	require.Equal(t, 1, m.Navigator().Offset())
	m, _ = press(t, m, "k")
	m, _ = press(t, m, "k")
	require.Equal(t, 0, m.Navigator().Offset())

	// The summary row belongs to the first file, so n moves to the second.
	m, _ = press(t, m, "n")
	i, ok := m.Navigator().CurrentFile()
	require.True(t, ok)
	require.Equal(t, 1, i)
	require.Equal(t, 7, m.Navigator().Offset())
	m, _ = press(t, m, "p")
	i, _ = m.Navigator().CurrentFile()
	require.Equal(t, 0, i)
	require.Equal(t, 1, m.Navigator().Offset())

	m, _ = press(t, m, "g")
	require.Equal(t, 0, m.Navigator().Offset())

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	require.Equal(t, 3, m.Navigator().Offset())
}

func TestModel_ViewModeKeys(t *testing.T) {
	m := newModel(t, &scriptedSource{out: twoFileDiff})

	m, _ = press(t, m, "[")
	require.Equal(t, nav.ViewRight, m.Navigator().Mode())
	m, _ = press(t, m, "]")
	m, _ = press(t, m, "]")
	require.Equal(t, nav.ViewLeft, m.Navigator().Mode())
	require.Contains(t, ansi.Strip(m.View()), "left")
}

func TestModel_CollapseAndClose(t *testing.T) {
	m := newModel(t, &scriptedSource{out: twoFileDiff})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Navigator().IsCollapsed(0))
	require.Equal(t, 1, m.Navigator().Offset())

	m, _ = press(t, m, "c")
	require.True(t, m.Navigator().IsClosed(0))
	require.False(t, m.Navigator().IsCollapsed(0))
	require.Equal(t, 1, m.Navigator().Summary().Files)
}

func TestModel_HelpSuppressesKeys(t *testing.T) {
	m := newModel(t, &scriptedSource{out: twoFileDiff})

	m, cmd := press(t, m, "h")
	require.NotNil(t, cmd)
	require.Contains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")

	m, cmd = press(t, m, "j")
	require.Nil(t, cmd)
	require.Equal(t, 0, m.Navigator().Offset())

	// Holding the key re-triggers; only the newest timer hides the overlay.
	m, _ = press(t, m, "h")
	m = update(t, m, common.HelpExpiredMsg{Token: 1})
	require.Contains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")
	m = update(t, m, common.HelpExpiredMsg{Token: 2})
	require.NotContains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")

	m, _ = press(t, m, "j")
	require.Equal(t, 1, m.Navigator().Offset())
}

func TestModel_UppercaseHelpKey(t *testing.T) {
	m := newModel(t, &scriptedSource{out: twoFileDiff})

	m, cmd := press(t, m, "H")
	require.NotNil(t, cmd)
	require.Contains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, &scriptedSource{out: twoFileDiff})

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_ReloadAppliesNewFiles(t *testing.T) {
	src := &scriptedSource{out: twoFileDiff}
	m := newModel(t, src)
	m, _ = press(t, m, "n")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Navigator().IsCollapsed(1))

	m, cmd := press(t, m, "r")
	msg := loaded(t, runCmd(cmd))
	require.NoError(t, msg.Err)
	require.Len(t, msg.Files, 2)

	m = update(t, m, msg)
	require.True(t, m.Navigator().IsCollapsed(1), "collapse state follows the file by path")
	require.Equal(t, 2, src.calls)
}

func TestModel_FailedReloadKeepsState(t *testing.T) {
	src := &scriptedSource{out: twoFileDiff}
	m := newModel(t, src)
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "j")
	rows := len(m.Navigator().Rows())

	src.err = errors.New("git diff: fatal: bad revision")
	m, cmd := press(t, m, "r")
	msg := loaded(t, runCmd(cmd))
	require.Error(t, msg.Err)

	next, clearCmd := m.Update(msg)
	m = next.(Model)
	require.NotNil(t, clearCmd)
	require.Len(t, m.Navigator().Rows(), rows)
	require.Equal(t, 2, m.Navigator().Offset())
	require.Contains(t, ansi.Strip(m.View()), "bad revision")

	m = update(t, m, common.ClearStatusMsg{Seq: 1})
	require.NotContains(t, ansi.Strip(m.View()), "bad revision")
}

func TestModel_EmptyReload(t *testing.T) {
	src := &scriptedSource{out: twoFileDiff}
	m := newModel(t, src)

	src.out = ""
	m, cmd := press(t, m, "r")
	m = update(t, m, loaded(t, runCmd(cmd)))
	require.Empty(t, m.Navigator().Files())
	require.Contains(t, ansi.Strip(m.View()), "No changes")
}

func TestModel_ReloadIsSingleFlight(t *testing.T) {
	src := &scriptedSource{out: twoFileDiff}
	m := newModel(t, src)

	m, first := press(t, m, "r")
	require.NotNil(t, first)
	next, second := m.Update(common.RefreshMsg{})
	m = next.(Model)
	require.Nil(t, second, "a refresh during a reload is queued")

	next, cmd := m.Update(loaded(t, runCmd(first)))
	m = next.(Model)
	require.NotNil(t, cmd, "the queued refresh starts once the first finishes")

	// A stale result from an earlier reload is dropped.
	m = update(t, m, common.LoadedMsg{Seq: 1, Files: []diff.File{{From: "z", To: "z"}}})
	require.Len(t, m.Navigator().Files(), 2)
}

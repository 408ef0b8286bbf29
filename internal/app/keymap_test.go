package app

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/sbsdiff/sbs/internal/config"
)

func TestDefaultKeyMap_HelpEntries(t *testing.T) {
	entries := DefaultKeyMap().HelpEntries()
	require.Len(t, entries, 15)
	require.Equal(t, "j / ↓", entries[0].Key)
	require.Equal(t, "Scroll down", entries[0].Desc)
	require.Equal(t, "q / ctrl+c", entries[len(entries)-1].Key)
}

func TestNewKeyMap_CustomBindings(t *testing.T) {
	kb := config.DefaultKeyBindings()
	kb.NextFile = []string{"tab"}
	kb.CloseFile = nil
	km := NewKeyMap(kb)

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, km.NextFile))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, km.NextFile))

	for _, e := range km.HelpEntries() {
		require.NotEqual(t, "Close file", e.Desc, "unbound actions are left out of the help")
	}
}

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sbsdiff/sbs/internal/config"
	"github.com/sbsdiff/sbs/internal/ui/components"
)

// KeyMap defines the keybindings of the diff viewer.
type KeyMap struct {
	Down           key.Binding
	Up             key.Binding
	HalfPageDown   key.Binding
	HalfPageUp     key.Binding
	Top            key.Binding
	Bottom         key.Binding
	NextFile       key.Binding
	PrevFile       key.Binding
	ToggleCollapse key.Binding
	CloseFile      key.Binding
	ShiftRight     key.Binding
	ShiftLeft      key.Binding
	Reload         key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// keyLabels prettifies key names for help text.
var keyLabels = map[string]string{
	"down":   "↓",
	"up":     "↑",
	"pgdown": "PgDn",
	"pgup":   "PgUp",
	"home":   "Home",
	"end":    "End",
	"enter":  "Enter",
}

func binding(keys []string, desc string) key.Binding {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if l, ok := keyLabels[k]; ok {
			labels[i] = l
		} else {
			labels[i] = k
		}
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(labels, " / "), desc))
}

// NewKeyMap builds the keymap from configured bindings.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Down:           binding(kb.Down, "Scroll down"),
		Up:             binding(kb.Up, "Scroll up"),
		HalfPageDown:   binding(kb.HalfPageDown, "Half-page down"),
		HalfPageUp:     binding(kb.HalfPageUp, "Half-page up"),
		Top:            binding(kb.Top, "Jump to top"),
		Bottom:         binding(kb.Bottom, "Jump to bottom"),
		NextFile:       binding(kb.NextFile, "Next file"),
		PrevFile:       binding(kb.PrevFile, "Previous file"),
		ToggleCollapse: binding(kb.ToggleCollapse, "Toggle collapse"),
		CloseFile:      binding(kb.CloseFile, "Close file"),
		ShiftRight:     binding(kb.ShiftRight, "Shift view right"),
		ShiftLeft:      binding(kb.ShiftLeft, "Shift view left"),
		Reload:         binding(kb.Reload, "Reload diff"),
		Help:           binding(kb.Help, "Show help (hold)"),
		Quit:           binding(kb.Quit, "Quit"),
	}
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap { return NewKeyMap(config.DefaultKeyBindings()) }

// ShortHelp implements help.KeyMap for the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFile, k.PrevFile, k.ToggleCollapse, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.HalfPageDown, k.HalfPageUp, k.Top, k.Bottom},
		{k.NextFile, k.PrevFile, k.ToggleCollapse, k.CloseFile},
		{k.ShiftRight, k.ShiftLeft, k.Reload, k.Help, k.Quit},
	}
}

// HelpEntries lists every binding for the help overlay.
func (k KeyMap) HelpEntries() []components.HelpEntry {
	var out []components.HelpEntry
	for _, group := range k.FullHelp() {
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			out = append(out, components.HelpEntry{Key: h.Key, Desc: h.Desc})
		}
	}
	return out
}

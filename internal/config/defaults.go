package config

import "github.com/spf13/viper"

// KeyBindings maps each action to the keys that trigger it, using the key
// names bubbletea reports ("j", "down", "pgdown", "ctrl+c", ...).
type KeyBindings struct {
	Down           []string `mapstructure:"down"`
	Up             []string `mapstructure:"up"`
	HalfPageDown   []string `mapstructure:"half_page_down"`
	HalfPageUp     []string `mapstructure:"half_page_up"`
	Top            []string `mapstructure:"top"`
	Bottom         []string `mapstructure:"bottom"`
	NextFile       []string `mapstructure:"next_file"`
	PrevFile       []string `mapstructure:"prev_file"`
	ToggleCollapse []string `mapstructure:"toggle_collapse"`
	CloseFile      []string `mapstructure:"close_file"`
	ShiftRight     []string `mapstructure:"shift_right"`
	ShiftLeft      []string `mapstructure:"shift_left"`
	Reload         []string `mapstructure:"reload"`
	Help           []string `mapstructure:"help"`
	Quit           []string `mapstructure:"quit"`
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Down:           []string{"j", "down"},
		Up:             []string{"k", "up"},
		HalfPageDown:   []string{"d", "pgdown"},
		HalfPageUp:     []string{"u", "pgup"},
		Top:            []string{"g", "home"},
		Bottom:         []string{"G", "end"},
		NextFile:       []string{"n"},
		PrevFile:       []string{"p"},
		ToggleCollapse: []string{"enter", "o"},
		CloseFile:      []string{"c"},
		ShiftRight:     []string{"["},
		ShiftLeft:      []string{"]"},
		Reload:         []string{"r"},
		Help:           []string{"h", "H"},
		Quit:           []string{"q", "ctrl+c"},
	}
}

func setKeyDefaults(v *viper.Viper, kb KeyBindings) {
	for key, keys := range map[string][]string{
		"down":            kb.Down,
		"up":              kb.Up,
		"half_page_down":  kb.HalfPageDown,
		"half_page_up":    kb.HalfPageUp,
		"top":             kb.Top,
		"bottom":          kb.Bottom,
		"next_file":       kb.NextFile,
		"prev_file":       kb.PrevFile,
		"toggle_collapse": kb.ToggleCollapse,
		"close_file":      kb.CloseFile,
		"shift_right":     kb.ShiftRight,
		"shift_left":      kb.ShiftLeft,
		"reload":          kb.Reload,
		"help":            kb.Help,
		"quit":            kb.Quit,
	} {
		v.SetDefault("keys."+key, keys)
	}
}

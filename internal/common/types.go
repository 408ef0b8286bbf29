// Package common holds the tea messages shared between the app model, the
// watcher and the background loaders.
package common

import "github.com/sbsdiff/sbs/internal/diff"

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg requests a diff reload.
type RefreshMsg struct{}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// LoadedMsg delivers the result of a diff reload. Seq identifies the reload
// that produced it.
type LoadedMsg struct {
	Seq   int
	Files []diff.File
	Err   error
}

// HelpExpiredMsg is sent when a help overlay timer fires.
type HelpExpiredMsg struct{ Token int }

// ClearStatusMsg clears the status message if it is still the one identified
// by Seq.
type ClearStatusMsg struct{ Seq int }

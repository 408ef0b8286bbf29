package nav

import "time"

// Help overlay delays. The first press has to outlast the terminal's
// key-repeat start-up delay (400-600ms on most systems); once repeats are
// flowing a short window is enough to hide the overlay soon after release.
const (
	HelpFirstDelay  = 600 * time.Millisecond
	HelpRepeatDelay = 200 * time.Millisecond
)

// HelpOverlay tracks the hold-to-show help overlay. Only the timer started by
// the most recent Trigger may hide it.
type HelpOverlay struct {
	visible bool
	token   int
}

// Visible reports whether the overlay is shown.
func (h HelpOverlay) Visible() bool { return h.visible }

// Trigger shows the overlay and returns how long to wait before expiring it
// and the token the expiry must present.
func (h *HelpOverlay) Trigger() (time.Duration, int) {
	delay := HelpFirstDelay
	if h.visible {
		delay = HelpRepeatDelay
	}
	h.visible = true
	h.token++
	return delay, h.token
}

// Expire hides the overlay if token belongs to the latest Trigger.
func (h *HelpOverlay) Expire(token int) bool {
	if !h.visible || token != h.token {
		return false
	}
	h.visible = false
	return true
}

// Cancel hides the overlay and invalidates any pending expiry.
func (h *HelpOverlay) Cancel() {
	h.visible = false
	h.token++
}

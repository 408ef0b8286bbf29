package nav

import "fmt"

// ViewMode selects which sides of the diff are shown.
type ViewMode int

const (
	ViewLeft ViewMode = iota
	ViewBoth
	ViewRight
)

// String returns the config spelling of the mode.
func (m ViewMode) String() string {
	switch m {
	case ViewLeft:
		return "left"
	case ViewRight:
		return "right"
	default:
		return "both"
	}
}

// ShiftRight steps left → both → right and stays at right.
func (m ViewMode) ShiftRight() ViewMode {
	switch m {
	case ViewLeft:
		return ViewBoth
	case ViewBoth:
		return ViewRight
	default:
		return m
	}
}

// ShiftLeft steps right → both → left and stays at left.
func (m ViewMode) ShiftLeft() ViewMode {
	switch m {
	case ViewRight:
		return ViewBoth
	case ViewBoth:
		return ViewLeft
	default:
		return m
	}
}

// ShowsLeft reports whether the old side is visible.
func (m ViewMode) ShowsLeft() bool { return m != ViewRight }

// ShowsRight reports whether the new side is visible.
func (m ViewMode) ShowsRight() bool { return m != ViewLeft }

// ParseViewMode parses "left", "both" or "right".
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "left":
		return ViewLeft, nil
	case "both", "":
		return ViewBoth, nil
	case "right":
		return ViewRight, nil
	default:
		return ViewBoth, fmt.Errorf("unknown view mode %q (want left, both or right)", s)
	}
}

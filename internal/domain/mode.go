package domain

import "fmt"

// Mode is the active canvas editing mode
type Mode string

const (
	ModeMove     Mode = "move"
	ModeAddNode  Mode = "add_node"
	ModeAddEdge  Mode = "add_edge"
	ModeEditEdge Mode = "edit_edge"
	ModeDelete   Mode = "delete"
)

// Modes lists every editing mode in toolbar order
var Modes = []Mode{ModeMove, ModeAddNode, ModeAddEdge, ModeEditEdge, ModeDelete}

// ParseMode converts a string to Mode
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Cursor returns the CSS cursor a canvas shows in this mode
func (m Mode) Cursor() string {
	switch m {
	case ModeAddNode:
		return "crosshair"
	case ModeAddEdge:
		return "cell"
	case ModeEditEdge:
		return "help"
	case ModeDelete:
		return "not-allowed"
	default:
		return "grab"
	}
}

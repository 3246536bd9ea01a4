package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"graphstudio/internal/domain"
)

// Terminal palette
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Info   = color.New(color.FgCyan)
	Warn   = color.New(color.FgYellow)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
	SetA   = color.New(color.FgBlue)
	SetB   = color.New(color.FgMagenta)
)

var nodeColors = map[domain.NodeStyle]*color.Color{
	domain.PendingNode: Warn,
	domain.VisitNode:   Warn,
	domain.FinalNode:   Bad,
	domain.PartitionA:  SetA,
	domain.PartitionB:  SetB,
}

var edgeColors = map[string]*color.Color{
	domain.VisitEdge.Color: Info,
	domain.FinalEdge.Color: Bad,
	domain.GoodEdge.Color:  Good,
}

// Terminal prints session events as coloured lines, one per change
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a terminal renderer writing to out
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Run prints events until ctx is done, then prints whatever is still buffered
func (t *Terminal) Run(ctx context.Context, events <-chan domain.Event) {
	for {
		select {
		case ev := <-events:
			t.Publish(ev)
		case <-ctx.Done():
			for {
				select {
				case ev := <-events:
					t.Publish(ev)
				default:
					return
				}
			}
		}
	}
}

// Publish prints one event. It implements domain.Publisher.
func (t *Terminal) Publish(ev domain.Event) {
	line := t.format(ev)
	if line == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, line)
}

func (t *Terminal) format(ev domain.Event) string {
	switch ev.Type {
	case domain.EventLogAppended:
		if s, ok := ev.Payload.(string); ok {
			return "  " + Info.Sprint("» ") + s
		}
	case domain.EventNodeUpdated:
		if n, ok := ev.Payload.(domain.Node); ok {
			if c, ok := nodeColors[n.Style]; ok {
				return "  " + c.Sprint("● "+n.Label)
			}
		}
	case domain.EventEdgeUpdated:
		if e, ok := ev.Payload.(domain.Edge); ok {
			if c, ok := edgeColors[e.Style.Color]; ok {
				return "  " + c.Sprintf("━ %s-%s", e.From, e.To) + Subtle.Sprintf(" (%s, w=%s)", e.ID, e.Label)
			}
		}
	case domain.EventStylesReset:
		return Subtle.Sprint("── reset ──")
	case domain.EventPlaybackStarted:
		if p, ok := ev.Payload.(map[string]any); ok {
			return Brand.Sprintf("▶ %v", p["operation"])
		}
	case domain.EventPlaybackDone:
		if p, ok := ev.Payload.(map[string]any); ok {
			return Subtle.Sprintf("■ %v", p["status"])
		}
	}
	return ""
}

// Summary prints the final state of every node and edge as two tables
func (t *Terminal) Summary(snap *domain.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([][]string, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		rows = append(rows, []string{n.ID, n.Label, nodeMark(n.Style)})
	}
	t.table([]string{"NODE", "LABEL", "STATE"}, rows)

	rows = rows[:0]
	for _, e := range snap.Edges {
		rows = append(rows, []string{e.ID, e.From + "-" + e.To, e.Label, domain.FormatNumber(e.Capacity), edgeMark(e.Style)})
	}
	t.table([]string{"EDGE", "ENDS", "WEIGHT", "CAPACITY", "STATE"}, rows)
}

func nodeMark(s domain.NodeStyle) string {
	if c, ok := nodeColors[s]; ok {
		return c.Sprint("●")
	}
	return Subtle.Sprint("○")
}

func edgeMark(s domain.EdgeStyle) string {
	if c, ok := edgeColors[s.Color]; ok {
		return c.Sprint("━")
	}
	return Subtle.Sprint("─")
}

// table prints a simple aligned table
func (t *Terminal) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Fprintln(t.out, headerLine)
	Subtle.Fprintln(t.out, sepLine)

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(t.out, line)
	}
	fmt.Fprintln(t.out)
}

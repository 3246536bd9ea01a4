package animator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"graphstudio/internal/metrics"
)

// DefaultDelay is the pause after each step
const DefaultDelay = 450 * time.Millisecond

// Player replays step sequences onto a canvas and an output log. Steps of
// concurrent playbacks never interleave: each step is applied under one lock
// and a cancelled playback applies nothing further.
type Player struct {
	canvas Canvas
	out    Output
	logger *slog.Logger

	mu    sync.Mutex
	delay time.Duration
}

// NewPlayer creates a player. A negative delay is treated as zero.
func NewPlayer(canvas Canvas, out Output, delay time.Duration, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	if delay < 0 {
		delay = 0
	}
	return &Player{canvas: canvas, out: out, delay: delay, logger: logger}
}

// Delay returns the pause after each step
func (p *Player) Delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.delay
}

// SetDelay changes the pause for subsequent steps
func (p *Player) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	p.mu.Lock()
	p.delay = d
	p.mu.Unlock()
}

// Reset clears every highlight and the output log
func (p *Player) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	p.resetLocked()
	return nil
}

func (p *Player) resetLocked() {
	p.canvas.ResetStyles()
	p.out.Clear()
}

// Play resets the canvas and output, then applies steps in order with the
// configured delay after each. It returns ctx.Err() if cancelled part way.
func (p *Player) Play(ctx context.Context, steps []Step) error {
	if err := p.Reset(ctx); err != nil {
		return err
	}

	for i, step := range steps {
		delay, err := p.apply(ctx, step)
		if err != nil {
			p.logger.Debug("playback stopped", "step", i, "total", len(steps), "error", err)
			return err
		}
		if delay <= 0 {
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// apply runs one step and returns the delay to wait afterwards
func (p *Player) apply(ctx context.Context, step Step) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	switch step.Type {
	case StepMsg:
		p.out.Append(step.Text)
	default:
		if style, ok := nodeStyleFor(step.Type); ok {
			if err := p.canvas.SetNodeStyle(step.ID, style); err != nil {
				p.logger.Debug("skipping node step", "id", step.ID, "error", err)
			}
		} else if style, ok := edgeStyleFor(step.Type); ok {
			// unresolved edge pairs carry no id
			if step.ID != "" {
				if err := p.canvas.SetEdgeStyle(step.ID, style); err != nil {
					p.logger.Debug("skipping edge step", "id", step.ID, "error", err)
				}
			}
		} else {
			p.logger.Warn("unknown step type", "type", step.Type)
		}
	}
	metrics.PlaybackSteps.WithLabelValues(string(step.Type)).Inc()
	return p.delay, nil
}

// Paint resets the canvas and output and applies a one-shot painting
func (p *Player) Paint(ctx context.Context, painting Painting) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	p.resetLocked()
	for _, n := range painting.Nodes {
		if err := p.canvas.SetNodeStyle(n.ID, n.Style); err != nil {
			p.logger.Debug("skipping painted node", "id", n.ID, "error", err)
		}
	}
	for _, line := range painting.Lines {
		p.out.Append(line)
	}
	return nil
}

// Barrier returns once any step being applied has finished
func (p *Player) Barrier() {
	p.mu.Lock()
	p.mu.Unlock() //nolint:staticcheck
}

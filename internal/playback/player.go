// Package playback replays a computed series one month per tick, the way
// a dashboard animates a projection growing over time.
package playback

import (
	"context"
	"errors"
	"time"

	"portfolio-projection/internal/model"
)

// DefaultInterval is the pause between two frames.
const DefaultInterval = 50 * time.Millisecond

// Frame is one step of a playback.
type Frame struct {
	// Month is the index of the frame, 0..Total.
	Month int `json:"month"`
	// Total is the last month of the series.
	Total   int                  `json:"total"`
	Current model.MonthlySummary `json:"current"`
	// Visible is the number of series points shown so far (Month+1).
	Visible int `json:"visible"`
}

// Done reports whether this is the final frame.
func (f Frame) Done() bool { return f.Month == f.Total }

type Player struct {
	series   []model.MonthlySummary
	interval time.Duration
}

func New(series []model.MonthlySummary, interval time.Duration) (*Player, error) {
	if len(series) == 0 {
		return nil, errors.New("playback: empty series")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Player{series: series, interval: interval}, nil
}

func (p *Player) Len() int { return len(p.series) }

// Frame returns frame i without waiting.
func (p *Player) Frame(i int) Frame {
	return Frame{
		Month:   i,
		Total:   len(p.series) - 1,
		Current: p.series[i],
		Visible: i + 1,
	}
}

// Frames emits every frame in month order, the first one immediately and
// the rest one interval apart. The channel is closed after the final frame
// or once ctx is done.
func (p *Player) Frames(ctx context.Context) <-chan Frame {
	out := make(chan Frame)
	go func() {
		defer close(out)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for i := range p.series {
			if i > 0 {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
			select {
			case <-ctx.Done():
				return
			case out <- p.Frame(i):
			}
		}
	}()
	return out
}

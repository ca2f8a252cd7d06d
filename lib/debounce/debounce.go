// Package debounce delays an action until input has been idle for a fixed
// interval.
//
// A Debouncer owns at most one pending task. Schedule returns a Bubble Tea
// command that delivers a TickMsg after the delay; scheduling again, or
// calling Cancel, invalidates any tick still in flight, so only the most
// recent schedule ever reports Fired.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

// TickMsg is delivered when a scheduled delay elapses.
type TickMsg struct {
	ID  int64
	Seq int64
}

type Debouncer struct {
	id    int64
	seq   int64
	delay time.Duration
}

func New(delay time.Duration) Debouncer {
	return Debouncer{
		id:    lastID.Add(1),
		delay: delay,
	}
}

// Delay returns the idle interval.
func (d Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule cancels the pending task, if any, and schedules a new one.
func (d *Debouncer) Schedule() tea.Cmd {
	d.seq++
	id, seq := d.id, d.seq
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return TickMsg{ID: id, Seq: seq}
	})
}

// Cancel drops the pending task without scheduling another.
func (d *Debouncer) Cancel() {
	d.seq++
}

// Fired reports whether msg belongs to this debouncer's current task.
func (d Debouncer) Fired(msg TickMsg) bool {
	return msg.ID == d.id && msg.Seq == d.seq
}

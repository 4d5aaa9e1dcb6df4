// Package timing measures the phases of a completion request.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// phase is one measured step
type phase struct {
	label string
	took  time.Duration
}

// Timer records how long each named phase of an operation took
type Timer struct {
	now    func() time.Time
	start  time.Time
	last   time.Time
	phases []phase
}

// NewTimer creates a timer started now
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	t := &Timer{now: now}
	t.Reset()
	return t
}

// Mark ends the current phase under label and starts the next one. It
// returns the duration of the phase it ended.
func (t *Timer) Mark(label string) time.Duration {
	at := t.now()
	took := at.Sub(t.last)
	t.last = at
	t.phases = append(t.phases, phase{label: label, took: took})
	return took
}

// Time runs fn as a phase named label
func (t *Timer) Time(label string, fn func()) time.Duration {
	t.last = t.now()
	fn()
	return t.Mark(label)
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Get returns the duration of the first phase named label
func (t *Timer) Get(label string) (time.Duration, bool) {
	for _, p := range t.phases {
		if p.label == label {
			return p.took, true
		}
	}
	return 0, false
}

// Summary formats the total and every phase in recording order
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("Total: " + ms(t.Elapsed()))

	if len(t.phases) > 0 {
		parts := make([]string, 0, len(t.phases))
		for _, p := range t.phases {
			parts = append(parts, p.label+": "+ms(p.took))
		}
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}
	return b.String()
}

// Reset restarts the timer and drops every phase
func (t *Timer) Reset() {
	t.start = t.now()
	t.last = t.start
	t.phases = nil
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}

package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every reading
type fakeClock struct {
	at   time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.at = c.at.Add(c.step)
	return c.at
}

func TestTimer_Mark(t *testing.T) {
	clock := &fakeClock{at: time.Unix(0, 0), step: 2 * time.Millisecond}
	timer := newTimer(clock.now)

	assert.Equal(t, 2*time.Millisecond, timer.Mark("tokenize"))
	assert.Equal(t, 2*time.Millisecond, timer.Mark("resolve"))

	d, ok := timer.Get("resolve")
	require.True(t, ok)
	assert.Equal(t, 2*time.Millisecond, d)

	_, ok = timer.Get("render")
	assert.False(t, ok)

	assert.Equal(t, 6*time.Millisecond, timer.Elapsed())
}

func TestTimer_Time(t *testing.T) {
	clock := &fakeClock{at: time.Unix(0, 0), step: time.Millisecond}
	timer := newTimer(clock.now)

	ran := false
	took := timer.Time("resolve", func() { ran = true })
	assert.True(t, ran)
	assert.Equal(t, time.Millisecond, took)
}

func TestTimer_Summary(t *testing.T) {
	clock := &fakeClock{at: time.Unix(0, 0), step: 1500 * time.Microsecond}
	timer := newTimer(clock.now)

	assert.Equal(t, "Total: 1.500ms", timer.Summary())

	timer = newTimer(clock.now)
	timer.Mark("tokenize")
	timer.Mark("resolve")
	assert.Equal(t, "Total: 4.500ms (tokenize: 1.500ms, resolve: 1.500ms)", timer.Summary())
}

func TestTimer_Reset(t *testing.T) {
	clock := &fakeClock{at: time.Unix(0, 0), step: time.Millisecond}
	timer := newTimer(clock.now)

	timer.Mark("a")
	timer.Reset()

	_, ok := timer.Get("a")
	assert.False(t, ok)
	assert.Equal(t, time.Millisecond, timer.Elapsed())
}

func TestNewTimer(t *testing.T) {
	timer := NewTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Mark("sleep"), time.Millisecond)
	assert.Contains(t, timer.Summary(), "sleep:")
}

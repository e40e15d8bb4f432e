package typewriter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	typeSpeed   = 100 * time.Millisecond
	deleteSpeed = 40 * time.Millisecond
	pause       = time.Second
)

func TestWriterSequenceWithoutLoop(t *testing.T) {
	w := New([]string{"ab", "c"}, Config{TypeSpeed: typeSpeed, DeleteSpeed: deleteSpeed, Pause: pause})
	assert.Equal(t, "", w.Text())

	steps := []struct {
		advance time.Duration
		want    string
	}{
		{typeSpeed, "a"},
		{typeSpeed, "ab"},
		{pause, "ab"},
		{deleteSpeed, "a"},
		{deleteSpeed, ""},
		{typeSpeed - time.Millisecond, ""},
		{time.Millisecond, "c"},
	}
	for i, s := range steps {
		w.Advance(s.advance)
		assert.Equal(t, s.want, w.Text(), "step %d", i)
	}

	assert.True(t, w.Done())
	w.Advance(time.Hour)
	assert.Equal(t, "c", w.Text(), "stays on the last word")
}

func TestWriterLoops(t *testing.T) {
	w := New([]string{"ab", "c"}, Config{TypeSpeed: typeSpeed, DeleteSpeed: deleteSpeed, Pause: pause, Loop: true})

	// "ab" typed, held, deleted, "c" typed, held, deleted, then "a" again
	total := 2*typeSpeed + pause + 2*deleteSpeed + typeSpeed + pause + deleteSpeed + typeSpeed
	w.Advance(total)
	assert.Equal(t, "a", w.Text())
	assert.False(t, w.Done())
}

func TestStartDelay(t *testing.T) {
	w := New([]string{"hi"}, Config{TypeSpeed: typeSpeed, StartDelay: 500 * time.Millisecond})

	w.Advance(500 * time.Millisecond)
	assert.Equal(t, "", w.Text())
	w.Advance(typeSpeed)
	assert.Equal(t, "h", w.Text())
}

func TestLargeStepAppliesEveryKeystroke(t *testing.T) {
	w := New([]string{"hello"}, Config{TypeSpeed: typeSpeed})
	w.Advance(time.Minute)
	assert.Equal(t, "hello", w.Text())
	assert.True(t, w.Done())
	assert.Equal(t, time.Minute, w.Elapsed())
}

func TestEmptyWords(t *testing.T) {
	w := New(nil, Config{})
	assert.True(t, w.Done())
	assert.Equal(t, "", w.Text())

	w = New([]string{"", "x"}, Config{TypeSpeed: typeSpeed})
	w.Advance(typeSpeed)
	assert.Equal(t, "x", w.Text())
}

func TestUnicodeWords(t *testing.T) {
	w := New([]string{"héllo"}, Config{TypeSpeed: typeSpeed})
	w.Advance(2 * typeSpeed)
	assert.Equal(t, "hé", w.Text())
}

func TestTimeline(t *testing.T) {
	cfg := Config{TypeSpeed: typeSpeed, DeleteSpeed: deleteSpeed, Pause: pause}
	frames := Timeline([]string{"ab", "c"}, cfg)

	want := []Frame{
		{0, ""},
		{typeSpeed, "a"},
		{2 * typeSpeed, "ab"},
		{2*typeSpeed + pause + deleteSpeed, "a"},
		{2*typeSpeed + pause + 2*deleteSpeed, ""},
		{3*typeSpeed + pause + 2*deleteSpeed, "c"},
	}
	assert.Equal(t, want, frames)
}

func TestTimelineLoopEndsOnEmptyText(t *testing.T) {
	frames := Timeline([]string{"ab", "c"}, Config{TypeSpeed: typeSpeed, DeleteSpeed: deleteSpeed, Pause: pause, Loop: true})
	require.NotEmpty(t, frames)
	last := frames[len(frames)-1]
	assert.Equal(t, "", last.Text)
	assert.Equal(t, 3*typeSpeed+2*pause+3*deleteSpeed, last.At)
}

func TestFrameJSON(t *testing.T) {
	out, err := json.Marshal([]Frame{{At: 1500 * time.Millisecond, Text: "ab"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"at":1500,"text":"ab"}]`, string(out))
}

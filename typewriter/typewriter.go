// Package typewriter types a list of words one character at a time, pauses,
// deletes them again and moves on to the next word.
//
// Time only moves through Advance, so the same Writer backs both the
// server-rendered first frame and the precomputed Timeline that the hero
// script plays back.
package typewriter

import (
	"encoding/json"
	"time"
)

const (
	DefaultTypeSpeed   = 100 * time.Millisecond
	DefaultDeleteSpeed = 50 * time.Millisecond
	DefaultPause       = 1500 * time.Millisecond
)

// Config controls the typing rhythm. Zero speeds fall back to the defaults.
type Config struct {
	TypeSpeed   time.Duration `yaml:"type_speed"`
	DeleteSpeed time.Duration `yaml:"delete_speed"`
	Pause       time.Duration `yaml:"pause"`
	StartDelay  time.Duration `yaml:"start_delay"`
	Loop        bool          `yaml:"loop"`
}

func (c Config) withDefaults() Config {
	if c.TypeSpeed <= 0 {
		c.TypeSpeed = DefaultTypeSpeed
	}
	if c.DeleteSpeed <= 0 {
		c.DeleteSpeed = DefaultDeleteSpeed
	}
	if c.Pause < 0 {
		c.Pause = 0
	}
	if c.StartDelay < 0 {
		c.StartDelay = 0
	}
	return c
}

type phase int

const (
	typing phase = iota
	deleting
	done
)

// Writer is the effect's state
type Writer struct {
	words   [][]rune
	cfg     Config
	word    int
	pos     int
	phase   phase
	wait    time.Duration // until the next keystroke
	elapsed time.Duration
}

// New creates a Writer showing the empty string. Empty words are skipped.
func New(words []string, cfg Config) *Writer {
	w := &Writer{cfg: cfg.withDefaults()}
	for _, word := range words {
		if word != "" {
			w.words = append(w.words, []rune(word))
		}
	}
	if len(w.words) == 0 {
		w.phase = done
		return w
	}
	w.wait = w.cfg.StartDelay + w.cfg.TypeSpeed
	return w
}

// Text is what is currently on screen
func (w *Writer) Text() string {
	if len(w.words) == 0 {
		return ""
	}
	return string(w.words[w.word][:w.pos])
}

// Done reports that the last word is fully typed and looping is off
func (w *Writer) Done() bool { return w.phase == done }

// Elapsed is the total time passed to Advance
func (w *Writer) Elapsed() time.Duration { return w.elapsed }

// Advance lets d pass, applying every keystroke that falls due
func (w *Writer) Advance(d time.Duration) {
	for d > 0 && w.phase != done {
		if d < w.wait {
			w.wait -= d
			w.elapsed += d
			return
		}
		d -= w.wait
		w.elapsed += w.wait
		w.step()
	}
	if d > 0 {
		w.elapsed += d
	}
}

// next jumps straight to the following keystroke
func (w *Writer) next() bool {
	if w.phase == done {
		return false
	}
	w.elapsed += w.wait
	w.step()
	return true
}

func (w *Writer) step() {
	current := w.words[w.word]

	switch w.phase {
	case typing:
		w.pos++
		if w.pos < len(current) {
			w.wait = w.cfg.TypeSpeed
			return
		}
		if w.word == len(w.words)-1 && !w.cfg.Loop {
			w.phase = done
			w.wait = 0
			return
		}
		w.phase = deleting
		w.wait = w.cfg.Pause + w.cfg.DeleteSpeed

	case deleting:
		w.pos--
		if w.pos > 0 {
			w.wait = w.cfg.DeleteSpeed
			return
		}
		w.word = (w.word + 1) % len(w.words)
		w.phase = typing
		w.wait = w.cfg.TypeSpeed
	}
}

// Frame is the text shown from At onwards
type Frame struct {
	At   time.Duration
	Text string
}

func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		At   int64  `json:"at"`
		Text string `json:"text"`
	}{f.At.Milliseconds(), f.Text})
}

// Timeline lists every frame of one cycle: through the last word when not
// looping, or back to the empty string before the first word when looping.
func Timeline(words []string, cfg Config) []Frame {
	w := New(words, cfg)
	frames := []Frame{{At: 0, Text: ""}}
	for w.next() {
		frames = append(frames, Frame{At: w.elapsed, Text: w.Text()})
		if w.word == 0 && w.pos == 0 {
			break
		}
	}
	return frames
}

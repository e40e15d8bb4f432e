// Package carousel holds the rotation state of the testimonial slider.
//
// A Carousel is a plain value driven by Advance; it owns no timers. The home
// page renders the slide it points at and the browser script replays the same
// rules client-side.
package carousel

import "time"

// DefaultInterval is how long a slide stays up under autoplay
const DefaultInterval = 6 * time.Second

// Direction of the last move, used to pick the slide-in animation
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Carousel rotates over n items
type Carousel struct {
	n         int
	interval  time.Duration
	index     int
	direction Direction
	autoplay  bool
	elapsed   time.Duration
}

// New starts at index 0 with autoplay on
func New(n int, interval time.Duration) *Carousel {
	if n < 0 {
		n = 0
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Carousel{n: n, interval: interval, direction: Forward, autoplay: true}
}

func (c *Carousel) Index() int              { return c.index }
func (c *Carousel) Len() int                { return c.n }
func (c *Carousel) Direction() Direction    { return c.direction }
func (c *Carousel) Autoplay() bool          { return c.autoplay }
func (c *Carousel) Interval() time.Duration { return c.interval }

// Advance lets d of wall time pass. Autoplay moves forward one slide per
// elapsed interval, wrapping at the end, and only while there is more than
// one slide.
func (c *Carousel) Advance(d time.Duration) {
	if !c.autoplay || c.n <= 1 || d <= 0 {
		return
	}
	c.elapsed += d
	for c.elapsed >= c.interval {
		c.elapsed -= c.interval
		c.index = (c.index + 1) % c.n
		c.direction = Forward
	}
}

// Next moves forward one slide and stops autoplay for good
func (c *Carousel) Next() {
	c.stop(Forward)
	if c.n > 0 {
		c.index = (c.index + 1) % c.n
	}
}

// Prev moves back one slide and stops autoplay for good
func (c *Carousel) Prev() {
	c.stop(Backward)
	if c.n > 0 {
		c.index = (c.index - 1 + c.n) % c.n
	}
}

// GoTo jumps to slide i (a dot indicator) and stops autoplay for good.
// Out of range indexes are ignored apart from stopping autoplay.
func (c *Carousel) GoTo(i int) {
	dir := Forward
	if i < c.index {
		dir = Backward
	}
	c.stop(dir)
	if i >= 0 && i < c.n {
		c.index = i
	}
}

// Resize adopts a reloaded item count; an index past the end resets to 0
func (c *Carousel) Resize(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	if c.index >= n {
		c.index = 0
	}
}

func (c *Carousel) stop(dir Direction) {
	c.autoplay = false
	c.elapsed = 0
	c.direction = dir
}

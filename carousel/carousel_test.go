package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const interval = 6 * time.Second

func TestAutoplayAdvancesEveryInterval(t *testing.T) {
	c := New(3, interval)
	assert.Equal(t, 0, c.Index())
	assert.True(t, c.Autoplay())

	c.Advance(interval - time.Millisecond)
	assert.Equal(t, 0, c.Index())

	c.Advance(time.Millisecond)
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, Forward, c.Direction())

	c.Advance(interval)
	assert.Equal(t, 2, c.Index())

	c.Advance(interval)
	assert.Equal(t, 0, c.Index(), "wraps after the last slide")

	c.Advance(2 * interval)
	assert.Equal(t, 2, c.Index())
}

func TestAutoplayNeedsMoreThanOneItem(t *testing.T) {
	for _, n := range []int{0, 1} {
		c := New(n, interval)
		c.Advance(10 * interval)
		assert.Equal(t, 0, c.Index())
	}
}

func TestNextDisablesAutoplayPermanently(t *testing.T) {
	c := New(3, interval)

	c.Next()
	assert.Equal(t, 1, c.Index())
	assert.False(t, c.Autoplay())
	assert.Equal(t, Forward, c.Direction())

	c.Advance(5 * interval)
	assert.Equal(t, 1, c.Index())

	c.Next()
	c.Next()
	assert.Equal(t, 0, c.Index())
}

func TestPrevWrapsBackward(t *testing.T) {
	c := New(4, interval)
	c.Prev()
	assert.Equal(t, 3, c.Index())
	assert.Equal(t, Backward, c.Direction())
	assert.False(t, c.Autoplay())
}

func TestGoTo(t *testing.T) {
	c := New(5, interval)

	c.GoTo(3)
	assert.Equal(t, 3, c.Index())
	assert.Equal(t, Forward, c.Direction())
	assert.False(t, c.Autoplay())

	c.GoTo(1)
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, Backward, c.Direction())

	c.GoTo(9)
	assert.Equal(t, 1, c.Index())
}

func TestResizeResetsOutOfRangeIndex(t *testing.T) {
	c := New(5, interval)
	c.GoTo(4)

	c.Resize(5)
	assert.Equal(t, 4, c.Index())

	c.Resize(3)
	assert.Equal(t, 0, c.Index())

	c.GoTo(2)
	c.Resize(0)
	assert.Equal(t, 0, c.Index())
	c.Next()
	assert.Equal(t, 0, c.Index())
}

func TestDefaultInterval(t *testing.T) {
	c := New(2, 0)
	assert.Equal(t, DefaultInterval, c.Interval())
}

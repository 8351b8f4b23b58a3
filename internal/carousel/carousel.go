// Package carousel rotates through slide images on a timer.
package carousel

import (
	"context"
	"errors"
	"sync"
	"time"
)

const DefaultInterval = 3 * time.Second

var (
	ErrAlreadyRunning = errors.New("carousel already running")
	ErrOutOfRange     = errors.New("slide index out of range")
)

// Carousel tracks the current slide. Manual moves are always allowed;
// automatic advance happens only between Start and Stop and not while paused.
type Carousel struct {
	mu       sync.Mutex
	slides   []string
	index    int
	paused   bool
	interval time.Duration
	onChange func(index int, slide string)

	reset  chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

func New(slides []string, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := make([]string, len(slides))
	copy(s, slides)
	return &Carousel{slides: s, interval: interval, reset: make(chan struct{}, 1)}
}

// OnChange registers fn to run after every automatic advance. It is called
// from the carousel goroutine.
func (c *Carousel) OnChange(fn func(index int, slide string)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slides)
}

// Current returns the shown slide, or -1 when there are none.
func (c *Carousel) Current() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.slides) == 0 {
		return -1, ""
	}
	return c.index, c.slides[c.index]
}

func (c *Carousel) Next() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step(1)
	return c.currentLocked()
}

func (c *Carousel) Prev() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step(-1)
	return c.currentLocked()
}

func (c *Carousel) GoTo(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.slides) {
		return ErrOutOfRange
	}
	c.index = i
	return nil
}

func (c *Carousel) step(delta int) {
	n := len(c.slides)
	if n == 0 {
		return
	}
	c.index = ((c.index+delta)%n + n) % n
}

func (c *Carousel) currentLocked() (int, string) {
	if len(c.slides) == 0 {
		return -1, ""
	}
	return c.index, c.slides[c.index]
}

// Pause stops automatic advance, like a pointer resting on the slide.
func (c *Carousel) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

// Resume restarts automatic advance with a full interval.
func (c *Carousel) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
	select {
	case c.reset <- struct{}{}:
	default:
	}
}

func (c *Carousel) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Start launches the advance goroutine. It stops when ctx is done or Stop
// is called.
func (c *Carousel) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
	return nil
}

// Stop ends the goroutine and waits for it to exit. It is safe to call more
// than once.
func (c *Carousel) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *Carousel) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer c.release(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.reset:
			ticker.Reset(c.interval)
		case <-ticker.C:
			c.tick()
		}
	}
}

// release forgets a goroutine that exited on its own so Start works again.
func (c *Carousel) release(done chan struct{}) {
	c.mu.Lock()
	if c.done == done {
		c.cancel()
		c.cancel, c.done = nil, nil
	}
	c.mu.Unlock()
}

func (c *Carousel) tick() {
	c.mu.Lock()
	if c.paused || len(c.slides) == 0 {
		c.mu.Unlock()
		return
	}
	c.step(1)
	i, s := c.currentLocked()
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(i, s)
	}
}

package content

import (
	"context"
	"sync"
	"time"
)

const DefaultSlideInterval = 5 * time.Second

// Slideshow cycles through hero images. Manual selection moves the index
// without touching the tick phase.
type Slideshow struct {
	images   []string
	interval time.Duration

	mu    sync.Mutex
	index int
}

// NewSlideshow falls back to the placeholder image when images is empty.
func NewSlideshow(images []string, interval time.Duration) *Slideshow {
	list := make([]string, 0, len(images))
	for _, img := range images {
		if img != "" {
			list = append(list, img)
		}
	}
	if len(list) == 0 {
		list = []string{PlaceholderHeroImage}
	}
	if interval <= 0 {
		interval = DefaultSlideInterval
	}
	return &Slideshow{images: list, interval: interval}
}

func (s *Slideshow) Images() []string { return append([]string{}, s.images...) }

func (s *Slideshow) Interval() time.Duration { return s.interval }

func (s *Slideshow) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Slideshow) Current() string {
	return s.images[s.Index()]
}

// Rotating reports whether a timer is needed at all.
func (s *Slideshow) Rotating() bool { return len(s.images) > 1 }

// Indicators reports whether manual selection controls are shown.
func (s *Slideshow) Indicators() bool { return len(s.images) > 1 }

func (s *Slideshow) Advance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = (s.index + 1) % len(s.images)
	return s.index
}

// Select jumps to i. Out-of-range values are ignored.
func (s *Slideshow) Select(i int) bool {
	if i < 0 || i >= len(s.images) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = i
	return true
}

// Run advances on every tick until ctx ends. It returns at once for a
// single image.
func (s *Slideshow) Run(ctx context.Context, ticks <-chan time.Time, onChange func(int)) {
	if !s.Rotating() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			idx := s.Advance()
			if onChange != nil {
				onChange(idx)
			}
		}
	}
}

// Start runs the slideshow on its own ticker.
func (s *Slideshow) Start(ctx context.Context, onChange func(int)) {
	if !s.Rotating() {
		return
	}
	t := time.NewTicker(s.interval)
	defer t.Stop()
	s.Run(ctx, t.C, onChange)
}

package content

import (
	"sync"
	"time"
)

// IDClock hands out millisecond timestamps that never repeat within the
// process, so rapid submits still get distinct local ids.
type IDClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDClock(now func() time.Time) *IDClock {
	if now == nil {
		now = time.Now
	}
	return &IDClock{now: now}
}

func (c *IDClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

package content

import (
	"sync"
	"time"

	"rapv/site/internal/models"
)

// scrollThreshold is the item count above which the ticker loops.
const scrollThreshold = 2

var NoNewsDetails = models.Text("No detailed description available.", "कोई विस्तृत विवरण उपलब्ध नहीं है।")

type NewsTicker struct {
	items []models.NewsItem
	now   time.Time

	mu       sync.Mutex
	selected *models.NewsItem
}

func NewNewsTicker(items []models.NewsItem, now time.Time) *NewsTicker {
	return &NewsTicker{items: append([]models.NewsItem{}, items...), now: now}
}

func (t *NewsTicker) Empty() bool { return len(t.items) == 0 }

func (t *NewsTicker) Scrolling() bool { return len(t.items) > scrollThreshold }

// Display returns the rendered sequence: three copies back to back when
// scrolling so the loop is seamless.
func (t *NewsTicker) Display() []models.NewsItem {
	if !t.Scrolling() {
		return append([]models.NewsItem{}, t.items...)
	}
	out := make([]models.NewsItem, 0, len(t.items)*3)
	for i := 0; i < 3; i++ {
		out = append(out, t.items...)
	}
	return out
}

// Open selects the item with id for the detail modal.
func (t *NewsTicker) Open(id int64) bool {
	for _, item := range t.items {
		if item.ID == id {
			item := item
			t.mu.Lock()
			t.selected = &item
			t.mu.Unlock()
			return true
		}
	}
	return false
}

func (t *NewsTicker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = nil
}

func (t *NewsTicker) Selected() (models.NewsItem, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == nil {
		return models.NewsItem{}, false
	}
	return *t.selected, true
}

func (t *NewsTicker) IsNew(item models.NewsItem) bool {
	return models.IsRecent(item, t.now)
}

// Body returns the modal body text, falling back to a fixed message when
// the item has no content.
func Body(item models.NewsItem) models.BilingualText {
	if item.Content == nil || item.Content.IsZero() {
		return NoNewsDetails
	}
	return *item.Content
}

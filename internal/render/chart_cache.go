package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"rapv/site/internal/models"
)

const defaultMaxCharts = 32

// chartKey names one rendered chart page: what it plots, in which language,
// and a digest of the results it was drawn from.
type chartKey struct {
	kind   string
	lang   models.Language
	digest string
}

func (k chartKey) String() string { return k.kind + ":" + string(k.lang) + ":" + k.digest }

func resultsKey(kind string, lang models.Language, results []models.YearResult) chartKey {
	return chartKey{kind: kind, lang: lang, digest: resultsDigest(results)}
}

// resultsDigest changes whenever any year, count or percentage changes, so an
// edited result set never reuses a stale chart.
func resultsDigest(results []models.YearResult) string {
	b, err := json.Marshal(results)
	if err != nil {
		return "invalid"
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:12])
}

// ChartCache keeps rendered chart pages until they expire. Concurrent misses
// on the same key draw the chart once.
type ChartCache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	group singleflight.Group
	mu    sync.Mutex
	pages map[chartKey]chartPage
}

type chartPage struct {
	html    string
	expires time.Time
}

// NewChartCache returns a cache holding pages for ttl. A non-positive ttl
// disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:        ttl,
		maxEntries: defaultMaxCharts,
		now:        time.Now,
		pages:      make(map[chartKey]chartPage),
	}
}

// Page returns the cached page for key or draws, stores and returns a new one.
// Draw errors are not cached.
func (c *ChartCache) Page(key chartKey, draw func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return draw()
	}
	if html, ok := c.lookup(key); ok {
		return html, nil
	}
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		html, err := draw()
		if err != nil {
			return "", err
		}
		c.store(key, html)
		return html, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len reports how many pages are held, expired ones included until the next
// store sweeps them.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}

func (c *ChartCache) lookup(key chartKey) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	page, ok := c.pages[key]
	if !ok {
		return "", false
	}
	if !c.now().Before(page.expires) {
		delete(c.pages, key)
		return "", false
	}
	return page.html, true
}

// store sweeps expired pages before adding one. When the cache is still full
// the page nearest to expiry is dropped.
func (c *ChartCache) store(key chartKey, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, page := range c.pages {
		if !now.Before(page.expires) {
			delete(c.pages, k)
		}
	}
	if _, exists := c.pages[key]; !exists && c.maxEntries > 0 && len(c.pages) >= c.maxEntries {
		var (
			oldest    chartKey
			oldestExp time.Time
			found     bool
		)
		for k, page := range c.pages {
			if !found || page.expires.Before(oldestExp) {
				oldest, oldestExp, found = k, page.expires, true
			}
		}
		delete(c.pages, oldest)
	}
	c.pages[key] = chartPage{html: html, expires: now.Add(c.ttl)}
}

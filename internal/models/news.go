package models

import "time"

const (
	NewsDateLayout = "2006-01-02"
	recentNewsDays = 15
)

// IsRecent reports whether the item is at most 15 calendar days old at now.
// Items with unparseable dates are never recent.
func IsRecent(item NewsItem, now time.Time) bool {
	published, err := time.ParseInLocation(NewsDateLayout, item.Date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !today.After(published.AddDate(0, 0, recentNewsDays))
}

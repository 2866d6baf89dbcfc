package content

import (
	"time"

	"go.uber.org/zap"

	"rapv/site/internal/models"
)

const (
	EntityEvents     = "events"
	EntityStaff      = "staff"
	EntityNews       = "news"
	EntityResults    = "results"
	EntityFacilities = "facilities"
)

// Repositories holds one remote table per editable entity. Leave a field
// nil to keep that entity local-only.
type Repositories struct {
	Events     Repository[models.EventItem, int64]
	Staff      Repository[models.StaffMember, int64]
	News       Repository[models.NewsItem, int64]
	Results    Repository[models.YearResult, string]
	Facilities Repository[models.Facility, int64]
}

type Editors struct {
	Events     *Editor[models.EventItem, int64]
	Staff      *Editor[models.StaffMember, int64]
	News       *Editor[models.NewsItem, int64]
	Results    *Editor[models.YearResult, string]
	Facilities *Editor[models.Facility, int64]
}

func NewEditors(repos Repositories, ids *IDClock, timeout time.Duration, log *zap.Logger) Editors {
	if ids == nil {
		ids = NewIDClock(nil)
	}
	return Editors{
		Events: NewEditor(EditorOptions[models.EventItem, int64]{
			Entity:  EntityEvents,
			Key:     func(item models.EventItem) int64 { return item.ID },
			SetKey:  func(item *models.EventItem, id int64) { item.ID = id },
			NewKey:  ids.Next,
			Repo:    repos.Events,
			Timeout: timeout,
			Logger:  log,
		}),
		Staff: NewEditor(EditorOptions[models.StaffMember, int64]{
			Entity:  EntityStaff,
			Key:     func(item models.StaffMember) int64 { return item.ID },
			SetKey:  func(item *models.StaffMember, id int64) { item.ID = id },
			NewKey:  ids.Next,
			Repo:    repos.Staff,
			Timeout: timeout,
			Logger:  log,
		}),
		News: NewEditor(EditorOptions[models.NewsItem, int64]{
			Entity:  EntityNews,
			Key:     func(item models.NewsItem) int64 { return item.ID },
			SetKey:  func(item *models.NewsItem, id int64) { item.ID = id },
			NewKey:  ids.Next,
			Prepare: prepareNews,
			Repo:    repos.News,
			Timeout: timeout,
			Logger:  log,
		}),
		Results: NewEditor(EditorOptions[models.YearResult, string]{
			Entity:  EntityResults,
			Key:     func(item models.YearResult) string { return item.Year },
			SetKey:  func(item *models.YearResult, year string) { item.Year = year },
			Prepare: func(item *models.YearResult) { item.Recompute() },
			Less:    func(a, b models.YearResult) bool { return a.Year < b.Year },
			Repo:    repos.Results,
			Timeout: timeout,
			Logger:  log,
		}),
		Facilities: NewEditor(EditorOptions[models.Facility, int64]{
			Entity:  EntityFacilities,
			Key:     func(item models.Facility) int64 { return item.ID },
			SetKey:  func(item *models.Facility, id int64) { item.ID = id },
			NewKey:  ids.Next,
			Repo:    repos.Facilities,
			Timeout: timeout,
			Logger:  log,
		}),
	}
}

// prepareNews drops an all-blank body so it is stored as absent.
func prepareNews(item *models.NewsItem) {
	if item.Content != nil && item.Content.IsZero() {
		item.Content = nil
	}
}

package models

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

type SiteConfig struct {
	SchoolName BilingualText `json:"school_name"`
	SubTitle   BilingualText `json:"sub_title"`
	Address    BilingualText `json:"address"`
	Phone      string        `json:"phone"`
	Email      string        `json:"email"`
	HeroImages []string      `json:"hero_images"`
	AboutImage string        `json:"about_image"`
	Logo       string        `json:"logo,omitempty"`
}

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type EventItem struct {
	ID    int64         `json:"id"`
	Title BilingualText `json:"title" validate:"required"`
	Desc  BilingualText `json:"desc" validate:"required"`
	Img   string        `json:"img"`
}

type StaffMember struct {
	ID          int64         `json:"id"`
	Name        BilingualText `json:"name" validate:"required"`
	Designation BilingualText `json:"designation" validate:"required"`
	Subject     BilingualText `json:"subject" validate:"required"`
	Photo       string        `json:"photo,omitempty"`
}

type NewsItem struct {
	ID      int64          `json:"id"`
	Text    BilingualText  `json:"text" validate:"required"`
	Content *BilingualText `json:"content,omitempty" validate:"omitempty"`
	Image   string         `json:"image,omitempty"`
	Date    string         `json:"date" validate:"required,datetime=2006-01-02"`
	Link    string         `json:"link,omitempty" validate:"omitempty,url"`
}

type Facility struct {
	ID          int64         `json:"id"`
	Title       BilingualText `json:"title" validate:"required"`
	Description BilingualText `json:"description" validate:"required"`
	Icon        IconID        `json:"icon" validate:"omitempty,icon"`
	Image       string        `json:"image"`
}

type FacultyStream struct {
	Name     BilingualText   `json:"name"`
	Subjects []BilingualText `json:"subjects"`
}

type AuditEvent struct {
	ID        string          `json:"id"`
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Snapshot is a read-only copy of everything the public site shows.
type Snapshot struct {
	Config     SiteConfig    `json:"config"`
	Events     []EventItem   `json:"events"`
	Results    []YearResult  `json:"results"`
	Staff      []StaffMember `json:"staff"`
	News       []NewsItem    `json:"news"`
	Facilities []Facility    `json:"facilities"`
	LoadedAt   time.Time     `json:"loaded_at"`
}

func (s Snapshot) NewsByID(id int64) (NewsItem, bool) {
	for _, item := range s.News {
		if item.ID == id {
			return item, true
		}
	}
	return NewsItem{}, false
}

func (s Snapshot) ResultForYear(year string) (YearResult, bool) {
	for _, item := range s.Results {
		if item.Year == year {
			return item, true
		}
	}
	return YearResult{}, false
}

// LatestResult returns the last entry of the year-sorted results.
func (s Snapshot) LatestResult() (YearResult, bool) {
	if len(s.Results) == 0 {
		return YearResult{}, false
	}
	return s.Results[len(s.Results)-1], true
}

package render

import (
	"time"

	"rapv/site/internal/content"
	"rapv/site/internal/models"
)

type PublicInput struct {
	Snapshot      models.Snapshot
	Lang          models.Language
	Slide         int
	NewsID        int64
	Year          string
	Now           time.Time
	SlideInterval time.Duration
	Authenticated bool
	ChartHTML     string
}

type PublicPage struct {
	Lang      models.Language
	OtherLang models.Language
	L         map[string]string

	SchoolName      string
	SchoolNameOther string
	SubTitle        string
	Address         string
	Phone           string
	Email           string
	Logo            string
	AboutImage      string
	Intro           string
	Authenticated   bool
	Year            int

	Hero       HeroView
	News       NewsView
	Facilities []FacilityView
	Staff      []StaffView
	Streams    []StreamView
	Results    ResultsView
	Events     []EventView
}

type HeroView struct {
	Images     []string
	Index      int
	Current    string
	Indicators bool
	Rotating   bool
	IntervalMS int64
}

type NewsView struct {
	Show      bool
	Scrolling bool
	Items     []NewsEntry
	Modal     *NewsModal
}

type NewsEntry struct {
	ID       int64
	Headline string
	Date     string
	Image    string
	IsNew    bool
}

type NewsModal struct {
	Headline string
	Body     string
	Date     string
	Image    string
	Link     string
}

type FacilityView struct {
	Title       string
	Description string
	Glyph       string
	Image       string
}

type StaffView struct {
	Name        string
	Designation string
	Subject     string
	Photo       string
}

type StreamView struct {
	Name     string
	Subjects []string
}

type ResultsView struct {
	ChartHTML string
	Years     []YearTab
	Selected  string
	Class10   ClassView
	Class12   ClassView
}

type YearTab struct {
	Year     string
	Short    string
	Selected bool
}

type ClassView struct {
	Total   int
	Passed  int
	Failed  int
	Rate    string
	Toppers []models.Topper
}

type EventView struct {
	Title string
	Desc  string
	Image string
}

// BuildPublicPage resolves a snapshot into the strings shown for lang.
func BuildPublicPage(in PublicInput) PublicPage {
	lang := in.Lang
	other := lang.Other()
	resolve := func(text models.BilingualText) string { return models.Resolve(text, lang, other) }
	snap := in.Snapshot
	cfg := snap.Config
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	page := PublicPage{
		Lang:            lang,
		OtherLang:       other,
		L:               labelsFor(lang),
		SchoolName:      resolve(cfg.SchoolName),
		SchoolNameOther: models.Resolve(cfg.SchoolName, other, lang),
		SubTitle:        resolve(cfg.SubTitle),
		Address:         resolve(cfg.Address),
		Phone:           cfg.Phone,
		Email:           cfg.Email,
		Logo:            cfg.Logo,
		AboutImage:      cfg.AboutImage,
		Intro:           resolve(introText),
		Authenticated:   in.Authenticated,
		Year:            now.Year(),
	}

	show := content.NewSlideshow(cfg.HeroImages, in.SlideInterval)
	show.Select(in.Slide)
	page.Hero = HeroView{
		Images:     show.Images(),
		Index:      show.Index(),
		Current:    show.Current(),
		Indicators: show.Indicators(),
		Rotating:   show.Rotating(),
		IntervalMS: show.Interval().Milliseconds(),
	}

	page.News = buildNews(snap.News, in.NewsID, now, resolve)

	for i, item := range snap.Facilities {
		page.Facilities = append(page.Facilities, FacilityView{
			Title:       resolve(item.Title),
			Description: resolve(item.Description),
			Glyph:       Glyph(item.Icon, i),
			Image:       item.Image,
		})
	}
	for _, member := range snap.Staff {
		page.Staff = append(page.Staff, StaffView{
			Name:        resolve(member.Name),
			Designation: resolve(member.Designation),
			Subject:     resolve(member.Subject),
			Photo:       member.Photo,
		})
	}
	for _, stream := range FacultyStreams {
		view := StreamView{Name: resolve(stream.Name)}
		for _, subject := range stream.Subjects {
			view.Subjects = append(view.Subjects, resolve(subject))
		}
		page.Streams = append(page.Streams, view)
	}
	page.Results = buildResults(snap, in.Year, in.ChartHTML)
	for _, event := range snap.Events {
		page.Events = append(page.Events, EventView{
			Title: resolve(event.Title),
			Desc:  resolve(event.Desc),
			Image: event.Img,
		})
	}
	return page
}

func buildNews(items []models.NewsItem, openID int64, now time.Time, resolve func(models.BilingualText) string) NewsView {
	ticker := content.NewNewsTicker(items, now)
	view := NewsView{Show: !ticker.Empty(), Scrolling: ticker.Scrolling()}
	for _, item := range ticker.Display() {
		view.Items = append(view.Items, NewsEntry{
			ID:       item.ID,
			Headline: resolve(item.Text),
			Date:     item.Date,
			Image:    item.Image,
			IsNew:    ticker.IsNew(item),
		})
	}
	if openID != 0 && ticker.Open(openID) {
		item, _ := ticker.Selected()
		view.Modal = &NewsModal{
			Headline: resolve(item.Text),
			Body:     resolve(content.Body(item)),
			Date:     item.Date,
			Image:    item.Image,
			Link:     item.Link,
		}
	}
	return view
}

func buildResults(snap models.Snapshot, year, chartHTML string) ResultsView {
	view := ResultsView{ChartHTML: chartHTML}
	selected, ok := snap.ResultForYear(year)
	if !ok {
		selected, ok = snap.LatestResult()
	}
	if !ok {
		return view
	}
	view.Selected = selected.Year
	view.Class10 = classView(selected.Class10)
	view.Class12 = classView(selected.Class12)
	for _, item := range snap.Results {
		view.Years = append(view.Years, YearTab{
			Year:     item.Year,
			Short:    ShortYear(item.Year),
			Selected: item.Year == selected.Year,
		})
	}
	return view
}

func classView(result models.ClassResult) ClassView {
	return ClassView{
		Total:   result.TotalStudents,
		Passed:  result.Passed,
		Failed:  result.Failed,
		Rate:    result.PassPercentage.Display(),
		Toppers: result.Toppers,
	}
}

func labelsFor(lang models.Language) map[string]string {
	out := make(map[string]string, len(labels))
	for key := range labels {
		out[key] = Label(key, lang)
	}
	return out
}

type LoginPage struct {
	Lang     models.Language
	L        map[string]string
	Mode     string
	Error    string
	DevActor string
}

func BuildLoginPage(lang models.Language, mode, errMsg, devActor string) LoginPage {
	return LoginPage{Lang: lang, L: labelsFor(lang), Mode: mode, Error: errMsg, DevActor: devActor}
}

type AdminPage struct {
	Lang              models.Language
	L                 map[string]string
	Actor             string
	Configured        bool
	StorageConfigured bool
	SchoolName        string
	Entities          []AdminSection
	Snapshot          models.Snapshot
}

type AdminSection struct {
	Entity string
	Title  string
	Count  int
}

func BuildAdminPage(snap models.Snapshot, lang models.Language, actor string, configured, storage bool) AdminPage {
	resolve := func(text models.BilingualText) string { return models.Resolve(text, lang, lang.Other()) }
	return AdminPage{
		Lang:              lang,
		L:                 labelsFor(lang),
		Actor:             actor,
		Configured:        configured,
		StorageConfigured: storage,
		SchoolName:        resolve(snap.Config.SchoolName),
		Snapshot:          snap,
		Entities: []AdminSection{
			{Entity: content.EntityEvents, Title: Label("events", lang), Count: len(snap.Events)},
			{Entity: content.EntityResults, Title: Label("results", lang), Count: len(snap.Results)},
			{Entity: content.EntityStaff, Title: Label("staff", lang), Count: len(snap.Staff)},
			{Entity: content.EntityNews, Title: Label("news", lang), Count: len(snap.News)},
			{Entity: content.EntityFacilities, Title: Label("facilities", lang), Count: len(snap.Facilities)},
		},
	}
}

package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapv/site/internal/content"
	"rapv/site/internal/models"
)

func TestLabelFallsBackToKeyAndOtherLanguage(t *testing.T) {
	assert.Equal(t, "Results", Label("results", models.LangEnglish))
	assert.Equal(t, "परिणाम", Label("results", models.LangHindi))
	assert.Equal(t, "missingKey", Label("missingKey", models.LangHindi))

	labels["halfOnly"] = bt("Only English", "")
	defer delete(labels, "halfOnly")
	assert.Equal(t, "Only English", Label("halfOnly", models.LangHindi))
}

func TestGlyphUsesPositionForUnknownIcons(t *testing.T) {
	assert.Equal(t, glyphs[models.IconBook], Glyph(models.IconBook, 5))
	assert.Equal(t, glyphs[models.IconFlask], Glyph("rocket", 2))
	assert.Equal(t, glyphs[models.IconMonitor], Glyph("", 8))
}

func TestShortYear(t *testing.T) {
	assert.Equal(t, "'12-13", ShortYear("2012-13"))
	assert.Equal(t, "'23-24", ShortYear("2023-24"))
	assert.Equal(t, "1999-00", ShortYear("1999-00"))
}

func TestPassSeriesLeavesGapForNA(t *testing.T) {
	results := []models.YearResult{
		{Year: "2012-13", Class12: models.ClassResult{PassPercentage: models.Percent(90)}},
		{Year: "2013-14", Class12: models.ClassResult{PassPercentage: models.NotAvailable()}},
		{Year: "2014-15", Class12: models.ClassResult{PassPercentage: models.Percent(95.5)}},
	}
	series := passSeries(results, func(r models.YearResult) models.ClassResult { return r.Class12 })
	require.Len(t, series, 3)
	assert.Equal(t, opts.LineData{Name: "2012-13", Value: 90.0}, series[0])
	assert.Equal(t, naValue, series[1].Value)
	assert.Equal(t, 95.5, series[2].Value)
}

func TestResultsChartCachesByContent(t *testing.T) {
	results := []models.YearResult{
		{Year: "2022-23", Class10: models.ClassResult{PassPercentage: models.Percent(98)}},
	}
	chart := NewResultsChart(NewChartCache(time.Minute))

	first, err := chart.HTML(results, models.LangEnglish)
	require.NoError(t, err)
	assert.Contains(t, first, "results-trend-en")
	assert.Contains(t, first, "22-23")

	second, err := chart.HTML(results, models.LangEnglish)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	hindi, err := chart.HTML(results, models.LangHindi)
	require.NoError(t, err)
	assert.Contains(t, hindi, "results-trend-hi")

	empty, err := chart.HTML(nil, models.LangEnglish)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(time.Minute)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	calls := 0
	draw := func() (string, error) {
		calls++
		return "chart", nil
	}
	key := chartKey{kind: "pass-trend", lang: models.LangEnglish, digest: "a"}
	_, _ = cache.Page(key, draw)
	_, _ = cache.Page(key, draw)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, _ = cache.Page(key, draw)
	assert.Equal(t, 2, calls)

	_, err := cache.Page(chartKey{kind: "bad"}, func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, 1, cache.Len(), "failed draws are not stored")

	var disabled *ChartCache
	html, err := disabled.Page(key, draw)
	require.NoError(t, err)
	assert.Equal(t, "chart", html)
}

func TestChartCacheSweepsExpiredPagesOnStore(t *testing.T) {
	cache := NewChartCache(time.Minute)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	draw := func() (string, error) { return "chart", nil }

	for _, digest := range []string{"a", "b", "c"} {
		_, err := cache.Page(chartKey{kind: "pass-trend", digest: digest}, draw)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, cache.Len())

	now = now.Add(2 * time.Minute)
	_, err := cache.Page(chartKey{kind: "pass-trend", digest: "d"}, draw)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len(), "expired pages are dropped when a new one is stored")
}

func TestChartCacheBoundedWhenNothingExpires(t *testing.T) {
	cache := NewChartCache(time.Hour)
	cache.maxEntries = 2
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	draw := func() (string, error) { return "chart", nil }

	first := chartKey{kind: "pass-trend", digest: "first"}
	_, _ = cache.Page(first, draw)
	for _, digest := range []string{"second", "third", "fourth"} {
		now = now.Add(time.Second)
		_, _ = cache.Page(chartKey{kind: "pass-trend", digest: digest}, draw)
	}
	assert.Equal(t, 2, cache.Len())

	calls := 0
	_, _ = cache.Page(first, func() (string, error) {
		calls++
		return "chart", nil
	})
	assert.Equal(t, 1, calls, "the oldest page was evicted")
}

func TestResultsKeyTracksContent(t *testing.T) {
	a := []models.YearResult{{Year: "2022-23", Class10: models.ClassResult{PassPercentage: models.Percent(98)}}}
	b := []models.YearResult{{Year: "2022-23", Class10: models.ClassResult{PassPercentage: models.Percent(97.5)}}}

	assert.Equal(t, resultsKey("pass-trend", models.LangEnglish, a), resultsKey("pass-trend", models.LangEnglish, a))
	assert.NotEqual(t, resultsKey("pass-trend", models.LangEnglish, a), resultsKey("pass-trend", models.LangEnglish, b))
	assert.NotEqual(t, resultsKey("pass-trend", models.LangEnglish, a), resultsKey("pass-trend", models.LangHindi, a))
}

func sampleSnapshot(t *testing.T) models.Snapshot {
	t.Helper()
	seed, err := content.DefaultSeed()
	require.NoError(t, err)
	return models.Snapshot{
		Config:     seed.SiteConfig(content.DefaultSiteConfig()),
		Events:     seed.Events,
		Results:    seed.Results,
		Staff:      seed.Staff,
		News:       seed.News,
		Facilities: seed.Facilities,
	}
}

func TestBuildPublicPageResolvesLanguage(t *testing.T) {
	snap := sampleSnapshot(t)
	page := BuildPublicPage(PublicInput{Snapshot: snap, Lang: models.LangHindi, Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})

	assert.Equal(t, models.LangEnglish, page.OtherLang)
	assert.Equal(t, snap.Config.SchoolName.Hi, page.SchoolName)
	assert.Equal(t, snap.Config.SchoolName.En, page.SchoolNameOther)
	assert.Equal(t, "English", page.L["switchLanguage"])
	assert.Equal(t, 2024, page.Year)
	require.Len(t, page.Facilities, len(snap.Facilities))
	assert.NotEmpty(t, page.Facilities[0].Glyph)
	require.Len(t, page.Streams, 2)
	assert.Equal(t, "कला संकाय", page.Streams[0].Name)
}

func TestBuildPublicPageResultsDefaultToLatestYear(t *testing.T) {
	snap := sampleSnapshot(t)
	latest, ok := snap.LatestResult()
	require.True(t, ok)

	page := BuildPublicPage(PublicInput{Snapshot: snap, Lang: models.LangEnglish})
	assert.Equal(t, latest.Year, page.Results.Selected)
	require.Len(t, page.Results.Years, len(snap.Results))
	assert.True(t, page.Results.Years[len(page.Results.Years)-1].Selected)

	page = BuildPublicPage(PublicInput{Snapshot: snap, Lang: models.LangEnglish, Year: "2013-14"})
	assert.Equal(t, "2013-14", page.Results.Selected)
	assert.Equal(t, "N/A", page.Results.Class12.Rate)

	page = BuildPublicPage(PublicInput{Snapshot: snap, Lang: models.LangEnglish, Year: "1990-91"})
	assert.Equal(t, latest.Year, page.Results.Selected)

	snap.Results = nil
	page = BuildPublicPage(PublicInput{Snapshot: snap, Lang: models.LangEnglish})
	assert.Empty(t, page.Results.Years)
}

func TestBuildPublicPageNewsModal(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	snap := models.Snapshot{News: []models.NewsItem{
		{ID: 1, Text: bt("Admissions open", "प्रवेश प्रारंभ"), Date: "2024-05-10", Link: "https://example.org"},
		{ID: 2, Text: bt("Old notice", "पुरानी सूचना"), Date: "2024-01-01"},
	}}

	page := BuildPublicPage(PublicInput{Snapshot: snap, Lang: models.LangEnglish, Now: now, NewsID: 1})
	assert.True(t, page.News.Show)
	assert.False(t, page.News.Scrolling)
	require.Len(t, page.News.Items, 2)
	assert.True(t, page.News.Items[0].IsNew)
	assert.False(t, page.News.Items[1].IsNew)
	require.NotNil(t, page.News.Modal)
	assert.Equal(t, "Admissions open", page.News.Modal.Headline)
	assert.Equal(t, content.Body(snap.News[0]).En, page.News.Modal.Body)

	page = BuildPublicPage(PublicInput{Snapshot: snap, Lang: models.LangEnglish, Now: now, NewsID: 99})
	assert.Nil(t, page.News.Modal)
}

func TestBuildPublicPageHero(t *testing.T) {
	snap := models.Snapshot{Config: models.SiteConfig{HeroImages: []string{"a.jpg", "b.jpg"}}}
	page := BuildPublicPage(PublicInput{Snapshot: snap, Lang: models.LangEnglish, Slide: 1})
	assert.Equal(t, "b.jpg", page.Hero.Current)
	assert.True(t, page.Hero.Rotating)
	assert.Equal(t, content.DefaultSlideInterval.Milliseconds(), page.Hero.IntervalMS)

	page = BuildPublicPage(PublicInput{Snapshot: snap, Lang: models.LangEnglish, Slide: 7})
	assert.Equal(t, 0, page.Hero.Index)
}

func TestTemplateRendererPages(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	snap := sampleSnapshot(t)

	page := BuildPublicPage(PublicInput{
		Snapshot:  snap,
		Lang:      models.LangEnglish,
		ChartHTML: `<html><script>var x = "a<b";</script></html>`,
	})
	var buf bytes.Buffer
	html, err := renderer.Render(PagePublic, page, &buf)
	require.NoError(t, err)
	assert.Equal(t, html, buf.String())
	assert.Contains(t, html, snap.Config.SchoolName.En)
	assert.Contains(t, html, `srcdoc="&lt;html&gt;`)
	assert.Contains(t, html, `href="/login?lang=en"`)

	html, err = renderer.Render(PageLogin, BuildLoginPage(models.LangHindi, "password", "bad credentials", ""))
	require.NoError(t, err)
	assert.Contains(t, html, `name="password"`)
	assert.Contains(t, html, "bad credentials")

	html, err = renderer.Render(PageAdmin, BuildAdminPage(snap, models.LangEnglish, "admin", false, false))
	require.NoError(t, err)
	assert.Contains(t, html, "Database not configured")
	assert.Contains(t, html, `data-entity="results"`)
	assert.True(t, strings.Contains(html, "Storage not configured"))

	_, err = renderer.Render("missing.html", nil)
	assert.Error(t, err)
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"rapv/site/internal/content"
	"rapv/site/internal/httpctx"
	"rapv/site/internal/models"
	"rapv/site/internal/render"
)

// PagesHandler serves the server-rendered public, login and admin views.
type PagesHandler struct {
	Site              *content.Site
	Renderer          render.Renderer
	Chart             *render.ResultsChart
	AuthMode          string
	DevActor          string
	StorageConfigured bool
	SlideInterval     time.Duration
	Now               func() time.Time
	Log               *zap.Logger
}

func (h PagesHandler) Public(w http.ResponseWriter, r *http.Request) {
	lang := httpctx.LanguageFromContext(r.Context())
	snap := h.Site.Snapshot()
	query := r.URL.Query()

	chartHTML, err := h.Chart.HTML(snap.Results, lang)
	if err != nil {
		h.Log.Warn("render results chart", zap.Error(err))
	}
	slide, _ := strconv.Atoi(query.Get("slide"))
	newsID, _ := strconv.ParseInt(query.Get("news"), 10, 64)

	page := render.BuildPublicPage(render.PublicInput{
		Snapshot:      snap,
		Lang:          lang,
		Slide:         slide,
		NewsID:        newsID,
		Year:          query.Get("year"),
		Now:           h.now(),
		SlideInterval: h.SlideInterval,
		Authenticated: httpctx.ClaimsFromContext(r.Context()) != nil,
		ChartHTML:     chartHTML,
	})
	h.render(w, render.PagePublic, page)
}

func (h PagesHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := httpctx.LanguageFromContext(r.Context())
	view := content.NewViewSwitch(httpctx.ClaimsFromContext(r.Context()) != nil)
	if view.RequestLogin() == content.ViewAdmin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	var message string
	if r.URL.Query().Get("error") != "" {
		message = render.Label("invalidLogin", lang)
	}
	h.render(w, render.PageLogin, render.BuildLoginPage(lang, h.AuthMode, message, h.DevActor))
}

func (h PagesHandler) Admin(w http.ResponseWriter, r *http.Request) {
	claims := httpctx.ClaimsFromContext(r.Context())
	view := content.NewViewSwitch(claims != nil)
	if view.RequestAdmin() != content.ViewAdmin {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !hasRole(claims, models.RoleAdmin) {
		writeError(w, http.StatusForbidden, "admin required")
		return
	}
	lang := httpctx.LanguageFromContext(r.Context())
	page := render.BuildAdminPage(h.Site.Snapshot(), lang, claims.Actor(), h.Site.Configured(), h.StorageConfigured)
	h.render(w, render.PageAdmin, page)
}

// SetLanguage remembers the visitor's language choice.
func (h PagesHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := models.ParseLanguage(r.PathValue("lang"))
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookie,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/?lang="+string(lang), http.StatusSeeOther)
}

func (h PagesHandler) SiteJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Site.Snapshot())
}

type newsResponse struct {
	models.NewsItem
	Body  models.BilingualText `json:"body"`
	IsNew bool                 `json:"is_new"`
}

func (h PagesHandler) News(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	item, ok := h.Site.Snapshot().NewsByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "news item not found")
		return
	}
	writeJSON(w, http.StatusOK, newsResponse{
		NewsItem: item,
		Body:     content.Body(item),
		IsNew:    models.IsRecent(item, h.now()),
	})
}

// HeroStream pushes slide changes as server-sent events until the client
// goes away. A single hero image yields one event and no timer.
func (h PagesHandler) HeroStream(w http.ResponseWriter, r *http.Request) {
	show := content.NewSlideshow(h.Site.Config().HeroImages, h.SlideInterval)
	if start, err := strconv.Atoi(r.URL.Query().Get("start")); err == nil {
		show.Select(start)
	}

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(idx int) {
		fmt.Fprintf(w, "event: slide\ndata: %d\n\n", idx)
		_ = rc.Flush()
	}
	send(show.Index())
	show.Start(r.Context(), send)
}

func (h PagesHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := h.Renderer.Render(name, data, w); err != nil {
		h.Log.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func (h PagesHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

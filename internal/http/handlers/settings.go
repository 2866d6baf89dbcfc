package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"rapv/site/internal/content"
	"rapv/site/internal/models"
)

type SettingsHandler struct {
	Site *content.Site
	Log  *zap.Logger
}

func (h SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Site.Config())
}

func (h SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.SiteConfig
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	result, err := h.Site.SaveConfig(r.Context(), req)
	if err != nil {
		writeContentError(w, h.Log, err)
		return
	}
	auditLog(r.Context(), "settings.updated", actorFrom(r), map[string]interface{}{
		"school_name": result.Record.SchoolName.En,
		"hero_images": len(result.Record.HeroImages),
	})
	writeMutation(w, http.StatusOK, result.Record, result.LocalOnly)
}

type ReloadHandler struct {
	Site *content.Site
	Log  *zap.Logger
}

// Reload re-reads every table; tables that fail keep their current rows.
func (h ReloadHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.Site.Refresh(r.Context()); err != nil {
		writeContentError(w, h.Log, err)
		return
	}
	snap := h.Site.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loaded_at":  snap.LoadedAt,
		"configured": h.Site.Configured(),
	})
}

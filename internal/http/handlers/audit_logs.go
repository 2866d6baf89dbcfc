package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"rapv/site/internal/httpctx"
	"rapv/site/internal/models"
)

type AuditLogsHandler struct {
	Store AuditStore
	Log   *zap.Logger
}

func (h AuditLogsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := httpctx.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !hasRole(claims, models.RoleAdmin) {
		writeError(w, http.StatusForbidden, "admin required")
		return
	}
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "database not configured")
		return
	}
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	items, err := h.Store.ListAuditEvents(r.Context(), limit)
	if err != nil {
		if h.Log != nil {
			h.Log.Warn("load audit logs", zap.Error(err))
		}
		writeError(w, http.StatusInternalServerError, "failed to load audit logs")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

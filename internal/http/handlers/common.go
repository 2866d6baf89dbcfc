package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"rapv/site/internal/auth"
	"rapv/site/internal/content"
	"rapv/site/internal/httpctx"
	"rapv/site/internal/models"
	"rapv/site/internal/observability"
)

const (
	SessionCookie  = "session"
	LanguageCookie = "lang"

	localOnlyWarning = "database not configured: change kept in memory only"
	maxJSONBody      = 1 << 20
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBody))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// writeContentError maps content errors onto HTTP statuses.
func writeContentError(w http.ResponseWriter, log *zap.Logger, err error) {
	var remote *content.RemoteError
	switch {
	case errors.Is(err, content.ErrInvalid), errors.Is(err, content.ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, content.ErrDuplicateKey), errors.Is(err, content.ErrNameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, content.ErrConfirmationRequired):
		writeError(w, http.StatusPreconditionRequired, err.Error())
	case errors.Is(err, content.ErrStorageNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &remote):
		writeError(w, http.StatusBadGateway, "remote write failed, change rolled back: "+remote.Err.Error())
	default:
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		observability.CaptureErr(err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type writeResponse struct {
	Record  any    `json:"record,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// writeMutation reports a successful write, flagging writes that never
// reached the database.
func writeMutation(w http.ResponseWriter, status int, record any, localOnly bool) {
	resp := writeResponse{Record: record}
	if localOnly {
		resp.Warning = localOnlyWarning
	}
	writeJSON(w, status, resp)
}

func bearerToken(value string) string {
	const prefix = "Bearer "
	if len(value) <= len(prefix) || value[:len(prefix)] != prefix {
		return ""
	}
	return value[len(prefix):]
}

// RequestToken returns the bearer token or, failing that, the session cookie.
func RequestToken(r *http.Request) string {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func hasRole(claims *auth.Claims, roles ...models.Role) bool {
	if claims == nil {
		return false
	}
	for _, role := range roles {
		if strings.EqualFold(claims.Role, string(role)) {
			return true
		}
	}
	return false
}

func actorFrom(r *http.Request) string {
	if claims := httpctx.ClaimsFromContext(r.Context()); claims != nil {
		return claims.Actor()
	}
	return ""
}

func confirmed(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("confirm")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

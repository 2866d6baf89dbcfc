package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"rapv/site/internal/auth"
	"rapv/site/internal/content"
	"rapv/site/internal/models"
)

type SessionHandler struct {
	AuthProvider auth.Provider
	TTL          time.Duration
	Secure       bool
	Log          *zap.Logger
}

type sessionRequest struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Actor string       `json:"actor"`
	Role  string       `json:"role"`
	View  content.View `json:"view"`
}

// Create signs an admin in. JSON clients get the session as JSON; form posts
// from the login page are redirected.
func (h SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	isForm := !isJSON(r)
	fail := func(status int, message string) {
		if isForm {
			http.Redirect(w, r, "/login?error=1", http.StatusSeeOther)
			return
		}
		writeError(w, status, message)
	}

	var req sessionRequest
	if isForm {
		if err := r.ParseForm(); err != nil {
			fail(http.StatusBadRequest, "invalid request")
			return
		}
		req = sessionRequest{
			Token:    r.PostForm.Get("token"),
			Username: r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
		}
	} else if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		fail(http.StatusBadRequest, "invalid request")
		return
	}
	if req.Token == "" {
		req.Token = bearerToken(r.Header.Get("Authorization"))
	}

	token := strings.TrimSpace(req.Token)
	if issuer, ok := h.AuthProvider.(auth.Issuer); ok && req.Username != "" {
		issued, err := issuer.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			h.Log.Info("login rejected", zap.String("username", req.Username), zap.Error(err))
			fail(http.StatusUnauthorized, "invalid credentials")
			return
		}
		token = issued
	}
	if token == "" {
		fail(http.StatusUnauthorized, "missing token")
		return
	}

	claims, err := h.AuthProvider.Verify(r.Context(), token)
	if err != nil {
		h.Log.Info("session token rejected", zap.Error(err))
		fail(http.StatusUnauthorized, "invalid token")
		return
	}
	if !hasRole(&claims, models.RoleAdmin) {
		fail(http.StatusForbidden, "admin required")
		return
	}

	view := content.NewViewSwitch(false)
	http.SetCookie(w, h.cookie(token, int(h.ttl().Seconds())))
	auditLog(r.Context(), "session.created", claims.Actor(), map[string]interface{}{"role": claims.Role})

	resp := sessionResponse{Actor: claims.Actor(), Role: claims.Role, View: view.LoginSucceeded()}
	if isForm {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	view := content.NewViewSwitch(RequestToken(r) != "")
	http.SetCookie(w, h.cookie("", -1))
	writeJSON(w, http.StatusOK, map[string]interface{}{"view": view.Logout()})
}

func (h SessionHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h SessionHandler) ttl() time.Duration {
	if h.TTL > 0 {
		return h.TTL
	}
	return 12 * time.Hour
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return r.Header.Get("Content-Type") == "" && r.Header.Get("Authorization") != ""
	}
	return mediaType == "application/json"
}

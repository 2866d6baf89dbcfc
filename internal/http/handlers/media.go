package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"rapv/site/internal/content"
)

const defaultMaxUpload = 10 << 20

type MediaHandler struct {
	Library  *content.MediaLibrary
	MaxBytes int64
	Log      *zap.Logger
}

type renameMediaRequest struct {
	Name    string `json:"name"`
	Confirm bool   `json:"confirm"`
}

func (h MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.Library.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"files": files})
}

func (h MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.Library.Configured() {
		h.writeError(w, content.ErrStorageNotConfigured)
		return
	}
	limit := h.MaxBytes
	if limit <= 0 {
		limit = defaultMaxUpload
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		writeError(w, http.StatusBadRequest, "only images can be uploaded")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	url, err := h.Library.Upload(r.Context(), header.Filename, data)
	if err != nil {
		h.writeError(w, err)
		return
	}
	auditLog(r.Context(), "media.uploaded", actorFrom(r), map[string]interface{}{
		"file": header.Filename,
		"url":  url,
	})
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.Library.Remove(r.Context(), name, confirmed(r)); err != nil {
		h.writeError(w, err)
		return
	}
	auditLog(r.Context(), "media.deleted", actorFrom(r), map[string]interface{}{"file": name})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h MediaHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	name := r.PathValue("name")
	if err := h.Library.Rename(r.Context(), name, req.Name, req.Confirm || confirmed(r)); err != nil {
		h.writeError(w, err)
		return
	}
	auditLog(r.Context(), "media.renamed", actorFrom(r), map[string]interface{}{
		"from": name,
		"to":   req.Name,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "renamed"})
}

// writeError treats storage failures that are not content errors as
// upstream failures.
func (h MediaHandler) writeError(w http.ResponseWriter, err error) {
	for _, known := range []error{
		content.ErrInvalid, content.ErrInvalidName, content.ErrNotFound, content.ErrNameTaken,
		content.ErrConfirmationRequired, content.ErrStorageNotConfigured,
	} {
		if errors.Is(err, known) {
			writeContentError(w, h.Log, err)
			return
		}
	}
	if h.Log != nil {
		h.Log.Warn("storage request failed", zap.Error(err))
	}
	writeError(w, http.StatusBadGateway, "storage request failed")
}

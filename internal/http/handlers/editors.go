package handlers

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"rapv/site/internal/content"
)

// EditorHandler exposes one entity editor over JSON.
type EditorHandler[T any, K comparable] struct {
	Editor *content.Editor[T, K]
	// Action prefixes audit actions, e.g. "event" gives "event.created".
	Action   string
	ParseKey func(string) (K, error)
	// Created runs after a record reaches the database on create.
	Created func(ctx context.Context, record T)
	Log     *zap.Logger
}

type editorListResponse[T any, K comparable] struct {
	Items      []T                 `json:"items"`
	State      content.State[T, K] `json:"state"`
	Configured bool                `json:"configured"`
}

func (h EditorHandler[T, K]) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, editorListResponse[T, K]{
		Items:      h.Editor.Items(),
		State:      h.Editor.State(),
		Configured: h.Editor.Configured(),
	})
}

// Submit creates a record, or updates the record being edited.
func (h EditorHandler[T, K]) Submit(w http.ResponseWriter, r *http.Request) {
	var form T
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	result, err := h.Editor.Submit(r.Context(), form)
	if err != nil {
		writeContentError(w, h.Log, err)
		return
	}

	status := http.StatusOK
	action := h.Action + ".updated"
	if result.Op == content.OpCreate {
		status = http.StatusCreated
		action = h.Action + ".created"
		if h.Created != nil && !result.LocalOnly {
			h.Created(r.Context(), result.Record)
		}
	}
	auditLog(r.Context(), action, actorFrom(r), map[string]interface{}{
		"entity": h.Editor.Entity(),
		"record": result.Record,
	})
	writeMutation(w, status, result.Record, result.LocalOnly)
}

func (h EditorHandler[T, K]) StartEdit(w http.ResponseWriter, r *http.Request) {
	key, ok := h.key(w, r)
	if !ok {
		return
	}
	draft, err := h.Editor.StartEdit(key)
	if err != nil {
		writeContentError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"state": h.Editor.State(), "draft": draft})
}

func (h EditorHandler[T, K]) Cancel(w http.ResponseWriter, r *http.Request) {
	h.Editor.CancelEdit()
	writeJSON(w, http.StatusOK, map[string]interface{}{"state": h.Editor.State()})
}

func (h EditorHandler[T, K]) Delete(w http.ResponseWriter, r *http.Request) {
	key, ok := h.key(w, r)
	if !ok {
		return
	}
	result, err := h.Editor.Delete(r.Context(), key, confirmed(r))
	if err != nil {
		writeContentError(w, h.Log, err)
		return
	}
	auditLog(r.Context(), h.Action+".deleted", actorFrom(r), map[string]interface{}{
		"entity": h.Editor.Entity(),
		"key":    r.PathValue("key"),
	})
	writeMutation(w, http.StatusOK, result.Record, result.LocalOnly)
}

func (h EditorHandler[T, K]) key(w http.ResponseWriter, r *http.Request) (K, bool) {
	raw := r.PathValue("key")
	key, err := h.ParseKey(raw)
	if raw == "" || err != nil {
		writeError(w, http.StatusBadRequest, "invalid key")
		return key, false
	}
	return key, true
}

func ParseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func ParseYear(raw string) (string, error) {
	return raw, nil
}

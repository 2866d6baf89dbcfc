package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"rapv/site/internal/auth"
	"rapv/site/internal/content"
	"rapv/site/internal/models"
)

func TestWriteContentErrorStatuses(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: title", content.ErrInvalid), http.StatusBadRequest},
		{content.ErrInvalidName, http.StatusBadRequest},
		{content.ErrNotFound, http.StatusNotFound},
		{content.ErrDuplicateKey, http.StatusConflict},
		{content.ErrNameTaken, http.StatusConflict},
		{content.ErrConfirmationRequired, http.StatusPreconditionRequired},
		{content.ErrStorageNotConfigured, http.StatusServiceUnavailable},
		{&content.RemoteError{Entity: "events", Op: content.OpCreate, Err: errors.New("timeout")}, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeContentError(rec, nil, tc.err)
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
	}
}

func TestWriteMutationWarning(t *testing.T) {
	rec := httptest.NewRecorder()
	writeMutation(rec, http.StatusCreated, map[string]int{"id": 1}, true)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), localOnlyWarning)

	rec = httptest.NewRecorder()
	writeMutation(rec, http.StatusOK, map[string]int{"id": 1}, false)
	assert.NotContains(t, rec.Body.String(), "warning")
}

func TestRequestToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestToken(req))

	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", RequestToken(req))

	req.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", RequestToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "from-cookie", RequestToken(req))
}

func TestHasRole(t *testing.T) {
	assert.False(t, hasRole(nil, models.RoleAdmin))
	assert.True(t, hasRole(&auth.Claims{Role: "ADMIN"}, models.RoleAdmin))
	assert.False(t, hasRole(&auth.Claims{Role: "editor"}, models.RoleAdmin))
	assert.True(t, hasRole(&auth.Claims{Role: "editor"}, models.RoleAdmin, models.RoleEditor))
}

func TestConfirmed(t *testing.T) {
	for query, want := range map[string]bool{"": false, "?confirm=true": true, "?confirm=1": true, "?confirm=YES": true, "?confirm=no": false} {
		req := httptest.NewRequest(http.MethodDelete, "/x"+query, nil)
		assert.Equal(t, want, confirmed(req), query)
	}
}

func TestIsJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	assert.True(t, isJSON(req))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.False(t, isJSON(req))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	assert.True(t, isJSON(req))
}

func TestParseKeys(t *testing.T) {
	id, err := ParseID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	_, err = ParseID("abc")
	assert.Error(t, err)

	year, err := ParseYear("2022-23")
	assert.NoError(t, err)
	assert.Equal(t, "2022-23", year)
}

package blob

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadSendsAuthAndBody(t *testing.T) {
	var gotPath, gotAuth, gotKey, gotType, gotUpsert string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		gotType = r.Header.Get("Content-Type")
		gotUpsert = r.Header.Get("x-upsert")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"Key":"images/a.png"}`))
	}))
	defer srv.Close()

	client := New(srv.URL+"/", "service-key", "images", 0)
	require.NoError(t, client.Upload(context.Background(), "a.png", "image/png", []byte("png-bytes")))

	assert.Equal(t, "/storage/v1/object/images/a.png", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "service-key", gotKey)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, "false", gotUpsert)
	assert.Equal(t, "png-bytes", string(gotBody))
}

func TestListSkipsFoldersAndReadsMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/list/images", r.URL.Path)
		var req struct {
			Limit  int `json:"limit"`
			SortBy struct {
				Column string `json:"column"`
				Order  string `json:"order"`
			} `json:"sortBy"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, listLimit, req.Limit)
		assert.Equal(t, "created_at", req.SortBy.Column)
		assert.Equal(t, "desc", req.SortBy.Order)

		_, _ = w.Write([]byte(`[
			{"name":"b.jpg","id":"2","created_at":"2024-05-02T10:00:00Z","metadata":{"size":2048,"mimetype":"image/jpeg"}},
			{"name":"gallery","id":null,"created_at":null,"metadata":null},
			{"name":"a.png","id":"1","created_at":"2024-05-01T10:00:00Z","metadata":{"size":10}}
		]`))
	}))
	defer srv.Close()

	objects, err := New(srv.URL, "service-key", "images", time.Second).List(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "b.jpg", objects[0].Name)
	assert.Equal(t, int64(2048), objects[0].Size)
	assert.Equal(t, "image/jpeg", objects[0].MimeType)
	assert.Equal(t, time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), objects[0].CreatedAt.UTC())
	assert.Equal(t, "a.png", objects[1].Name)
	assert.Empty(t, objects[1].MimeType)
}

func TestMoveAndDelete(t *testing.T) {
	var calls []string
	var move struct {
		BucketID       string `json:"bucketId"`
		SourceKey      string `json:"sourceKey"`
		DestinationKey string `json:"destinationKey"`
	}
	var remove struct {
		Prefixes []string `json:"prefixes"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			_ = json.NewDecoder(r.Body).Decode(&move)
			_, _ = w.Write([]byte(`{"message":"Successfully moved"}`))
		case http.MethodDelete:
			_ = json.NewDecoder(r.Body).Decode(&remove)
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	client := New(srv.URL, "service-key", "images", 0)
	require.NoError(t, client.Move(context.Background(), "old.png", "new.png"))
	require.NoError(t, client.Delete(context.Background(), "new.png"))

	assert.Equal(t, []string{"POST /storage/v1/object/move", "DELETE /storage/v1/object/images"}, calls)
	assert.Equal(t, "images", move.BucketID)
	assert.Equal(t, "old.png", move.SourceKey)
	assert.Equal(t, "new.png", move.DestinationKey)
	assert.Equal(t, []string{"new.png"}, remove.Prefixes)
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, "service-key", "images", 0).Upload(context.Background(), "a.png", "image/png", nil)
	var blobErr *Error
	require.True(t, errors.As(err, &blobErr))
	assert.Equal(t, "upload", blobErr.Op)
}

func TestCallsGiveUpWhenContextEnds(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, "service-key", "images", 20*time.Millisecond).List(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = New(srv.URL, "service-key", "images", 0).Delete(ctx, "a.png")
	assert.ErrorIs(t, err, context.Canceled)
	var blobErr *Error
	require.True(t, errors.As(err, &blobErr))
	assert.Equal(t, "delete", blobErr.Op)
}

func TestPublicURL(t *testing.T) {
	client := New("https://demo.supabase.co", "service-key", "images", 0)
	assert.Equal(t, "https://demo.supabase.co/storage/v1/object/public/images/a%20b.png", client.PublicURL("a b.png"))
}

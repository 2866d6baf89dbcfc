package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	storage "github.com/supabase-community/storage-go"
)

// PlaceholderName is the marker object Supabase creates to keep an empty
// folder alive. It is never a real media file.
const PlaceholderName = ".emptyFolderPlaceholder"

const (
	listLimit    = 1000
	cacheControl = "3600"
)

type Object struct {
	Name      string
	CreatedAt time.Time
	Size      int64
	MimeType  string
}

// Error wraps a failed storage call with the operation that made it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("blob: %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Client reads and writes one Supabase Storage bucket.
type Client struct {
	api     *storage.Client
	bucket  string
	timeout time.Duration

	// mu serializes SDK calls; uploads set headers on the shared transport.
	mu sync.Mutex
}

// New connects to the storage API under baseURL, the project URL such as
// https://xyz.supabase.co. A positive timeout bounds every call.
func New(baseURL, key, bucket string, timeout time.Duration) *Client {
	endpoint := strings.TrimRight(baseURL, "/") + "/storage/v1"
	return &Client{
		api:     storage.NewClient(endpoint, key, map[string]string{"apikey": key}),
		bucket:  bucket,
		timeout: timeout,
	}
}

func (c *Client) Bucket() string { return c.bucket }

// Upload stores data under name and refuses to overwrite an existing object.
func (c *Client) Upload(ctx context.Context, name, contentType string, data []byte) error {
	upsert := false
	cache := cacheControl
	opts := storage.FileOptions{ContentType: &contentType, CacheControl: &cache, Upsert: &upsert}
	return c.call(ctx, "upload", func() error {
		_, err := c.api.UploadFile(c.bucket, url.PathEscape(name), bytes.NewReader(data), opts)
		return err
	})
}

// List returns the bucket's top-level files, newest first. Folder entries
// carry no id and are skipped.
func (c *Client) List(ctx context.Context) ([]Object, error) {
	var files []storage.FileObject
	err := c.call(ctx, "list", func() error {
		var err error
		files, err = c.api.ListFiles(c.bucket, "", storage.FileSearchOptions{
			Limit:         listLimit,
			SortByOptions: storage.SortBy{Column: "created_at", Order: "desc"},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	objects := make([]Object, 0, len(files))
	for _, file := range files {
		if file.Id == "" {
			continue
		}
		obj := Object{Name: file.Name}
		if created, err := time.Parse(time.RFC3339Nano, file.CreatedAt); err == nil {
			obj.CreatedAt = created
		}
		obj.Size, obj.MimeType = readMetadata(file.Metadata)
		objects = append(objects, obj)
	}
	return objects, nil
}

func readMetadata(raw any) (int64, string) {
	meta, ok := raw.(map[string]any)
	if !ok {
		return 0, ""
	}
	var size int64
	if n, ok := meta["size"].(float64); ok {
		size = int64(n)
	}
	mime, _ := meta["mimetype"].(string)
	return size, mime
}

func (c *Client) Delete(ctx context.Context, name string) error {
	return c.call(ctx, "delete", func() error {
		_, err := c.api.RemoveFile(c.bucket, []string{name})
		return err
	})
}

func (c *Client) Move(ctx context.Context, from, to string) error {
	return c.call(ctx, "move", func() error {
		_, err := c.api.MoveFile(c.bucket, from, to)
		return err
	})
}

// PublicURL is the address visitors load name from. The bucket must be public.
func (c *Client) PublicURL(name string) string {
	return c.api.GetPublicUrl(c.bucket, url.PathEscape(name)).SignedURL
}

// call runs fn and gives up when ctx ends first. The storage client takes no
// context, so an abandoned request finishes in the background.
func (c *Client) call(ctx context.Context, op string, fn func() error) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return &Error{Op: op, Err: err}
	}
	done := make(chan error, 1)
	go func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		done <- fn()
	}()
	select {
	case err := <-done:
		if err != nil {
			return &Error{Op: op, Err: err}
		}
		return nil
	case <-ctx.Done():
		return &Error{Op: op, Err: ctx.Err()}
	}
}

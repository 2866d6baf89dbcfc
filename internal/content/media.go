package content

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rapv/site/internal/blob"
	"rapv/site/internal/metrics"
)

// BlobStore is the file side of the remote content store. *blob.Client
// satisfies it.
type BlobStore interface {
	Upload(ctx context.Context, name, contentType string, data []byte) error
	List(ctx context.Context) ([]blob.Object, error)
	Delete(ctx context.Context, name string) error
	Move(ctx context.Context, from, to string) error
	PublicURL(name string) string
}

type MediaFile struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

type MediaLibrary struct {
	store    BlobStore
	maxWidth int
	newName  func(ext string) string
	log      *zap.Logger
}

// NewMediaLibrary returns a library over store. A nil store makes every
// operation fail with ErrStorageNotConfigured.
func NewMediaLibrary(store BlobStore, maxWidth int, log *zap.Logger) *MediaLibrary {
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaLibrary{
		store:    store,
		maxWidth: maxWidth,
		newName:  func(ext string) string { return uuid.NewString() + ext },
		log:      log.With(zap.String("component", "media")),
	}
}

func (m *MediaLibrary) Configured() bool { return m.store != nil }

// Upload stores data under a random name keeping the original extension and
// returns its public URL.
func (m *MediaLibrary) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if m.store == nil {
		return "", ErrStorageNotConfigured
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty upload", ErrInvalid)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	name := m.newName(ext)

	data = m.downscale(data, ext)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := m.store.Upload(ctx, name, contentType, data); err != nil {
		metrics.MediaUploads.WithLabelValues("failed").Inc()
		m.log.Warn("upload failed", zap.String("file", filename), zap.Error(err))
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	metrics.MediaUploads.WithLabelValues("ok").Inc()
	return m.store.PublicURL(name), nil
}

// downscale shrinks raster images wider than maxWidth. Anything that cannot
// be decoded is stored as-is.
func (m *MediaLibrary) downscale(data []byte, ext string) []byte {
	if m.maxWidth <= 0 {
		return data
	}
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return data
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data
	}
	if img.Bounds().Dx() <= m.maxWidth {
		return data
	}
	resized := imaging.Resize(img, m.maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		m.log.Warn("downscale failed, storing original", zap.Error(err))
		return data
	}
	return buf.Bytes()
}

// List returns the bucket contents newest first, without folder markers.
func (m *MediaLibrary) List(ctx context.Context) ([]MediaFile, error) {
	if m.store == nil {
		return nil, ErrStorageNotConfigured
	}
	objects, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	files := make([]MediaFile, 0, len(objects))
	for _, obj := range objects {
		if obj.Name == blob.PlaceholderName {
			continue
		}
		files = append(files, MediaFile{
			Name:      obj.Name,
			URL:       m.store.PublicURL(obj.Name),
			CreatedAt: obj.CreatedAt,
			Size:      obj.Size,
		})
	}
	sortNewestFirst(files)
	return files, nil
}

func (m *MediaLibrary) Remove(ctx context.Context, name string, confirmed bool) error {
	if m.store == nil {
		return ErrStorageNotConfigured
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := checkName(name); err != nil {
		return err
	}
	return m.store.Delete(ctx, name)
}

// Rename moves oldName to newName, refusing to overwrite an existing file.
func (m *MediaLibrary) Rename(ctx context.Context, oldName, newName string, confirmed bool) error {
	if m.store == nil {
		return ErrStorageNotConfigured
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	newName = strings.TrimSpace(newName)
	if err := checkName(oldName); err != nil {
		return err
	}
	if err := checkName(newName); err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	files, err := m.List(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, file := range files {
		switch file.Name {
		case newName:
			return ErrNameTaken
		case oldName:
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}
	return m.store.Move(ctx, oldName, newName)
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == blob.PlaceholderName {
		return ErrInvalidName
	}
	return nil
}

func sortNewestFirst(files []MediaFile) {
	sort.SliceStable(files, func(i, j int) bool { return files[i].CreatedAt.After(files[j].CreatedAt) })
}

package content

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapv/site/internal/blob"
)

type fakeBlobs struct {
	objects   []blob.Object
	uploaded  map[string][]byte
	types     map[string]string
	deleted   []string
	moved     [][2]string
	uploadErr error
}

func newFakeBlobs(objects ...blob.Object) *fakeBlobs {
	return &fakeBlobs{objects: objects, uploaded: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBlobs) Upload(_ context.Context, name, contentType string, data []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded[name] = data
	f.types[name] = contentType
	return nil
}

func (f *fakeBlobs) List(context.Context) ([]blob.Object, error) { return f.objects, nil }

func (f *fakeBlobs) Delete(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeBlobs) Move(_ context.Context, from, to string) error {
	f.moved = append(f.moved, [2]string{from, to})
	return nil
}

func (f *fakeBlobs) PublicURL(name string) string { return "https://cdn.example/images/" + name }

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadUsesRandomNameAndExtension(t *testing.T) {
	store := newFakeBlobs()
	lib := NewMediaLibrary(store, 0, nil)
	lib.newName = func(ext string) string { return "fixed-uuid" + ext }

	url, err := lib.Upload(context.Background(), "Campus Photo.PNG", []byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/images/fixed-uuid.png", url)
	assert.Equal(t, "image/png", store.types["fixed-uuid.png"])
}

func TestUploadDownscalesWideImages(t *testing.T) {
	store := newFakeBlobs()
	lib := NewMediaLibrary(store, 40, nil)
	lib.newName = func(ext string) string { return "wide" + ext }

	_, err := lib.Upload(context.Background(), "wide.png", pngBytes(t, 100, 50))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(store.uploaded["wide.png"]))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestUploadFailureReturnsEmptyURL(t *testing.T) {
	store := newFakeBlobs()
	store.uploadErr = errRemote
	url, err := NewMediaLibrary(store, 0, nil).Upload(context.Background(), "a.jpg", []byte("x"))
	assert.ErrorIs(t, err, errRemote)
	assert.Empty(t, url)
}

func TestListNewestFirstWithoutPlaceholder(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeBlobs(
		blob.Object{Name: "old.jpg", CreatedAt: base},
		blob.Object{Name: blob.PlaceholderName, CreatedAt: base.Add(time.Hour)},
		blob.Object{Name: "new.jpg", CreatedAt: base.Add(2 * time.Hour)},
	)
	files, err := NewMediaLibrary(store, 0, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "new.jpg", files[0].Name)
	assert.Equal(t, "https://cdn.example/images/new.jpg", files[0].URL)
	assert.Equal(t, "old.jpg", files[1].Name)
}

func TestRemoveAndRenameRequireConfirmation(t *testing.T) {
	store := newFakeBlobs(blob.Object{Name: "a.jpg"}, blob.Object{Name: "b.jpg"})
	lib := NewMediaLibrary(store, 0, nil)
	ctx := context.Background()

	assert.ErrorIs(t, lib.Remove(ctx, "a.jpg", false), ErrConfirmationRequired)
	assert.ErrorIs(t, lib.Rename(ctx, "a.jpg", "c.jpg", false), ErrConfirmationRequired)
	assert.Empty(t, store.deleted)
	assert.Empty(t, store.moved)

	assert.ErrorIs(t, lib.Rename(ctx, "a.jpg", "b.jpg", true), ErrNameTaken)
	assert.ErrorIs(t, lib.Rename(ctx, "a.jpg", "dir/c.jpg", true), ErrInvalidName)
	assert.ErrorIs(t, lib.Rename(ctx, "missing.jpg", "c.jpg", true), ErrNotFound)

	require.NoError(t, lib.Rename(ctx, "a.jpg", "c.jpg", true))
	require.NoError(t, lib.Remove(ctx, "b.jpg", true))
	assert.Equal(t, [][2]string{{"a.jpg", "c.jpg"}}, store.moved)
	assert.Equal(t, []string{"b.jpg"}, store.deleted)
}

func TestMediaWithoutStorage(t *testing.T) {
	lib := NewMediaLibrary(nil, 0, nil)
	_, err := lib.List(context.Background())
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
	_, err = lib.Upload(context.Background(), "a.jpg", []byte("x"))
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}

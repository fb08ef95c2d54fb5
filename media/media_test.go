package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aouyang1/mouseglass/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLibraryRescan(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "3.png"), 40, 30)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("x"), 0o644))

	lib := NewLibrary(dir)
	changed, err := lib.Rescan()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, lib.Len())

	path, ok := lib.Path(3)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "3.png"), path)

	w, h, err := lib.Dimensions(3)
	require.NoError(t, err)
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)

	changed, err = lib.Rescan()
	require.NoError(t, err)
	assert.False(t, changed)

	writePNG(t, filepath.Join(dir, "4.PNG"), 10, 10)
	changed, err = lib.Rescan()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, lib.Names().Contains("4.PNG"))
}

func TestLibraryWithoutDir(t *testing.T) {
	lib := NewLibrary("")
	changed, err := lib.Rescan()
	require.NoError(t, err)
	assert.False(t, changed)
	_, ok := lib.Path(1)
	assert.False(t, ok)

	_, err = NewLibrary(filepath.Join(t.TempDir(), "missing")).Rescan()
	assert.Error(t, err)
}

func TestRenderPlaceholder(t *testing.T) {
	data, err := RenderPlaceholder(400, 300, "")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())

	data, err = RenderPlaceholder(1, 99999, "Mouse")
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, MinPlaceholderDim, cfg.Width)
	assert.Equal(t, MaxPlaceholderDim, cfg.Height)
}

func TestPlaceholdersCache(t *testing.T) {
	p, err := NewPlaceholders()
	require.NoError(t, err)

	a, err := p.PNG(64, 48, "a")
	require.NoError(t, err)
	b, err := p.PNG(64, 48, "a")
	require.NoError(t, err)
	assert.Equal(t, &a[0], &b[0])
}

func TestLibraryDownloader(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "1.png"), 8, 8)
	lib := NewLibrary(dir)
	_, err := lib.Rescan()
	require.NoError(t, err)
	p, err := NewPlaceholders()
	require.NoError(t, err)

	var svc DownloadService = &LibraryDownloader{Library: lib, Placeholders: p}
	ctx := context.Background()

	t.Run("library file", func(t *testing.T) {
		dl, err := svc.Open(ctx, gallery.ImageRecord{ID: 1, Title: "Field Mouse in Nature"})
		require.NoError(t, err)
		defer dl.Body.Close()
		assert.Equal(t, "field-mouse-in-nature.png", dl.Name)
		assert.Equal(t, "image/png", dl.ContentType)

		body, err := io.ReadAll(dl.Body)
		require.NoError(t, err)
		assert.EqualValues(t, len(body), dl.Size)
	})

	t.Run("placeholder", func(t *testing.T) {
		dl, err := svc.Open(ctx, gallery.ImageRecord{ID: 2, Title: "White Laboratory Mouse"})
		require.NoError(t, err)
		defer dl.Body.Close()
		assert.Equal(t, "white-laboratory-mouse.png", dl.Name)

		cfg, err := png.DecodeConfig(dl.Body)
		require.NoError(t, err)
		assert.Equal(t, downloadWidth, cfg.Width)
	})
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "gaming-mouse-setup", Slug("Gaming Mouse Setup"))
	assert.Equal(t, "a-b", Slug("  A -- b!"))
	assert.Equal(t, "image", Slug("!!!"))
}

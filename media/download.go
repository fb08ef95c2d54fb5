package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/aouyang1/mouseglass/gallery"
)

const (
	downloadWidth  = 1200
	downloadHeight = 900
)

type Download struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

type DownloadService interface {
	Open(ctx context.Context, rec gallery.ImageRecord) (*Download, error)
}

// LibraryDownloader serves the library file for a record, or a placeholder
// when the library has none.
type LibraryDownloader struct {
	Library      *Library
	Placeholders *Placeholders
}

func (d *LibraryDownloader) Open(ctx context.Context, rec gallery.ImageRecord) (*Download, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slog.Info("downloading image", "id", rec.ID, "title", rec.Title)

	if path, ok := d.Library.Path(rec.ID); ok {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("unable to open image file, %s, %w", path, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("unable to stat image file, %s, %w", path, err)
		}
		ext := strings.ToLower(filepath.Ext(path))
		return &Download{
			Name:        Slug(rec.Title) + ext,
			ContentType: mime.TypeByExtension(ext),
			Size:        info.Size(),
			Body:        f,
		}, nil
	}

	data, err := d.Placeholders.PNG(downloadWidth, downloadHeight, rec.Title)
	if err != nil {
		return nil, err
	}
	return &Download{
		Name:        Slug(rec.Title) + ".png",
		ContentType: "image/png",
		Size:        int64(len(data)),
		Body:        io.NopCloser(bytes.NewReader(data)),
	}, nil
}

// Slug lowercases s and joins its letters and digits with dashes, for use in
// file names.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}

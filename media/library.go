// Package media serves image bytes for gallery records: files from a local
// image directory when present, generated placeholders otherwise.
package media

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/aouyang1/mouseglass/util"
	mapset "github.com/deckarep/golang-set/v2"
)

// Library indexes image files named "<id>.<ext>" in a directory.
type Library struct {
	dir string

	mu      sync.RWMutex
	files   map[int]string
	tracked mapset.Set[string]
}

// NewLibrary creates a library over dir. An empty dir yields a library with no
// files.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:     dir,
		files:   make(map[int]string),
		tracked: mapset.NewSet[string](),
	}
}

func (l *Library) Dir() string {
	return l.dir
}

// Rescan rereads the directory and reports whether the set of files changed.
func (l *Library) Rescan() (bool, error) {
	if l.dir == "" {
		return false, nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return false, fmt.Errorf("unable to read image directory, %s, %w", l.dir, err)
	}

	current := mapset.NewSet[string]()
	files := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !util.IsImage(name) {
			continue
		}
		ext := filepath.Ext(name)
		id, err := strconv.Atoi(strings.TrimSuffix(name, ext))
		if err != nil || id <= 0 {
			slog.Debug("skipping image without numeric id", "name", name)
			continue
		}
		if prev, dup := files[id]; dup {
			slog.Warn("multiple files for image id, keeping first", "id", id, "kept", prev, "skipped", name)
			continue
		}
		files[id] = name
		current.Add(name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	changed := !current.Equal(l.tracked)
	l.files = files
	l.tracked = current
	return changed, nil
}

// Path returns the file backing image id.
func (l *Library) Path(id int) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	name, ok := l.files[id]
	if !ok {
		return "", false
	}
	return filepath.Join(l.dir, name), true
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.files)
}

// Names returns the tracked file names.
func (l *Library) Names() mapset.Set[string] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tracked.Clone()
}

// Dimensions reads the width and height of the file backing image id.
func (l *Library) Dimensions(id int) (int, int, error) {
	path, ok := l.Path(id)
	if !ok {
		return 0, 0, fmt.Errorf("no library file for image %d", id)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to open image, %s, %w", path, err)
	}
	defer f.Close()

	var cfg image.Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		cfg, err = jpeg.DecodeConfig(f)
	case ".png":
		cfg, err = png.DecodeConfig(f)
	default:
		return 0, 0, fmt.Errorf("unknown image extension, %s", path)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("unable to read image config, %s, %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

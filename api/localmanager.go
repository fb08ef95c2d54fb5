package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/aouyang1/mouseglass/media"
)

const localCheckInterval = 24 * time.Hour

// LocalManager keeps the image library in step with its directory. It
// rescans on a timer and whenever a remote sync reports changes.
type LocalManager struct {
	library  *media.Library
	interval time.Duration

	Updated chan bool
}

func NewLocalManager(library *media.Library, interval time.Duration) *LocalManager {
	return &LocalManager{
		library:  library,
		interval: interval,
		Updated:  make(chan bool, 1),
	}
}

// Run blocks until ctx is done. It returns right away when the library has
// no directory.
func (l *LocalManager) Run(ctx context.Context, remoteUpdates <-chan bool) {
	if l.library.Dir() == "" {
		slog.Info("no image directory configured, serving placeholders only")
		return
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	// Initial scan
	l.scan()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.scan()
		case <-remoteUpdates:
			slog.Info("found new updates to remote, rescanning image directory")
			l.scan()
		}
	}
}

func (l *LocalManager) scan() {
	changed, err := l.library.Rescan()
	if err != nil {
		slog.Warn("error reading local directory", "path", l.library.Dir(), "error", err)
		return
	}
	if !changed {
		return
	}

	select {
	case l.Updated <- true:
	default:
		// Channel is full, skip
	}
}

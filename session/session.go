// Package session keeps each visitor's UI state (category filter, favorites,
// overlay selection and contact form) in memory for the life of the session.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aouyang1/mouseglass/contact"
	"github.com/aouyang1/mouseglass/gallery"
)

var ErrUnknownCategory = errors.New("unknown category")

type Session struct {
	ID string

	catalog *gallery.Catalog
	Contact *contact.Submission

	mu        sync.Mutex
	filter    gallery.Category
	favorites *gallery.FavoriteSet
	selection gallery.Selection
}

func newSession(id string, catalog *gallery.Catalog, submitDelay, resetDelay time.Duration) *Session {
	return &Session{
		ID:        id,
		catalog:   catalog,
		Contact:   contact.NewSubmission(submitDelay, resetDelay),
		filter:    gallery.CategoryAll,
		favorites: gallery.NewFavoriteSet(),
	}
}

func (s *Session) Filter() gallery.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter changes the selected category. Only "all" and categories that
// have records in the catalog are accepted.
func (s *Session) SetFilter(c gallery.Category) error {
	if !s.catalog.Offered(c) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = c
	return nil
}

// ToggleFavorite flips the favorite flag of the image and returns the new
// value.
func (s *Session) ToggleFavorite(id int) (bool, error) {
	if !s.catalog.Has(id) {
		return false, fmt.Errorf("%w: %d", gallery.ErrUnknownImage, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Toggle(id), nil
}

func (s *Session) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Contains(id)
}

func (s *Session) Favorites() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.IDs()
}

// Select opens the overlay on the image with the given id.
func (s *Session) Select(id int) (gallery.ImageRecord, error) {
	rec, ok := s.catalog.Get(id)
	if !ok {
		return gallery.ImageRecord{}, fmt.Errorf("%w: %d", gallery.ErrUnknownImage, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Select(rec)
	return rec, nil
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

func (s *Session) Selected() (gallery.ImageRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Current()
}

type Card struct {
	gallery.ImageRecord
	Favorite bool
}

// View is everything the gallery page needs to render one visitor's state.
type View struct {
	Filter        gallery.Category
	Categories    []gallery.CategoryCount
	Cards         []Card
	FavoriteCount int
	Selected      *gallery.ImageRecord
	// SelectedFavorite reports whether the selected image is a favorite, even
	// when the filter hides its card.
	SelectedFavorite bool
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.catalog.Filter(s.filter)
	cards := make([]Card, len(records))
	for i, r := range records {
		cards[i] = Card{ImageRecord: r, Favorite: s.favorites.Contains(r.ID)}
	}

	v := View{
		Filter:        s.filter,
		Categories:    s.catalog.Categories(),
		Cards:         cards,
		FavoriteCount: s.favorites.Len(),
	}
	if rec, ok := s.selection.Current(); ok {
		v.Selected = &rec
		v.SelectedFavorite = s.favorites.Contains(rec.ID)
	}
	return v
}

func (s *Session) close() {
	s.Contact.Close()
}

package session

import (
	"testing"
	"time"

	"github.com/aouyang1/mouseglass/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *gallery.Catalog {
	t.Helper()
	c, err := gallery.NewCatalog([]gallery.ImageRecord{
		{ID: 1, Title: "Field Mouse", Category: gallery.CategoryWild, Likes: 10},
		{ID: 2, Title: "Pet Mouse", Category: gallery.CategoryPet, Likes: 20},
		{ID: 3, Title: "Harvest Mouse", Category: gallery.CategoryWild, Likes: 30},
	})
	require.NoError(t, err)
	return c
}

func TestSessionFilter(t *testing.T) {
	st := NewStore(testCatalog(t), Options{})
	defer st.Close()
	s := st.Create()

	assert.Equal(t, gallery.CategoryAll, s.Filter())
	assert.Len(t, s.View().Cards, 3)

	require.NoError(t, s.SetFilter(gallery.CategoryWild))
	v := s.View()
	require.Len(t, v.Cards, 2)
	assert.Equal(t, 1, v.Cards[0].ID)
	assert.Equal(t, 3, v.Cards[1].ID)

	// lab has no records in this catalog, so it is not a valid tab
	assert.ErrorIs(t, s.SetFilter(gallery.CategoryLab), ErrUnknownCategory)
	assert.ErrorIs(t, s.SetFilter("hamster"), ErrUnknownCategory)
	assert.Equal(t, gallery.CategoryWild, s.Filter())
}

func TestSessionFavorites(t *testing.T) {
	st := NewStore(testCatalog(t), Options{})
	defer st.Close()
	s := st.Create()

	fav, err := s.ToggleFavorite(2)
	require.NoError(t, err)
	assert.True(t, fav)
	assert.True(t, s.IsFavorite(2))
	assert.Equal(t, []int{2}, s.Favorites())

	v := s.View()
	assert.Equal(t, 1, v.FavoriteCount)
	assert.True(t, v.Cards[1].Favorite)
	assert.False(t, v.Cards[0].Favorite)

	fav, err = s.ToggleFavorite(2)
	require.NoError(t, err)
	assert.False(t, fav)
	assert.Empty(t, s.Favorites())

	_, err = s.ToggleFavorite(42)
	assert.ErrorIs(t, err, gallery.ErrUnknownImage)
	assert.Empty(t, s.Favorites())
}

func TestSessionSelection(t *testing.T) {
	st := NewStore(testCatalog(t), Options{})
	defer st.Close()
	s := st.Create()

	rec, err := s.Select(3)
	require.NoError(t, err)
	assert.Equal(t, "Harvest Mouse", rec.Title)

	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, rec, got)
	require.NotNil(t, s.View().Selected)

	s.ClearSelection()
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.Nil(t, s.View().Selected)

	_, err = s.Select(99)
	assert.ErrorIs(t, err, gallery.ErrUnknownImage)
}

func TestSessionsAreIndependent(t *testing.T) {
	st := NewStore(testCatalog(t), Options{})
	defer st.Close()

	a := st.Create()
	b := st.Create()
	assert.NotEqual(t, a.ID, b.ID)

	_, err := a.ToggleFavorite(1)
	require.NoError(t, err)
	assert.Empty(t, b.Favorites())
}

func TestStoreGetOrCreate(t *testing.T) {
	st := NewStore(testCatalog(t), Options{})
	defer st.Close()

	s, created := st.GetOrCreate("")
	assert.True(t, created)

	again, created := st.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	_, created = st.GetOrCreate("not-a-session")
	assert.True(t, created)
	assert.Equal(t, 2, st.Len())

	st.Remove(s.ID)
	_, ok := st.Get(s.ID)
	assert.False(t, ok)
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	st := NewStore(testCatalog(t), Options{MaxSessions: 2})
	defer st.Close()

	first := st.Create()
	second := st.Create()
	_, ok := st.Get(first.ID)
	require.True(t, ok)

	st.Create()
	assert.Equal(t, 2, st.Len())

	_, ok = st.Get(second.ID)
	assert.False(t, ok)
	_, ok = st.Get(first.ID)
	assert.True(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(testCatalog(t), Options{TTL: 20 * time.Millisecond})
	defer st.Close()

	s := st.Create()
	time.Sleep(60 * time.Millisecond)

	_, ok := st.Get(s.ID)
	assert.False(t, ok)
}

func TestStoreGetExtendsLifetime(t *testing.T) {
	st := NewStore(testCatalog(t), Options{TTL: 100 * time.Millisecond})
	defer st.Close()

	s := st.Create()
	for range 4 {
		time.Sleep(40 * time.Millisecond)
		_, ok := st.Get(s.ID)
		require.True(t, ok)
	}
}

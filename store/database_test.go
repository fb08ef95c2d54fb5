package store

import (
	"path/filepath"
	"testing"

	"github.com/aouyang1/mouseglass/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "nested", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

var seed = []gallery.ImageRecord{
	{ID: 3, Title: "Pet Mouse Portrait", Description: "close-up", Category: gallery.CategoryPet, Likes: 203, Src: "/p/3", Featured: true},
	{ID: 1, Title: "Field Mouse in Nature", Description: "habitat", Category: gallery.CategoryWild, Likes: 142, Src: "/p/1"},
	{ID: 4, Title: "Mouse Family", Description: "babies", Category: gallery.CategoryWild, Likes: 156, Src: "/p/4", Featured: true},
}

func TestSeedAndQuery(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.SeedImages(seed))

	all, err := db.GetAllImages()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, seed[0], all[1])

	featured, err := db.GetFeaturedImages(1)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, 3, featured[0].ID)

	count, err := db.GetImageCount(gallery.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	count, err = db.GetImageCount(gallery.CategoryLab)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSeedReplaces(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.SeedImages(seed))
	require.NoError(t, db.SeedImages(seed[:1]))

	all, err := db.GetAllImages()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSeedRollsBackOnError(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.SeedImages(seed))

	bad := []gallery.ImageRecord{
		{ID: 7, Title: "ok", Category: gallery.CategoryTech},
		{ID: 7, Title: "duplicate", Category: gallery.CategoryTech},
	}
	assert.Error(t, db.SeedImages(bad))

	all, err := db.GetAllImages()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetImage(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.SeedImages(seed))

	img, err := db.GetImage(4)
	require.NoError(t, err)
	assert.Equal(t, "Mouse Family", img.Title)
	assert.True(t, img.Featured)

	_, err = db.GetImage(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryDatabase(t *testing.T) {
	db, err := NewDatabase("")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.SeedImages(seed))
	count, err := db.GetImageCount(gallery.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

package gallery

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// FavoriteSet is the set of image ids a visitor has liked. It is not safe for
// concurrent use; the owning session serializes access.
type FavoriteSet struct {
	ids mapset.Set[int]
}

func NewFavoriteSet() *FavoriteSet {
	return &FavoriteSet{ids: mapset.NewThreadUnsafeSet[int]()}
}

// Toggle inverts the membership of id and returns whether it is now a favorite.
func (f *FavoriteSet) Toggle(id int) bool {
	if f.ids.Contains(id) {
		f.ids.Remove(id)
		return false
	}
	f.ids.Add(id)
	return true
}

func (f *FavoriteSet) Contains(id int) bool {
	return f.ids.Contains(id)
}

func (f *FavoriteSet) Len() int {
	return f.ids.Cardinality()
}

// IDs returns the favorite ids in ascending order.
func (f *FavoriteSet) IDs() []int {
	ids := f.ids.ToSlice()
	slices.Sort(ids)
	return ids
}

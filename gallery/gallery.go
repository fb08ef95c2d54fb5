// Package gallery holds the static image records and the view logic over them:
// category filtering, favorites and the overlay selection.
package gallery

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownImage = errors.New("unknown image")

type Category string

const (
	CategoryAll  Category = "all"
	CategoryWild Category = "wild"
	CategoryPet  Category = "pet"
	CategoryLab  Category = "lab"
	CategoryTech Category = "tech"
)

// Categories in the order the filter tabs are shown, "all" excluded.
var knownCategories = []Category{CategoryWild, CategoryPet, CategoryLab, CategoryTech}

var categoryNames = map[Category]string{
	CategoryAll:  "All Images",
	CategoryWild: "Wild Mice",
	CategoryPet:  "Pet Mice",
	CategoryLab:  "Lab Mice",
	CategoryTech: "Tech Mice",
}

// ParseCategory normalizes user input. An empty value means "all"; values that
// are not one of the known categories are returned unchanged so that they
// filter to nothing.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll
	}
	return Category(s)
}

func (c Category) Known() bool {
	return c == CategoryAll || slices.Contains(knownCategories, c)
}

func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

type ImageRecord struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Likes       int      `json:"likes" yaml:"likes"`
	Src         string   `json:"src" yaml:"src"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

func (r ImageRecord) validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("image id must be positive, got %d", r.ID)
	}
	if r.Title == "" {
		return fmt.Errorf("image %d has no title", r.ID)
	}
	if r.Likes < 0 {
		return fmt.Errorf("image %d has negative likes %d", r.ID, r.Likes)
	}
	if r.Category == CategoryAll || !r.Category.Known() {
		return fmt.Errorf("image %d has invalid category %q", r.ID, r.Category)
	}
	return nil
}

// Shown reports whether the record is visible under filter c.
func (r ImageRecord) Shown(c Category) bool {
	return c == CategoryAll || r.Category == c
}

// Filter returns the records whose category equals c, keeping their relative
// order. CategoryAll returns every record.
func Filter(records []ImageRecord, c Category) []ImageRecord {
	if c == CategoryAll {
		return slices.Clone(records)
	}
	out := make([]ImageRecord, 0, len(records))
	for _, r := range records {
		if r.Shown(c) {
			out = append(out, r)
		}
	}
	return out
}

type CategoryCount struct {
	Category Category `json:"id"`
	Name     string   `json:"name"`
	Count    int      `json:"count"`
}

// Package models tracks all api models for request and responses
package models

import (
	"github.com/aouyang1/mouseglass/contact"
	"github.com/aouyang1/mouseglass/gallery"
)

type ImageResponse struct {
	gallery.ImageRecord
	Favorite bool `json:"favorite"`
	// Width and Height are set for images served from the library.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

type ImageListResponse struct {
	Images   []ImageResponse  `json:"images"`
	Total    int              `json:"total"`
	Category gallery.Category `json:"category"`
}

type CategoryListResponse struct {
	Categories []gallery.CategoryCount `json:"categories"`
}

type FilterRequest struct {
	Category string `json:"category"`
}

type FilterResponse struct {
	Category gallery.Category `json:"category"`
}

type FavoritesResponse struct {
	IDs   []int `json:"ids"`
	Count int   `json:"count"`
}

type ToggleFavoriteResponse struct {
	ID       int  `json:"id"`
	Favorite bool `json:"favorite"`
	Count    int  `json:"count"`
}

type SelectRequest struct {
	ID int `json:"id"`
}

type SelectionResponse struct {
	Image *gallery.ImageRecord `json:"image"`
}

type ShareRequest struct {
	Native bool   `json:"native"`
	URL    string `json:"url"`
}

type ContactResponse struct {
	State   contact.State `json:"state"`
	Form    contact.Form  `json:"form"`
	Message string        `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

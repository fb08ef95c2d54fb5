// Package util holds helpers shared by the image library and the remote sync.
package util

import (
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// SupportedExt lists the lowercase image extensions the gallery serves.
var SupportedExt = mapset.NewSet(".jpeg", ".jpg", ".png")

// IsImage reports whether name ends in a supported extension, ignoring case.
func IsImage(name string) bool {
	return SupportedExt.Contains(strings.ToLower(filepath.Ext(name)))
}

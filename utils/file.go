package utils

import (
	"path/filepath"
	"strings"
)

// GetFileNameWithoutExt returns the base filename with its extension removed.
func GetFileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

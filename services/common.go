package services

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
)

var ErrNotFound = errors.New("not found")

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".heic", ".heif", ".webp"}

// IsAllowedImage reports whether the clothing photo file name has a supported image extension.
func IsAllowedImage(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	return slices.Contains(allowedImageExtensions, ext)
}

// SafeFileName strips any directory part the client may have sent.
func SafeFileName(fileName string) string {
	name := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

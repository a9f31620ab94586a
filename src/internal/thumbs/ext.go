package thumbs

import (
	"strings"

	"bibyaml/src/internal/sanitize"
)

// DefaultExt is used when neither the server nor the URL names a type.
const DefaultExt = ".jpg"

// URL extensions longer than this (dot included) are treated as noise.
const maxURLExtLen = 6

var contentTypeExt = map[string]string{
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/tiff":    ".tif",
	"image/bmp":     ".bmp",
	"image/x-icon":  ".ico",
	"image/heic":    ".heic",
	"image/heif":    ".heif",
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
	".tif": true, ".tiff": true, ".bmp": true, ".ico": true, ".heic": true, ".heif": true,
}

// ExtFromContentType maps an image MIME type (parameters ignored) to a file
// extension, or "" when the type is not known.
func ExtFromContentType(ct string) string {
	mt, _, _ := strings.Cut(ct, ";")
	return contentTypeExt[strings.ToLower(strings.TrimSpace(mt))]
}

// ExtFromURL returns the URL path's extension when it is short enough to be a
// real one.
func ExtFromURL(raw string) string {
	ext := sanitize.URLExt(raw)
	if len(ext) > maxURLExtLen {
		return ""
	}
	return ext
}

// IsImageExt reports whether ext (any case) is a known image extension.
func IsImageExt(ext string) bool { return imageExts[strings.ToLower(ext)] }

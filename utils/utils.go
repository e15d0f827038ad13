package utils

import (
	"net/http"
	"strings"
)

// DetectContentType detects the MIME type of the provided content.
// Only the first 512 bytes are used to sniff the content type.
func DetectContentType(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}
	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(data)
}

// IsImage reports whether the content looks like an image file.
// TGA files carry no magic number, so they are accepted by extension.
func IsImage(name string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(name), ".tga") {
		return true
	}
	return strings.HasPrefix(DetectContentType(data), "image/")
}

// Contains reports whether the value is present in the slice.
func Contains[T comparable](s []T, v T) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

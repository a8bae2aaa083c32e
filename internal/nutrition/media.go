package nutrition

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMediaType labels uploads whose bytes are not a recognised image.
const DefaultMediaType = "image/jpeg"

// DetectMediaType sniffs the image type from its bytes, falling back to
// DefaultMediaType. Content is never rejected.
func DetectMediaType(data []byte) string {
	if len(data) == 0 {
		return DefaultMediaType
	}
	detected := mimetype.Detect(data).String()
	if mediaType, _, _ := strings.Cut(detected, ";"); strings.HasPrefix(mediaType, "image/") {
		return mediaType
	}
	return DefaultMediaType
}

// DataURI embeds data as a base64 data URI with the given media type.
func DataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

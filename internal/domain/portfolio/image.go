package portfolio

import (
	"encoding/base64"
	"strings"
)

// DataURI embeds raw image bytes as a self-contained data URI. No size or
// type checks are made.
func DataURI(mediaType string, data []byte) string {
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// HeroImageSrc resolves a stored hero image identifier to something an <img>
// tag can load: data URIs and absolute URLs pass through, bare file names
// are served from staticPrefix.
func HeroImageSrc(image, staticPrefix string) string {
	switch {
	case image == "":
		image = DefaultHeroImage
	case IsDataURI(image), strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"):
		return image
	}
	return strings.TrimSuffix(staticPrefix, "/") + "/" + strings.TrimPrefix(image, "/")
}

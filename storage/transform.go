package storage

import (
	"net/url"
	"strconv"
	"strings"
)

// Transform describes a delivery-time image rendition
type Transform struct {
	Format  string // e.g. auto, webp
	Quality string // e.g. auto, 80
	Width   int
	Height  int
	Crop    string // e.g. fill, fit
}

// Common renditions used by the templates
var (
	Thumbnail = Transform{Format: "auto", Quality: "auto", Width: 400, Height: 300, Crop: "fill"}
	Avatar    = Transform{Format: "auto", Quality: "auto", Width: 160, Height: 160, Crop: "fill"}
	Hero      = Transform{Format: "auto", Quality: "auto", Width: 1200}
)

func (t Transform) segment() string {
	var parts []string
	if t.Format != "" {
		parts = append(parts, "f_"+t.Format)
	}
	if t.Quality != "" {
		parts = append(parts, "q_"+t.Quality)
	}
	if t.Width > 0 {
		parts = append(parts, "w_"+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		parts = append(parts, "h_"+strconv.Itoa(t.Height))
	}
	if t.Crop != "" {
		parts = append(parts, "c_"+t.Crop)
	}
	return strings.Join(parts, ",")
}

// TransformURL rewrites a stored Cloudinary URL to request the given rendition.
// The stored URL is never modified; anything that is not a Cloudinary upload URL
// is returned unchanged.
func TransformURL(raw string, t Transform) string {
	seg := t.segment()
	if raw == "" || seg == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || !strings.HasSuffix(u.Host, "cloudinary.com") {
		return raw
	}

	const marker = "/upload/"
	i := strings.Index(u.Path, marker)
	if i < 0 {
		return raw
	}
	head, tail := u.Path[:i+len(marker)], u.Path[i+len(marker):]
	u.Path = head + seg + "/" + tail
	return u.String()
}

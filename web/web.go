// Package web embeds the HTML templates and static assets of the site.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agency-site-server/models"
	"agency-site-server/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page. Each page defines a template named after
// itself, e.g. "home" or "admin_reviews".
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html"))
}

// Static serves the embedded css and js
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Funcs are the helpers available to templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		"thumb":    func(u string) string { return storage.TransformURL(u, storage.Thumbnail) },
		"avatar":   func(u string) string { return storage.TransformURL(u, storage.Avatar) },
		"hero":     func(u string) string { return storage.TransformURL(u, storage.Hero) },
		"stars":    Stars,
		"json":     JSON,
		"initials": Initials,
		"money":    Money,
		"date":     func(t time.Time) string { return t.Format("Jan 2, 2006") },
		"year":     func() int { return time.Now().Year() },
		"title":    Title,
		"add":      func(a, b int) int { return a + b },
		"statusClass": func(s interface{}) string {
			switch v := s.(type) {
			case models.ReviewStatus:
				return "status-" + string(v)
			case models.InquiryStatus:
				return "status-" + string(v)
			}
			return ""
		},
	}
}

// Stars returns five flags, the first n set
func Stars(n int) []bool {
	out := make([]bool, models.MaxRating)
	for i := range out {
		out[i] = i < n
	}
	return out
}

// JSON embeds v in a script block
func JSON(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// Initials is the avatar placeholder for people without a photo
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// Money formats whole dollars with thousands separators
func Money(amount int) string {
	s := strconv.Itoa(amount)
	if amount < 0 {
		return "-" + Money(-amount)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return "$" + s
}

// Title capitalises a slug-like category for display
func Title(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

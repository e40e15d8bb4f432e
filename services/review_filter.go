package services

import (
	"strings"

	"agency-site-server/models"
)

// ReviewFilter narrows the admin review list. Zero values match everything.
type ReviewFilter struct {
	Query  string              `form:"q"`
	Status models.ReviewStatus `form:"status"`
	Rating int                 `form:"rating"`
}

// Matches reports whether r passes every set criterion. Query is a
// case-insensitive substring match over name, company, content and position.
func (f ReviewFilter) Matches(r *models.Review) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Rating != 0 && r.Rating != f.Rating {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{r.Name, r.Company, r.Content, r.Position} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Apply keeps the matching reviews, preserving order
func (f ReviewFilter) Apply(reviews []models.Review) []models.Review {
	out := make([]models.Review, 0, len(reviews))
	for i := range reviews {
		if f.Matches(&reviews[i]) {
			out = append(out, reviews[i])
		}
	}
	return out
}

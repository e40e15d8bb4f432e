package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agency-site-server/models"
)

func TestReviewFilter_Matches(t *testing.T) {
	r := &models.Review{
		Name:     "Jane Doe",
		Position: "Head of Product",
		Company:  "Acme",
		Content:  "Shipped on time",
		Rating:   4,
		Status:   models.ReviewStatusApproved,
	}

	tests := []struct {
		name   string
		filter ReviewFilter
		want   bool
	}{
		{"empty matches", ReviewFilter{}, true},
		{"name", ReviewFilter{Query: "jane"}, true},
		{"company", ReviewFilter{Query: "ACME"}, true},
		{"content", ReviewFilter{Query: "on time"}, true},
		{"position", ReviewFilter{Query: "product"}, true},
		{"no match", ReviewFilter{Query: "globex"}, false},
		{"status", ReviewFilter{Status: models.ReviewStatusApproved}, true},
		{"other status", ReviewFilter{Status: models.ReviewStatusPending}, false},
		{"exact rating", ReviewFilter{Rating: 4}, true},
		{"other rating", ReviewFilter{Rating: 5}, false},
		{"all criteria", ReviewFilter{Query: "doe", Status: models.ReviewStatusApproved, Rating: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(r))
		})
	}
}

func TestReviewFilter_ApplyKeepsOrder(t *testing.T) {
	reviews := []models.Review{{Name: "a", Rating: 5}, {Name: "b", Rating: 3}, {Name: "c", Rating: 5}}

	got := ReviewFilter{Rating: 5}.Apply(reviews)

	assert.Equal(t, []string{"a", "c"}, []string{got[0].Name, got[1].Name})
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReview_IsVisible(t *testing.T) {
	cases := []struct {
		name     string
		status   ReviewStatus
		isPublic bool
		want     bool
	}{
		{"approved and public", ReviewStatusApproved, true, true},
		{"approved but hidden", ReviewStatusApproved, false, false},
		{"pending and public", ReviewStatusPending, true, false},
		{"rejected", ReviewStatusRejected, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Review{Status: tc.status, IsPublic: tc.isPublic}
			assert.Equal(t, tc.want, r.IsVisible())
		})
	}
}

func TestIsValidRating(t *testing.T) {
	assert.False(t, IsValidRating(0))
	assert.True(t, IsValidRating(1))
	assert.True(t, IsValidRating(5))
	assert.False(t, IsValidRating(6))
	assert.False(t, IsValidRating(-3))
}

func TestIsValidReviewStatus(t *testing.T) {
	assert.True(t, IsValidReviewStatus(ReviewStatusPending))
	assert.True(t, IsValidReviewStatus(ReviewStatusApproved))
	assert.True(t, IsValidReviewStatus(ReviewStatusRejected))
	assert.False(t, IsValidReviewStatus("archived"))
	assert.False(t, IsValidReviewStatus(""))
}

func TestReview_BeforeCreateDefaults(t *testing.T) {
	r := &Review{}
	assert.NoError(t, r.BeforeCreate(nil))
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, ReviewStatusPending, r.Status)

	kept := &Review{ID: "fixed", Status: ReviewStatusApproved}
	assert.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
	assert.Equal(t, ReviewStatusApproved, kept.Status)
}

func TestIsValidInquiryStatus(t *testing.T) {
	assert.True(t, IsValidInquiryStatus(InquiryStatusNew))
	assert.True(t, IsValidInquiryStatus(InquiryStatusInProgress))
	assert.True(t, IsValidInquiryStatus(InquiryStatusResolved))
	assert.False(t, IsValidInquiryStatus("closed"))
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"agency-site-server/models"
	"agency-site-server/notify"
	"agency-site-server/repository"
	"agency-site-server/storage"
)

func validInput() ReviewInput {
	return ReviewInput{Name: "Jane", Company: "Acme", Position: "CTO", Content: "Great work", Rating: 4}
}

func TestSubmit_RejectsInvalidInputBeforeStore(t *testing.T) {
	tests := map[string]func(*ReviewInput){
		"rating zero":     func(in *ReviewInput) { in.Rating = 0 },
		"rating too high": func(in *ReviewInput) { in.Rating = 6 },
		"negative rating": func(in *ReviewInput) { in.Rating = -1 },
		"blank name":      func(in *ReviewInput) { in.Name = "   " },
		"blank content":   func(in *ReviewInput) { in.Content = "" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			repo := new(mockReviewRepository)
			svc := NewReviewService(repo, nil, nil)

			in := validInput()
			mutate(&in)
			_, err := svc.Submit(context.Background(), in, nil)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_RejectsBadImageBeforeStore(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := NewReviewService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), validInput(), &ImageFile{Filename: "huge.png", Size: storage.MaxImageSize + 1})
	assert.ErrorIs(t, err, storage.ErrImageTooLarge)

	_, err = svc.Submit(context.Background(), validInput(), &ImageFile{Filename: "cv.pdf", Size: 10})
	assert.ErrorIs(t, err, storage.ErrImageType)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_StoreFailureReturnsNoReview(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	svc := NewReviewService(repo, nil, nil)

	review, err := svc.Submit(context.Background(), validInput(), nil)

	assert.Error(t, err)
	assert.Nil(t, review)
	repo.AssertExpectations(t)
}

func TestSubmit_CreatesPendingHiddenReview(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	review, err := f.svc.Submit(ctx, validInput(), nil)
	require.NoError(t, err)

	stored, err := f.repo.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusPending, stored.Status)
	assert.False(t, stored.IsPublic)
	assert.Nil(t, stored.ReviewedAt)
	assert.Empty(t, stored.ReviewedBy)
	assert.True(t, stored.SubmittedAt.Equal(f.clock.Now()))
	assert.Equal(t, []string{notify.ReviewSubmitted}, f.events.types())
}

func TestSubmit_TwoPhaseImageWrite(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	review, err := f.svc.Submit(ctx, validInput(), jpeg("jane.jpg"))
	require.NoError(t, err)
	assert.NotEmpty(t, review.Image)

	stored, err := f.repo.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, review.Image, stored.Image)
}

func TestSubmit_UploadFailureKeepsRecordWithoutImage(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	f.images.FailNext(&storage.UploadError{StatusCode: 503, Details: "unavailable"})

	review, err := f.svc.Submit(ctx, validInput(), jpeg("jane.jpg"))

	var uploadErr *storage.UploadError
	require.ErrorAs(t, err, &uploadErr)
	require.NotNil(t, review)
	assert.Equal(t, 1, f.images.Uploads(), "review uploads are not retried")

	stored, err := f.repo.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Image)
	assert.Equal(t, models.ReviewStatusPending, stored.Status)
}

func TestSubmit_WithoutImageStore(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewReviewService(f.repo, nil, nil)

	_, err := svc.Submit(context.Background(), validInput(), jpeg("a.png"))
	var uploadErr *storage.UploadError
	assert.ErrorAs(t, err, &uploadErr)
}

func TestCreateAdminReview_IsImmediatelyPublic(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	review, err := f.svc.CreateAdminReview(ctx, validInput(), nil)
	require.NoError(t, err)

	stored, err := f.repo.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, stored.Status)
	assert.True(t, stored.IsPublic)
	require.NotNil(t, stored.ReviewedAt)
	assert.Equal(t, models.ReviewedByAdmin, stored.ReviewedBy)

	public, err := f.svc.ListApprovedPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func TestCreateAdminReview_ValidatesRating(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := NewReviewService(repo, nil, nil)

	in := validInput()
	in.Rating = 9
	_, err := svc.CreateAdminReview(context.Background(), in, nil)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApproveAndReject(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	a, err := f.svc.Submit(ctx, validInput(), nil)
	require.NoError(t, err)
	b, err := f.svc.Submit(ctx, validInput(), nil)
	require.NoError(t, err)

	f.clock.Add(time.Hour)
	approved, err := f.svc.Approve(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, approved.Status)
	assert.True(t, approved.IsPublic)

	rejected, err := f.svc.Reject(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, rejected.IsPublic)

	storedB, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, storedB.ReviewedAt)
	assert.True(t, storedB.ReviewedAt.Equal(f.clock.Now()))

	public, err := f.svc.ListApprovedPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, a.ID, public[0].ID)

	// rejecting the approved one hides it again
	_, err = f.svc.Reject(ctx, a.ID)
	require.NoError(t, err)
	public, err = f.svc.ListApprovedPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	assert.Equal(t, []string{
		notify.ReviewSubmitted, notify.ReviewSubmitted,
		notify.ReviewApproved, notify.ReviewRejected, notify.ReviewRejected,
	}, f.events.types())

	_, err = f.svc.Approve(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEndToEnd_SubmitApprovePublish(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	review, err := f.svc.Submit(ctx, ReviewInput{Name: "Jane", Rating: 4, Content: "Great work"}, nil)
	require.NoError(t, err)

	stored, err := f.svc.Get(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusPending, stored.Status)

	_, err = f.svc.Approve(ctx, review.ID)
	require.NoError(t, err)

	stored, err = f.svc.Get(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, stored.Status)
	assert.True(t, stored.IsPublic)

	public, err := f.svc.ListApprovedPublic(ctx)
	require.NoError(t, err)
	count := 0
	for _, r := range public {
		if r.ID == review.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestUpdate(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	review, err := f.svc.Submit(ctx, validInput(), jpeg("old.jpg"))
	require.NoError(t, err)
	submitted := review.SubmittedAt

	t.Run("edits fields and keeps submission time", func(t *testing.T) {
		content := "Even better"
		rating := 5
		updated, err := f.svc.Update(ctx, review.ID, ReviewUpdate{Content: &content, Rating: &rating}, nil, false)
		require.NoError(t, err)
		assert.Equal(t, "Even better", updated.Content)
		assert.Equal(t, 5, updated.Rating)

		stored, err := f.repo.GetByID(ctx, review.ID)
		require.NoError(t, err)
		assert.True(t, stored.SubmittedAt.Equal(submitted))
		assert.Equal(t, 5, stored.Rating)
	})

	t.Run("re-validates rating", func(t *testing.T) {
		rating := 0
		_, err := f.svc.Update(ctx, review.ID, ReviewUpdate{Rating: &rating}, nil, false)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "rating", vErr.Field)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		status := models.ReviewStatus("archived")
		_, err := f.svc.Update(ctx, review.ID, ReviewUpdate{Status: &status}, nil, false)
		assert.Error(t, err)
	})

	t.Run("leaving pending stamps reviewedAt once", func(t *testing.T) {
		f.clock.Add(time.Hour)
		stampedAt := f.clock.Now()

		status := models.ReviewStatusApproved
		updated, err := f.svc.Update(ctx, review.ID, ReviewUpdate{Status: &status}, nil, false)
		require.NoError(t, err)
		require.NotNil(t, updated.ReviewedAt)
		assert.True(t, updated.ReviewedAt.Equal(stampedAt))

		f.clock.Add(time.Hour)
		back := models.ReviewStatusPending
		updated, err = f.svc.Update(ctx, review.ID, ReviewUpdate{Status: &back}, nil, false)
		require.NoError(t, err)
		assert.Equal(t, models.ReviewStatusPending, updated.Status)
		require.NotNil(t, updated.ReviewedAt)
		assert.True(t, updated.ReviewedAt.Equal(stampedAt))
	})

	t.Run("replaces and removes image", func(t *testing.T) {
		before, err := f.repo.GetByID(ctx, review.ID)
		require.NoError(t, err)

		updated, err := f.svc.Update(ctx, review.ID, ReviewUpdate{}, jpeg("new.jpg"), false)
		require.NoError(t, err)
		assert.NotEqual(t, before.Image, updated.Image)
		assert.Contains(t, updated.Image, "new-")

		updated, err = f.svc.Update(ctx, review.ID, ReviewUpdate{}, nil, true)
		require.NoError(t, err)
		assert.Empty(t, updated.Image)

		stored, err := f.repo.GetByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.Image)
	})

	t.Run("failed upload leaves record untouched", func(t *testing.T) {
		name := "Changed"
		f.images.FailNext(errors.New("network down"))
		_, err := f.svc.Update(ctx, review.ID, ReviewUpdate{Name: &name}, jpeg("x.jpg"), false)
		require.Error(t, err)

		stored, err := f.repo.GetByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane", stored.Name)
	})

	t.Run("missing review", func(t *testing.T) {
		_, err := f.svc.Update(ctx, "missing", ReviewUpdate{}, nil, false)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	review, err := f.svc.Submit(ctx, validInput(), nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, review.ID))
	_, err = f.svc.Get(ctx, review.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, review.ID), repository.ErrNotFound)
}

func TestStats(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &ReviewStats{}, stats, "empty set averages to zero")

	ratings := []int{5, 4, 2, 3}
	ids := make([]string, 0, len(ratings))
	for _, r := range ratings {
		in := validInput()
		in.Rating = r
		review, err := f.svc.Submit(ctx, in, nil)
		require.NoError(t, err)
		ids = append(ids, review.ID)
	}
	_, err = f.svc.Approve(ctx, ids[0])
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, ids[1])
	require.NoError(t, err)

	stats, err = f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Approved)
	assert.Equal(t, int64(1), stats.Rejected)
	assert.InDelta(t, 3.5, stats.AverageRating, 1e-9)
}

func TestList_FiltersInMemory(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	inputs := []ReviewInput{
		{Name: "Jane Doe", Company: "Acme", Content: "Great work", Rating: 5},
		{Name: "Bob", Company: "Globex", Content: "Fine", Rating: 3, Position: "Acme alumnus"},
		{Name: "Ann", Company: "Initech", Content: "Slow", Rating: 2},
	}
	for _, in := range inputs {
		_, err := f.svc.Submit(ctx, in, nil)
		require.NoError(t, err)
		f.clock.Add(time.Minute)
	}

	got, err := f.svc.List(ctx, ReviewFilter{Query: "acme"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.svc.List(ctx, ReviewFilter{Rating: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0].Name)

	got, err = f.svc.List(ctx, ReviewFilter{Status: models.ReviewStatusApproved})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = f.svc.List(ctx, ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Ann", got[0].Name, "newest submission first")

	_, err = f.svc.List(ctx, ReviewFilter{Status: "bogus"})
	assert.Error(t, err)
}

func TestStats_StoreError(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("CountByStatus", context.Background()).Return(nil, errors.New("db down"))
	svc := NewReviewService(repo, nil, nil)

	_, err := svc.Stats(context.Background())
	assert.EqualError(t, err, "db down")
	repo.AssertExpectations(t)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarozaLighting/laroza_api/internal/datasync"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/store"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

func newReviewFixture(t *testing.T) *ReviewService {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, repository.Seed(context.Background(), st))
	bus := datasync.NewBus()
	t.Cleanup(func() { bus.Close() })

	svc := NewReviewService(repository.NewReviewRepository(st), bus)
	svc.now = func() time.Time { return time.Date(2026, 1, 25, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetReviewsByProduct(t *testing.T) {
	svc := newReviewFixture(t)
	ctx := context.Background()

	all, err := svc.GetReviews(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	forP3, err := svc.GetReviews(ctx, "p3")
	require.NoError(t, err)
	require.Len(t, forP3, 1)
	assert.Equal(t, "r1", forP3[0].ID)

	none, err := svc.GetReviews(ctx, "p404")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateReviewPrependsAndStampsDate(t *testing.T) {
	svc := newReviewFixture(t)
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, "Juan Santos", &ReviewInput{
		ProductID: "p1",
		OrderID:   "o1",
		Rating:    5,
		Comment:   "Bright and easy to install.",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-25", created.Date)
	assert.Equal(t, "Juan Santos", created.CustomerName)

	all, err := svc.GetReviews(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, created.ID, all[0].ID)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.CreateReview(ctx, "Juan Santos", &ReviewInput{ProductID: "p1", Rating: rating})
		assert.ErrorIs(t, err, utils.ErrInvalidRating)
	}

	// Comment may be empty.
	_, err := svc.CreateReview(ctx, "Juan Santos", &ReviewInput{ProductID: "p1", Rating: 1})
	assert.NoError(t, err)
}

func TestDeleteReview(t *testing.T) {
	svc := newReviewFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteReview(ctx, "r1"))
	assert.ErrorIs(t, svc.DeleteReview(ctx, "r1"), utils.ErrReviewNotFound)

	all, err := svc.GetReviews(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

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

func newPromotionFixture(t *testing.T, today time.Time) (*PromotionService, *repository.PromotionRepository) {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, repository.Seed(context.Background(), st))
	bus := datasync.NewBus()
	t.Cleanup(func() { bus.Close() })

	repo := repository.NewPromotionRepository(st)
	svc := NewPromotionService(repo, bus)
	svc.now = func() time.Time { return today }
	return svc, repo
}

func TestValidateAcceptsActiveCodeInWindow(t *testing.T) {
	svc, _ := newPromotionFixture(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))

	promo, err := svc.Validate(context.Background(), "NEWYEAR2026")
	require.NoError(t, err)
	assert.InDelta(t, 15, promo.Discount, 0.001)
}

func TestValidateMatchesCaseInsensitively(t *testing.T) {
	svc, _ := newPromotionFixture(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))

	promo, err := svc.Validate(context.Background(), "welcome10")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", promo.Code)
}

func TestValidateWindowIsInclusive(t *testing.T) {
	// NEWYEAR2026 runs 2026-01-01 through 2026-01-31.
	first, _ := newPromotionFixture(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err := first.Validate(context.Background(), "NEWYEAR2026")
	assert.NoError(t, err)

	last, _ := newPromotionFixture(t, time.Date(2026, 1, 31, 23, 59, 0, 0, time.UTC))
	_, err = last.Validate(context.Background(), "NEWYEAR2026")
	assert.NoError(t, err)

	after, _ := newPromotionFixture(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	_, err = after.Validate(context.Background(), "NEWYEAR2026")
	assert.ErrorIs(t, err, utils.ErrInvalidPromoCode)
}

func TestValidateRejectsUnknownAndInactiveCodes(t *testing.T) {
	svc, _ := newPromotionFixture(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.Validate(ctx, "NOSUCH")
	assert.ErrorIs(t, err, utils.ErrInvalidPromoCode)

	// Deactivate WELCOME10 and try again.
	promos, err := svc.GetPromotions(ctx)
	require.NoError(t, err)
	_, err = svc.UpdatePromotion(ctx, promos[1].ID, &PromotionInput{
		Code: promos[1].Code, Discount: promos[1].Discount,
		ValidFrom: promos[1].ValidFrom, ValidTo: promos[1].ValidTo,
		Active: false, MaxUses: promos[1].MaxUses,
	})
	require.NoError(t, err)

	_, err = svc.Validate(ctx, "WELCOME10")
	assert.ErrorIs(t, err, utils.ErrInvalidPromoCode)
}

func TestValidateReportsUsageLimit(t *testing.T) {
	svc, repo := newPromotionFixture(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := svc.CreatePromotion(ctx, &PromotionInput{
		Code: "ONESHOT", Discount: 5,
		ValidFrom: "2026-01-01", ValidTo: "2026-12-31",
		Active: true, MaxUses: 1,
	})
	require.NoError(t, err)

	// Burn the single use.
	promos, err := repo.GetAll(ctx)
	require.NoError(t, err)
	for i := range promos {
		if promos[i].ID == created.ID {
			promos[i].CurrentUses = 1
		}
	}
	require.NoError(t, repo.SaveAll(ctx, promos))

	_, err = svc.Validate(ctx, "ONESHOT")
	assert.ErrorIs(t, err, utils.ErrPromoUsageLimit)
}

func TestValidateReportsExpiryBeforeUsageLimit(t *testing.T) {
	svc, repo := newPromotionFixture(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// A promotion that is both past its window and over its limit reads as
	// invalid, not as a usage-limit hit.
	created, err := svc.CreatePromotion(ctx, &PromotionInput{
		Code: "SPENT", Discount: 5,
		ValidFrom: "2026-01-01", ValidTo: "2026-01-31",
		Active: true, MaxUses: 1,
	})
	require.NoError(t, err)

	promos, err := repo.GetAll(ctx)
	require.NoError(t, err)
	for i := range promos {
		if promos[i].ID == created.ID {
			promos[i].CurrentUses = 1
		}
	}
	require.NoError(t, repo.SaveAll(ctx, promos))

	_, err = svc.Validate(ctx, "SPENT")
	assert.ErrorIs(t, err, utils.ErrInvalidPromoCode)
}

func TestCreatePromotionUppercasesCode(t *testing.T) {
	svc, _ := newPromotionFixture(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))

	created, err := svc.CreatePromotion(context.Background(), &PromotionInput{
		Code: "summer20", Discount: 20,
		ValidFrom: "2026-06-01", ValidTo: "2026-06-30",
		Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", created.Code)

	// New promotions go to the front.
	promos, err := svc.GetPromotions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, created.ID, promos[0].ID)
}

func TestCreatePromotionRejectsBadInput(t *testing.T) {
	svc, _ := newPromotionFixture(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	cases := []PromotionInput{
		{Code: "", Discount: 10, ValidFrom: "2026-01-01", ValidTo: "2026-01-31"},
		{Code: "X", Discount: 120, ValidFrom: "2026-01-01", ValidTo: "2026-01-31"},
		{Code: "X", Discount: 10, ValidFrom: "2026-02-01", ValidTo: "2026-01-31"},
		{Code: "X", Discount: 10, ValidFrom: "", ValidTo: "2026-01-31"},
	}
	for _, in := range cases {
		_, err := svc.CreatePromotion(ctx, &in)
		assert.ErrorIs(t, err, utils.ErrInvalidPromoCode)
	}
}

func TestUpdatePromotionPreservesUsageCounter(t *testing.T) {
	svc, _ := newPromotionFixture(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// pr1 seeds with CurrentUses 3.
	updated, err := svc.UpdatePromotion(ctx, "pr1", &PromotionInput{
		Code: "NEWYEAR2026", Discount: 25,
		ValidFrom: "2026-01-01", ValidTo: "2026-03-31",
		Active: true, MaxUses: 99,
	})
	require.NoError(t, err)
	assert.InDelta(t, 25, updated.Discount, 0.001)
	assert.Equal(t, 3, updated.CurrentUses)
}

func TestDeletePromotion(t *testing.T) {
	svc, _ := newPromotionFixture(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	require.NoError(t, svc.DeletePromotion(ctx, "pr2"))
	assert.ErrorIs(t, svc.DeletePromotion(ctx, "pr2"), utils.ErrPromotionNotFound)

	_, err := svc.Validate(ctx, "WELCOME10")
	assert.ErrorIs(t, err, utils.ErrInvalidPromoCode)
}

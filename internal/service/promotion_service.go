package service

import (
	"context"
	"strings"
	"time"

	"github.com/LarozaLighting/laroza_api/internal/datasync"
	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// PromotionService implements promo code management and validation. Codes
// are normalized to uppercase on storage and matched case-insensitively.
type PromotionService struct {
	promotions *repository.PromotionRepository
	bus        *datasync.Bus

	now func() time.Time
}

// NewPromotionService constructs a PromotionService.
func NewPromotionService(promotions *repository.PromotionRepository, bus *datasync.Bus) *PromotionService {
	return &PromotionService{promotions: promotions, bus: bus, now: time.Now}
}

// PromotionInput carries the editable promotion fields.
type PromotionInput struct {
	Code      string  `json:"code"`
	Discount  float64 `json:"discount"`
	ValidFrom string  `json:"validFrom"`
	ValidTo   string  `json:"validTo"`
	Active    bool    `json:"active"`
	MaxUses   int     `json:"maxUses"`
}

func (in *PromotionInput) validate() error {
	if strings.TrimSpace(in.Code) == "" {
		return utils.ErrInvalidPromoCode
	}
	if in.Discount < 0 || in.Discount > 100 {
		return utils.ErrInvalidPromoCode
	}
	if in.ValidFrom == "" || in.ValidTo == "" || in.ValidTo < in.ValidFrom {
		return utils.ErrInvalidPromoCode
	}
	return nil
}

// GetPromotions returns the whole promotions collection.
func (s *PromotionService) GetPromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.promotions.GetAll(ctx)
}

// CreatePromotion prepends a new promotion and broadcasts the change.
func (s *PromotionService) CreatePromotion(ctx context.Context, input *PromotionInput) (*models.Promotion, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	promo := models.Promotion{
		ID:        utils.NewEntityID("pr"),
		Code:      strings.ToUpper(input.Code),
		Discount:  input.Discount,
		ValidFrom: input.ValidFrom,
		ValidTo:   input.ValidTo,
		Active:    input.Active,
		MaxUses:   input.MaxUses,
	}

	if err := s.promotions.SaveAll(ctx, append([]models.Promotion{promo}, promotions...)); err != nil {
		return nil, err
	}
	s.bus.Broadcast(datasync.TypePromotions, datasync.ActionCreate)
	return &promo, nil
}

// UpdatePromotion replaces the editable fields of an existing promotion.
// The usage counter is preserved.
func (s *PromotionService) UpdatePromotion(ctx context.Context, id string, input *PromotionInput) (*models.Promotion, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var updated *models.Promotion
	for i := range promotions {
		if promotions[i].ID != id {
			continue
		}
		promotions[i].Code = strings.ToUpper(input.Code)
		promotions[i].Discount = input.Discount
		promotions[i].ValidFrom = input.ValidFrom
		promotions[i].ValidTo = input.ValidTo
		promotions[i].Active = input.Active
		promotions[i].MaxUses = input.MaxUses
		updated = &promotions[i]
		break
	}
	if updated == nil {
		return nil, utils.ErrPromotionNotFound
	}

	if err := s.promotions.SaveAll(ctx, promotions); err != nil {
		return nil, err
	}
	s.bus.Broadcast(datasync.TypePromotions, datasync.ActionUpdate)
	return updated, nil
}

// DeletePromotion removes a promotion.
func (s *PromotionService) DeletePromotion(ctx context.Context, id string) error {
	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Promotion, 0, len(promotions))
	for _, p := range promotions {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(promotions) {
		return utils.ErrPromotionNotFound
	}

	if err := s.promotions.SaveAll(ctx, kept); err != nil {
		return err
	}
	s.bus.Broadcast(datasync.TypePromotions, datasync.ActionDelete)
	return nil
}

// Validate resolves a code to its promotion when it can be applied today:
// the code matches case-insensitively, the promotion is active, today falls
// inside the inclusive validity window, and the usage limit is not reached.
func (s *PromotionService) Validate(ctx context.Context, code string) (*models.Promotion, error) {
	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().Format(utils.DateLayout)
	for i := range promotions {
		p := &promotions[i]
		if !strings.EqualFold(p.Code, code) {
			continue
		}
		// An inactive or out-of-window promotion reads as invalid even when
		// it is also over its usage limit.
		if !p.Active || today < p.ValidFrom || today > p.ValidTo {
			return nil, utils.ErrInvalidPromoCode
		}
		if p.MaxUses > 0 && p.CurrentUses >= p.MaxUses {
			return nil, utils.ErrPromoUsageLimit
		}
		return p, nil
	}
	return nil, utils.ErrInvalidPromoCode
}

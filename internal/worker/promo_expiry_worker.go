package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LarozaLighting/laroza_api/internal/datasync"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// PromoExpiryWorker deactivates promotions whose validity window has passed
// so that expired codes stop validating even if nobody edits them.
type PromoExpiryWorker struct {
	promos   *repository.PromotionRepository
	bus      *datasync.Bus
	interval time.Duration
}

// NewPromoExpiryWorker constructs a PromoExpiryWorker.
func NewPromoExpiryWorker(promos *repository.PromotionRepository, bus *datasync.Bus, interval time.Duration) *PromoExpiryWorker {
	return &PromoExpiryWorker{
		promos:   promos,
		bus:      bus,
		interval: interval,
	}
}

// Start begins the periodic expiry sweep until context is canceled.
func (w *PromoExpiryWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting promo expiry worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Promo expiry worker stopped")
			return
		}
	}
}

func (w *PromoExpiryWorker) run(ctx context.Context) {
	promos, err := w.promos.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load promotions for expiry sweep")
		return
	}

	today := time.Now().Format(utils.DateLayout)
	expired := 0
	for i := range promos {
		if promos[i].Active && promos[i].ValidTo < today {
			promos[i].Active = false
			expired++
		}
	}
	if expired == 0 {
		return
	}

	if err := w.promos.SaveAll(ctx, promos); err != nil {
		log.Error().Err(err).Msg("Failed to save deactivated promotions")
		return
	}
	w.bus.Broadcast(datasync.TypePromotions, datasync.ActionUpdate)
	log.Info().Int("count", expired).Msg("Deactivated expired promotions")
}

package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LarozaLighting/laroza_api/internal/repository"
)

// LowStockWorker periodically logs products whose stock is at or below their
// threshold so operators notice before items sell out.
type LowStockWorker struct {
	products *repository.ProductRepository
	interval time.Duration
}

// NewLowStockWorker constructs a LowStockWorker.
func NewLowStockWorker(products *repository.ProductRepository, interval time.Duration) *LowStockWorker {
	return &LowStockWorker{
		products: products,
		interval: interval,
	}
}

// Start begins the periodic low stock sweep until context is canceled.
func (w *LowStockWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting low stock worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Low stock worker stopped")
			return
		}
	}
}

func (w *LowStockWorker) run(ctx context.Context) {
	products, err := w.products.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load products for low stock sweep")
		return
	}

	for i := range products {
		p := &products[i]
		if !p.IsLowStock() {
			continue
		}
		log.Warn().
			Str("product_id", p.ID).
			Str("name", p.Name).
			Int("stock", p.Stock).
			Int("threshold", p.LowStockThreshold).
			Msg("Product stock is low")
	}
}

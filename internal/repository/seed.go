package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/store"
)

// Seed writes the starter catalog into the store for every collection key
// that has never been written. Existing data is left untouched, so a restart
// or a second instance joining the same store never resets state.
func Seed(ctx context.Context, st store.Store) error {
	seeds := []struct {
		key   string
		value interface{}
	}{
		{store.KeyProducts, seedProducts},
		{store.KeyOrders, seedOrders},
		{store.KeyPromotions, seedPromotions},
		{store.KeyReviews, seedReviews},
	}

	for _, s := range seeds {
		_, exists, err := st.Get(ctx, s.key)
		if err != nil {
			return fmt.Errorf("seed check %s: %w", s.key, err)
		}
		if exists {
			continue
		}
		data, err := json.Marshal(s.value)
		if err != nil {
			return fmt.Errorf("seed encode %s: %w", s.key, err)
		}
		if err := st.Set(ctx, s.key, string(data)); err != nil {
			return fmt.Errorf("seed write %s: %w", s.key, err)
		}
		log.Info().Str("key", s.key).Msg("seeded collection")
	}
	return nil
}

var seedProducts = []models.Product{
	{ID: "p1", Name: "Modern LED Ceiling Light", Category: models.CategoryCeiling, Price: 2499, Stock: 45, Image: "ceiling-modern", Description: "Energy-efficient LED ceiling light with modern design", LowStockThreshold: 10},
	{ID: "p2", Name: "Crystal Chandelier", Category: models.CategoryCeiling, Price: 8999, Stock: 8, Image: "chandelier", Description: "Elegant crystal chandelier for luxurious spaces", LowStockThreshold: 5},
	{ID: "p3", Name: "Wall Sconce Light", Category: models.CategoryWall, Price: 1299, Stock: 32, Image: "wall-sconce", Description: "Contemporary wall sconce with adjustable brightness", LowStockThreshold: 15},
	{ID: "p4", Name: "Outdoor Wall Lantern", Category: models.CategoryWall, Price: 1899, Stock: 18, Image: "outdoor-lantern", Description: "Weather-resistant outdoor wall lantern", LowStockThreshold: 10},
	{ID: "p5", Name: "Pendant Decorative Light", Category: models.CategoryDecorative, Price: 3499, Stock: 4, Image: "pendant-decorative", Description: "Artistic pendant light for statement decor", LowStockThreshold: 8},
	{ID: "p6", Name: "Table Lamp Decorative", Category: models.CategoryDecorative, Price: 1599, Stock: 25, Image: "table-lamp", Description: "Stylish table lamp with decorative base", LowStockThreshold: 12},
	{ID: "p7", Name: "LED Bulb 9W Warm White", Category: models.CategoryLEDBulbs, Price: 199, Stock: 150, Image: "led-bulb-warm", Description: "9W LED bulb with warm white light", LowStockThreshold: 50},
	{ID: "p8", Name: "LED Bulb 12W Cool White", Category: models.CategoryLEDBulbs, Price: 249, Stock: 120, Image: "led-bulb-cool", Description: "12W LED bulb with cool white light", LowStockThreshold: 50},
	{ID: "p9", Name: "RGB Smart LED Bulb", Category: models.CategoryLEDBulbs, Price: 799, Stock: 6, Image: "smart-bulb", Description: "WiFi-enabled RGB smart LED bulb", LowStockThreshold: 20},
	{ID: "p10", Name: "Track Light Fixture", Category: models.CategoryFixtures, Price: 3299, Stock: 15, Image: "track-light", Description: "Adjustable track light fixture system", LowStockThreshold: 8},
	{ID: "p11", Name: "Recessed Light Fixture", Category: models.CategoryFixtures, Price: 899, Stock: 42, Image: "recessed-fixture", Description: "Flush mount recessed light fixture", LowStockThreshold: 20},
	{ID: "p12", Name: "Industrial Fixture Set", Category: models.CategoryFixtures, Price: 4599, Stock: 3, Image: "industrial-fixture", Description: "Complete industrial-style fixture set", LowStockThreshold: 5},
}

var seedOrders = []models.Order{
	{
		ID: "o1", CustomerName: "Juan Santos",
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Modern LED Ceiling Light", Quantity: 2, Price: 2499},
			{ProductID: "p7", ProductName: "LED Bulb 9W Warm White", Quantity: 10, Price: 199},
		},
		Total: 6988, Status: models.OrderPending, Date: "2026-01-22",
	},
	{
		ID: "o2", CustomerName: "Maria Cruz",
		Items: []models.OrderItem{
			{ProductID: "p2", ProductName: "Crystal Chandelier", Quantity: 1, Price: 8999},
		},
		Total: 8999, Status: models.OrderProcessing, Date: "2026-01-21",
	},
	{
		ID: "o3", CustomerName: "Roberto Diaz",
		Items: []models.OrderItem{
			{ProductID: "p3", ProductName: "Wall Sconce Light", Quantity: 4, Price: 1299},
			{ProductID: "p6", ProductName: "Table Lamp Decorative", Quantity: 2, Price: 1599},
		},
		Total: 8394, Status: models.OrderCompleted, Date: "2026-01-20",
	},
	{
		ID: "o4", CustomerName: "Ana Garcia",
		Items: []models.OrderItem{
			{ProductID: "p10", ProductName: "Track Light Fixture", Quantity: 1, Price: 3299},
			{ProductID: "p8", ProductName: "LED Bulb 12W Cool White", Quantity: 8, Price: 249},
		},
		Total: 5291, Status: models.OrderCompleted, Date: "2026-01-19",
	},
}

var seedPromotions = []models.Promotion{
	{ID: "pr1", Code: "NEWYEAR2026", Discount: 15, ValidFrom: "2026-01-01", ValidTo: "2026-01-31", Active: true, MaxUses: 50, CurrentUses: 3},
	{ID: "pr2", Code: "WELCOME10", Discount: 10, ValidFrom: "2026-01-01", ValidTo: "2026-12-31", Active: true, MaxUses: 100, CurrentUses: 12},
}

var seedReviews = []models.Review{
	{ID: "r1", ProductID: "p3", OrderID: "o3", CustomerName: "Roberto Diaz", Rating: 5, Comment: "Excellent products and fast delivery! Very satisfied with my purchase.", Date: "2026-01-21"},
	{ID: "r2", ProductID: "p10", OrderID: "o4", CustomerName: "Ana Garcia", Rating: 4, Comment: "Good quality lights. The track fixture works perfectly in my studio.", Date: "2026-01-20"},
}

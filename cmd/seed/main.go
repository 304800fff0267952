// Command seed fills an empty reward catalogue with the default items.
package main

import (
	"context"
	"log"

	"gcore-rewards-backend/config"
	"gcore-rewards-backend/internal/database"
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var defaultRewards = []models.Reward{
	{Name: "GDG T-Shirt", Description: "Official GDG branded t-shirt", Cost: 100, Stock: 50, Category: "Apparel",
		ImageURL: "https://via.placeholder.com/300x300?text=GDG+T-Shirt"},
	{Name: "GDG Hoodie", Description: "Premium GDG hoodie", Cost: 250, Stock: 25, Category: "Apparel",
		ImageURL: "https://via.placeholder.com/300x300?text=GDG+Hoodie"},
	{Name: "Sticker Pack", Description: "Pack of 10 assorted GDG stickers", Cost: 25, Stock: 200, Category: "Accessories",
		ImageURL: "https://via.placeholder.com/300x300?text=Sticker+Pack"},
	{Name: "Water Bottle", Description: "Insulated GDG water bottle", Cost: 75, Stock: 100, Category: "Accessories",
		ImageURL: "https://via.placeholder.com/300x300?text=Water+Bottle"},
	{Name: "Laptop Sticker", Description: "Premium vinyl laptop sticker", Cost: 15, Stock: 300, Category: "Accessories",
		ImageURL: "https://via.placeholder.com/300x300?text=Laptop+Sticker"},
	{Name: "Coffee Mug", Description: "Ceramic GDG coffee mug", Cost: 50, Stock: 75, Category: "Accessories",
		ImageURL: "https://via.placeholder.com/300x300?text=Coffee+Mug"},
}

// seedRewards inserts the default catalogue unless rewards already exist.
// It returns the number of rows created.
func seedRewards(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Reward{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	rewards := make([]models.Reward, len(defaultRewards))
	copy(rewards, defaultRewards)
	for i := range rewards {
		rewards[i].IsActive = true
	}
	if err := db.WithContext(ctx).Create(&rewards).Error; err != nil {
		return 0, err
	}
	return len(rewards), nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.InitLogger(&logger.Config{Level: cfg.LogLevel}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}

	created, err := seedRewards(context.Background(), db)
	if err != nil {
		logger.Log.Fatal("seeding failed", zap.Error(err))
	}
	if created == 0 {
		logger.Log.Info("rewards already present, nothing to seed")
		return
	}
	logger.Log.Info("seeding completed", zap.Int("rewards", created))
}

// Command cleanup wipes ledger history while keeping users and rewards.
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

// cleanup deletes history tables child-first and reports rows removed per table.
func cleanup(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	removed := map[string]int64{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []struct {
			name  string
			model interface{}
		}{
			{"transactions", &models.Transaction{}},
			{"redemptions", &models.Redemption{}},
			{"activities", &models.Activity{}},
			{"event_participations", &models.EventParticipation{}},
			{"notifications", &models.Notification{}},
		} {
			result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m.model)
			if result.Error != nil {
				return result.Error
			}
			removed[m.name] = result.RowsAffected
		}
		return nil
	})
	return removed, err
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

	removed, err := cleanup(context.Background(), db)
	if err != nil {
		logger.Log.Fatal("cleanup failed", zap.Error(err))
	}
	for table, n := range removed {
		logger.Log.Info("table cleared", zap.String("table", table), zap.Int64("rows", n))
	}
}

package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"gcore-rewards-backend/internal/models"

	"gorm.io/gorm"
)

const maxPublicFeed = 50

// TransactionFilter defines criteria for filtering transactions
type TransactionFilter struct {
	UserID    *string
	Type      *models.TransactionType
	Status    *models.TransactionStatus
	StartTime *time.Time
	EndTime   *time.Time
	MinAmount *int64
	MaxAmount *int64
	Page      int
	Limit     int
}

type TransactionService struct {
	db *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// FindTransactions retrieves a paginated list of transactions with filtering
func (s *TransactionService) FindTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Transaction{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Preload("User").Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

func (s *TransactionService) ListForUser(ctx context.Context, userID string, page, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// PublicFeed returns the latest completed earnings for the activity ticker.
func (s *TransactionService) PublicFeed(ctx context.Context, limit int) ([]models.Transaction, error) {
	if limit <= 0 || limit > maxPublicFeed {
		limit = maxPublicFeed
	}

	var transactions []models.Transaction
	err := s.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "wallet_address", "name")
		}).
		Where("type = ? AND status = ?", models.TransactionEarn, models.TransactionCompleted).
		Order("created_at desc").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// GenerateTransactionCSV generates a CSV file content for transactions
func GenerateTransactionCSV(transactions []models.Transaction) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{
		"ID", "Time", "User ID", "Wallet", "Type", "Status",
		"Amount", "Description", "Tx Hash", "Redemption ID",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, t := range transactions {
		wallet := ""
		if t.User != nil {
			wallet = t.User.WalletAddress
		}
		redemptionID := ""
		if t.RedemptionID != nil {
			redemptionID = *t.RedemptionID
		}
		record := []string{
			t.ID,
			t.CreatedAt.Format(time.RFC3339Nano),
			t.UserID,
			wallet,
			string(t.Type),
			string(t.Status),
			strconv.FormatInt(t.Amount, 10),
			t.Description,
			t.TxHash,
			redemptionID,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

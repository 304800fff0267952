package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gcore-rewards-backend/internal/chain"
	"gcore-rewards-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const batchDescriptionPrefix = "Batch Distribution: "

type DistributeInput struct {
	WalletAddress string
	Amount        int64
	ActivityType  models.ActivityType
	Description   string
	Metadata      map[string]interface{}
}

type DistributionResult struct {
	User        *models.User        `json:"user"`
	Transaction *models.Transaction `json:"transaction"`
	Activity    *models.Activity    `json:"activity"`
	TxHash      string              `json:"txHash"`
}

const (
	ItemSuccess = "SUCCESS"
	ItemFailed  = "FAILED"
)

type BatchItemResult struct {
	Index         int    `json:"index"`
	WalletAddress string `json:"walletAddress"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
	TxHash        string `json:"txHash,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
}

type BatchResult struct {
	SuccessCount int               `json:"successCount"`
	FailureCount int               `json:"failureCount"`
	Results      []BatchItemResult `json:"results"`
}

// DistributionService credits tokens for verified activities: it mints on
// chain first and records the ledger rows only once the mint is confirmed.
type DistributionService struct {
	db      *gorm.DB
	users   *UserService
	gateway chain.Gateway
	log     *zap.Logger
}

func NewDistributionService(db *gorm.DB, users *UserService, gateway chain.Gateway, log *zap.Logger) *DistributionService {
	return &DistributionService{db: db, users: users, gateway: gateway, log: log}
}

func (in DistributeInput) validate() (string, error) {
	addr, err := chain.Normalize(in.WalletAddress)
	if err != nil {
		return "", ErrInvalidAddress
	}
	if in.Amount <= 0 {
		return "", ErrInvalidAmount
	}
	if !in.ActivityType.Valid() {
		return "", ErrInvalidActivityType
	}
	if strings.TrimSpace(in.Description) == "" {
		return "", ErrDescriptionRequired
	}
	return addr, nil
}

func (s *DistributionService) Distribute(ctx context.Context, in DistributeInput) (*DistributionResult, error) {
	return s.distribute(ctx, in, fmt.Sprintf("%s: %s", in.ActivityType, in.Description))
}

func (s *DistributionService) distribute(ctx context.Context, in DistributeInput, ledgerDescription string) (*DistributionResult, error) {
	addr, err := in.validate()
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindOrCreateByWallet(ctx, addr)
	if err != nil {
		return nil, err
	}

	txHash, err := s.gateway.Mint(ctx, addr, in.Amount, string(in.ActivityType), in.Description)
	if err != nil {
		s.log.Error("mint failed",
			zap.String("wallet", addr),
			zap.Int64("amount", in.Amount),
			zap.Error(err))
		return nil, ErrChainFailure.Wrap(err)
	}

	metadata, err := activityMetadata(in, txHash)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &DistributionResult{
		User:   user,
		TxHash: txHash,
		Transaction: &models.Transaction{
			UserID:      user.ID,
			Amount:      in.Amount,
			Type:        models.TransactionEarn,
			Description: ledgerDescription,
			TxHash:      txHash,
			Status:      models.TransactionCompleted,
		},
		Activity: &models.Activity{
			UserID:     user.ID,
			Type:       in.ActivityType,
			Points:     in.Amount,
			Metadata:   metadata,
			VerifiedAt: &now,
		},
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result.Transaction).Error; err != nil {
			return err
		}
		return tx.Create(result.Activity).Error
	})
	if err != nil {
		// The mint is already final on chain; the ledger now lags it.
		s.log.Error("ledger write failed after mint",
			zap.String("wallet", addr),
			zap.String("tx_hash", txHash),
			zap.Int64("amount", in.Amount),
			zap.Error(err))
		return nil, newLedgerLag(txHash, err)
	}

	s.log.Info("tokens distributed",
		zap.String("wallet", addr),
		zap.Int64("amount", in.Amount),
		zap.String("activity_type", string(in.ActivityType)),
		zap.String("tx_hash", txHash))

	return result, nil
}

// BatchDistribute processes items strictly in order. A failed item is
// reported and never rolls back the items before it.
func (s *DistributionService) BatchDistribute(ctx context.Context, items []DistributeInput) BatchResult {
	out := BatchResult{Results: make([]BatchItemResult, 0, len(items))}

	for i, item := range items {
		if item.ActivityType == "" {
			item.ActivityType = models.ActivityEventAttendance
		}

		res := BatchItemResult{Index: i, WalletAddress: item.WalletAddress, Amount: item.Amount}
		dist, err := s.distribute(ctx, item, batchDescriptionPrefix+item.Description)
		if err != nil {
			res.Status = ItemFailed
			res.Error = err.Error()
			out.FailureCount++
		} else {
			res.Status = ItemSuccess
			res.TxHash = dist.TxHash
			res.TransactionID = dist.Transaction.ID
			out.SuccessCount++
		}
		out.Results = append(out.Results, res)
	}

	s.log.Info("batch distribution finished",
		zap.Int("success", out.SuccessCount),
		zap.Int("failed", out.FailureCount))

	return out
}

// VerifyActivity stamps a pending activity owned by userID as verified.
func (s *DistributionService) VerifyActivity(ctx context.Context, userID, activityID string) (*models.Activity, error) {
	var activity models.Activity

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", activityID, userID).First(&activity).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActivityNotFound
			}
			return err
		}
		if activity.VerifiedAt != nil {
			return ErrActivityAlreadyVerified
		}

		now := time.Now()
		result := tx.Model(&models.Activity{}).
			Where("id = ? AND verified_at IS NULL", activity.ID).
			Update("verified_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrActivityAlreadyVerified
		}
		activity.VerifiedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func activityMetadata(in DistributeInput, txHash string) (datatypes.JSON, error) {
	meta := map[string]interface{}{}
	for k, v := range in.Metadata {
		meta[k] = v
	}
	meta["description"] = in.Description
	meta["txHash"] = txHash

	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"gcore-rewards-backend/internal/chain"
	"gcore-rewards-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RedemptionFilter struct {
	Status *models.RedemptionStatus
	UserID string
	Page   int
	Limit  int
}

type RedemptionService struct {
	db      *gorm.DB
	gateway chain.Gateway
	log     *zap.Logger
}

func NewRedemptionService(db *gorm.DB, gateway chain.Gateway, log *zap.Logger) *RedemptionService {
	return &RedemptionService{db: db, gateway: gateway, log: log}
}

// Redeem reserves stock and records the claim in one database transaction,
// then settles on chain. A failed chain call is compensated: stock comes
// back, the redemption is cancelled and its ledger entry marked FAILED.
func (s *RedemptionService) Redeem(ctx context.Context, userID, rewardID string, quantity int64) (*models.Redemption, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	db := s.db.WithContext(ctx)

	var reward models.Reward
	if err := db.First(&reward, "id = ?", rewardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	if !reward.IsActive {
		return nil, ErrRewardInactive
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	totalCost := reward.Cost * quantity
	redemption := &models.Redemption{
		UserID:    user.ID,
		RewardID:  reward.ID,
		Quantity:  quantity,
		TotalCost: totalCost,
		Status:    models.RedemptionPending,
	}
	ledger := &models.Transaction{
		UserID:      user.ID,
		Amount:      totalCost,
		Type:        models.TransactionRedeem,
		Description: fmt.Sprintf("Redeemed %d x %s", quantity, reward.Name),
		Status:      models.TransactionPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Conditional decrement: the row only changes if enough stock remains.
		result := tx.Model(&models.Reward{}).
			Where("id = ? AND is_active = ? AND stock >= ?", reward.ID, true, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		if err := tx.Create(redemption).Error; err != nil {
			return err
		}
		ledger.RedemptionID = &redemption.ID
		return tx.Create(ledger).Error
	})
	if err != nil {
		return nil, err
	}

	txHash, chainErr := s.gateway.Redeem(ctx, user.WalletAddress, reward.ID, totalCost, quantity)
	if chainErr != nil {
		s.log.Error("redeem on chain failed, compensating",
			zap.String("redemption_id", redemption.ID),
			zap.String("reward_id", reward.ID),
			zap.Int64("quantity", quantity),
			zap.Error(chainErr))

		// The request context may already be done; compensation must still land.
		if err := s.compensate(context.WithoutCancel(ctx), redemption, ledger); err != nil {
			s.log.Error("redemption compensation failed",
				zap.String("redemption_id", redemption.ID),
				zap.Error(err))
		}
		return nil, ErrChainFailure.Wrap(chainErr)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(redemption).Update("tx_hash", txHash).Error; err != nil {
			return err
		}
		return tx.Model(ledger).Updates(map[string]interface{}{
			"tx_hash": txHash,
			"status":  models.TransactionCompleted,
		}).Error
	})
	if err != nil {
		s.log.Error("ledger write failed after redeem",
			zap.String("redemption_id", redemption.ID),
			zap.String("tx_hash", txHash),
			zap.Error(err))
		return nil, newLedgerLag(txHash, err)
	}

	redemption.TxHash = txHash
	redemption.Reward = &reward

	s.log.Info("reward redeemed",
		zap.String("redemption_id", redemption.ID),
		zap.String("user_id", user.ID),
		zap.String("reward_id", reward.ID),
		zap.Int64("quantity", quantity),
		zap.String("tx_hash", txHash))

	return redemption, nil
}

func (s *RedemptionService) compensate(ctx context.Context, redemption *models.Redemption, ledger *models.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Reward{}).
			Where("id = ?", redemption.RewardID).
			UpdateColumn("stock", gorm.Expr("stock + ?", redemption.Quantity)).Error; err != nil {
			return err
		}
		if err := tx.Model(redemption).Update("status", models.RedemptionCancelled).Error; err != nil {
			return err
		}
		return tx.Model(ledger).Update("status", models.TransactionFailed).Error
	})
}

type statusNotice struct {
	kind    models.NotificationType
	title   string
	message string
}

func noticeFor(status models.RedemptionStatus, rewardName string) statusNotice {
	switch status {
	case models.RedemptionApproved:
		return statusNotice{models.NotificationInfo, "Order Approved",
			fmt.Sprintf("Your redemption of %s has been approved.", rewardName)}
	case models.RedemptionFulfilled:
		return statusNotice{models.NotificationInfo, "Order Fulfilled",
			fmt.Sprintf("Your %s is packed and on its way.", rewardName)}
	case models.RedemptionDelivered:
		return statusNotice{models.NotificationSuccess, "Order Delivered",
			fmt.Sprintf("Your %s has been delivered. Enjoy!", rewardName)}
	case models.RedemptionCancelled:
		return statusNotice{models.NotificationWarning, "Order Cancelled",
			fmt.Sprintf("Your redemption of %s was cancelled.", rewardName)}
	default:
		return statusNotice{models.NotificationInfo, "Order Updated",
			fmt.Sprintf("Your redemption of %s is now %s.", rewardName, status)}
	}
}

// UpdateStatus moves a redemption along its lifecycle and notifies the owner.
// Cancelling returns the reserved stock and marks the REDEEM ledger entry
// FAILED, so the ledger balance no longer charges for it.
func (s *RedemptionService) UpdateStatus(ctx context.Context, id string, status models.RedemptionStatus, txHash string) (*models.Redemption, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var redemption models.Redemption
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Reward").First(&redemption, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRedemptionNotFound
			}
			return err
		}
		if !redemption.Status.CanTransitionTo(status) {
			return ErrInvalidTransition
		}

		updates := map[string]interface{}{"status": status}
		if txHash != "" {
			updates["tx_hash"] = txHash
		}

		// Guard on the status we read so two admins cannot both transition it.
		result := tx.Model(&models.Redemption{}).
			Where("id = ? AND status = ?", redemption.ID, redemption.Status).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOptimisticLock
		}

		if status == models.RedemptionCancelled {
			if err := tx.Model(&models.Reward{}).
				Where("id = ?", redemption.RewardID).
				UpdateColumn("stock", gorm.Expr("stock + ?", redemption.Quantity)).Error; err != nil {
				return err
			}
			// The debit no longer pays for anything.
			if err := tx.Model(&models.Transaction{}).
				Where("redemption_id = ? AND type = ?", redemption.ID, models.TransactionRedeem).
				Update("status", models.TransactionFailed).Error; err != nil {
				return err
			}
		}

		rewardName := "your reward"
		if redemption.Reward != nil {
			rewardName = redemption.Reward.Name
		}
		n := noticeFor(status, rewardName)
		if err := notify(tx, redemption.UserID, n.kind, n.title, n.message, "/rewards"); err != nil {
			return err
		}

		redemption.Status = status
		if txHash != "" {
			redemption.TxHash = txHash
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("redemption status updated",
		zap.String("redemption_id", redemption.ID),
		zap.String("status", string(status)))

	return &redemption, nil
}

func (s *RedemptionService) List(ctx context.Context, filter RedemptionFilter) ([]models.Redemption, int64, error) {
	var redemptions []models.Redemption
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Redemption{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("User").Preload("Reward").
		Order("created_at desc").
		Limit(filter.Limit).
		Offset(offset).
		Find(&redemptions).Error
	if err != nil {
		return nil, 0, err
	}
	return redemptions, total, nil
}

func (s *RedemptionService) ListForUser(ctx context.Context, userID string, page, limit int) ([]models.Redemption, int64, error) {
	return s.List(ctx, RedemptionFilter{UserID: userID, Page: page, Limit: limit})
}

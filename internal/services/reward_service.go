package services

import (
	"context"
	"errors"

	"gcore-rewards-backend/internal/models"

	"gorm.io/gorm"
)

type RewardFilter struct {
	Category        string
	Search          string
	IncludeInactive bool
	Page            int
	Limit           int
}

type RewardInput struct {
	Name        string
	Description string
	Cost        int64
	Stock       int64
	Category    string
	ImageURL    string
	IsActive    *bool
}

type RewardUpdate struct {
	Name        *string
	Description *string
	Cost        *int64
	Stock       *int64
	Category    *string
	ImageURL    *string
	IsActive    *bool
}

type RewardService struct {
	db *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{db: db}
}

// FindRewards lists the catalogue cheapest first.
func (s *RewardService) FindRewards(ctx context.Context, filter RewardFilter) ([]models.Reward, int64, error) {
	var rewards []models.Reward
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Reward{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("cost asc").Order("name asc").Limit(filter.Limit).Offset(offset).Find(&rewards).Error; err != nil {
		return nil, 0, err
	}
	return rewards, total, nil
}

func (s *RewardService) Get(ctx context.Context, id string) (*models.Reward, error) {
	var reward models.Reward
	if err := s.db.WithContext(ctx).First(&reward, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	return &reward, nil
}

func (s *RewardService) Create(ctx context.Context, in RewardInput) (*models.Reward, error) {
	if in.Cost <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.Stock < 0 {
		return nil, ErrInvalidQuantity
	}

	reward := &models.Reward{
		Name:        in.Name,
		Description: in.Description,
		Cost:        in.Cost,
		Stock:       in.Stock,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(reward).Error; err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *RewardService) Update(ctx context.Context, id string, in RewardUpdate) (*models.Reward, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Cost != nil {
		if *in.Cost <= 0 {
			return nil, ErrInvalidAmount
		}
		updates["cost"] = *in.Cost
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, ErrInvalidQuantity
		}
		updates["stock"] = *in.Stock
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	reward, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return reward, nil
	}

	if err := s.db.WithContext(ctx).Model(reward).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a reward. Rewards with redemption history are only
// deactivated so the history keeps its reference. It reports whether the
// row was hard-deleted.
func (s *RewardService) Delete(ctx context.Context, id string) (bool, error) {
	hard := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}

		var redemptions int64
		if err := tx.Model(&models.Redemption{}).Where("reward_id = ?", id).Count(&redemptions).Error; err != nil {
			return err
		}

		if redemptions > 0 {
			return tx.Model(&reward).Update("is_active", false).Error
		}
		hard = true
		return tx.Delete(&reward).Error
	})
	return hard, err
}

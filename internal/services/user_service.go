package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gcore-rewards-backend/internal/chain"
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userCacheTTL = time.Hour

type UserService struct {
	db    *gorm.DB
	cache *redis.Client
}

// NewUserService builds a UserService. cache may be nil.
func NewUserService(db *gorm.DB, cache *redis.Client) *UserService {
	return &UserService{db: db, cache: cache}
}

type UserFilter struct {
	Status *models.UserStatus
	Role   *models.Role
	Search string
	Page   int
	Limit  int
}

type ProfileUpdate struct {
	Name             *string
	Email            *string
	CollegeEmail     *string
	RollNo           *string
	Year             *string
	Branch           *string
	CodeforcesHandle *string
}

func cacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// FindOrCreateByWallet returns the user owning address, creating it on first
// sight. The unique index on wallet_address makes concurrent calls converge.
func (s *UserService) FindOrCreateByWallet(ctx context.Context, address string) (*models.User, error) {
	addr, err := chain.Normalize(address)
	if err != nil {
		return nil, ErrInvalidAddress
	}

	var user models.User
	err = s.db.WithContext(ctx).
		Where(models.User{WalletAddress: addr}).
		Attrs(models.User{Role: models.RoleUser, Status: models.UserStatusPending}).
		FirstOrCreate(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the insert race; the row exists now.
		err = s.db.WithContext(ctx).Where("wallet_address = ?", addr).First(&user).Error
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, cacheKey(id)).Result(); err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return &user, nil
			}
		}
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(user); err == nil {
			s.cache.Set(ctx, cacheKey(id), data, userCacheTTL)
		}
	}
	return &user, nil
}

// FindByWallet loads a user with their 20 latest transactions and activities.
func (s *UserService) FindByWallet(ctx context.Context, address string) (*models.User, error) {
	addr, err := chain.Normalize(address)
	if err != nil {
		return nil, ErrInvalidAddress
	}

	var user models.User
	err = s.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Limit(20)
		}).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Limit(20)
		}).
		Where("wallet_address = ?", addr).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindUsers(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := s.db.WithContext(ctx).Model(&models.User{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR wallet_address LIKE ? OR roll_no LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateProfile applies self-service edits. A rejected user who edits their
// profile goes back to PENDING review.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*models.User, error) {
	updates := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("name", in.Name)
	set("email", in.Email)
	set("college_email", in.CollegeEmail)
	set("roll_no", in.RollNo)
	set("year", in.Year)
	set("branch", in.Branch)
	set("codeforces_handle", in.CodeforcesHandle)

	return s.update(ctx, id, func(user *models.User) (map[string]interface{}, error) {
		if user.Status == models.UserStatusRejected {
			updates["status"] = models.UserStatusPending
		}
		return updates, nil
	})
}

// UpdateStatus records an admin review decision and tells the user.
func (s *UserService) UpdateStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error) {
	if status != models.UserStatusApproved && status != models.UserStatusRejected && status != models.UserStatusPending {
		return nil, ErrInvalidStatus
	}

	return s.update(ctx, id, func(user *models.User) (map[string]interface{}, error) {
		return map[string]interface{}{"status": status}, nil
	}, func(tx *gorm.DB, user *models.User) error {
		switch status {
		case models.UserStatusApproved:
			return notify(tx, user.ID, models.NotificationSuccess, "Registration Approved",
				"Your registration has been approved. You can now join events.", "/events")
		case models.UserStatusRejected:
			return notify(tx, user.ID, models.NotificationWarning, "Registration Rejected",
				"Your registration was rejected. Update your profile to request another review.", "/profile")
		}
		return nil
	})
}

// UpdateRole changes a user's role. Only super admins may do this.
func (s *UserService) UpdateRole(ctx context.Context, actorRole models.Role, id string, role models.Role) (*models.User, error) {
	if actorRole != models.RoleSuperAdmin {
		return nil, ErrSuperAdminOnly
	}
	if role != models.RoleUser && role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return nil, ErrInvalidRole
	}

	return s.update(ctx, id, func(user *models.User) (map[string]interface{}, error) {
		return map[string]interface{}{"role": role}, nil
	})
}

// update applies a versioned write to one user row inside a transaction.
func (s *UserService) update(
	ctx context.Context,
	id string,
	build func(user *models.User) (map[string]interface{}, error),
	after ...func(tx *gorm.DB, user *models.User) error,
) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		updates, err := build(&user)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}

		currentVersion := user.Version
		updates["version"] = currentVersion + 1

		result := tx.Model(&user).Where("version = ?", currentVersion).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOptimisticLock
		}

		for _, fn := range after {
			if err := fn(tx, &user); err != nil {
				return err
			}
		}
		return tx.First(&user, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	logger.Log.Info("user updated", zap.String("user_id", id))
	return &user, nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Del(ctx, cacheKey(id))
	}
}

// LedgerBalance is the off-chain mirror of a user's token balance: completed
// earnings minus redemptions that have not failed.
func (s *UserService) LedgerBalance(ctx context.Context, userID string) (int64, error) {
	var row struct {
		Earned   int64
		Redeemed int64
	}
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select(
			"COALESCE(SUM(CASE WHEN type = ? AND status = ? THEN amount ELSE 0 END), 0) AS earned, "+
				"COALESCE(SUM(CASE WHEN type = ? AND status <> ? THEN amount ELSE 0 END), 0) AS redeemed",
			models.TransactionEarn, models.TransactionCompleted,
			models.TransactionRedeem, models.TransactionFailed,
		).
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.Earned - row.Redeemed, nil
}

package services

import (
	"context"
	"sort"
	"time"

	"gcore-rewards-backend/internal/chain"
	"gcore-rewards-backend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LeaderboardQuery struct {
	Timeframe string // all, month, week
	Category  string // all or an activity type
	Page      int
	Limit     int
}

type LeaderboardUser struct {
	ID            string `json:"id"`
	WalletAddress string `json:"walletAddress"`
	Name          string `json:"name"`
}

type LeaderboardEntry struct {
	Rank             int             `json:"rank"`
	User             LeaderboardUser `json:"user"`
	TotalTokens      decimal.Decimal `json:"totalTokens"`
	BalanceAvailable bool            `json:"balanceAvailable"`
	TotalActivities  int             `json:"totalActivities"`
	TotalPoints      int64           `json:"totalPoints"`
}

type LeaderboardPage struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
}

type LeaderboardService struct {
	db      *gorm.DB
	gateway chain.Gateway
	log     *zap.Logger
	now     func() time.Time
}

func NewLeaderboardService(db *gorm.DB, gateway chain.Gateway, log *zap.Logger) *LeaderboardService {
	return &LeaderboardService{db: db, gateway: gateway, log: log, now: time.Now}
}

func (s *LeaderboardService) since(timeframe string) *time.Time {
	var t time.Time
	switch timeframe {
	case "month":
		t = s.now().AddDate(0, -1, 0)
	case "week":
		t = s.now().AddDate(0, 0, -7)
	default:
		return nil
	}
	return &t
}

// Leaderboard ranks every user by on-chain balance, then by verified points
// in the window. Balances are read one by one; a failed read ranks the user
// at zero and marks the balance unavailable.
func (s *LeaderboardService) Leaderboard(ctx context.Context, q LeaderboardQuery) (*LeaderboardPage, error) {
	if q.Category != "" && q.Category != "all" && !models.ActivityType(q.Category).Valid() {
		return nil, ErrInvalidActivityType
	}

	since := s.since(q.Timeframe)
	var users []models.User
	err := s.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			db = db.Where("verified_at IS NOT NULL")
			if since != nil {
				db = db.Where("verified_at >= ?", *since)
			}
			if q.Category != "" && q.Category != "all" {
				db = db.Where("type = ?", q.Category)
			}
			return db
		}).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entry := LeaderboardEntry{
			User:            LeaderboardUser{ID: u.ID, WalletAddress: u.WalletAddress, Name: u.Name},
			TotalTokens:     decimal.Zero,
			TotalActivities: len(u.Activities),
		}
		for _, a := range u.Activities {
			entry.TotalPoints += a.Points
		}

		balance, err := s.gateway.GetBalance(ctx, u.WalletAddress)
		if err != nil {
			s.log.Warn("balance unavailable for leaderboard",
				zap.String("wallet", u.WalletAddress), zap.Error(err))
		} else {
			entry.TotalTokens = balance.Tokens()
			entry.BalanceAvailable = true
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if c := entries[i].TotalTokens.Cmp(entries[j].TotalTokens); c != 0 {
			return c > 0
		}
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	start := (q.Page - 1) * q.Limit
	if start > len(entries) {
		start = len(entries)
	}
	end := start + q.Limit
	if end > len(entries) {
		end = len(entries)
	}

	return &LeaderboardPage{
		Entries: entries[start:end],
		Total:   len(entries),
		Page:    q.Page,
		Limit:   q.Limit,
	}, nil
}

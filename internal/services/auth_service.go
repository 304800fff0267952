package services

import (
	"context"
	"time"

	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/utils"
)

type AuthService struct {
	users    *UserService
	tokens   *utils.TokenManager
	denylist *TokenDenylist
}

func NewAuthService(users *UserService, tokens *utils.TokenManager, denylist *TokenDenylist) *AuthService {
	return &AuthService{users: users, tokens: tokens, denylist: denylist}
}

// Connect signs a wallet in, registering it on first use.
func (s *AuthService) Connect(ctx context.Context, walletAddress string) (string, *models.User, error) {
	user, err := s.users.FindOrCreateByWallet(ctx, walletAddress)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.WalletAddress, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout denylists the token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, tokenString string, expiresAt time.Time) error {
	return s.denylist.Add(ctx, tokenString, time.Until(expiresAt))
}

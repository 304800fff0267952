// Package chaintest provides an in-memory chain.Gateway for tests.
package chaintest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gcore-rewards-backend/internal/chain"
)

var ErrUnavailable = errors.New("chain unavailable")

type MintCall struct {
	Address      string
	Amount       int64
	ActivityType string
	Description  string
}

type RedeemCall struct {
	Address  string
	RewardID string
	Amount   int64
	Quantity int64
}

// Gateway records calls and keeps per-address balances in points.
// Failing addresses and toggles make the next calls return ErrUnavailable.
type Gateway struct {
	mu sync.Mutex

	Balances        map[string]int64
	FailMintFor     map[string]bool
	FailBalanceFor  map[string]bool
	FailAllMints    bool
	FailAllRedeems  bool
	FailAllBalances bool

	Mints   []MintCall
	Redeems []RedeemCall
	seq     int
}

var _ chain.Gateway = (*Gateway)(nil)

func New() *Gateway {
	return &Gateway{
		Balances:       map[string]int64{},
		FailMintFor:    map[string]bool{},
		FailBalanceFor: map[string]bool{},
	}
}

func (g *Gateway) GetBalance(ctx context.Context, address string) (chain.Balance, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := strings.ToLower(address)
	if g.FailAllBalances || g.FailBalanceFor[key] {
		return chain.Balance{}, ErrUnavailable
	}
	points := g.Balances[key]
	return chain.Balance{
		Raw:       chain.ToWei(points, chain.DefaultDecimals).String(),
		Formatted: fmt.Sprintf("%d", points),
	}, nil
}

func (g *Gateway) Mint(ctx context.Context, address string, amount int64, activityType, description string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := strings.ToLower(address)
	if g.FailAllMints || g.FailMintFor[key] {
		return "", ErrUnavailable
	}
	g.Mints = append(g.Mints, MintCall{address, amount, activityType, description})
	g.Balances[key] += amount
	return g.nextHash(), nil
}

func (g *Gateway) Redeem(ctx context.Context, address, rewardID string, amount, quantity int64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailAllRedeems {
		return "", ErrUnavailable
	}
	g.Redeems = append(g.Redeems, RedeemCall{address, rewardID, amount, quantity})
	g.Balances[strings.ToLower(address)] -= amount
	return g.nextHash(), nil
}

func (g *Gateway) MintCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Mints)
}

func (g *Gateway) RedeemCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Redeems)
}

func (g *Gateway) nextHash() string {
	g.seq++
	return fmt.Sprintf("0x%064x", g.seq)
}

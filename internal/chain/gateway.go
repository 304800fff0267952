// Package chain adapts the G-CORE token contracts to the ledger services.
//
// Ledger amounts are integer points. Conversion to the token's base units
// happens only inside this package.
package chain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAddress = errors.New("invalid wallet address")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrReverted       = errors.New("transaction reverted")
)

// Gateway is the ledger's only view of the chain. Mint and Redeem block until
// the transaction is mined and return its hash.
type Gateway interface {
	GetBalance(ctx context.Context, address string) (Balance, error)
	Mint(ctx context.Context, address string, amount int64, activityType, description string) (string, error)
	Redeem(ctx context.Context, address, rewardID string, amount, quantity int64) (string, error)
}

type Balance struct {
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
}

// Tokens parses the formatted balance. Unparseable values count as zero.
func (b Balance) Tokens() decimal.Decimal {
	d, err := decimal.NewFromString(b.Formatted)
	if err != nil {
		return decimal.Zero
	}
	return d
}

package chain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const DefaultDecimals uint8 = 18

// ToWei scales whole points to the token's base units.
func ToWei(points int64, decimals uint8) *big.Int {
	return decimal.NewFromInt(points).Shift(int32(decimals)).BigInt()
}

// FormatUnits renders base units as a decimal token amount.
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return "0"
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).String()
}

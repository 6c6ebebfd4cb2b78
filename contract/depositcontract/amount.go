package depositcontract

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a human readable token amount into the integer amount
// of the token's smallest unit.
func ParseAmount(amount string, decimals int) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	if d.IsNegative() {
		return nil, fmt.Errorf("invalid amount %q: negative", amount)
	}

	d = d.Shift(int32(decimals))
	if !d.Equal(d.Truncate(0)) {
		return nil, fmt.Errorf("invalid amount %q: more than %d decimals", amount, decimals)
	}

	return d.BigInt(), nil
}

// ParseUint256 parses a decimal or 0x-prefixed hex number.
func ParseUint256(s string) (*big.Int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return hexutil.DecodeBig(s)
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid uint256 %q", s)
	}

	return n, nil
}

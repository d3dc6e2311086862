package transform

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/shopspring/decimal"
)

// SuiDecimals is the number of MIST decimals in one SUI.
const SuiDecimals = 9

var mistPerSui = decimal.New(1, SuiDecimals)

// MistToSui renders an amount of MIST as the shortest decimal SUI string.
func MistToSui(mist uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(mist), -SuiDecimals).String()
}

// SuiToMist parses a decimal SUI amount into MIST, truncating toward zero.
func SuiToMist(sui string) (uint64, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(sui))
	if err != nil {
		return 0, errors.Wrapf(errs.InvalidArgument, "invalid price %q", sui)
	}
	if amount.IsNegative() {
		return 0, errors.Wrapf(errs.InvalidArgument, "negative price %q", sui)
	}
	mist := amount.Mul(mistPerSui).Truncate(0).BigInt()
	if !mist.IsUint64() {
		return 0, errors.Wrapf(errs.OverflowUint64, "price %q", sui)
	}
	return mist.Uint64(), nil
}

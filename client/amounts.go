/*

Amount and slippage math. All chain-facing values are big.Int base units;
decimal.Decimal is only used for the intermediate percentage arithmetic so
nothing is lost to floating point.

*/

package client

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSlippage = errors.New("slippage tolerance is invalid")
	ErrAmountNil       = errors.New("amount is nil")
	ErrAmountNegative  = errors.New("amount is negative")
)

var oneHundred = decimal.NewFromInt(100)

func validateSlippage(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThanOrEqual(oneHundred) {
		return fmt.Errorf("%w: %s%% (must be in [0, 100))", ErrInvalidSlippage, percent)
	}
	return nil
}

func validateAmount(amount *big.Int) error {
	if amount == nil {
		return ErrAmountNil
	}
	if amount.Sign() < 0 {
		return ErrAmountNegative
	}
	return nil
}

// MinimumOut applies the slippage percentage below an expected output,
// rounding down: the bound a swap-in reverts under.
func MinimumOut(expected *big.Int, slippagePercent decimal.Decimal) (*big.Int, error) {
	if err := validateAmount(expected); err != nil {
		return nil, err
	}
	if err := validateSlippage(slippagePercent); err != nil {
		return nil, err
	}
	factor := decimal.NewFromInt(1).Sub(slippagePercent.Div(oneHundred))
	return decimal.NewFromBigInt(expected, 0).Mul(factor).Floor().BigInt(), nil
}

// MaximumIn applies the slippage percentage above an expected input,
// rounding up: the bound a swap-out reverts over.
func MaximumIn(expected *big.Int, slippagePercent decimal.Decimal) (*big.Int, error) {
	if err := validateAmount(expected); err != nil {
		return nil, err
	}
	if err := validateSlippage(slippagePercent); err != nil {
		return nil, err
	}
	factor := decimal.NewFromInt(1).Add(slippagePercent.Div(oneHundred))
	return decimal.NewFromBigInt(expected, 0).Mul(factor).Ceil().BigInt(), nil
}

// ToBaseUnits converts a human-readable amount into base units for a token
// with the given decimals, truncating anything below one base unit.
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (*big.Int, error) {
	if amount.IsNegative() {
		return nil, ErrAmountNegative
	}
	return amount.Shift(int32(decimals)).Floor().BigInt(), nil
}

// FromBaseUnits converts base units into a human-readable amount for a token
// with the given decimals.
func FromBaseUnits(amount *big.Int, decimals uint8) (decimal.Decimal, error) {
	if amount == nil {
		return decimal.Decimal{}, ErrAmountNil
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)), nil
}

package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
)

// AMM binds one deployed market-maker instance. Each AMM trades two pairs
// per future: pair 0 is PT/underlying, pair 1 is PT/FYT.
type AMM struct {
	contract
}

func NewAMM(address common.Address, backend bind.ContractBackend) *AMM {
	return &AMM{newContract("amm", address, ammABI, backend)}
}

// GetPairTokenAddress returns the token at tokenID (0 or 1) of the pair.
func (a *AMM) GetPairTokenAddress(opts *bind.CallOpts, pairID uint64, tokenID *big.Int) (common.Address, error) {
	out, err := a.call(opts, "getPairTokenAddress", pairID, tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

// GetPairTokenBalance returns the pool balance of the token at tokenID.
func (a *AMM) GetPairTokenBalance(opts *bind.CallOpts, pairID uint64, tokenID *big.Int) (*big.Int, error) {
	out, err := a.call(opts, "getPairTokenBalance", pairID, tokenID)
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

// GetLPTokenAddress returns the LP token minted for the pair.
func (a *AMM) GetLPTokenAddress(opts *bind.CallOpts, pairID uint64) (common.Address, error) {
	out, err := a.call(opts, "getLPTokenAddress", pairID)
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

// GetTotalSupplyWithTokenID returns the LP token total supply for the pair.
func (a *AMM) GetTotalSupplyWithTokenID(opts *bind.CallOpts, pairID uint64) (*big.Int, error) {
	out, err := a.call(opts, "getTotalSupplyWithTokenID", pairID)
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

// GetFutureAddress returns the future vault this AMM trades.
func (a *AMM) GetFutureAddress(opts *bind.CallOpts) (common.Address, error) {
	out, err := a.call(opts, "getFutureAddress")
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

// GetUnderlyingOfIBTAddress returns the underlying asset of the vault's IBT.
func (a *AMM) GetUnderlyingOfIBTAddress(opts *bind.CallOpts) (common.Address, error) {
	out, err := a.call(opts, "getUnderlyingOfIBTAddress")
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

// GetSpotPrice returns the 1e18-scaled price of tokenOut per tokenIn on the pair.
func (a *AMM) GetSpotPrice(opts *bind.CallOpts, pairID uint64, tokenIn, tokenOut *big.Int) (*big.Int, error) {
	out, err := a.call(opts, "getSpotPrice", pairID, tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

// CurrentPeriodIndex returns the AMM's running period index.
func (a *AMM) CurrentPeriodIndex(opts *bind.CallOpts) (*big.Int, error) {
	out, err := a.call(opts, "currentPeriodIndex")
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

// Paused reports whether trading is halted on this AMM.
func (a *AMM) Paused(opts *bind.CallOpts) (bool, error) {
	out, err := a.call(opts, "paused")
	if err != nil {
		return false, err
	}
	return asBool(out[0]), nil
}

// AddLiquidity mints poolAmountOut LP tokens against at most maxAmountsIn of
// the pair tokens.
func (a *AMM) AddLiquidity(opts *bind.TransactOpts, pairID uint64, poolAmountOut *big.Int, maxAmountsIn []*big.Int) (*coretypes.Transaction, error) {
	return a.transact(opts, "addLiquidity", pairID, poolAmountOut, maxAmountsIn)
}

// RemoveLiquidity burns poolAmountIn LP tokens for at least minAmountsOut of
// the pair tokens.
func (a *AMM) RemoveLiquidity(opts *bind.TransactOpts, pairID uint64, poolAmountIn *big.Int, minAmountsOut []*big.Int) (*coretypes.Transaction, error) {
	return a.transact(opts, "removeLiquidity", pairID, poolAmountIn, minAmountsOut)
}

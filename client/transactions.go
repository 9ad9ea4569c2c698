package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"github.com/APWine/apwine-sdk/contracts"
	"github.com/APWine/apwine-sdk/fetcher"
	"github.com/APWine/apwine-sdk/internal/logger"
	"github.com/APWine/apwine-sdk/swap"
	"github.com/APWine/apwine-sdk/types"
)

var txLogger = logger.GetForComponent("transactions")

var (
	ErrNothingToSwap   = errors.New("source and target token kinds are identical")
	ErrBadLiquidityArg = errors.New("liquidity amounts must cover both pair tokens")
)

// defaultSwapDeadline bounds how long a submitted swap stays executable.
const defaultSwapDeadline = 20 * time.Minute

type txConfig struct {
	autoApprove bool
}

// TxOption tunes one transaction-issuing operation.
type TxOption func(*txConfig)

// WithAutoApprove makes the operation submit an approval sized to the
// requested amount before the primary transaction. The approval is
// unconditional: it is issued even when the existing allowance already
// covers the amount. Callers who want to skip redundant approvals use
// ApproveAtLeast themselves instead.
func WithAutoApprove() TxOption {
	return func(c *txConfig) { c.autoApprove = true }
}

func applyTxOptions(opts []TxOption) txConfig {
	var cfg txConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Approve submits an ERC-20 approval of amount for spender.
func (s *Session) Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*coretypes.Transaction, error) {
	_, capability := s.snapshot()
	transactor, err := capability.Transactor(ctx)
	if err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}
	if err := validateAmount(amount); err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}
	tx, err := contracts.NewERC20(token, capability.Backend()).Approve(transactor, spender, amount)
	if err != nil {
		return nil, err
	}
	txLogger.Debug().Str("token", token.Hex()).Str("spender", spender.Hex()).Str("tx", tx.Hash().Hex()).Msg("approval submitted")
	return tx, nil
}

// ApproveAtLeast is the check-then-approve variant: it reads the current
// allowance first and submits nothing when it already covers amount, in
// which case the returned transaction is nil.
func (s *Session) ApproveAtLeast(ctx context.Context, token, spender common.Address, amount *big.Int) (*coretypes.Transaction, error) {
	_, capability := s.snapshot()
	transactor, err := capability.Transactor(ctx)
	if err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}
	if err := validateAmount(amount); err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}
	erc20 := contracts.NewERC20(token, capability.Backend())
	allowance, err := erc20.Allowance(capability.CallOpts(ctx), transactor.From, spender)
	if err != nil {
		return nil, err
	}
	if allowance.Cmp(amount) >= 0 {
		return nil, nil
	}
	return erc20.Approve(transactor, spender, amount)
}

// UpdateAllowance moves the allowance for spender to exactly target,
// submitting nothing when it already matches (nil transaction).
func (s *Session) UpdateAllowance(ctx context.Context, token, spender common.Address, target *big.Int) (*coretypes.Transaction, error) {
	_, capability := s.snapshot()
	transactor, err := capability.Transactor(ctx)
	if err != nil {
		return nil, fmt.Errorf("update allowance: %w", err)
	}
	if err := validateAmount(target); err != nil {
		return nil, fmt.Errorf("update allowance: %w", err)
	}
	erc20 := contracts.NewERC20(token, capability.Backend())
	allowance, err := erc20.Allowance(capability.CallOpts(ctx), transactor.From, spender)
	if err != nil {
		return nil, err
	}
	if allowance.Cmp(target) == 0 {
		return nil, nil
	}
	return erc20.Approve(transactor, spender, target)
}

// Deposit locks amount of the future's IBT through the controller. With
// WithAutoApprove the IBT approval for the controller is submitted first.
func (s *Session) Deposit(ctx context.Context, future common.Address, amount *big.Int, opts ...TxOption) (*coretypes.Transaction, error) {
	handles, capability := s.snapshot()
	transactor, err := capability.Transactor(ctx)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	if err := validateAmount(amount); err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	if handles.controller == nil {
		return nil, fmt.Errorf("deposit: %w", types.ErrNotInitialized)
	}

	if applyTxOptions(opts).autoApprove {
		vault := contracts.NewFutureVault(future, capability.Backend())
		ibt, err := vault.GetIBTAddress(capability.CallOpts(ctx))
		if err != nil {
			return nil, err
		}
		if _, err := contracts.NewERC20(ibt, capability.Backend()).Approve(transactor, handles.controller.Address(), amount); err != nil {
			return nil, err
		}
	}

	tx, err := handles.controller.Deposit(transactor, future, amount)
	if err != nil {
		return nil, err
	}
	txLogger.Info().Str("future", future.Hex()).Str("amount", amount.String()).Str("tx", tx.Hash().Hex()).Msg("deposit submitted")
	return tx, nil
}

// Withdraw redeems amount from the future through the controller. With
// WithAutoApprove the PT approval for the controller is submitted first.
func (s *Session) Withdraw(ctx context.Context, future common.Address, amount *big.Int, opts ...TxOption) (*coretypes.Transaction, error) {
	handles, capability := s.snapshot()
	transactor, err := capability.Transactor(ctx)
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	if err := validateAmount(amount); err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	if handles.controller == nil {
		return nil, fmt.Errorf("withdraw: %w", types.ErrNotInitialized)
	}

	if applyTxOptions(opts).autoApprove {
		vault := contracts.NewFutureVault(future, capability.Backend())
		pt, err := vault.GetPTAddress(capability.CallOpts(ctx))
		if err != nil {
			return nil, err
		}
		if _, err := contracts.NewERC20(pt, capability.Backend()).Approve(transactor, handles.controller.Address(), amount); err != nil {
			return nil, err
		}
	}

	tx, err := handles.controller.Withdraw(transactor, future, amount)
	if err != nil {
		return nil, err
	}
	txLogger.Info().Str("future", future.Hex()).Str("amount", amount.String()).Str("tx", tx.Hash().Hex()).Msg("withdraw submitted")
	return tx, nil
}

// AddLiquidity mints poolAmountOut LP tokens on the AMM pair. With
// WithAutoApprove both pair tokens are approved for the AMM first, each
// sized to its maxAmountsIn entry.
func (s *Session) AddLiquidity(ctx context.Context, amm common.Address, pairID uint64, poolAmountOut *big.Int, maxAmountsIn []*big.Int, opts ...TxOption) (*coretypes.Transaction, error) {
	_, capability := s.snapshot()
	transactor, err := capability.Transactor(ctx)
	if err != nil {
		return nil, fmt.Errorf("add liquidity: %w", err)
	}
	if err := validateAmount(poolAmountOut); err != nil {
		return nil, fmt.Errorf("add liquidity: %w", err)
	}
	if len(maxAmountsIn) != 2 {
		return nil, fmt.Errorf("add liquidity: %w: got %d", ErrBadLiquidityArg, len(maxAmountsIn))
	}

	handle := contracts.NewAMM(amm, capability.Backend())
	if applyTxOptions(opts).autoApprove {
		for tokenID := int64(0); tokenID < 2; tokenID++ {
			token, err := handle.GetPairTokenAddress(capability.CallOpts(ctx), pairID, big.NewInt(tokenID))
			if err != nil {
				return nil, err
			}
			if _, err := contracts.NewERC20(token, capability.Backend()).Approve(transactor, amm, maxAmountsIn[tokenID]); err != nil {
				return nil, err
			}
		}
	}

	return handle.AddLiquidity(transactor, pairID, poolAmountOut, maxAmountsIn)
}

// RemoveLiquidity burns poolAmountIn LP tokens on the AMM pair. With
// WithAutoApprove the LP token is approved for the AMM first.
func (s *Session) RemoveLiquidity(ctx context.Context, amm common.Address, pairID uint64, poolAmountIn *big.Int, minAmountsOut []*big.Int, opts ...TxOption) (*coretypes.Transaction, error) {
	_, capability := s.snapshot()
	transactor, err := capability.Transactor(ctx)
	if err != nil {
		return nil, fmt.Errorf("remove liquidity: %w", err)
	}
	if err := validateAmount(poolAmountIn); err != nil {
		return nil, fmt.Errorf("remove liquidity: %w", err)
	}
	if len(minAmountsOut) != 2 {
		return nil, fmt.Errorf("remove liquidity: %w: got %d", ErrBadLiquidityArg, len(minAmountsOut))
	}

	handle := contracts.NewAMM(amm, capability.Backend())
	if applyTxOptions(opts).autoApprove {
		lpToken, err := handle.GetLPTokenAddress(capability.CallOpts(ctx), pairID)
		if err != nil {
			return nil, err
		}
		if _, err := contracts.NewERC20(lpToken, capability.Backend()).Approve(transactor, amm, poolAmountIn); err != nil {
			return nil, err
		}
	}

	return handle.RemoveLiquidity(transactor, pairID, poolAmountIn, minAmountsOut)
}

// SwapParams describes one swap on an AMM. Amount is the exact input for
// SwapIn and the exact output for SwapOut. Zero-value Recipient defaults to
// the session's default user; zero-value Deadline defaults to 20 minutes
// out; nil Slippage defaults to the session tolerance.
type SwapParams struct {
	AMM      common.Address
	From, To types.TokenKind
	Amount   *big.Int

	Recipient common.Address
	Deadline  time.Time
	Slippage  *decimal.Decimal
}

// SwapIn trades exactly params.Amount of the source kind for the target
// kind, bounding the output by the slippage tolerance under the current
// spot price. With WithAutoApprove the source token is approved for the
// router first, sized to params.Amount.
func (s *Session) SwapIn(ctx context.Context, params SwapParams, opts ...TxOption) (*coretypes.Transaction, error) {
	handles, capability := s.snapshot()
	transactor, err := capability.Transactor(ctx)
	if err != nil {
		return nil, fmt.Errorf("swap in: %w", err)
	}
	route, slippage, err := s.prepareSwap(params)
	if err != nil {
		return nil, fmt.Errorf("swap in: %w", err)
	}

	spot, err := fetcher.SpotPrice(ctx, capability.Backend(), params.AMM, route)
	if err != nil {
		return nil, err
	}
	expectedOut := new(big.Int).Mul(params.Amount, spot)
	expectedOut.Div(expectedOut, priceScale())
	minOut, err := MinimumOut(expectedOut, slippage)
	if err != nil {
		return nil, fmt.Errorf("swap in: %w", err)
	}

	if applyTxOptions(opts).autoApprove {
		if err := s.approveSwapSource(ctx, capability, transactor, params, route, params.Amount, handles.router.Address()); err != nil {
			return nil, err
		}
	}

	tx, err := handles.router.SwapExactAmountIn(
		transactor, params.AMM, route.PairPath(), route.TokenPath(),
		params.Amount, minOut, s.swapRecipient(params, transactor.From), swapDeadline(params),
	)
	if err != nil {
		return nil, err
	}
	txLogger.Info().Str("amm", params.AMM.Hex()).Str("from", params.From.String()).Str("to", params.To.String()).
		Str("amountIn", params.Amount.String()).Str("minOut", minOut.String()).Str("tx", tx.Hash().Hex()).Msg("swap in submitted")
	return tx, nil
}

// SwapOut trades the source kind for exactly params.Amount of the target
// kind, bounding the input by the slippage tolerance under the current spot
// price. With WithAutoApprove the source token is approved for the router
// first, sized to the maximum input.
func (s *Session) SwapOut(ctx context.Context, params SwapParams, opts ...TxOption) (*coretypes.Transaction, error) {
	handles, capability := s.snapshot()
	transactor, err := capability.Transactor(ctx)
	if err != nil {
		return nil, fmt.Errorf("swap out: %w", err)
	}
	route, slippage, err := s.prepareSwap(params)
	if err != nil {
		return nil, fmt.Errorf("swap out: %w", err)
	}

	spot, err := fetcher.SpotPrice(ctx, capability.Backend(), params.AMM, route)
	if err != nil {
		return nil, err
	}
	if spot.Sign() == 0 {
		return nil, fmt.Errorf("swap out: spot price is zero on %s", params.AMM.Hex())
	}
	expectedIn := new(big.Int).Mul(params.Amount, priceScale())
	expectedIn.Div(expectedIn, spot)
	maxIn, err := MaximumIn(expectedIn, slippage)
	if err != nil {
		return nil, fmt.Errorf("swap out: %w", err)
	}

	if applyTxOptions(opts).autoApprove {
		if err := s.approveSwapSource(ctx, capability, transactor, params, route, maxIn, handles.router.Address()); err != nil {
			return nil, err
		}
	}

	tx, err := handles.router.SwapExactAmountOut(
		transactor, params.AMM, route.PairPath(), route.TokenPath(),
		maxIn, params.Amount, s.swapRecipient(params, transactor.From), swapDeadline(params),
	)
	if err != nil {
		return nil, err
	}
	txLogger.Info().Str("amm", params.AMM.Hex()).Str("from", params.From.String()).Str("to", params.To.String()).
		Str("amountOut", params.Amount.String()).Str("maxIn", maxIn.String()).Str("tx", tx.Hash().Hex()).Msg("swap out submitted")
	return tx, nil
}

func (s *Session) prepareSwap(params SwapParams) (swap.Route, decimal.Decimal, error) {
	if err := validateAmount(params.Amount); err != nil {
		return swap.Route{}, decimal.Decimal{}, err
	}
	route, err := swap.Resolve(params.From, params.To)
	if err != nil {
		return swap.Route{}, decimal.Decimal{}, err
	}
	if len(route.Hops) == 0 {
		return swap.Route{}, decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNothingToSwap, params.From)
	}
	slippage := s.SlippageTolerance()
	if params.Slippage != nil {
		slippage = *params.Slippage
	}
	return route, slippage, nil
}

// approveSwapSource resolves the route's source token address on the AMM and
// approves amount of it for the router.
func (s *Session) approveSwapSource(ctx context.Context, capability Capability, transactor *bind.TransactOpts, params SwapParams, route swap.Route, amount *big.Int, router common.Address) error {
	source, err := s.swapTokenAddress(ctx, capability, params.AMM, route.Path[0])
	if err != nil {
		return err
	}
	_, err = contracts.NewERC20(source, capability.Backend()).Approve(transactor, router, amount)
	return err
}

// swapTokenAddress maps a token kind onto its concrete address for the AMM's
// future vault.
func (s *Session) swapTokenAddress(ctx context.Context, capability Capability, amm common.Address, kind types.TokenKind) (common.Address, error) {
	handle := contracts.NewAMM(amm, capability.Backend())
	switch kind {
	case types.Underlying:
		return handle.GetUnderlyingOfIBTAddress(capability.CallOpts(ctx))
	case types.PrincipalToken, types.YieldToken:
		future, err := handle.GetFutureAddress(capability.CallOpts(ctx))
		if err != nil {
			return common.Address{}, err
		}
		vault := contracts.NewFutureVault(future, capability.Backend())
		if kind == types.PrincipalToken {
			return vault.GetPTAddress(capability.CallOpts(ctx))
		}
		period, err := vault.GetCurrentPeriodIndex(capability.CallOpts(ctx))
		if err != nil {
			return common.Address{}, err
		}
		return vault.GetFYTofPeriod(capability.CallOpts(ctx), period)
	default:
		return common.Address{}, fmt.Errorf("%w: %s", types.ErrInvalidTokenKind, kind)
	}
}

func (s *Session) swapRecipient(params SwapParams, signerFrom common.Address) common.Address {
	if params.Recipient != (common.Address{}) {
		return params.Recipient
	}
	if user := s.DefaultUser(); user != (common.Address{}) {
		return user
	}
	return signerFrom
}

func swapDeadline(params SwapParams) *big.Int {
	deadline := params.Deadline
	if deadline.IsZero() {
		deadline = time.Now().Add(defaultSwapDeadline)
	}
	return big.NewInt(deadline.Unix())
}

func priceScale() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
}

package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/APWine/apwine-sdk/contracts"
	"github.com/APWine/apwine-sdk/fetcher"
	"github.com/APWine/apwine-sdk/swap"
	"github.com/APWine/apwine-sdk/types"
)

// Read operations go through whichever capability is active, not forced to
// read-only: a read right after a signing operation observes the same
// capability. No consistency guarantee beyond latest remote state at call time.

// FetchFutureAggregate reads one future vault's summary.
func (s *Session) FetchFutureAggregate(ctx context.Context, future common.Address) (types.FutureAggregate, error) {
	_, capability := s.snapshot()
	return fetcher.FutureAggregate(ctx, capability.Backend(), future)
}

// FetchFutureAggregates reads every registered future vault's summary.
func (s *Session) FetchFutureAggregates(ctx context.Context) ([]types.FutureAggregate, error) {
	handles, _ := s.snapshot()
	return fetcher.FutureAggregates(ctx, handles.capability.Backend(), handles.registry.Address())
}

// FetchLPPool reads one AMM pair's liquidity pool snapshot.
func (s *Session) FetchLPPool(ctx context.Context, amm common.Address, pairID uint64) (types.LPPool, error) {
	_, capability := s.snapshot()
	return fetcher.LPPool(ctx, capability.Backend(), amm, pairID)
}

// FetchAMMs lists the registered AMMs with their future and paused flag.
func (s *Session) FetchAMMs(ctx context.Context) ([]types.AMMInfo, error) {
	handles, _ := s.snapshot()
	return fetcher.AMMList(ctx, handles.capability.Backend(), handles.ammRegistry.Address())
}

// FetchAMMForFuture resolves which AMM trades the given future vault.
func (s *Session) FetchAMMForFuture(ctx context.Context, future common.Address) (common.Address, error) {
	handles, capability := s.snapshot()
	return handles.ammRegistry.GetFutureAMMPool(capability.CallOpts(ctx), future)
}

// FetchAllowance reads owner's allowance for spender on token. A zero owner
// defaults to the session's default user.
func (s *Session) FetchAllowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	_, capability := s.snapshot()
	if owner == (common.Address{}) {
		owner = s.DefaultUser()
	}
	return contracts.NewERC20(token, capability.Backend()).Allowance(capability.CallOpts(ctx), owner, spender)
}

// FetchBalance reads account's balance on token. A zero account defaults to
// the session's default user.
func (s *Session) FetchBalance(ctx context.Context, token, account common.Address) (*big.Int, error) {
	_, capability := s.snapshot()
	if account == (common.Address{}) {
		account = s.DefaultUser()
	}
	return contracts.NewERC20(token, capability.Backend()).BalanceOf(capability.CallOpts(ctx), account)
}

// FetchSpotPrice resolves the swap route between the two kinds and composes
// the 1e18-scaled spot price along it.
func (s *Session) FetchSpotPrice(ctx context.Context, amm common.Address, from, to types.TokenKind) (*big.Int, error) {
	_, capability := s.snapshot()
	route, err := swap.Resolve(from, to)
	if err != nil {
		return nil, fmt.Errorf("spot price: %w", err)
	}
	return fetcher.SpotPrice(ctx, capability.Backend(), amm, route)
}

// HowToSwap exposes the path resolver's answer without touching the chain.
func (s *Session) HowToSwap(from, to types.TokenKind) (swap.Route, error) {
	return swap.Resolve(from, to)
}

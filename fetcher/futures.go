// Package fetcher composes several contract reads into one aggregate record.
// Functions are free-standing over a backend: they build fresh handles, fan
// out the independent field reads concurrently and fail on the first error.
// Nothing is cached; every call observes the latest remote state.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/APWine/apwine-sdk/contracts"
	"github.com/APWine/apwine-sdk/internal/logger"
	"github.com/APWine/apwine-sdk/types"
)

var futureLogger = logger.GetForComponent("future_fetcher")

var (
	ErrNilBackend = errors.New("backend cannot be nil")
	ErrOutOfRange = errors.New("remote value out of range")
)

// enumerationLimit caps how many registry entries one enumeration will walk.
// Counts are remote uint256 values; anything beyond the cap is treated as
// corrupt rather than fanned out.
const enumerationLimit = 100000

func enumerableCount(count *big.Int) (int, error) {
	if !count.IsInt64() || count.Int64() < 0 || count.Int64() > enumerationLimit {
		return 0, fmt.Errorf("%w: count %s", ErrOutOfRange, count)
	}
	return int(count.Int64()), nil
}

func callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

// FutureAggregate reads one future vault's summary in two concurrent stages:
// the vault's own fields first, then the fields keyed by what stage one found
// (current-period FYT, PT total supply).
func FutureAggregate(ctx context.Context, backend bind.ContractBackend, vaultAddr common.Address) (types.FutureAggregate, error) {
	if backend == nil {
		return types.FutureAggregate{}, ErrNilBackend
	}

	vault := contracts.NewFutureVault(vaultAddr, backend)
	aggregate := types.FutureAggregate{Address: vaultAddr}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		aggregate.Symbol, err = vault.Symbol(callOpts(groupCtx))
		return err
	})
	group.Go(func() (err error) {
		aggregate.PeriodDuration, err = vault.GetPeriodDuration(callOpts(groupCtx))
		return err
	})
	group.Go(func() (err error) {
		aggregate.CurrentPeriodIndex, err = vault.GetCurrentPeriodIndex(callOpts(groupCtx))
		return err
	})
	group.Go(func() (err error) {
		aggregate.IBT, err = vault.GetIBTAddress(callOpts(groupCtx))
		return err
	})
	group.Go(func() (err error) {
		aggregate.PT, err = vault.GetPTAddress(callOpts(groupCtx))
		return err
	})
	if err := group.Wait(); err != nil {
		futureLogger.Debug().Err(err).Str("vault", vaultAddr.Hex()).Msg("future aggregate read failed")
		return types.FutureAggregate{}, err
	}

	group, groupCtx = errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		aggregate.FYT, err = vault.GetFYTofPeriod(callOpts(groupCtx), aggregate.CurrentPeriodIndex)
		return err
	})
	group.Go(func() (err error) {
		pt := contracts.NewERC20(aggregate.PT, backend)
		aggregate.PTTotalSupply, err = pt.TotalSupply(callOpts(groupCtx))
		return err
	})
	if err := group.Wait(); err != nil {
		futureLogger.Debug().Err(err).Str("vault", vaultAddr.Hex()).Msg("future aggregate read failed")
		return types.FutureAggregate{}, err
	}

	return aggregate, nil
}

// FutureAggregates enumerates the registry's vaults and reads every summary
// concurrently. Results keep registry order.
func FutureAggregates(ctx context.Context, backend bind.ContractBackend, registryAddr common.Address) ([]types.FutureAggregate, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}

	registry := contracts.NewRegistry(registryAddr, backend)
	count, err := registry.FutureVaultCount(callOpts(ctx))
	if err != nil {
		return nil, err
	}
	total, err := enumerableCount(count)
	if err != nil {
		return nil, fmt.Errorf("futureVaultCount: %w", err)
	}

	aggregates := make([]types.FutureAggregate, total)
	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < total; i++ {
		i := i
		group.Go(func() error {
			vaultAddr, err := registry.GetFutureVaultAt(callOpts(groupCtx), big.NewInt(int64(i)))
			if err != nil {
				return err
			}
			aggregates[i], err = FutureAggregate(groupCtx, backend, vaultAddr)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	futureLogger.Debug().Int("count", total).Msg("fetched future aggregates")
	return aggregates, nil
}

package fetcher

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/APWine/apwine-sdk/contracts"
	"github.com/APWine/apwine-sdk/internal/logger"
	"github.com/APWine/apwine-sdk/types"
)

var poolLogger = logger.GetForComponent("pool_fetcher")

// LPPool reads one AMM pair's liquidity pool snapshot: token addresses and
// balances at both indices, the LP token and its supply, and the AMM's
// running period. The reads are independent and issued concurrently.
func LPPool(ctx context.Context, backend bind.ContractBackend, ammAddr common.Address, pairID uint64) (types.LPPool, error) {
	if backend == nil {
		return types.LPPool{}, ErrNilBackend
	}

	amm := contracts.NewAMM(ammAddr, backend)
	pool := types.LPPool{AMM: ammAddr, PairID: pairID}
	var periodIndex *big.Int

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		pool.TokenX, err = amm.GetPairTokenAddress(callOpts(groupCtx), pairID, big.NewInt(0))
		return err
	})
	group.Go(func() (err error) {
		pool.TokenY, err = amm.GetPairTokenAddress(callOpts(groupCtx), pairID, big.NewInt(1))
		return err
	})
	group.Go(func() (err error) {
		pool.BalanceX, err = amm.GetPairTokenBalance(callOpts(groupCtx), pairID, big.NewInt(0))
		return err
	})
	group.Go(func() (err error) {
		pool.BalanceY, err = amm.GetPairTokenBalance(callOpts(groupCtx), pairID, big.NewInt(1))
		return err
	})
	group.Go(func() (err error) {
		pool.LPToken, err = amm.GetLPTokenAddress(callOpts(groupCtx), pairID)
		return err
	})
	group.Go(func() (err error) {
		pool.LPTotalSupply, err = amm.GetTotalSupplyWithTokenID(callOpts(groupCtx), pairID)
		return err
	})
	group.Go(func() (err error) {
		periodIndex, err = amm.CurrentPeriodIndex(callOpts(groupCtx))
		return err
	})
	if err := group.Wait(); err != nil {
		poolLogger.Debug().Err(err).Str("amm", ammAddr.Hex()).Uint64("pair", pairID).Msg("lp pool read failed")
		return types.LPPool{}, err
	}

	if !periodIndex.IsUint64() {
		return types.LPPool{}, fmt.Errorf("%w: period index %s", ErrOutOfRange, periodIndex)
	}
	pool.PeriodIndex = periodIndex.Uint64()
	return pool, nil
}

// AMMList enumerates the AMM registry and reads each AMM's future vault and
// paused flag concurrently. Results keep registry order.
func AMMList(ctx context.Context, backend bind.ContractBackend, ammRegistryAddr common.Address) ([]types.AMMInfo, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}

	registry := contracts.NewAMMRegistry(ammRegistryAddr, backend)
	count, err := registry.AMMCount(callOpts(ctx))
	if err != nil {
		return nil, err
	}
	total, err := enumerableCount(count)
	if err != nil {
		return nil, fmt.Errorf("ammCount: %w", err)
	}

	infos := make([]types.AMMInfo, total)
	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < total; i++ {
		i := i
		group.Go(func() error {
			ammAddr, err := registry.GetAMMAt(callOpts(groupCtx), big.NewInt(int64(i)))
			if err != nil {
				return err
			}
			amm := contracts.NewAMM(ammAddr, backend)
			infos[i].Address = ammAddr

			inner, innerCtx := errgroup.WithContext(groupCtx)
			inner.Go(func() (err error) {
				infos[i].Future, err = amm.GetFutureAddress(callOpts(innerCtx))
				return err
			})
			inner.Go(func() (err error) {
				infos[i].Paused, err = amm.Paused(callOpts(innerCtx))
				return err
			})
			return inner.Wait()
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	poolLogger.Debug().Int("count", total).Msg("fetched amm list")
	return infos, nil
}

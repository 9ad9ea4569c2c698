package fetcher

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/APWine/apwine-sdk/contracts"
	"github.com/APWine/apwine-sdk/internal/ethtest"
	"github.com/APWine/apwine-sdk/swap"
	"github.com/APWine/apwine-sdk/types"
)

var (
	ammAddr     = common.HexToAddress("0x0000000000000000000000000000000000000301")
	lpTokenAddr = common.HexToAddress("0x0000000000000000000000000000000000000302")
	futureAddr  = common.HexToAddress("0x0000000000000000000000000000000000000303")
)

func respondPool(backend *ethtest.Backend) {
	backend.Handle(ethtest.Method(contracts.AMMABI, "getPairTokenAddress"),
		func(msg ethereum.CallMsg) ([]byte, error) {
			values, err := ethtest.Method(contracts.AMMABI, "getPairTokenAddress").Inputs.Unpack(msg.Data[4:])
			if err != nil {
				return nil, err
			}
			if values[1].(*big.Int).Sign() == 0 {
				return ethtest.PackOutput(contracts.AMMABI, "getPairTokenAddress", ptAddr), nil
			}
			return ethtest.PackOutput(contracts.AMMABI, "getPairTokenAddress", ibtAddr), nil
		})
	backend.Handle(ethtest.Method(contracts.AMMABI, "getPairTokenBalance"),
		func(msg ethereum.CallMsg) ([]byte, error) {
			values, err := ethtest.Method(contracts.AMMABI, "getPairTokenBalance").Inputs.Unpack(msg.Data[4:])
			if err != nil {
				return nil, err
			}
			if values[1].(*big.Int).Sign() == 0 {
				return ethtest.PackOutput(contracts.AMMABI, "getPairTokenBalance", big.NewInt(1111)), nil
			}
			return ethtest.PackOutput(contracts.AMMABI, "getPairTokenBalance", big.NewInt(2222)), nil
		})
	backend.Return(ethtest.Method(contracts.AMMABI, "getLPTokenAddress"),
		ethtest.PackOutput(contracts.AMMABI, "getLPTokenAddress", lpTokenAddr))
	backend.Return(ethtest.Method(contracts.AMMABI, "getTotalSupplyWithTokenID"),
		ethtest.PackOutput(contracts.AMMABI, "getTotalSupplyWithTokenID", big.NewInt(5000)))
	backend.Return(ethtest.Method(contracts.AMMABI, "currentPeriodIndex"),
		ethtest.PackOutput(contracts.AMMABI, "currentPeriodIndex", big.NewInt(4)))
}

func TestLPPoolCombinesPairReads(t *testing.T) {
	backend := ethtest.NewBackend()
	respondPool(backend)

	pool, err := LPPool(context.Background(), backend, ammAddr, 0)
	require.NoError(t, err)
	require.Equal(t, ammAddr, pool.AMM)
	require.Equal(t, uint64(0), pool.PairID)
	require.Equal(t, uint64(4), pool.PeriodIndex)
	require.Equal(t, ptAddr, pool.TokenX)
	require.Equal(t, ibtAddr, pool.TokenY)
	require.Zero(t, big.NewInt(1111).Cmp(pool.BalanceX))
	require.Zero(t, big.NewInt(2222).Cmp(pool.BalanceY))
	require.Equal(t, lpTokenAddr, pool.LPToken)
	require.Zero(t, big.NewInt(5000).Cmp(pool.LPTotalSupply))
}

func TestAMMListEnumeratesRegistry(t *testing.T) {
	backend := ethtest.NewBackend()
	backend.Return(ethtest.Method(contracts.AMMRegistryABI, "ammCount"),
		ethtest.PackOutput(contracts.AMMRegistryABI, "ammCount", big.NewInt(1)))
	backend.Return(ethtest.Method(contracts.AMMRegistryABI, "getAMMAt"),
		ethtest.PackOutput(contracts.AMMRegistryABI, "getAMMAt", ammAddr))
	backend.Return(ethtest.Method(contracts.AMMABI, "getFutureAddress"),
		ethtest.PackOutput(contracts.AMMABI, "getFutureAddress", futureAddr))
	backend.Return(ethtest.Method(contracts.AMMABI, "paused"),
		ethtest.PackOutput(contracts.AMMABI, "paused", true))

	infos, err := AMMList(context.Background(), backend, common.HexToAddress("0x0300"))
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, ammAddr, infos[0].Address)
	require.Equal(t, futureAddr, infos[0].Future)
	require.True(t, infos[0].Paused)
}

func TestLPPoolRejectsOverflowingPeriodIndex(t *testing.T) {
	backend := ethtest.NewBackend()
	respondPool(backend)
	backend.Return(ethtest.Method(contracts.AMMABI, "currentPeriodIndex"),
		ethtest.PackOutput(contracts.AMMABI, "currentPeriodIndex", new(big.Int).Lsh(big.NewInt(1), 70)))

	_, err := LPPool(context.Background(), backend, ammAddr, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestAMMListRejectsAbsurdCount(t *testing.T) {
	backend := ethtest.NewBackend()
	backend.Return(ethtest.Method(contracts.AMMRegistryABI, "ammCount"),
		ethtest.PackOutput(contracts.AMMRegistryABI, "ammCount", new(big.Int).Lsh(big.NewInt(1), 63)))

	_, err := AMMList(context.Background(), backend, common.HexToAddress("0x0300"))
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestAMMListPropagatesFailure(t *testing.T) {
	backend := ethtest.NewBackend()
	remoteErr := errors.New("rpc timeout")
	backend.Fail(ethtest.Method(contracts.AMMRegistryABI, "ammCount"), remoteErr)

	_, err := AMMList(context.Background(), backend, common.HexToAddress("0x0300"))
	require.ErrorIs(t, err, remoteErr)
}

func TestSpotPriceComposesHops(t *testing.T) {
	backend := ethtest.NewBackend()
	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	half := new(big.Int).Div(one, big.NewInt(2))
	backend.Handle(ethtest.Method(contracts.AMMABI, "getSpotPrice"),
		func(msg ethereum.CallMsg) ([]byte, error) {
			values, err := ethtest.Method(contracts.AMMABI, "getSpotPrice").Inputs.Unpack(msg.Data[4:])
			if err != nil {
				return nil, err
			}
			if values[0].(uint64) == swap.PairPTUnderlying {
				return ethtest.PackOutput(contracts.AMMABI, "getSpotPrice", half), nil
			}
			return ethtest.PackOutput(contracts.AMMABI, "getSpotPrice", one), nil
		})

	route, err := swap.Resolve(types.Underlying, types.YieldToken)
	require.NoError(t, err)

	price, err := SpotPrice(context.Background(), backend, ammAddr, route)
	require.NoError(t, err)
	// 0.5 across pair 0 times 1.0 across pair 1
	require.Zero(t, half.Cmp(price))
}

func TestSpotPriceIdentityRoute(t *testing.T) {
	backend := ethtest.NewBackend()
	route, err := swap.Resolve(types.PrincipalToken, types.PrincipalToken)
	require.NoError(t, err)

	price, err := SpotPrice(context.Background(), backend, ammAddr, route)
	require.NoError(t, err)
	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	require.Zero(t, one.Cmp(price))
	require.Zero(t, backend.CallCount())
}

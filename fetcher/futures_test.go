package fetcher

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/APWine/apwine-sdk/contracts"
	"github.com/APWine/apwine-sdk/internal/ethtest"
)

var (
	vaultAddr = common.HexToAddress("0x0000000000000000000000000000000000000201")
	ibtAddr   = common.HexToAddress("0x0000000000000000000000000000000000000202")
	ptAddr    = common.HexToAddress("0x0000000000000000000000000000000000000203")
	fytAddr   = common.HexToAddress("0x0000000000000000000000000000000000000204")
)

func respondVault(backend *ethtest.Backend) {
	backend.Return(ethtest.Method(contracts.FutureVaultABI, "symbol"),
		ethtest.PackOutput(contracts.FutureVaultABI, "symbol", "aDAI-2M"))
	backend.Return(ethtest.Method(contracts.FutureVaultABI, "getPeriodDuration"),
		ethtest.PackOutput(contracts.FutureVaultABI, "getPeriodDuration", big.NewInt(5184000)))
	backend.Return(ethtest.Method(contracts.FutureVaultABI, "getCurrentPeriodIndex"),
		ethtest.PackOutput(contracts.FutureVaultABI, "getCurrentPeriodIndex", big.NewInt(3)))
	backend.Return(ethtest.Method(contracts.FutureVaultABI, "getIBTAddress"),
		ethtest.PackOutput(contracts.FutureVaultABI, "getIBTAddress", ibtAddr))
	backend.Return(ethtest.Method(contracts.FutureVaultABI, "getPTAddress"),
		ethtest.PackOutput(contracts.FutureVaultABI, "getPTAddress", ptAddr))
	backend.Return(ethtest.Method(contracts.FutureVaultABI, "getFYTofPeriod"),
		ethtest.PackOutput(contracts.FutureVaultABI, "getFYTofPeriod", fytAddr))
	backend.Return(ethtest.Method(contracts.ERC20ABI, "totalSupply"),
		ethtest.PackOutput(contracts.ERC20ABI, "totalSupply", big.NewInt(777)))
}

func TestFutureAggregateCombinesFieldReads(t *testing.T) {
	backend := ethtest.NewBackend()
	respondVault(backend)

	aggregate, err := FutureAggregate(context.Background(), backend, vaultAddr)
	require.NoError(t, err)
	require.Equal(t, vaultAddr, aggregate.Address)
	require.Equal(t, "aDAI-2M", aggregate.Symbol)
	require.Zero(t, big.NewInt(5184000).Cmp(aggregate.PeriodDuration))
	require.Zero(t, big.NewInt(3).Cmp(aggregate.CurrentPeriodIndex))
	require.Equal(t, ibtAddr, aggregate.IBT)
	require.Equal(t, ptAddr, aggregate.PT)
	require.Equal(t, fytAddr, aggregate.FYT)
	require.Zero(t, big.NewInt(777).Cmp(aggregate.PTTotalSupply))
}

func TestFutureAggregatePropagatesFirstFailure(t *testing.T) {
	backend := ethtest.NewBackend()
	respondVault(backend)
	remoteErr := errors.New("execution reverted")
	backend.Fail(ethtest.Method(contracts.FutureVaultABI, "getPTAddress"), remoteErr)

	_, err := FutureAggregate(context.Background(), backend, vaultAddr)
	require.ErrorIs(t, err, remoteErr)
}

func TestFutureAggregateNilBackend(t *testing.T) {
	_, err := FutureAggregate(context.Background(), nil, vaultAddr)
	require.ErrorIs(t, err, ErrNilBackend)
}

func TestFutureAggregatesRejectsAbsurdCount(t *testing.T) {
	backend := ethtest.NewBackend()
	respondVault(backend)
	registryAddr := common.HexToAddress("0x0000000000000000000000000000000000000200")

	// a count that would go negative through int64
	backend.Return(ethtest.Method(contracts.RegistryABI, "futureVaultCount"),
		ethtest.PackOutput(contracts.RegistryABI, "futureVaultCount", new(big.Int).Lsh(big.NewInt(1), 63)))
	_, err := FutureAggregates(context.Background(), backend, registryAddr)
	require.ErrorIs(t, err, ErrOutOfRange)

	// a count whose low 64 bits are zero must not pass as an empty registry
	backend.Return(ethtest.Method(contracts.RegistryABI, "futureVaultCount"),
		ethtest.PackOutput(contracts.RegistryABI, "futureVaultCount", new(big.Int).Lsh(big.NewInt(1), 70)))
	_, err = FutureAggregates(context.Background(), backend, registryAddr)
	require.ErrorIs(t, err, ErrOutOfRange)

	// just above the enumeration cap
	backend.Return(ethtest.Method(contracts.RegistryABI, "futureVaultCount"),
		ethtest.PackOutput(contracts.RegistryABI, "futureVaultCount", big.NewInt(enumerationLimit+1)))
	_, err = FutureAggregates(context.Background(), backend, registryAddr)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestFutureAggregatesEnumeratesRegistry(t *testing.T) {
	backend := ethtest.NewBackend()
	respondVault(backend)
	backend.Return(ethtest.Method(contracts.RegistryABI, "futureVaultCount"),
		ethtest.PackOutput(contracts.RegistryABI, "futureVaultCount", big.NewInt(2)))
	backend.Return(ethtest.Method(contracts.RegistryABI, "getFutureVaultAt"),
		ethtest.PackOutput(contracts.RegistryABI, "getFutureVaultAt", vaultAddr))

	registryAddr := common.HexToAddress("0x0000000000000000000000000000000000000200")
	aggregates, err := FutureAggregates(context.Background(), backend, registryAddr)
	require.NoError(t, err)
	require.Len(t, aggregates, 2)
	for _, aggregate := range aggregates {
		require.Equal(t, vaultAddr, aggregate.Address)
		require.Equal(t, "aDAI-2M", aggregate.Symbol)
	}
}

package network

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveKnownNetworks(t *testing.T) {
	for _, n := range Supported() {
		cfg, err := Resolve(n)
		require.NoError(t, err, "network %s", n)
		require.NotNil(t, cfg.ChainID)
		require.NotZero(t, cfg.Registry)
		require.NotZero(t, cfg.AMMRegistry)
		require.NotZero(t, cfg.AMMRouter)
	}
}

func TestResolveUnknownNetwork(t *testing.T) {
	_, err := Resolve(Network("ropsten"))
	require.ErrorIs(t, err, ErrUnknownNetwork)
	_, err = ChainID(Network(""))
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestChainIDs(t *testing.T) {
	mainnet, err := ChainID(Mainnet)
	require.NoError(t, err)
	require.Zero(t, big.NewInt(1).Cmp(mainnet))

	polygon, err := ChainID(Polygon)
	require.NoError(t, err)
	require.Zero(t, big.NewInt(137).Cmp(polygon))
}

func TestChainIDReturnsCopy(t *testing.T) {
	id, err := ChainID(Mainnet)
	require.NoError(t, err)
	id.SetInt64(999)

	again, err := ChainID(Mainnet)
	require.NoError(t, err)
	require.Zero(t, big.NewInt(1).Cmp(again))
}

func TestParse(t *testing.T) {
	n, err := Parse(" Mainnet ")
	require.NoError(t, err)
	require.Equal(t, Mainnet, n)

	_, err = Parse("testnet")
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

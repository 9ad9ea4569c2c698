// Package network maps a network identifier to the fixed contract addresses
// and chain id of one protocol deployment. Pure lookup, no state.
package network

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Network identifies one supported deployment.
type Network string

const (
	Mainnet Network = "mainnet"
	Polygon Network = "polygon"
	Goerli  Network = "goerli"
)

var ErrUnknownNetwork = errors.New("unknown network")

// Config holds the fixed per-network contract addresses. Everything else
// (controller, vaults, tokens) is discovered through these at runtime.
type Config struct {
	ChainID     *big.Int
	Registry    common.Address
	AMMRegistry common.Address
	AMMRouter   common.Address
}

// Canonical deployments, keyed by network. Addresses are fixed at deploy
// time and extended chain-by-chain.
var configs = map[Network]Config{
	Mainnet: {
		ChainID:     big.NewInt(1),
		Registry:    common.HexToAddress("0x72d15EAE2Cd729D8F2e41B1328311f3e275612B9"),
		AMMRegistry: common.HexToAddress("0x6646A35e74e35585B0B02e5190445A324E5D4D01"),
		AMMRouter:   common.HexToAddress("0x9D2B8f5B1f5e9e0A875940Ea1cE8c6c96D80E0a9"),
	},
	Polygon: {
		ChainID:     big.NewInt(137),
		Registry:    common.HexToAddress("0x166ED9f7A56053c7c4E77CB0C91a9E46bbC5e8b0"),
		AMMRegistry: common.HexToAddress("0x83914dBE5dA027106E2e5300B144Bc11305E1e4e"),
		AMMRouter:   common.HexToAddress("0x30Be2a6CD53E2D76BbA0d2F1ba00dD5a0bF77C61"),
	},
	Goerli: {
		ChainID:     big.NewInt(5),
		Registry:    common.HexToAddress("0x2E902E58278C1E9e5F0922b7515C39A2e4f1e35b"),
		AMMRegistry: common.HexToAddress("0x1Ff9738E55a2E8AF0C2bAfb0c9c1cFbBDa6e6b1D"),
		AMMRouter:   common.HexToAddress("0xD5b42E9aE06c5cf26eCeD0eCf5e0a1EAbA43Bf0F"),
	},
}

// Resolve returns the contract set for the given network.
func Resolve(n Network) (Config, error) {
	cfg, ok := configs[n]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownNetwork, n)
	}
	return cfg, nil
}

// ChainID returns the chain id for the given network.
func ChainID(n Network) (*big.Int, error) {
	cfg, err := Resolve(n)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(cfg.ChainID), nil
}

// Parse converts a network name into a Network.
func Parse(s string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := configs[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
	}
	return n, nil
}

// Supported lists the known networks in a stable order.
func Supported() []Network {
	return []Network{Mainnet, Polygon, Goerli}
}

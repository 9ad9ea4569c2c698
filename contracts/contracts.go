// Package contracts holds hand-maintained typed bindings for the deployed
// protocol contracts. A binding pairs one on-chain address with whatever
// backend (read-only or signing) it was constructed against; rebinding to a
// different backend means constructing a fresh handle.
package contracts

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/APWine/apwine-sdk/internal/metrics"
)

var (
	registryABI    = mustParseABI(RegistryABI)
	controllerABI  = mustParseABI(ControllerABI)
	futureVaultABI = mustParseABI(FutureVaultABI)
	erc20ABI       = mustParseABI(ERC20ABI)
	ammRegistryABI = mustParseABI(AMMRegistryABI)
	ammABI         = mustParseABI(AMMABI)
	ammRouterABI   = mustParseABI(AMMRouterABI)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("contracts: invalid ABI constant: %v", err))
	}
	return parsed
}

// contract is the shared core of every typed binding.
type contract struct {
	name    string
	address common.Address
	bound   *bind.BoundContract
}

func newContract(name string, address common.Address, parsed abi.ABI, backend bind.ContractBackend) contract {
	return contract{
		name:    name,
		address: address,
		bound:   bind.NewBoundContract(address, parsed, backend, backend, backend),
	}
}

// Address returns the on-chain address the binding is bound to.
func (c *contract) Address() common.Address {
	return c.address
}

func (c *contract) call(opts *bind.CallOpts, method string, params ...interface{}) ([]interface{}, error) {
	metrics.ContractCallsTotal.WithLabelValues(c.name, method).Inc()
	var out []interface{}
	if err := c.bound.Call(opts, &out, method, params...); err != nil {
		return nil, fmt.Errorf("%s.%s: %w", c.name, method, err)
	}
	return out, nil
}

func (c *contract) transact(opts *bind.TransactOpts, method string, params ...interface{}) (*coretypes.Transaction, error) {
	metrics.TransactionsTotal.WithLabelValues(c.name, method).Inc()
	tx, err := c.bound.Transact(opts, method, params...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", c.name, method, err)
	}
	return tx, nil
}

func asAddress(v interface{}) common.Address {
	return *abi.ConvertType(v, new(common.Address)).(*common.Address)
}

func asBigInt(v interface{}) *big.Int {
	return *abi.ConvertType(v, new(*big.Int)).(**big.Int)
}

func asBool(v interface{}) bool {
	return *abi.ConvertType(v, new(bool)).(*bool)
}

func asString(v interface{}) string {
	return *abi.ConvertType(v, new(string)).(*string)
}

func asUint8(v interface{}) uint8 {
	return *abi.ConvertType(v, new(uint8)).(*uint8)
}

package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// AMMRegistry lists the deployed AMM instances, one per future vault.
type AMMRegistry struct {
	contract
}

func NewAMMRegistry(address common.Address, backend bind.ContractBackend) *AMMRegistry {
	return &AMMRegistry{newContract("amm_registry", address, ammRegistryABI, backend)}
}

// AMMCount returns the number of registered AMMs.
func (r *AMMRegistry) AMMCount(opts *bind.CallOpts) (*big.Int, error) {
	out, err := r.call(opts, "ammCount")
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

// GetAMMAt returns the AMM address at the given index.
func (r *AMMRegistry) GetAMMAt(opts *bind.CallOpts, index *big.Int) (common.Address, error) {
	out, err := r.call(opts, "getAMMAt", index)
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

// GetFutureAMMPool returns the AMM trading the given future vault.
func (r *AMMRegistry) GetFutureAMMPool(opts *bind.CallOpts, future common.Address) (common.Address, error) {
	out, err := r.call(opts, "getFutureAMMPool", future)
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

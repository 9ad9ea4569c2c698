package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Registry is the protocol registry: the root of address discovery.
type Registry struct {
	contract
}

func NewRegistry(address common.Address, backend bind.ContractBackend) *Registry {
	return &Registry{newContract("registry", address, registryABI, backend)}
}

// GetControllerAddress resolves the controller contract address.
func (r *Registry) GetControllerAddress(opts *bind.CallOpts) (common.Address, error) {
	out, err := r.call(opts, "getControllerAddress")
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

// FutureVaultCount returns the number of registered future vaults.
func (r *Registry) FutureVaultCount(opts *bind.CallOpts) (*big.Int, error) {
	out, err := r.call(opts, "futureVaultCount")
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

// GetFutureVaultAt returns the vault address at the given registry index.
func (r *Registry) GetFutureVaultAt(opts *bind.CallOpts, index *big.Int) (common.Address, error) {
	out, err := r.call(opts, "getFutureVaultAt", index)
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

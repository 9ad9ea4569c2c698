package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// FutureVault is one fixed-term yield-bearing vault; the source of PT/FYT
// token addresses for its periods.
type FutureVault struct {
	contract
}

func NewFutureVault(address common.Address, backend bind.ContractBackend) *FutureVault {
	return &FutureVault{newContract("future_vault", address, futureVaultABI, backend)}
}

// GetIBTAddress returns the interest bearing token the vault wraps.
func (f *FutureVault) GetIBTAddress(opts *bind.CallOpts) (common.Address, error) {
	out, err := f.call(opts, "getIBTAddress")
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

// GetPTAddress returns the vault's principal token.
func (f *FutureVault) GetPTAddress(opts *bind.CallOpts) (common.Address, error) {
	out, err := f.call(opts, "getPTAddress")
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

// GetFYTofPeriod returns the yield token minted for the given period.
func (f *FutureVault) GetFYTofPeriod(opts *bind.CallOpts, periodIndex *big.Int) (common.Address, error) {
	out, err := f.call(opts, "getFYTofPeriod", periodIndex)
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out[0]), nil
}

// GetPeriodDuration returns the period length in seconds.
func (f *FutureVault) GetPeriodDuration(opts *bind.CallOpts) (*big.Int, error) {
	out, err := f.call(opts, "getPeriodDuration")
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

// GetCurrentPeriodIndex returns the index of the running period.
func (f *FutureVault) GetCurrentPeriodIndex(opts *bind.CallOpts) (*big.Int, error) {
	out, err := f.call(opts, "getCurrentPeriodIndex")
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

// Symbol returns the vault's display symbol.
func (f *FutureVault) Symbol(opts *bind.CallOpts) (string, error) {
	out, err := f.call(opts, "symbol")
	if err != nil {
		return "", err
	}
	return asString(out[0]), nil
}

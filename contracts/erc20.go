package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
)

// ERC20 binds the minimal token surface the SDK needs: balances, allowance
// management and metadata. Underlying, PT, FYT and LP tokens all go through it.
type ERC20 struct {
	contract
}

func NewERC20(address common.Address, backend bind.ContractBackend) *ERC20 {
	return &ERC20{newContract("erc20", address, erc20ABI, backend)}
}

func (t *ERC20) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	out, err := t.call(opts, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

func (t *ERC20) Allowance(opts *bind.CallOpts, owner, spender common.Address) (*big.Int, error) {
	out, err := t.call(opts, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

func (t *ERC20) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*coretypes.Transaction, error) {
	return t.transact(opts, "approve", spender, amount)
}

func (t *ERC20) Decimals(opts *bind.CallOpts) (uint8, error) {
	out, err := t.call(opts, "decimals")
	if err != nil {
		return 0, err
	}
	return asUint8(out[0]), nil
}

func (t *ERC20) Symbol(opts *bind.CallOpts) (string, error) {
	out, err := t.call(opts, "symbol")
	if err != nil {
		return "", err
	}
	return asString(out[0]), nil
}

func (t *ERC20) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	out, err := t.call(opts, "totalSupply")
	if err != nil {
		return nil, err
	}
	return asBigInt(out[0]), nil
}

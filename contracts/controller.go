package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
)

// Controller is the protocol controller; deposits and withdrawals on any
// future vault go through it.
type Controller struct {
	contract
}

func NewController(address common.Address, backend bind.ContractBackend) *Controller {
	return &Controller{newContract("controller", address, controllerABI, backend)}
}

// Deposit locks amount of the vault's IBT into the given future.
func (c *Controller) Deposit(opts *bind.TransactOpts, future common.Address, amount *big.Int) (*coretypes.Transaction, error) {
	return c.transact(opts, "deposit", future, amount)
}

// Withdraw redeems amount from the given future.
func (c *Controller) Withdraw(opts *bind.TransactOpts, future common.Address, amount *big.Int) (*coretypes.Transaction, error) {
	return c.transact(opts, "withdraw", future, amount)
}

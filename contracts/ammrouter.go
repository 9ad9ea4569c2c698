package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
)

// AMMRouter executes multi-hop swaps across an AMM's pairs. The pairPath and
// tokenPath arguments come straight from a resolved swap route.
type AMMRouter struct {
	contract
}

func NewAMMRouter(address common.Address, backend bind.ContractBackend) *AMMRouter {
	return &AMMRouter{newContract("amm_router", address, ammRouterABI, backend)}
}

// SwapExactAmountIn trades exactly tokenAmountIn along the path, reverting if
// the output falls below minAmountOut.
func (r *AMMRouter) SwapExactAmountIn(opts *bind.TransactOpts, amm common.Address, pairPath []uint64, tokenPath []*big.Int, tokenAmountIn, minAmountOut *big.Int, to common.Address, deadline *big.Int) (*coretypes.Transaction, error) {
	return r.transact(opts, "swapExactAmountIn", amm, pairPath, tokenPath, tokenAmountIn, minAmountOut, to, deadline)
}

// SwapExactAmountOut trades along the path until exactly tokenAmountOut is
// produced, reverting if the input would exceed maxAmountIn.
func (r *AMMRouter) SwapExactAmountOut(opts *bind.TransactOpts, amm common.Address, pairPath []uint64, tokenPath []*big.Int, maxAmountIn, tokenAmountOut *big.Int, to common.Address, deadline *big.Int) (*coretypes.Transaction, error) {
	return r.transact(opts, "swapExactAmountOut", amm, pairPath, tokenPath, maxAmountIn, tokenAmountOut, to, deadline)
}

/*

Aggregate records combine several contract field reads into one snapshot.
They are constructed fresh on every fetch and never cached; all amounts are
base units (wei-scale) exactly as returned by the contracts.

*/

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// FutureAggregate is a read-only snapshot of one future vault.
type FutureAggregate struct {
	Address            common.Address `json:"address"`
	Symbol             string         `json:"symbol"`
	PeriodDuration     *big.Int       `json:"period_duration"`      // seconds
	CurrentPeriodIndex *big.Int       `json:"current_period_index"` // 1-based, 0 before first period start
	IBT                common.Address `json:"ibt"`                  // interest bearing token wrapped by the vault
	PT                 common.Address `json:"pt"`
	FYT                common.Address `json:"fyt"` // FYT of the current period
	PTTotalSupply      *big.Int       `json:"pt_total_supply"`
}

// LPPool is a read-only snapshot of one AMM pair's liquidity pool.
type LPPool struct {
	AMM           common.Address `json:"amm"`
	PairID        uint64         `json:"pair_id"`
	PeriodIndex   uint64         `json:"period_index"`
	TokenX        common.Address `json:"token_x"` // pair token at index 0
	TokenY        common.Address `json:"token_y"` // pair token at index 1
	BalanceX      *big.Int       `json:"balance_x"`
	BalanceY      *big.Int       `json:"balance_y"`
	LPToken       common.Address `json:"lp_token"`
	LPTotalSupply *big.Int       `json:"lp_total_supply"`
}

// AMMInfo is one entry of the AMM registry listing.
type AMMInfo struct {
	Address common.Address `json:"address"`
	Future  common.Address `json:"future"`
	Paused  bool           `json:"paused"`
}

package fetcher

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/APWine/apwine-sdk/contracts"
	"github.com/APWine/apwine-sdk/swap"
)

// priceScale is the fixed-point base the AMM quotes spot prices in.
var priceScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// SpotPrice composes the 1e18-scaled spot price along a resolved route by
// multiplying the per-hop pair prices. An identity route prices at 1.0.
// Hop prices are read sequentially: each is one pair quote on the same AMM
// and later hops do not depend on earlier results, but the route is short
// (at most two hops) so there is nothing worth fanning out.
func SpotPrice(ctx context.Context, backend bind.ContractBackend, ammAddr common.Address, route swap.Route) (*big.Int, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}

	amm := contracts.NewAMM(ammAddr, backend)
	price := new(big.Int).Set(priceScale)
	for _, hop := range route.Hops {
		hopPrice, err := amm.GetSpotPrice(
			callOpts(ctx),
			hop.PairID,
			new(big.Int).SetUint64(hop.TokenIn),
			new(big.Int).SetUint64(hop.TokenOut),
		)
		if err != nil {
			return nil, err
		}
		price.Mul(price, hopPrice)
		price.Div(price, priceScale)
	}
	return price, nil
}

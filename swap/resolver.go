// Package swap resolves how to convert one protocol token kind into another.
//
// The token kinds form a tiny fixed directed graph: pair 0 of every AMM
// trades PT against underlying, pair 1 trades PT against FYT. A route is the
// shortest hop sequence through that graph, found by breadth-first search.
// The resolver is pure: no I/O, no mutable state, safe for concurrent use.
package swap

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/APWine/apwine-sdk/types"
)

// ErrNoPathFound is returned when no directed walk connects the requested
// token kinds.
var ErrNoPathFound = errors.New("no swap path found")

// Pair ids as laid out on every AMM instance.
const (
	PairPTUnderlying uint64 = 0
	PairPTFYT        uint64 = 1
)

// Token indices within each pair. PT sits at index 0 of both pairs.
const (
	pairTokenPT         uint64 = 0
	pairTokenUnderlying uint64 = 1
	pairTokenFYT        uint64 = 1
)

// Hop is one directed edge of the swap graph: a single AMM trade converting
// From into To on one pair.
type Hop struct {
	From, To types.TokenKind
	PairID   uint64
	TokenIn  uint64 // index of From within the pair
	TokenOut uint64 // index of To within the pair
}

// Route is a resolved conversion: the hops to execute in order, plus the
// token kinds visited for display.
type Route struct {
	Hops []Hop
	Path []types.TokenKind
}

// PairPath returns the route's pair ids in hop order, as the router expects.
func (r Route) PairPath() []uint64 {
	pairs := make([]uint64, len(r.Hops))
	for i, hop := range r.Hops {
		pairs[i] = hop.PairID
	}
	return pairs
}

// TokenPath returns the per-hop input token indices followed by the final
// output index, matching the router's tokenPath argument.
func (r Route) TokenPath() []*big.Int {
	if len(r.Hops) == 0 {
		return nil
	}
	path := make([]*big.Int, 0, len(r.Hops)+1)
	for _, hop := range r.Hops {
		path = append(path, new(big.Int).SetUint64(hop.TokenIn))
	}
	path = append(path, new(big.Int).SetUint64(r.Hops[len(r.Hops)-1].TokenOut))
	return path
}

// defaultEdges enumerates every tradable hop. Enumeration order is the
// deterministic tie-break between equally short routes.
var defaultEdges = []Hop{
	{From: types.Underlying, To: types.PrincipalToken, PairID: PairPTUnderlying, TokenIn: pairTokenUnderlying, TokenOut: pairTokenPT},
	{From: types.PrincipalToken, To: types.Underlying, PairID: PairPTUnderlying, TokenIn: pairTokenPT, TokenOut: pairTokenUnderlying},
	{From: types.PrincipalToken, To: types.YieldToken, PairID: PairPTFYT, TokenIn: pairTokenPT, TokenOut: pairTokenFYT},
	{From: types.YieldToken, To: types.PrincipalToken, PairID: PairPTFYT, TokenIn: pairTokenFYT, TokenOut: pairTokenPT},
}

// Resolver answers path queries over one fixed edge set.
type Resolver struct {
	edges []Hop
	// adjacency preserves edge enumeration order per source kind
	adjacency map[types.TokenKind][]Hop
}

// NewResolver builds a resolver over the given edge enumeration.
func NewResolver(edges []Hop) *Resolver {
	adjacency := make(map[types.TokenKind][]Hop, len(edges))
	for _, e := range edges {
		adjacency[e.From] = append(adjacency[e.From], e)
	}
	return &Resolver{edges: append([]Hop(nil), edges...), adjacency: adjacency}
}

var defaultResolver = NewResolver(defaultEdges)

// Resolve finds the shortest hop sequence from one token kind to another on
// the protocol's standard pair layout.
func Resolve(from, to types.TokenKind) (Route, error) {
	return defaultResolver.Resolve(from, to)
}

// Resolve finds the shortest hop sequence from from to to, or ErrNoPathFound.
// Identical endpoints resolve to the empty (identity) route.
func (r *Resolver) Resolve(from, to types.TokenKind) (Route, error) {
	if !from.Valid() {
		return Route{}, fmt.Errorf("%w: source %s", types.ErrInvalidTokenKind, from)
	}
	if !to.Valid() {
		return Route{}, fmt.Errorf("%w: target %s", types.ErrInvalidTokenKind, to)
	}
	if from == to {
		return Route{Hops: []Hop{}, Path: []types.TokenKind{from}}, nil
	}

	// BFS with predecessor recording; first discovery wins, so routes are
	// shortest by hop count and ties follow edge enumeration order.
	visited := map[types.TokenKind]bool{from: true}
	predecessor := make(map[types.TokenKind]Hop)
	queue := []types.TokenKind{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, hop := range r.adjacency[current] {
			if visited[hop.To] {
				continue
			}
			visited[hop.To] = true
			predecessor[hop.To] = hop
			if hop.To == to {
				return r.reconstruct(from, to, predecessor), nil
			}
			queue = append(queue, hop.To)
		}
	}

	return Route{}, fmt.Errorf("%w: %s -> %s", ErrNoPathFound, from, to)
}

func (r *Resolver) reconstruct(from, to types.TokenKind, predecessor map[types.TokenKind]Hop) Route {
	var reversed []Hop
	for at := to; at != from; at = predecessor[at].From {
		reversed = append(reversed, predecessor[at])
	}

	hops := make([]Hop, 0, len(reversed))
	path := make([]types.TokenKind, 0, len(reversed)+1)
	path = append(path, from)
	for i := len(reversed) - 1; i >= 0; i-- {
		hops = append(hops, reversed[i])
		path = append(path, reversed[i].To)
	}
	return Route{Hops: hops, Path: path}
}

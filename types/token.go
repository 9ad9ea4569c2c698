/*

Token kinds are the nodes of the swap path graph. They are labels only:
addresses and balances live on chain and are fetched per future vault.

*/

package types

import (
	"errors"
	"fmt"
	"strings"
)

// TokenKind identifies one of the protocol token roles traded on an AMM pair.
type TokenKind uint8

const (
	// Underlying is the asset the future vault wraps (e.g. DAI for an aDAI future).
	Underlying TokenKind = iota
	// PrincipalToken (PT) represents the deposited principal for the period.
	PrincipalToken
	// YieldToken (FYT) represents the yield generated during the period.
	YieldToken

	tokenKindCount
)

var ErrInvalidTokenKind = errors.New("invalid token kind")

// String returns the short protocol name for the kind.
func (k TokenKind) String() string {
	switch k {
	case Underlying:
		return "underlying"
	case PrincipalToken:
		return "pt"
	case YieldToken:
		return "fyt"
	default:
		return fmt.Sprintf("tokenkind(%d)", uint8(k))
	}
}

// Valid reports whether the kind is one of the defined token roles.
func (k TokenKind) Valid() bool {
	return k < tokenKindCount
}

// ParseTokenKind converts a protocol token name ("underlying", "pt", "fyt")
// into a TokenKind.
func ParseTokenKind(s string) (TokenKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "underlying":
		return Underlying, nil
	case "pt", "principal":
		return PrincipalToken, nil
	case "fyt", "yield":
		return YieldToken, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTokenKind, s)
	}
}

// TokenKinds returns all defined kinds in enumeration order.
func TokenKinds() []TokenKind {
	return []TokenKind{Underlying, PrincipalToken, YieldToken}
}

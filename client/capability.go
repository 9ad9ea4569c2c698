package client

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"github.com/APWine/apwine-sdk/types"
)

// Capability is the uniform surface over "can read the chain" and "can also
// sign transactions". Handles, fetchers and transaction builders depend only
// on this interface, never on the concrete variant.
type Capability interface {
	// Backend returns the connection contract handles bind against.
	Backend() bind.ContractBackend
	// CallOpts returns read options carrying ctx and, when known, the caller.
	CallOpts(ctx context.Context) *bind.CallOpts
	// Transactor returns signing options, or types.ErrMissingSigner for a
	// read-only capability. Callers must check before any remote call.
	Transactor(ctx context.Context) (*bind.TransactOpts, error)
	// CanSign reports which variant this is.
	CanSign() bool
}

type readOnlyCapability struct {
	backend bind.ContractBackend
}

// NewReadOnly wraps a plain connection into a read-only capability.
func NewReadOnly(backend bind.ContractBackend) Capability {
	return &readOnlyCapability{backend: backend}
}

func (c *readOnlyCapability) Backend() bind.ContractBackend { return c.backend }

func (c *readOnlyCapability) CallOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

func (c *readOnlyCapability) Transactor(context.Context) (*bind.TransactOpts, error) {
	return nil, types.ErrMissingSigner
}

func (c *readOnlyCapability) CanSign() bool { return false }

type signingCapability struct {
	backend bind.ContractBackend
	opts    *bind.TransactOpts
}

// NewSigning wraps a connection plus keyed transact options into a signing
// capability.
func NewSigning(backend bind.ContractBackend, opts *bind.TransactOpts) Capability {
	return &signingCapability{backend: backend, opts: opts}
}

func (c *signingCapability) Backend() bind.ContractBackend { return c.backend }

func (c *signingCapability) CallOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx, From: c.opts.From}
}

func (c *signingCapability) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	// shallow copy so per-call context never leaks into the shared options
	opts := *c.opts
	opts.Context = ctx
	return &opts, nil
}

func (c *signingCapability) CanSign() bool { return true }

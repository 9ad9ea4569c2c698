// Package client owns the SDK session: the single mutable point of truth for
// which capability and network the client is using, the contract handles
// bound to them, and the lazily-resolved fields behind the readiness gate.
package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/APWine/apwine-sdk/internal/logger"
	"github.com/APWine/apwine-sdk/network"
	"github.com/APWine/apwine-sdk/types"
)

var (
	ErrNilBackend      = errors.New("backend cannot be nil")
	ErrNilSigner       = errors.New("signer cannot be nil")
	ErrChainIDMismatch = errors.New("backend chain id does not match network")
)

// chainIDReader is implemented by ethclient.Client; fakes and raw backends
// may omit it, in which case the chain id check is skipped.
type chainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// Session composes contract calls into the developer-facing operations. It is
// single-writer state: one logical caller per instance; concurrent mutation
// without external synchronization is out of scope.
type Session struct {
	mu sync.Mutex

	network network.Network
	cfg     network.Config
	backend bind.ContractBackend
	signer  *bind.TransactOpts

	active  Capability
	handles *handleSet

	controller  common.Address
	defaultUser common.Address
	slippage    decimal.Decimal // percent, e.g. 0.5 means 0.5%

	gate *readyGate
	log  zerolog.Logger

	autoInit bool
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithSigner supplies a signing capability; the session starts in signing
// mode and the default user falls back to the signer's address.
func WithSigner(signer *bind.TransactOpts) Option {
	return func(s *Session) { s.signer = signer }
}

// WithDefaultSlippage overrides the default 0.5 percent slippage tolerance.
func WithDefaultSlippage(percent decimal.Decimal) Option {
	return func(s *Session) { s.slippage = percent }
}

// WithDefaultUser sets the address reads default to when no owner is given.
func WithDefaultUser(user common.Address) Option {
	return func(s *Session) { s.defaultUser = user }
}

// WithoutAutoInit disables the background initialization started by New;
// the caller must run Initialize itself.
func WithoutAutoInit() Option {
	return func(s *Session) { s.autoInit = false }
}

// WithLogger overrides the session's component logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New binds the network's fixed-address handles using the signing capability
// when a signer is supplied, the read-only one otherwise, and unless disabled
// starts initialization in the background without blocking the constructor.
func New(net network.Network, backend bind.ContractBackend, opts ...Option) (*Session, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	cfg, err := network.Resolve(net)
	if err != nil {
		return nil, err
	}

	s := &Session{
		network:  net,
		cfg:      cfg,
		backend:  backend,
		slippage: decimal.NewFromFloat(0.5),
		gate:     newReadyGate(),
		log:      logger.GetForComponent("session"),
		autoInit: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := validateSlippage(s.slippage); err != nil {
		return nil, err
	}

	if s.signer != nil {
		s.active = NewSigning(backend, s.signer)
		if s.defaultUser == (common.Address{}) {
			s.defaultUser = s.signer.From
		}
	} else {
		s.active = NewReadOnly(backend)
	}
	s.handles = bindHandles(cfg, s.active, common.Address{})

	if s.autoInit {
		go func() {
			if err := s.Initialize(context.Background()); err != nil {
				s.log.Error().Err(err).Msg("background initialization failed")
			}
		}()
	}
	return s, nil
}

// Initialize concurrently fetches the asynchronously-discoverable fields and
// resolves the readiness gate exactly once. The first fetch failure fails the
// gate permanently; the session must be reconstructed afterwards. Intended to
// run once; repeat calls after the gate resolved are no-ops.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	gate := s.gate
	handles := s.handles
	capability := s.active
	cfg := s.cfg
	s.mu.Unlock()

	if state, err := gate.snapshot(); state != Pending {
		if state == Failed {
			return fmt.Errorf("%w: %w", types.ErrInitializationFailed, err)
		}
		return nil
	}

	var controllerAddr common.Address
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		controllerAddr, err = handles.registry.GetControllerAddress(capability.CallOpts(groupCtx))
		return err
	})
	group.Go(func() error {
		reader, ok := capability.Backend().(chainIDReader)
		if !ok {
			return nil
		}
		chainID, err := reader.ChainID(groupCtx)
		if err != nil {
			return err
		}
		if chainID.Cmp(cfg.ChainID) != 0 {
			return fmt.Errorf("%w: backend reports %s, network expects %s",
				ErrChainIDMismatch, chainID, cfg.ChainID)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		gate.fail(err)
		s.log.Error().Err(err).Msg("initialization failed")
		return err
	}

	s.mu.Lock()
	// UpdateNetwork may have swapped the gate while we were fetching; only
	// publish results that belong to the gate we started with.
	if s.gate == gate {
		s.controller = controllerAddr
		s.handles = bindHandles(s.cfg, s.active, controllerAddr)
	}
	s.mu.Unlock()

	gate.succeed()
	s.log.Debug().Str("controller", controllerAddr.Hex()).Msg("session initialized")
	return nil
}

// AwaitReady blocks until initialization resolves or ctx expires.
func (s *Session) AwaitReady(ctx context.Context) error {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	return gate.await(ctx)
}

// Ready returns the readiness state and, once Failed, the initialization error.
func (s *Session) Ready() (ReadyState, error) {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	return gate.snapshot()
}

// UseSigner atomically swaps the active capability to the configured signer
// and rebinds every handle. Precondition: the session is initialized; before
// that the call reports the gate's error and rebinds nothing.
func (s *Session) UseSigner() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gate.guard(); err != nil {
		return err
	}
	if s.signer == nil {
		return types.ErrMissingSigner
	}
	s.active = NewSigning(s.backend, s.signer)
	s.handles = bindHandles(s.cfg, s.active, s.controller)
	s.log.Debug().Str("signer", s.signer.From.Hex()).Msg("switched to signing capability")
	return nil
}

// UseReadOnly atomically swaps the active capability to read-only and rebinds
// every handle. Same initialization precondition as UseSigner.
func (s *Session) UseReadOnly() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gate.guard(); err != nil {
		return err
	}
	s.active = NewReadOnly(s.backend)
	s.handles = bindHandles(s.cfg, s.active, s.controller)
	s.log.Debug().Msg("switched to read-only capability")
	return nil
}

// IsSigning reports whether the active capability can sign.
func (s *Session) IsSigning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.CanSign()
}

// UpdateSigner replaces the stored signer. The active capability is not
// touched: the new signer takes effect at the next UseSigner call.
func (s *Session) UpdateSigner(signer *bind.TransactOpts) error {
	if signer == nil {
		return ErrNilSigner
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signer = signer
	if s.defaultUser == (common.Address{}) {
		s.defaultUser = signer.From
	}
	return nil
}

// UpdateNetwork re-points the session at another deployment: fixed addresses
// are re-resolved, every handle is rebound immediately, and the readiness
// gate resets to Pending so controller-dependent operations fail with
// ErrNotInitialized until Initialize is run again.
func (s *Session) UpdateNetwork(net network.Network) error {
	cfg, err := network.Resolve(net)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.network = net
	s.cfg = cfg
	s.controller = common.Address{}
	s.handles = bindHandles(cfg, s.active, common.Address{})
	s.gate = newReadyGate()
	s.log.Debug().Str("network", string(net)).Msg("network updated, session requires re-initialization")
	return nil
}

// UpdateSlippageTolerance replaces the default slippage percentage.
func (s *Session) UpdateSlippageTolerance(percent decimal.Decimal) error {
	if err := validateSlippage(percent); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slippage = percent
	return nil
}

// Network returns the session's active network.
func (s *Session) Network() network.Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.network
}

// DefaultUser returns the address reads default to.
func (s *Session) DefaultUser() common.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultUser
}

// SlippageTolerance returns the default slippage percentage.
func (s *Session) SlippageTolerance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slippage
}

// ControllerAddress returns the resolved controller address, or the gate's
// error while unresolved.
func (s *Session) ControllerAddress() (common.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gate.guard(); err != nil {
		return common.Address{}, err
	}
	return s.controller, nil
}

// snapshot captures the handle set and capability an operation will use for
// its whole lifetime. Rebinding is not retroactive: an operation in flight
// across a capability swap completes against what it captured here.
func (s *Session) snapshot() (*handleSet, Capability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handles, s.active
}

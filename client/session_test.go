package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/APWine/apwine-sdk/contracts"
	"github.com/APWine/apwine-sdk/internal/ethtest"
	"github.com/APWine/apwine-sdk/network"
	"github.com/APWine/apwine-sdk/types"
)

var (
	testController = common.HexToAddress("0x00000000000000000000000000000000CafeBabe")
	testSignerAddr = common.HexToAddress("0x00000000000000000000000000000000DeadBeef")
)

func respondController(backend *ethtest.Backend) {
	backend.Return(
		ethtest.Method(contracts.RegistryABI, "getControllerAddress"),
		ethtest.PackOutput(contracts.RegistryABI, "getControllerAddress", testController),
	)
}

func newPendingSession(t *testing.T, backend *ethtest.Backend, opts ...Option) *Session {
	t.Helper()
	session, err := New(network.Mainnet, backend, append([]Option{WithoutAutoInit()}, opts...)...)
	require.NoError(t, err)
	return session
}

func newReadySession(t *testing.T, backend *ethtest.Backend, opts ...Option) *Session {
	t.Helper()
	respondController(backend)
	session := newPendingSession(t, backend, opts...)
	require.NoError(t, session.Initialize(context.Background()))
	backend.Reset()
	return session
}

func TestNewBindsFixedAddresses(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newPendingSession(t, backend)

	cfg, err := network.Resolve(network.Mainnet)
	require.NoError(t, err)
	require.Equal(t, cfg.Registry, session.handles.registry.Address())
	require.Equal(t, cfg.AMMRegistry, session.handles.ammRegistry.Address())
	require.Equal(t, cfg.AMMRouter, session.handles.router.Address())
	require.Nil(t, session.handles.controller)
	require.False(t, session.IsSigning())

	state, _ := session.Ready()
	require.Equal(t, Pending, state)
}

func TestNewStartsSigningWhenSignerSupplied(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newPendingSession(t, backend, WithSigner(ethtest.Transactor(testSignerAddr)))
	require.True(t, session.IsSigning())
	require.Equal(t, testSignerAddr, session.DefaultUser())
}

func TestInitializeResolvesController(t *testing.T) {
	backend := ethtest.NewBackend()
	respondController(backend)
	session := newPendingSession(t, backend)

	require.NoError(t, session.Initialize(context.Background()))

	state, err := session.Ready()
	require.Equal(t, Ready, state)
	require.NoError(t, err)

	addr, err := session.ControllerAddress()
	require.NoError(t, err)
	require.Equal(t, testController, addr)
	require.NotNil(t, session.handles.controller)
	require.Equal(t, testController, session.handles.controller.Address())
}

func TestInitializeIsOneShot(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newReadySession(t, backend)

	require.NoError(t, session.Initialize(context.Background()))
	require.Zero(t, backend.CallCount(), "second Initialize must not refetch")
}

func TestInitializeFailureIsPermanent(t *testing.T) {
	backend := ethtest.NewBackend()
	remoteErr := errors.New("rpc: connection refused")
	backend.Fail(ethtest.Method(contracts.RegistryABI, "getControllerAddress"), remoteErr)
	session := newPendingSession(t, backend)

	err := session.Initialize(context.Background())
	require.Error(t, err)

	state, gateErr := session.Ready()
	require.Equal(t, Failed, state)
	require.Error(t, gateErr)

	require.ErrorIs(t, session.Initialize(context.Background()), types.ErrInitializationFailed)
	require.ErrorIs(t, session.AwaitReady(context.Background()), types.ErrInitializationFailed)

	_, err = session.ControllerAddress()
	require.ErrorIs(t, err, types.ErrInitializationFailed)
}

func TestChainIDMismatchFailsInitialization(t *testing.T) {
	backend := ethtest.NewBackend()
	backend.ChainIDValue.SetInt64(42)
	respondController(backend)
	session := newPendingSession(t, backend)

	require.ErrorIs(t, session.Initialize(context.Background()), ErrChainIDMismatch)
}

func TestAwaitReadyHonorsContext(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newPendingSession(t, backend)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, session.AwaitReady(ctx), context.DeadlineExceeded)
}

func TestUseSignerBeforeReadyLeavesHandlesUnchanged(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newPendingSession(t, backend, WithSigner(ethtest.Transactor(testSignerAddr)))

	before := session.handles
	require.ErrorIs(t, session.UseSigner(), types.ErrNotInitialized)
	require.ErrorIs(t, session.UseReadOnly(), types.ErrNotInitialized)
	require.Same(t, before, session.handles)
}

func TestUseSignerWithoutConfiguredSigner(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newReadySession(t, backend)

	require.ErrorIs(t, session.UseSigner(), types.ErrMissingSigner)
	require.False(t, session.IsSigning())
}

func TestCapabilitySwitchRebindsEveryHandle(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newReadySession(t, backend, WithSigner(ethtest.Transactor(testSignerAddr)))
	require.True(t, session.IsSigning())

	signingHandles := session.handles
	require.NoError(t, session.UseReadOnly())
	require.False(t, session.IsSigning())
	require.NotSame(t, signingHandles, session.handles)
	require.False(t, session.handles.capability.CanSign())
	require.NotNil(t, session.handles.controller, "controller binding survives the swap")

	require.NoError(t, session.UseSigner())
	require.True(t, session.IsSigning())
	require.True(t, session.handles.capability.CanSign())
	require.Equal(t, testController, session.handles.controller.Address())
}

func TestInFlightSnapshotKeepsCapturedCapability(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newReadySession(t, backend, WithSigner(ethtest.Transactor(testSignerAddr)))

	captured, capability := session.snapshot()
	require.NoError(t, session.UseReadOnly())

	// the earlier snapshot still signs; rebinding is not retroactive
	require.True(t, capability.CanSign())
	require.True(t, captured.capability.CanSign())
	require.False(t, session.handles.capability.CanSign())
}

func TestUpdateNetworkRebindsAndResetsReadiness(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newReadySession(t, backend)

	require.NoError(t, session.UpdateNetwork(network.Polygon))

	state, _ := session.Ready()
	require.Equal(t, Pending, state)

	cfg, err := network.Resolve(network.Polygon)
	require.NoError(t, err)
	require.Equal(t, cfg.Registry, session.handles.registry.Address())
	require.Nil(t, session.handles.controller)

	_, err = session.ControllerAddress()
	require.ErrorIs(t, err, types.ErrNotInitialized)
}

func TestUpdateNetworkUnknown(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newReadySession(t, backend)
	require.ErrorIs(t, session.UpdateNetwork(network.Network("ropsten")), network.ErrUnknownNetwork)
}

func TestUpdateSlippageTolerance(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newReadySession(t, backend)

	require.NoError(t, session.UpdateSlippageTolerance(decimal.NewFromFloat(1.25)))
	require.True(t, session.SlippageTolerance().Equal(decimal.NewFromFloat(1.25)))

	require.ErrorIs(t, session.UpdateSlippageTolerance(decimal.NewFromInt(-1)), ErrInvalidSlippage)
	require.ErrorIs(t, session.UpdateSlippageTolerance(decimal.NewFromInt(100)), ErrInvalidSlippage)
}

func TestUpdateSignerTakesEffectOnNextUse(t *testing.T) {
	backend := ethtest.NewBackend()
	session := newReadySession(t, backend)

	require.ErrorIs(t, session.UpdateSigner(nil), ErrNilSigner)
	require.NoError(t, session.UpdateSigner(ethtest.Transactor(testSignerAddr)))
	require.False(t, session.IsSigning(), "UpdateSigner is a plain mutator")

	require.NoError(t, session.UseSigner())
	require.True(t, session.IsSigning())
	require.Equal(t, testSignerAddr, session.DefaultUser())
}

func TestNewRejectsNilBackendAndBadSlippage(t *testing.T) {
	_, err := New(network.Mainnet, nil)
	require.ErrorIs(t, err, ErrNilBackend)

	backend := ethtest.NewBackend()
	_, err = New(network.Mainnet, backend, WithoutAutoInit(), WithDefaultSlippage(decimal.NewFromInt(120)))
	require.ErrorIs(t, err, ErrInvalidSlippage)

	_, err = New(network.Network("ropsten"), backend, WithoutAutoInit())
	require.ErrorIs(t, err, network.ErrUnknownNetwork)
}

func TestAutoInitializeResolvesInBackground(t *testing.T) {
	backend := ethtest.NewBackend()
	respondController(backend)

	session, err := New(network.Mainnet, backend)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, session.AwaitReady(ctx))

	addr, err := session.ControllerAddress()
	require.NoError(t, err)
	require.Equal(t, testController, addr)
}

// Package ethtest provides a recording fake of bind.ContractBackend for
// package tests: read handlers are keyed by method selector, and every
// eth_call and submitted transaction is captured for assertions.
package ethtest

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
)

// Handler produces the ABI-encoded return data for one recorded call.
type Handler func(msg ethereum.CallMsg) ([]byte, error)

// Backend is an in-memory bind.ContractBackend. The zero chain id is 1 so
// sessions constructed for mainnet initialize cleanly.
type Backend struct {
	mu       sync.Mutex
	handlers map[string]Handler

	Calls        []ethereum.CallMsg
	Sent         []*coretypes.Transaction
	ChainIDValue *big.Int
}

func NewBackend() *Backend {
	return &Backend{
		handlers:     make(map[string]Handler),
		ChainIDValue: big.NewInt(1),
	}
}

func selectorKey(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	return hex.EncodeToString(data[:4])
}

// Handle installs a handler for the given ABI method.
func (b *Backend) Handle(method abi.Method, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[hex.EncodeToString(method.ID)] = handler
}

// Return installs a static return value for the given ABI method.
func (b *Backend) Return(method abi.Method, output []byte) {
	b.Handle(method, func(ethereum.CallMsg) ([]byte, error) { return output, nil })
}

// Fail makes the given ABI method return err.
func (b *Backend) Fail(method abi.Method, err error) {
	b.Handle(method, func(ethereum.CallMsg) ([]byte, error) { return nil, err })
}

// Reset clears the recorded calls and transactions, keeping the handlers.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = nil
	b.Sent = nil
}

// CallCount returns the number of recorded eth_calls.
func (b *Backend) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Calls)
}

// SentCount returns the number of submitted transactions.
func (b *Backend) SentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Sent)
}

// SentAt returns the i-th submitted transaction.
func (b *Backend) SentAt(i int) *coretypes.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Sent[i]
}

func (b *Backend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

func (b *Backend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	b.mu.Lock()
	b.Calls = append(b.Calls, msg)
	handler, ok := b.handlers[selectorKey(msg.Data)]
	b.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("ethtest: no handler for selector %s", selectorKey(msg.Data))
	}
	return handler(msg)
}

func (b *Backend) HeaderByNumber(context.Context, *big.Int) (*coretypes.Header, error) {
	return &coretypes.Header{Number: big.NewInt(1), BaseFee: big.NewInt(1)}, nil
}

func (b *Backend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{0x01}, nil
}

func (b *Backend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 1, nil
}

func (b *Backend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *Backend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *Backend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 100000, nil
}

func (b *Backend) SendTransaction(_ context.Context, tx *coretypes.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Sent = append(b.Sent, tx)
	return nil
}

func (b *Backend) FilterLogs(context.Context, ethereum.FilterQuery) ([]coretypes.Log, error) {
	return nil, nil
}

func (b *Backend) SubscribeFilterLogs(context.Context, ethereum.FilterQuery, chan<- coretypes.Log) (ethereum.Subscription, error) {
	return nil, errors.New("ethtest: subscriptions not supported")
}

// ChainID lets the fake satisfy the session's optional chain id check.
func (b *Backend) ChainID(context.Context) (*big.Int, error) {
	return b.ChainIDValue, nil
}

// Transactor returns keyed-style transact options wired for the fake: fixed
// nonce and gas so bound contracts build legacy transactions without extra
// round trips, and a pass-through signer.
func Transactor(from common.Address) *bind.TransactOpts {
	return &bind.TransactOpts{
		From:     from,
		Nonce:    big.NewInt(1),
		GasPrice: big.NewInt(1),
		GasLimit: 500000,
		Signer: func(_ common.Address, tx *coretypes.Transaction) (*coretypes.Transaction, error) {
			return tx, nil
		},
	}
}

// Method looks up a method in an ABI JSON constant.
func Method(abiJSON, name string) abi.Method {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(err)
	}
	method, ok := parsed.Methods[name]
	if !ok {
		panic(fmt.Sprintf("ethtest: no method %q", name))
	}
	return method
}

// PackOutput ABI-encodes return values for a method.
func PackOutput(abiJSON, name string, values ...interface{}) []byte {
	method := Method(abiJSON, name)
	out, err := method.Outputs.Pack(values...)
	if err != nil {
		panic(err)
	}
	return out
}

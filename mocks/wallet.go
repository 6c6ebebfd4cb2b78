package mocks

import (
	"context"
	"math/big"

	"github.com/questx-lab/questkit/pkg/blockchain"
	"github.com/stretchr/testify/mock"
)

type Wallet struct {
	mock.Mock
}

func (w *Wallet) Connector() string {
	args := w.Called()
	return args.String(0)
}

func (w *Wallet) ConnectedAddress() (string, bool) {
	args := w.Called()
	return args.String(0), args.Bool(1)
}

func (w *Wallet) SupportsChainSwitch() bool {
	args := w.Called()
	return args.Bool(0)
}

func (w *Wallet) Connect(arg1 context.Context) (string, error) {
	args := w.Called(arg1)
	return args.String(0), args.Error(1)
}

func (w *Wallet) SwitchChain(arg1 context.Context, arg2 int64) error {
	args := w.Called(arg1, arg2)
	return args.Error(0)
}

func (w *Wallet) EstimateClaimFee(arg1 context.Context, arg2 int64, arg3 string) (*big.Int, error) {
	args := w.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (w *Wallet) Balance(arg1 context.Context, arg2 int64, arg3 string) (*big.Int, error) {
	args := w.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (w *Wallet) SimulateContract(arg1 context.Context, arg2 blockchain.ContractCall) (*blockchain.SimulatedRequest, error) {
	args := w.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, blockchain.ContractCall) *blockchain.SimulatedRequest); ok {
		return fn(arg1, arg2), args.Error(1)
	}
	return args.Get(0).(*blockchain.SimulatedRequest), args.Error(1)
}

func (w *Wallet) WriteContract(arg1 context.Context, arg2 *blockchain.SimulatedRequest) (string, error) {
	args := w.Called(arg1, arg2)
	return args.String(0), args.Error(1)
}

func (w *Wallet) SignMessage(arg1 context.Context, arg2 string) (string, error) {
	args := w.Called(arg1, arg2)
	return args.String(0), args.Error(1)
}

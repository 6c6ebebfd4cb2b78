// Package blockchain declares the on-chain capabilities the reward claim flow
// needs from a wallet integration.
package blockchain

import (
	"context"
	"fmt"
	"math/big"
)

// ContractCall is a call to a contract method with already packed calldata.
type ContractCall struct {
	ChainID int64
	From    string
	To      string
	Method  string
	Data    []byte
}

// SimulatedRequest is a contract call which succeeded in simulation and can be
// submitted as a transaction.
type SimulatedRequest struct {
	ContractCall
	Gas uint64
}

type Wallet interface {
	// Connector is the name of the wallet integration, used in tracking and
	// error reports.
	Connector() string

	// ConnectedAddress returns the address currently authorized in the wallet
	// session, if any.
	ConnectedAddress() (string, bool)

	// SupportsChainSwitch reports whether the current connection can switch
	// chains without reconnecting.
	SupportsChainSwitch() bool

	Connect(ctx context.Context) (string, error)
	SwitchChain(ctx context.Context, chainID int64) error

	// EstimateClaimFee returns the native token amount needed to submit a claim
	// transaction on the chain.
	EstimateClaimFee(ctx context.Context, chainID int64, from string) (*big.Int, error)
	Balance(ctx context.Context, chainID int64, address string) (*big.Int, error)

	// SimulateContract returns a *RevertError if the call would revert.
	SimulateContract(ctx context.Context, call ContractCall) (*SimulatedRequest, error)

	// WriteContract submits the simulated request and returns the transaction
	// hash.
	WriteContract(ctx context.Context, req *SimulatedRequest) (string, error)
	SignMessage(ctx context.Context, message string) (string, error)
}

// RevertError is returned when a contract call reverts. Reason is the decoded
// revert reason or custom error name, it is empty if the data cannot be
// decoded.
type RevertError struct {
	Reason string
	Data   []byte
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return "execution reverted"
	}

	return fmt.Sprintf("execution reverted: %s", e.Reason)
}

package rewardclaim

import (
	"errors"
	"fmt"

	"github.com/questx-lab/questkit/pkg/errorx"
)

var (
	ErrClaimPending       = errorx.New(errorx.TooManyRequests, "Reward claim is already in progress")
	ErrRewardTypeDisabled = errorx.New(errorx.PermissionDenied, "Reward type is not enabled")
)

// WarningError is an expected business condition the user can act on.
type WarningError struct {
	Title   string
	Message string
}

func (e *WarningError) Error() string {
	return e.Message
}

func newWarning(title, message string) *WarningError {
	return &WarningError{Title: title, Message: message}
}

func warnNotSignedIn() *WarningError {
	return newWarning("Sign in required", "Not signed in")
}

func warnNotEligible() *WarningError {
	return newWarning("Not eligible", "Not eligible yet")
}

func warnLowBalance() *WarningError {
	return newWarning("Insufficient funds", "Low Balance")
}

func warnNoG7Account() *WarningError {
	return newWarning("Account link required", "No G7 Account Linked")
}

// NoAccountConnectedError is returned when no wallet address could be
// obtained for an on-chain claim.
type NoAccountConnectedError struct {
	Err error
}

func (e *NoAccountConnectedError) Error() string {
	if e.Err == nil {
		return "No account connected"
	}

	return fmt.Sprintf("No account connected: %v", e.Err)
}

func (e *NoAccountConnectedError) Unwrap() error {
	return e.Err
}

// SwitchChainError is returned when the wallet cannot switch to the chain of
// the reward.
type SwitchChainError struct {
	ChainID int64
	Err     error
}

func (e *SwitchChainError) Error() string {
	return fmt.Sprintf("Cannot switch to chain %d: %v", e.ChainID, e.Err)
}

func (e *SwitchChainError) Unwrap() error {
	return e.Err
}

// ContractRevertError is returned when simulating or submitting the withdraw
// call reverts.
type ContractRevertError struct {
	Reason string
	Err    error
}

func (e *ContractRevertError) Error() string {
	if e.Reason == "" {
		return "Contract reverted"
	}

	return fmt.Sprintf("Contract reverted: %s", e.Reason)
}

func (e *ContractRevertError) Unwrap() error {
	return e.Err
}

// ClaimError wraps a failed claim with the properties it was tracked with.
type ClaimError struct {
	Err        error
	Properties map[string]any
}

func (e *ClaimError) Error() string {
	return e.Err.Error()
}

func (e *ClaimError) Unwrap() error {
	return e.Err
}

// trackedMessage is the error message sent in tracking events. Contract
// reverts are tracked by their reason.
func trackedMessage(err error) string {
	var revertErr *ContractRevertError
	if errors.As(err, &revertErr) && revertErr.Reason != "" {
		return revertErr.Reason
	}

	return err.Error()
}

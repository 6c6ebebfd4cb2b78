package rewardclaim

import (
	"errors"
	"fmt"

	"github.com/questx-lab/questkit/pkg/enum"
	"github.com/questx-lab/questkit/pkg/errorx"
)

type AlertKind string

var (
	AlertWarning        = enum.New(AlertKind("warning"))
	AlertSwitchChain    = enum.New(AlertKind("switch_chain"))
	AlertContractRevert = enum.New(AlertKind("contract_revert"))
	AlertAlreadyLinked  = enum.New(AlertKind("already_linked"))
	AlertGeneric        = enum.New(AlertKind("generic"))
)

// Alert is what the user sees after a failed claim.
type Alert struct {
	Kind    AlertKind
	Title   string
	Message string
	Action  string
}

const (
	actionDismiss       = "Dismiss"
	actionRetry         = "Retry"
	actionSupportTicket = "Open a ticket in Discord"

	claimFailedTitle   = "Claim failed"
	claimFailedMessage = "Something went wrong while claiming your reward. Open a ticket in our Discord and we will help you."
)

// Classify picks the alert of a claim error. It is the only place errors are
// mapped to user facing messages.
func Classify(err error) Alert {
	var warning *WarningError
	if errors.As(err, &warning) {
		return Alert{Kind: AlertWarning, Title: warning.Title, Message: warning.Message}
	}

	var switchErr *SwitchChainError
	if errors.As(err, &switchErr) {
		return Alert{
			Kind:    AlertSwitchChain,
			Title:   "Wrong network",
			Message: fmt.Sprintf("Switch your wallet to the network with chain id %d and try again.", switchErr.ChainID),
			Action:  actionRetry,
		}
	}

	var revertErr *ContractRevertError
	if errors.As(err, &revertErr) {
		return Alert{
			Kind:    AlertContractRevert,
			Title:   claimFailedTitle,
			Message: claimFailedMessage,
			Action:  actionSupportTicket,
		}
	}

	if errorx.Is(err, errorx.AlreadyExists) {
		return Alert{
			Kind:    AlertAlreadyLinked,
			Title:   "Already linked",
			Message: "This account is already linked to another user.",
			Action:  actionDismiss,
		}
	}

	return Alert{
		Kind:    AlertGeneric,
		Title:   claimFailedTitle,
		Message: claimFailedMessage,
		Action:  actionSupportTicket,
	}
}

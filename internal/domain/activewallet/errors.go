package activewallet

import (
	"net/http"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/enum"
	"github.com/questx-lab/questkit/pkg/errorx"
)

var (
	ErrNoConnectedWallet = errorx.New(errorx.BadRequest, "No wallet is connected")
	ErrMutationPending   = errorx.New(errorx.TooManyRequests, "Active wallet update is already in progress")
)

// AlreadyLinkedError is returned when the connected wallet belongs to another
// account.
type AlreadyLinkedError struct {
	Address string
}

func (e *AlreadyLinkedError) Error() string {
	return "This wallet is already linked to another account"
}

// resultError converts an unsuccessful SetActiveWallet result to an error.
func resultError(result *entity.SetActiveWalletResult) error {
	if result.Status == http.StatusConflict {
		return errorx.New(errorx.AlreadyExists, "%s", result.Message)
	}

	if result.Message == "" {
		return errorx.New(errorx.Internal, "Cannot set active wallet (status %d)", result.Status)
	}

	return errorx.New(errorx.Internal, "Cannot set active wallet (status %d): %s", result.Status, result.Message)
}

type AlertKind string

var (
	AlertNone          = enum.New(AlertKind(""))
	AlertAlreadyLinked = enum.New(AlertKind("wallet_already_linked"))
	AlertGeneric       = enum.New(AlertKind("generic_failure"))
)

// Alert is what the user sees after a failed mutation.
type Alert struct {
	Kind    AlertKind
	Title   string
	Message string
	Action  string
}

var (
	alreadyLinkedAlert = Alert{
		Kind:    AlertAlreadyLinked,
		Title:   "Wallet Already Linked",
		Message: "This wallet is already linked to another account. Connect a different wallet to continue.",
		Action:  "Dismiss",
	}

	genericAlert = Alert{
		Kind:    AlertGeneric,
		Title:   "Something went wrong",
		Message: "We could not set your active wallet. Please try again or open a ticket in our Discord.",
		Action:  "Retry",
	}
)

package activewallet

import (
	"strings"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/enum"
)

// State is the relation between the wallet connected in the wallet session and
// the active wallet the backend tracks eligibility for.
type State string

var (
	NoWallet             = enum.New(State("NO_WALLET"))
	OnlyConnected        = enum.New(State("ONLY_CONNECTED"))
	OnlyActive           = enum.New(State("ONLY_ACTIVE"))
	Matching             = enum.New(State("MATCHING"))
	DifferentNewWallet   = enum.New(State("DIFFERENT_NEW_WALLET"))
	DifferentKnownWallet = enum.New(State("DIFFERENT_KNOWN_WALLET"))
)

// Derive returns the state of a connected and an active address, both may be
// empty. Addresses are compared case-insensitively.
func Derive(connected, active string, known []entity.GameplayWallet) State {
	switch {
	case connected == "" && active == "":
		return NoWallet
	case active == "":
		return OnlyConnected
	case connected == "":
		return OnlyActive
	case sameAddress(connected, active):
		return Matching
	}

	if _, ok := findWallet(known, connected); ok {
		return DifferentKnownWallet
	}

	return DifferentNewWallet
}

// CanSetActive reports whether the connected wallet can be set as the active
// wallet from this state.
func (s State) CanSetActive() bool {
	return s == OnlyConnected || s == DifferentNewWallet || s == DifferentKnownWallet
}

func sameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

func findWallet(wallets []entity.GameplayWallet, address string) (entity.GameplayWallet, bool) {
	for _, w := range wallets {
		if sameAddress(w.WalletAddress, address) {
			return w, true
		}
	}

	return entity.GameplayWallet{}, false
}

package main

import (
	"fmt"

	"github.com/questx-lab/questkit/internal/domain/activewallet"
	"github.com/urfave/cli/v2"
)

func (s *srv) connectedWallet() activewallet.ConnectedWallet {
	if s.wallet == nil {
		return activewallet.ConnectedWallet{}
	}

	address, _ := s.wallet.ConnectedAddress()
	return activewallet.ConnectedWallet{Address: address, Connector: s.wallet.Connector()}
}

func (s *srv) walletState(c *cli.Context) error {
	connected := s.connectedWallet()
	state, err := s.reconciler.State(s.ctx, connected.Address)
	if err != nil {
		return err
	}

	active, err := s.reconciler.ActiveWallet(s.ctx)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Connected: %s\n", connected.Address)
	fmt.Fprintf(w, "Active:    %s\n", active)
	fmt.Fprintf(w, "State:     %s\n", state)
	if state.CanSetActive() {
		fmt.Fprintln(w, "Run `questd wallet set-active` to use the connected wallet")
	}

	return nil
}

func (s *srv) walletSetActive(c *cli.Context) error {
	connected := s.connectedWallet()
	if err := s.reconciler.SetActive(s.ctx, connected); err != nil {
		alert := s.reconciler.Alert()
		if alert.Kind == activewallet.AlertNone {
			return err
		}

		return cli.Exit(fmt.Sprintf("%s: %s", alert.Title, alert.Message), 1)
	}

	fmt.Fprintf(c.App.Writer, "Active wallet is now %s\n", connected.Address)
	return nil
}

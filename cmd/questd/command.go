package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Name = "questd"
	s.app.Usage = "Resolve, claim and sync quests of a host backend"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "questd.toml",
			Usage:   "Path of the toml configuration file",
		},
	}
	s.app.Before = s.load
	s.app.After = s.close
	s.app.Commands = []*cli.Command{
		{
			Action:   s.status,
			Name:     "status",
			Usage:    "Print the state of a quest",
			Category: "Quest",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "quest", Usage: "Quest id", Required: true},
			},
		},
		{
			Action:   s.claim,
			Name:     "claim",
			Usage:    "Claim a reward of a quest",
			Category: "Quest",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "quest", Usage: "Quest id", Required: true},
				&cli.Int64Flag{Name: "reward", Usage: "Reward id", Required: true},
			},
			Description: `Claims the reward with the configured private key wallet. On-chain rewards
are withdrawn from the deposit contract of the reward chain.`,
		},
		{
			Name:     "wallet",
			Usage:    "Manage the active wallet of the account",
			Category: "Wallet",
			Subcommands: []*cli.Command{
				{
					Action: s.walletState,
					Name:   "state",
					Usage:  "Compare the configured wallet with the active wallet",
				},
				{
					Action: s.walletSetActive,
					Name:   "set-active",
					Usage:  "Set the configured wallet as the active wallet",
				},
			},
		},
		{
			Action:   s.sync,
			Name:     "sync",
			Usage:    "Sync play sessions of a project until interrupted",
			Category: "Worker",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "project", Usage: "Project id, the configured one if empty"},
			},
			Description: `Keeps the play streak of every quest of the project in sync and serves
prometheus metrics on the configured metrics address.`,
		},
	}
}

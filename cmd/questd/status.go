package main

import (
	"fmt"

	"github.com/questx-lab/questkit/internal/domain/queststatus"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) status(c *cli.Context) error {
	quest, state, err := s.resolver.Status(s.ctx, c.Int64("quest"))
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Quest:  %d %s (%s, %s)\n", quest.ID, quest.Name, quest.Type, quest.Status)
	if state == queststatus.Undefined {
		fmt.Fprintln(w, "State:  not eligible")
	} else {
		fmt.Fprintf(w, "State:  %s\n", state)
	}

	now := xcontext.Clock(s.ctx).Now()
	if windows, ok := s.resolver.Windows(s.ctx, quest); ok {
		switch {
		case windows.IsInWaitPeriod(now):
			fmt.Fprintf(w, "Window: rewards are calculated until %s\n", windows.WaitPeriodEnd)
		case windows.IsInClaimPeriod(now):
			fmt.Fprintf(w, "Window: rewards can be claimed until %s\n", windows.ClaimPeriodEnd)
		}
	}

	if quest.Type == entity.QuestPlayStreak {
		snapshot, err := s.resolver.Snapshot(s.ctx, quest)
		if err != nil {
			return err
		}

		progress, err := queststatus.NewProgress(quest, snapshot.PlayStreak)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "Streak: %d/%d days (%.0f%%)\n",
			progress.CurrentDays, progress.RequiredDays, progress.DaysRatio()*100)
		if progress.SessionTimeLeft > 0 {
			fmt.Fprintf(w, "Today:  %s left to reach %s\n", progress.SessionTimeLeft, progress.MinimumSession)
		}
	}

	for _, reward := range quest.Rewards {
		fmt.Fprintf(w, "Reward: %d %s (%s)\n", reward.ID, reward.Title, reward.RewardType)
	}

	return nil
}

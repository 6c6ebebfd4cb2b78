package main

import (
	"fmt"

	"github.com/questx-lab/questkit/internal/domain/rewardclaim"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/urfave/cli/v2"
)

func (s *srv) claim(c *cli.Context) error {
	quest, state, err := s.resolver.Status(s.ctx, c.Int64("quest"))
	if err != nil {
		return err
	}

	rewardID := c.Int64("reward")
	var reward *entity.Reward
	for i := range quest.Rewards {
		if quest.Rewards[i].ID == rewardID {
			reward = &quest.Rewards[i]
			break
		}
	}

	if reward == nil {
		return cli.Exit(fmt.Sprintf("Quest %d has no reward %d", quest.ID, rewardID), 1)
	}

	err = s.orchestrator.Claim(s.ctx, rewardclaim.Request{Quest: quest, Reward: *reward, State: state})
	if err != nil {
		alert := rewardclaim.Classify(err)
		msg := fmt.Sprintf("%s: %s", alert.Title, alert.Message)
		if alert.Action != "" {
			msg += fmt.Sprintf(" [%s]", alert.Action)
		}
		return cli.Exit(msg, 1)
	}

	fmt.Fprintf(c.App.Writer, "Claimed %s\n", reward.Title)
	if reward.RewardType == entity.RewardExternalTasks {
		credits, err := s.orchestrator.ExternalTaskCredits(s.ctx, reward.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Credits: %s\n", credits)
	}

	return nil
}

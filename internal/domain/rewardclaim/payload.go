package rewardclaim

import (
	"github.com/fatih/structs"
	"github.com/questx-lab/questkit/internal/entity"
)

// Reward fields left out of tracking events.
var strippedRewardFields = []string{"amount_per_user", "chain_id", "decimals", "marketplace_url"}

func rewardProperties(quest *entity.Quest, reward entity.Reward) map[string]any {
	props := structs.Map(reward)
	for _, field := range strippedRewardFields {
		delete(props, field)
	}
	props["quest_id"] = quest.ID

	return props
}

func withProperties(props map[string]any, extra map[string]any) map[string]any {
	m := make(map[string]any, len(props)+len(extra))
	for k, v := range props {
		m[k] = v
	}
	for k, v := range extra {
		m[k] = v
	}

	return m
}

package common

import "github.com/questx-lab/questkit/internal/querycache"

const (
	QueryQuest               querycache.Key = "quest"
	QueryPlayStreak          querycache.Key = "playstreak"
	QueryExternalEligibility querycache.Key = "external-eligibility"
	QueryActiveWallet        querycache.Key = "active-wallet"
	QueryGameplayWallets     querycache.Key = "gameplay-wallets"
	QueryPointsBalance       querycache.Key = "points-balance"
	QueryExternalTaskCredits querycache.Key = "external-task-credits"
	QueryPendingExternalSync querycache.Key = "pending-external-sync"
	QuerySyncPlaySession     querycache.Key = "sync-play-session"
	QueryProjectQuests       querycache.Key = "project-quests"
)

func QuestKey(questID int64) querycache.Key {
	return querycache.NewKey(QueryQuest, questID)
}

func PlayStreakKey(questID int64) querycache.Key {
	return querycache.NewKey(QueryPlayStreak, questID)
}

func ExternalEligibilityKey(questID int64) querycache.Key {
	return querycache.NewKey(QueryExternalEligibility, questID)
}

func PointsBalanceKey(projectID string) querycache.Key {
	return querycache.NewKey(QueryPointsBalance, projectID)
}

func ExternalTaskCreditsKey(rewardID int64) querycache.Key {
	return querycache.NewKey(QueryExternalTaskCredits, rewardID)
}

func PendingExternalSyncKey(questID int64) querycache.Key {
	return querycache.NewKey(QueryPendingExternalSync, questID)
}

func SyncPlaySessionKey(projectID string) querycache.Key {
	return querycache.NewKey(QuerySyncPlaySession, projectID)
}

func ProjectQuestsKey(projectID string) querycache.Key {
	return querycache.NewKey(QueryProjectQuests, projectID)
}

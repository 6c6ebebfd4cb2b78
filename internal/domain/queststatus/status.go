// Package queststatus derives the eligibility state of a quest from its
// metadata and the user's progress. The resolve functions are pure, Resolver
// fetches their inputs through the query cache.
package queststatus

import (
	"errors"
	"time"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/enum"
)

type State string

var (
	// Undefined means the quest is over or the user is not eligible.
	Undefined     = State("")
	Active        = enum.New(State("ACTIVE"))
	ReadyForClaim = enum.New(State("READY_FOR_CLAIM"))
	Claimed       = enum.New(State("CLAIMED"))
)

var ErrMissingEligibilityCriteria = errors.New("quest has no play streak eligibility criteria")

// Snapshot is the progress of the user on a quest. Play-streak quests use
// PlayStreak, every other quest type uses External.
type Snapshot struct {
	PlayStreak *entity.UserPlayStreak
	External   *entity.ExternalEligibility
}

func Resolve(quest *entity.Quest, snapshot Snapshot, now time.Time) (State, error) {
	if quest.Type == entity.QuestPlayStreak {
		if snapshot.PlayStreak == nil {
			return Undefined, nil
		}

		return ResolvePlayStreak(quest, snapshot.PlayStreak)
	}

	return ResolveExternal(quest, snapshot.External, now), nil
}

// ResolvePlayStreak applies the play-streak rule. A met streak takes
// precedence over the quest being completed.
func ResolvePlayStreak(quest *entity.Quest, progress *entity.UserPlayStreak) (State, error) {
	criteria := quest.PlayStreakCriteria()
	if criteria == nil {
		return Undefined, ErrMissingEligibilityCriteria
	}

	infinite := quest.IsInfinitelyRepeatable()
	canComplete := infinite || progress.CompletedCounter < *quest.NumOfTimesRepeatable
	if progress.CurrentPlaystreakInDays >= criteria.RequiredPlaystreakInDays && canComplete {
		return ReadyForClaim, nil
	}

	if quest.Status == entity.QuestCompleted {
		return Undefined, nil
	}

	if infinite {
		return Active, nil
	}

	if !canComplete {
		return Claimed, nil
	}

	return Active, nil
}

// ResolveExternal applies the rule of quests whose eligibility is computed by
// the host, e.g. leaderboards. eligibility may be nil if it hasn't been
// computed yet.
func ResolveExternal(quest *entity.Quest, eligibility *entity.ExternalEligibility, now time.Time) State {
	switch quest.Status {
	case entity.QuestCompleted:
		return Undefined

	case entity.QuestActive:
		return Active

	case entity.QuestClaimable:
		if quest.EndDate != nil && now.Before(*quest.EndDate) {
			return Active
		}

		if eligibility == nil {
			return Undefined
		}

		if eligibility.Amount > 0 {
			return ReadyForClaim
		}
	}

	return Undefined
}

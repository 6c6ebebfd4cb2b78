package queststatus

import (
	"context"

	"github.com/questx-lab/questkit/internal/common"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/internal/querycache"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

type Resolver struct {
	host  host.QuestData
	cache *querycache.Cache
}

func NewResolver(h host.QuestData, cache *querycache.Cache) *Resolver {
	return &Resolver{host: h, cache: cache}
}

func (r *Resolver) Quest(ctx context.Context, questID int64) (*entity.Quest, error) {
	return querycache.Fetch(ctx, r.cache, common.QuestKey(questID), r.options(ctx),
		func(ctx context.Context) (*entity.Quest, error) {
			return r.host.GetQuest(ctx, questID)
		})
}

func (r *Resolver) Snapshot(ctx context.Context, quest *entity.Quest) (Snapshot, error) {
	if quest.Type == entity.QuestPlayStreak {
		progress, err := querycache.Fetch(ctx, r.cache, common.PlayStreakKey(quest.ID), r.options(ctx),
			func(ctx context.Context) (*entity.UserPlayStreak, error) {
				return r.host.GetUserPlayStreak(ctx, quest.ID)
			})
		if err != nil {
			return Snapshot{}, err
		}

		return Snapshot{PlayStreak: progress}, nil
	}

	eligibility, err := querycache.Fetch(ctx, r.cache, common.ExternalEligibilityKey(quest.ID), r.options(ctx),
		func(ctx context.Context) (*entity.ExternalEligibility, error) {
			return r.host.GetExternalEligibility(ctx, quest.ID)
		})
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{External: eligibility}, nil
}

// Status fetches the quest and the user's progress and resolves the state.
func (r *Resolver) Status(ctx context.Context, questID int64) (*entity.Quest, State, error) {
	quest, err := r.Quest(ctx, questID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest %d: %v", questID, err)
		return nil, Undefined, err
	}

	snapshot, err := r.Snapshot(ctx, quest)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get progress of quest %d: %v", questID, err)
		return nil, Undefined, err
	}

	state, err := Resolve(quest, snapshot, xcontext.Clock(ctx).Now())
	if err != nil {
		return nil, Undefined, err
	}

	return quest, state, nil
}

// Windows returns the claim windows of the quest, false if it has no end date.
func (r *Resolver) Windows(ctx context.Context, quest *entity.Quest) (Windows, bool) {
	if quest.EndDate == nil {
		return Windows{}, false
	}

	cfg := xcontext.Configs(ctx).Quest
	return NewWindows(*quest.EndDate, cfg.WaitPeriod.Duration, cfg.ClaimPeriod.Duration), true
}

func (r *Resolver) options(ctx context.Context) querycache.Options {
	return querycache.Options{StaleTime: xcontext.Configs(ctx).Quest.FreshnessTTL.Duration}
}

// Package rewardclaim redeems the rewards of eligible quests, on-chain through
// the deposit contract or off-chain through the host.
package rewardclaim

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/questkit/internal/common"
	"github.com/questx-lab/questkit/internal/domain/queststatus"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/internal/querycache"
	"github.com/questx-lab/questkit/pkg/blockchain"
	"github.com/questx-lab/questkit/pkg/errorx"
	"github.com/questx-lab/questkit/pkg/xcontext"
	"golang.org/x/exp/slices"
)

const (
	outcomeSuccess = "success"
	outcomeWarning = "warning"
	outcomeError   = "error"
)

// Host is the part of the host the orchestrator needs.
type Host interface {
	host.QuestData
	host.ClaimOps
	host.Telemetry
	host.Session
}

type Request struct {
	Quest  *entity.Quest
	Reward entity.Reward

	// State is the resolved state of the quest, claims are only attempted
	// when it is ReadyForClaim.
	State queststatus.State
}

// attempt collects what is known about a claim while it runs, for tracking
// and error reports.
type attempt struct {
	id        string
	address   string
	connector string
	txHash    string
}

type Orchestrator struct {
	host   Host
	wallet blockchain.Wallet
	cache  *querycache.Cache
	clock  clockwork.Clock

	pending *xsync.MapOf[string, struct{}]
}

// NewOrchestrator returns an orchestrator. wallet may be nil if the host only
// offers off-chain rewards.
func NewOrchestrator(
	h Host,
	wallet blockchain.Wallet,
	cache *querycache.Cache,
	clock clockwork.Clock,
) *Orchestrator {
	return &Orchestrator{
		host:    h,
		wallet:  wallet,
		cache:   cache,
		clock:   clock,
		pending: xsync.NewMapOf[struct{}](),
	}
}

// IsPending reports whether a claim of the reward is in flight.
func (o *Orchestrator) IsPending(rewardID int64) bool {
	_, ok := o.pending.Load(pendingKey(rewardID))
	return ok
}

// Claim runs a claim attempt. Expected business conditions are returned as
// *WarningError, every other failure as *ClaimError.
func (o *Orchestrator) Claim(ctx context.Context, req Request) error {
	key := pendingKey(req.Reward.ID)
	if _, loaded := o.pending.LoadOrStore(key, struct{}{}); loaded {
		return ErrClaimPending
	}
	defer o.pending.Delete(key)

	a := &attempt{id: uuid.NewString()}
	if o.wallet != nil {
		a.connector = o.wallet.Connector()
	}

	props := rewardProperties(req.Quest, req.Reward)
	props["claim_id"] = a.id
	o.track(ctx, common.EventRewardClaimStarted, props)

	err := o.claim(ctx, req, a)
	rewardType := string(req.Reward.RewardType)

	if err == nil {
		o.track(ctx, common.EventRewardClaimSuccess, withProperties(props, a.properties()))
		common.IncCounter(common.RewardClaimsTotal, rewardType, outcomeSuccess)
		xcontext.Logger(ctx).Infof("Claimed reward %d of quest %d", req.Reward.ID, req.Quest.ID)
		return nil
	}

	var warning *WarningError
	if errors.As(err, &warning) {
		o.track(ctx, common.EventRewardClaimWarning, withProperties(props, map[string]any{
			"warning": warning.Message,
		}))
		common.IncCounter(common.RewardClaimsTotal, rewardType, outcomeWarning)
		return warning
	}

	errProps := withProperties(props, a.properties())
	errProps["error"] = trackedMessage(err)
	o.track(ctx, common.EventRewardClaimError, errProps)
	common.IncCounter(common.RewardClaimsTotal, rewardType, outcomeError)

	xcontext.Logger(ctx).Errorf("Cannot claim reward %d of quest %d: %v", req.Reward.ID, req.Quest.ID, err)
	o.host.LogError(ctx, "Cannot claim reward", &host.LogOptions{
		Tags: map[string]string{
			"reward_type": rewardType,
			"connector":   a.connector,
		},
		Extra: map[string]any{
			"quest_id":       req.Quest.ID,
			"reward_id":      req.Reward.ID,
			"wallet_address": a.address,
			"error":          err.Error(),
		},
	})

	return &ClaimError{Err: err, Properties: errProps}
}

func (o *Orchestrator) claim(ctx context.Context, req Request, a *attempt) error {
	if err := o.checkGuards(ctx, req); err != nil {
		return err
	}

	switch {
	case req.Reward.IsOnChain():
		return o.mint(ctx, req, a)

	case req.Reward.RewardType == entity.RewardPoints:
		return o.claimPoints(ctx, req)

	case req.Reward.RewardType == entity.RewardExternalTasks:
		return o.completeExternalTask(ctx, req)
	}

	return errorx.New(errorx.NotImplemented, "Unsupported reward type %s", req.Reward.RewardType)
}

// checkGuards runs before any network call.
func (o *Orchestrator) checkGuards(ctx context.Context, req Request) error {
	if !o.host.IsSignedIn(ctx) {
		return warnNotSignedIn()
	}

	if req.State != queststatus.ReadyForClaim {
		return warnNotEligible()
	}

	enabled := xcontext.Configs(ctx).Claim.EnabledRewardTypes
	if !slices.Contains(enabled, string(req.Reward.RewardType)) {
		return ErrRewardTypeDisabled
	}

	return nil
}

func (o *Orchestrator) claimPoints(ctx context.Context, req Request) error {
	if err := o.host.ClaimPoints(ctx, req.Reward); err != nil {
		return err
	}

	o.cache.Invalidate(ctx, common.PointsBalanceKey(req.Quest.ProjectID))
	return nil
}

func (o *Orchestrator) completeExternalTask(ctx context.Context, req Request) error {
	connected, err := o.host.CheckG7ConnectionStatus(ctx)
	if err != nil {
		return err
	}

	if !connected {
		return warnNoG7Account()
	}

	if err := o.host.CompleteExternalTask(ctx, req.Reward); err != nil {
		return err
	}

	o.cache.Invalidate(ctx, common.ExternalTaskCreditsKey(req.Reward.ID))
	return nil
}

// ExternalTaskCredits returns the credits the user has for an external task
// reward.
func (o *Orchestrator) ExternalTaskCredits(ctx context.Context, rewardID int64) (string, error) {
	opts := querycache.Options{StaleTime: xcontext.Configs(ctx).Quest.FreshnessTTL.Duration}
	return querycache.Fetch(ctx, o.cache, common.ExternalTaskCreditsKey(rewardID), opts,
		func(ctx context.Context) (string, error) {
			return o.host.GetExternalTaskCredits(ctx, rewardID)
		})
}

func (o *Orchestrator) track(ctx context.Context, event string, props map[string]any) {
	o.host.TrackEvent(ctx, host.TrackEvent{Event: event, Properties: props})
}

func (a *attempt) properties() map[string]any {
	props := map[string]any{}
	if a.connector != "" {
		props["wallet_connector"] = a.connector
	}
	if a.address != "" {
		props["wallet_address"] = a.address
	}
	if a.txHash != "" {
		props["transaction_hash"] = a.txHash
	}

	return props
}

func pendingKey(rewardID int64) string {
	return strconv.FormatInt(rewardID, 10)
}

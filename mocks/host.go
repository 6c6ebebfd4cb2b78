package mocks

import (
	"context"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/stretchr/testify/mock"
)

type Host struct {
	mock.Mock
}

func (h *Host) GetQuests(arg1 context.Context, arg2 string) ([]entity.Quest, error) {
	args := h.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quest), args.Error(1)
}

func (h *Host) GetQuest(arg1 context.Context, arg2 int64) (*entity.Quest, error) {
	args := h.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quest), args.Error(1)
}

func (h *Host) GetUserPlayStreak(arg1 context.Context, arg2 int64) (*entity.UserPlayStreak, error) {
	args := h.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserPlayStreak), args.Error(1)
}

func (h *Host) GetExternalEligibility(arg1 context.Context, arg2 int64) (*entity.ExternalEligibility, error) {
	args := h.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExternalEligibility), args.Error(1)
}

func (h *Host) GetDepositContracts(arg1 context.Context, arg2 int64) ([]entity.DepositContract, error) {
	args := h.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DepositContract), args.Error(1)
}

func (h *Host) GetPendingExternalSync(arg1 context.Context, arg2 int64) (bool, error) {
	args := h.Called(arg1, arg2)
	return args.Bool(0), args.Error(1)
}

func (h *Host) SyncPlayStreakWithExternalSource(arg1 context.Context, arg2 int64) error {
	args := h.Called(arg1, arg2)
	return args.Error(0)
}

func (h *Host) GetExternalTaskCredits(arg1 context.Context, arg2 int64) (string, error) {
	args := h.Called(arg1, arg2)
	return args.String(0), args.Error(1)
}

func (h *Host) GetActiveWallet(arg1 context.Context) (string, error) {
	args := h.Called(arg1)
	return args.String(0), args.Error(1)
}

func (h *Host) GetGameplayWallets(arg1 context.Context) ([]entity.GameplayWallet, error) {
	args := h.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameplayWallet), args.Error(1)
}

func (h *Host) UpdateActiveWallet(arg1 context.Context, arg2 int64) error {
	args := h.Called(arg1, arg2)
	return args.Error(0)
}

func (h *Host) SetActiveWallet(arg1 context.Context, arg2 entity.WalletSignature) (*entity.SetActiveWalletResult, error) {
	args := h.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SetActiveWalletResult), args.Error(1)
}

func (h *Host) GetActiveWalletSignature(arg1 context.Context) (*entity.WalletSignature, error) {
	args := h.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WalletSignature), args.Error(1)
}

func (h *Host) GetQuestRewardSignature(arg1 context.Context, arg2 string, arg3 int64, arg4 *int64) (*entity.RewardClaimSignature, error) {
	args := h.Called(arg1, arg2, arg3, arg4)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RewardClaimSignature), args.Error(1)
}

func (h *Host) ConfirmRewardClaim(arg1 context.Context, arg2 entity.ConfirmClaimParams) error {
	args := h.Called(arg1, arg2)
	return args.Error(0)
}

func (h *Host) ClaimPoints(arg1 context.Context, arg2 entity.Reward) error {
	args := h.Called(arg1, arg2)
	return args.Error(0)
}

func (h *Host) CompleteExternalTask(arg1 context.Context, arg2 entity.Reward) error {
	args := h.Called(arg1, arg2)
	return args.Error(0)
}

func (h *Host) CheckG7ConnectionStatus(arg1 context.Context) (bool, error) {
	args := h.Called(arg1)
	return args.Bool(0), args.Error(1)
}

func (h *Host) SyncPlaySession(arg1 context.Context, arg2, arg3 string) error {
	args := h.Called(arg1, arg2, arg3)
	return args.Error(0)
}

func (h *Host) TrackEvent(arg1 context.Context, arg2 host.TrackEvent) {
	h.Called(arg1, arg2)
}

func (h *Host) LogError(arg1 context.Context, arg2 string, arg3 *host.LogOptions) {
	h.Called(arg1, arg2, arg3)
}

func (h *Host) LogInfo(arg1 context.Context, arg2 string) {
	h.Called(arg1, arg2)
}

func (h *Host) IsSignedIn(arg1 context.Context) bool {
	args := h.Called(arg1)
	return args.Bool(0)
}

// TrackedEvents returns the names of the tracking events received so far.
func (h *Host) TrackedEvents() []string {
	events := []string{}
	for _, call := range h.Calls {
		if call.Method == "TrackEvent" {
			events = append(events, call.Arguments.Get(1).(host.TrackEvent).Event)
		}
	}

	return events
}

// LastTrackedEvent returns the last tracking event with the given name.
func (h *Host) LastTrackedEvent(name string) (host.TrackEvent, bool) {
	var found host.TrackEvent
	var ok bool
	for _, call := range h.Calls {
		if call.Method != "TrackEvent" {
			continue
		}

		if ev := call.Arguments.Get(1).(host.TrackEvent); ev.Event == name {
			found, ok = ev, true
		}
	}

	return found, ok
}

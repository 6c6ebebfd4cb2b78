// Package host declares the capabilities a host application provides to the
// quest engine. Every backend operation (quest metadata, wallet state,
// signatures, claims, telemetry) goes through one of these groups so callers
// can mock or partially implement them.
package host

import (
	"context"

	"github.com/questx-lab/questkit/internal/entity"
)

// QuestData reads quest metadata and the current user's progress.
type QuestData interface {
	GetQuests(ctx context.Context, projectID string) ([]entity.Quest, error)
	GetQuest(ctx context.Context, questID int64) (*entity.Quest, error)
	GetUserPlayStreak(ctx context.Context, questID int64) (*entity.UserPlayStreak, error)

	// GetExternalEligibility returns nil without error if there is no data
	// for the quest yet.
	GetExternalEligibility(ctx context.Context, questID int64) (*entity.ExternalEligibility, error)
	GetDepositContracts(ctx context.Context, questID int64) ([]entity.DepositContract, error)
	GetPendingExternalSync(ctx context.Context, questID int64) (bool, error)
	SyncPlayStreakWithExternalSource(ctx context.Context, questID int64) error
	GetExternalTaskCredits(ctx context.Context, rewardID int64) (string, error)
}

// WalletData manages the active wallet of the signed-in account.
type WalletData interface {
	// GetActiveWallet returns an empty string if the account has no active
	// wallet.
	GetActiveWallet(ctx context.Context) (string, error)
	GetGameplayWallets(ctx context.Context) ([]entity.GameplayWallet, error)
	UpdateActiveWallet(ctx context.Context, walletID int64) error
	SetActiveWallet(ctx context.Context, sig entity.WalletSignature) (*entity.SetActiveWalletResult, error)
	GetActiveWalletSignature(ctx context.Context) (*entity.WalletSignature, error)
}

// ClaimOps redeems rewards and reports play sessions.
type ClaimOps interface {
	// tokenID is only provided for ERC1155 rewards with a single token id.
	GetQuestRewardSignature(ctx context.Context, address string, rewardID int64, tokenID *int64) (*entity.RewardClaimSignature, error)
	ConfirmRewardClaim(ctx context.Context, params entity.ConfirmClaimParams) error
	ClaimPoints(ctx context.Context, reward entity.Reward) error
	CompleteExternalTask(ctx context.Context, reward entity.Reward) error
	CheckG7ConnectionStatus(ctx context.Context) (bool, error)
	SyncPlaySession(ctx context.Context, projectID, runner string) error
}

type TrackEvent struct {
	Event      string
	Properties map[string]any
}

type LogOptions struct {
	Tags  map[string]string
	Extra map[string]any
}

// Telemetry receives analytics events and error reports. Implementations must
// not block the caller on network failures.
type Telemetry interface {
	TrackEvent(ctx context.Context, ev TrackEvent)
	LogError(ctx context.Context, msg string, opts *LogOptions)
	LogInfo(ctx context.Context, msg string)
}

type Session interface {
	IsSignedIn(ctx context.Context) bool
}

type Host interface {
	QuestData
	WalletData
	ClaimOps
	Telemetry
	Session
}

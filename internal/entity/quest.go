package entity

import (
	"time"

	"github.com/questx-lab/questkit/pkg/enum"
)

type QuestType string

var (
	QuestPlayStreak          = enum.New(QuestType("PLAYSTREAK"))
	QuestLeaderboard         = enum.New(QuestType("LEADERBOARD"))
	QuestReputationalAirdrop = enum.New(QuestType("REPUTATIONAL-AIRDROP"))
)

type QuestStatus string

var (
	QuestActive    = enum.New(QuestStatus("ACTIVE"))
	QuestClaimable = enum.New(QuestStatus("CLAIMABLE"))
	QuestCompleted = enum.New(QuestStatus("COMPLETED"))
)

type PlayStreakEligibility struct {
	RequiredPlaystreakInDays    int `mapstructure:"required_playstreak_in_days" json:"required_playstreak_in_days"`
	MinimumSessionTimeInSeconds int `mapstructure:"minimum_session_time_in_seconds" json:"minimum_session_time_in_seconds"`
}

type Eligibility struct {
	CompletionThreshold int                    `mapstructure:"completion_threshold" json:"completion_threshold"`
	PlayStreak          *PlayStreakEligibility `mapstructure:"play_streak" json:"play_streak"`
}

// ExternalGame is the metadata of the game which the quest is played on.
type ExternalGame struct {
	Runner string `mapstructure:"runner" json:"runner"`
}

type Quest struct {
	ID          int64        `mapstructure:"id" json:"id"`
	ProjectID   string       `mapstructure:"project_id" json:"project_id"`
	Name        string       `mapstructure:"name" json:"name"`
	Description string       `mapstructure:"description" json:"description"`
	Type        QuestType    `mapstructure:"type" json:"type"`
	Status      QuestStatus  `mapstructure:"status" json:"status"`
	EndDate     *time.Time   `mapstructure:"end_date" json:"end_date"`
	Eligibility *Eligibility `mapstructure:"eligibility" json:"eligibility"`
	Rewards     []Reward     `mapstructure:"rewards" json:"rewards"`

	// NumOfTimesRepeatable is nil when the quest can be repeated infinitely.
	NumOfTimesRepeatable *int `mapstructure:"num_of_times_repeatable" json:"num_of_times_repeatable"`

	ExternalGame *ExternalGame `mapstructure:"quest_external_game" json:"quest_external_game"`
}

func (q *Quest) IsInfinitelyRepeatable() bool {
	return q.NumOfTimesRepeatable == nil
}

// PlayStreakCriteria returns nil if the quest has no play-streak requirement.
func (q *Quest) PlayStreakCriteria() *PlayStreakEligibility {
	if q.Eligibility == nil {
		return nil
	}

	return q.Eligibility.PlayStreak
}

// Runner returns the runner of the external game, or def if the quest has no
// external game metadata.
func (q *Quest) Runner(def string) string {
	if q.ExternalGame == nil || q.ExternalGame.Runner == "" {
		return def
	}

	return q.ExternalGame.Runner
}

// UserPlayStreak is the progress of the current user on a play-streak quest.
type UserPlayStreak struct {
	CurrentPlaystreakInDays           int        `mapstructure:"current_playstreak_in_days" json:"current_playstreak_in_days"`
	CompletedCounter                  int        `mapstructure:"completed_counter" json:"completed_counter"`
	AccumulatedPlaytimeTodayInSeconds int        `mapstructure:"accumulated_playtime_today_in_seconds" json:"accumulated_playtime_today_in_seconds"`
	LastPlaySessionCompletedDatetime  *time.Time `mapstructure:"last_play_session_completed_datetime" json:"last_play_session_completed_datetime"`
}

// ExternalEligibility is the eligibility of the current user on quests which
// are not tracked by play streak, e.g. leaderboards.
type ExternalEligibility struct {
	Amount        float64 `mapstructure:"amount" json:"amount"`
	WalletOrEmail string  `mapstructure:"walletOrEmail" json:"walletOrEmail"`
}

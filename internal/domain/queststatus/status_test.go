package queststatus

import (
	"testing"
	"time"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func playStreakQuest(required int, repeatable *int, status entity.QuestStatus) *entity.Quest {
	return &entity.Quest{
		ID:     1,
		Type:   entity.QuestPlayStreak,
		Status: status,
		Eligibility: &entity.Eligibility{
			PlayStreak: &entity.PlayStreakEligibility{RequiredPlaystreakInDays: required},
		},
		NumOfTimesRepeatable: repeatable,
	}
}

func TestResolvePlayStreak(t *testing.T) {
	tests := []struct {
		name     string
		quest    *entity.Quest
		progress entity.UserPlayStreak
		want     State
	}{
		{
			name:     "streak met with one completion left",
			quest:    playStreakQuest(10, intPtr(1), entity.QuestActive),
			progress: entity.UserPlayStreak{CurrentPlaystreakInDays: 10, CompletedCounter: 0},
			want:     ReadyForClaim,
		},
		{
			name:     "streak met but no completion left",
			quest:    playStreakQuest(10, intPtr(1), entity.QuestActive),
			progress: entity.UserPlayStreak{CurrentPlaystreakInDays: 10, CompletedCounter: 1},
			want:     Claimed,
		},
		{
			name:     "infinite quest ignores completed counter",
			quest:    playStreakQuest(3, nil, entity.QuestActive),
			progress: entity.UserPlayStreak{CurrentPlaystreakInDays: 5, CompletedCounter: 100},
			want:     ReadyForClaim,
		},
		{
			name:     "met streak takes precedence over completed quest",
			quest:    playStreakQuest(3, nil, entity.QuestCompleted),
			progress: entity.UserPlayStreak{CurrentPlaystreakInDays: 3},
			want:     ReadyForClaim,
		},
		{
			name:     "completed quest without met streak",
			quest:    playStreakQuest(3, nil, entity.QuestCompleted),
			progress: entity.UserPlayStreak{CurrentPlaystreakInDays: 1},
			want:     Undefined,
		},
		{
			name:     "completed quest with no completion left",
			quest:    playStreakQuest(3, intPtr(2), entity.QuestCompleted),
			progress: entity.UserPlayStreak{CurrentPlaystreakInDays: 1, CompletedCounter: 2},
			want:     Undefined,
		},
		{
			name:     "infinite quest in progress",
			quest:    playStreakQuest(3, nil, entity.QuestActive),
			progress: entity.UserPlayStreak{CurrentPlaystreakInDays: 1},
			want:     Active,
		},
		{
			name:     "finite quest in progress",
			quest:    playStreakQuest(3, intPtr(2), entity.QuestActive),
			progress: entity.UserPlayStreak{CurrentPlaystreakInDays: 1, CompletedCounter: 1},
			want:     Active,
		},
		{
			name:     "finite quest exhausted without met streak",
			quest:    playStreakQuest(3, intPtr(2), entity.QuestActive),
			progress: entity.UserPlayStreak{CurrentPlaystreakInDays: 1, CompletedCounter: 2},
			want:     Claimed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePlayStreak(tt.quest, &tt.progress)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePlayStreak_MissingCriteria(t *testing.T) {
	quest := &entity.Quest{Type: entity.QuestPlayStreak, Status: entity.QuestActive}
	_, err := ResolvePlayStreak(quest, &entity.UserPlayStreak{})
	require.ErrorIs(t, err, ErrMissingEligibilityCriteria)

	quest.Eligibility = &entity.Eligibility{CompletionThreshold: 1}
	_, err = ResolvePlayStreak(quest, &entity.UserPlayStreak{})
	require.ErrorIs(t, err, ErrMissingEligibilityCriteria)
}

func TestResolveExternal(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name        string
		status      entity.QuestStatus
		endDate     *time.Time
		eligibility *entity.ExternalEligibility
		want        State
	}{
		{name: "completed", status: entity.QuestCompleted, want: Undefined,
			eligibility: &entity.ExternalEligibility{Amount: 100}},
		{name: "active", status: entity.QuestActive, want: Active},
		{name: "claim period not started", status: entity.QuestClaimable, endDate: &future, want: Active,
			eligibility: &entity.ExternalEligibility{Amount: 100}},
		{name: "no eligibility yet", status: entity.QuestClaimable, endDate: &past, want: Undefined},
		{name: "zero amount", status: entity.QuestClaimable, endDate: &past, want: Undefined,
			eligibility: &entity.ExternalEligibility{Amount: 0}},
		{name: "positive amount", status: entity.QuestClaimable, endDate: &past, want: ReadyForClaim,
			eligibility: &entity.ExternalEligibility{Amount: 100}},
		{name: "positive amount without end date", status: entity.QuestClaimable, want: ReadyForClaim,
			eligibility: &entity.ExternalEligibility{Amount: 1}},
		{name: "end date is now", status: entity.QuestClaimable, endDate: &now, want: ReadyForClaim,
			eligibility: &entity.ExternalEligibility{Amount: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quest := &entity.Quest{Type: entity.QuestLeaderboard, Status: tt.status, EndDate: tt.endDate}
			require.Equal(t, tt.want, ResolveExternal(quest, tt.eligibility, now))
		})
	}
}

func TestResolve(t *testing.T) {
	now := time.Now()

	quest := playStreakQuest(1, nil, entity.QuestActive)
	state, err := Resolve(quest, Snapshot{PlayStreak: &entity.UserPlayStreak{CurrentPlaystreakInDays: 1}}, now)
	require.NoError(t, err)
	require.Equal(t, ReadyForClaim, state)

	state, err = Resolve(quest, Snapshot{}, now)
	require.NoError(t, err)
	require.Equal(t, Undefined, state)

	past := now.Add(-time.Minute)
	airdrop := &entity.Quest{Type: entity.QuestReputationalAirdrop, Status: entity.QuestClaimable, EndDate: &past}
	state, err = Resolve(airdrop, Snapshot{External: &entity.ExternalEligibility{Amount: 3}}, now)
	require.NoError(t, err)
	require.Equal(t, ReadyForClaim, state)
}

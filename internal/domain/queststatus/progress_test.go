package queststatus

import (
	"testing"
	"time"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	quest := playStreakQuest(4, nil, entity.QuestActive)
	quest.Eligibility.PlayStreak.MinimumSessionTimeInSeconds = 600

	p, err := NewProgress(quest, &entity.UserPlayStreak{
		CurrentPlaystreakInDays:           2,
		AccumulatedPlaytimeTodayInSeconds: 150,
	})
	require.NoError(t, err)
	require.Equal(t, 0.5, p.DaysRatio())
	require.Equal(t, 0.25, p.PlaytimeRatio())
	require.Equal(t, 450*time.Second, p.SessionTimeLeft)

	p, err = NewProgress(quest, &entity.UserPlayStreak{
		CurrentPlaystreakInDays:           9,
		AccumulatedPlaytimeTodayInSeconds: 900,
	})
	require.NoError(t, err)
	require.Equal(t, 1.0, p.DaysRatio())
	require.Equal(t, 1.0, p.PlaytimeRatio())
	require.Zero(t, p.SessionTimeLeft)

	_, err = NewProgress(&entity.Quest{}, &entity.UserPlayStreak{})
	require.ErrorIs(t, err, ErrMissingEligibilityCriteria)
}

package queststatus

import (
	"time"

	"github.com/questx-lab/questkit/internal/entity"
)

type Progress struct {
	CurrentDays  int
	RequiredDays int

	PlaytimeToday   time.Duration
	MinimumSession  time.Duration
	SessionTimeLeft time.Duration
}

// DaysRatio is the completed fraction of the streak, capped at 1.
func (p Progress) DaysRatio() float64 {
	if p.RequiredDays <= 0 {
		return 1
	}

	ratio := float64(p.CurrentDays) / float64(p.RequiredDays)
	if ratio > 1 {
		return 1
	}

	return ratio
}

// PlaytimeRatio is the completed fraction of today's minimum session, capped
// at 1.
func (p Progress) PlaytimeRatio() float64 {
	if p.MinimumSession <= 0 {
		return 1
	}

	ratio := float64(p.PlaytimeToday) / float64(p.MinimumSession)
	if ratio > 1 {
		return 1
	}

	return ratio
}

func NewProgress(quest *entity.Quest, progress *entity.UserPlayStreak) (Progress, error) {
	criteria := quest.PlayStreakCriteria()
	if criteria == nil {
		return Progress{}, ErrMissingEligibilityCriteria
	}

	p := Progress{
		CurrentDays:    progress.CurrentPlaystreakInDays,
		RequiredDays:   criteria.RequiredPlaystreakInDays,
		PlaytimeToday:  time.Duration(progress.AccumulatedPlaytimeTodayInSeconds) * time.Second,
		MinimumSession: time.Duration(criteria.MinimumSessionTimeInSeconds) * time.Second,
	}

	if p.PlaytimeToday < p.MinimumSession {
		p.SessionTimeLeft = p.MinimumSession - p.PlaytimeToday
	}

	return p, nil
}

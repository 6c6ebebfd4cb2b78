package queststatus

import "time"

// Windows are the periods following the end of a quest: results are computed
// during the wait period, then rewards can be claimed during the claim period.
type Windows struct {
	WaitPeriodEnd  time.Time
	ClaimPeriodEnd time.Time
}

func NewWindows(endDate time.Time, waitPeriod, claimPeriod time.Duration) Windows {
	waitPeriodEnd := endDate.Add(waitPeriod)
	return Windows{
		WaitPeriodEnd:  waitPeriodEnd,
		ClaimPeriodEnd: waitPeriodEnd.Add(claimPeriod),
	}
}

// IsInWaitPeriod is inclusive at WaitPeriodEnd. Callers check it before
// IsInClaimPeriod.
func (w Windows) IsInWaitPeriod(now time.Time) bool {
	return !now.After(w.WaitPeriodEnd)
}

// IsInClaimPeriod is inclusive at both ends, so the WaitPeriodEnd instant
// belongs to both periods.
func (w Windows) IsInClaimPeriod(now time.Time) bool {
	return !now.Before(w.WaitPeriodEnd) && !now.After(w.ClaimPeriodEnd)
}

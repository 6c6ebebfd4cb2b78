// Package playstreak keeps the play sessions of a project in sync with the
// host. Every play-streak quest of a started project gets a recurring sync
// timer and, while the user is below the minimum session time of the day, a
// one-shot timer which fires when the threshold is crossed.
package playstreak

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/questkit/internal/common"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/internal/querycache"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

type Host interface {
	host.QuestData
	SyncPlaySession(ctx context.Context, projectID, runner string) error
}

type Scheduler struct {
	host     Host
	cache    *querycache.Cache
	clock    clockwork.Clock
	projects *xsync.MapOf[string, *project]
}

func NewScheduler(h Host, cache *querycache.Cache, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		host:     h,
		cache:    cache,
		clock:    clock,
		projects: xsync.NewMapOf[*project](),
	}
}

type project struct {
	id string

	mutex        sync.Mutex
	stopped      bool
	timers       []clockwork.Timer
	tickers      []clockwork.Ticker
	done         chan struct{}
	sessionStart time.Time
	questIDs     []int64
}

func newProject(id string, now time.Time) *project {
	return &project{id: id, done: make(chan struct{}), sessionStart: now}
}

// addTimer keeps the timer so that it can be canceled later. It returns false
// and stops the timer if the project was stopped in the meantime.
func (p *project) addTimer(timer clockwork.Timer) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.stopped {
		timer.Stop()
		return false
	}

	p.timers = append(p.timers, timer)
	return true
}

func (p *project) addTicker(ticker clockwork.Ticker) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.stopped {
		ticker.Stop()
		return false
	}

	p.tickers = append(p.tickers, ticker)
	return true
}

func (p *project) stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.stopped {
		return
	}

	p.stopped = true
	close(p.done)
	for _, t := range p.timers {
		t.Stop()
	}
	for _, t := range p.tickers {
		t.Stop()
	}
	p.timers = nil
	p.tickers = nil
}

func (p *project) isStopped() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.stopped
}

func (p *project) setQuestIDs(ids []int64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.questIDs = ids
}

func (p *project) getQuestIDs() []int64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]int64(nil), p.questIDs...)
}

func (p *project) resetSession(now time.Time) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.sessionStart = now
}

// Start schedules the syncs of every play-streak quest of the project. Calling
// it for a project which is already started does nothing. A quest whose data
// cannot be fetched is skipped without affecting the others.
func (s *Scheduler) Start(ctx context.Context, projectID string) error {
	p, loaded := s.projects.LoadOrStore(projectID, newProject(projectID, s.clock.Now()))
	if loaded {
		return nil
	}

	// Timers outlive the caller's context but keep its logger and configs.
	ctx = context.WithoutCancel(ctx)

	quests, err := s.host.GetQuests(ctx, projectID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quests of project %s: %v", projectID, err)
		s.projects.Delete(projectID)
		p.stop()
		return err
	}

	questIDs := make([]int64, 0, len(quests))
	for _, q := range quests {
		questIDs = append(questIDs, q.ID)
	}
	p.setQuestIDs(questIDs)

	for _, q := range quests {
		if q.Type != entity.QuestPlayStreak {
			continue
		}

		if err := s.schedule(ctx, p, q.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot schedule play session sync of quest %d: %v", q.ID, err)
			continue
		}
	}

	return nil
}

func (s *Scheduler) schedule(ctx context.Context, p *project, questID int64) error {
	cfg := xcontext.Configs(ctx).Sync
	opts := querycache.Options{StaleTime: cfg.CacheTTL.Duration, Retry: cfg.CacheRetries}

	quest, err := querycache.Fetch(ctx, s.cache, common.QuestKey(questID), opts,
		func(ctx context.Context) (*entity.Quest, error) {
			return s.host.GetQuest(ctx, questID)
		})
	if err != nil {
		return err
	}

	streak, err := querycache.Fetch(ctx, s.cache, common.PlayStreakKey(questID), opts,
		func(ctx context.Context) (*entity.UserPlayStreak, error) {
			return s.host.GetUserPlayStreak(ctx, questID)
		})
	if err != nil {
		return err
	}

	runner := quest.Runner(cfg.DefaultRunner)

	if criteria := quest.PlayStreakCriteria(); criteria != nil && streak != nil {
		remaining := criteria.MinimumSessionTimeInSeconds - streak.AccumulatedPlaytimeTodayInSeconds
		if criteria.MinimumSessionTimeInSeconds > 0 && remaining > 0 {
			timer := s.clock.AfterFunc(time.Duration(remaining)*time.Second, func() {
				s.sync(ctx, p, runner)
			})
			if !p.addTimer(timer) {
				return nil
			}
		}
	}

	ticker := s.clock.NewTicker(cfg.Interval.Duration)
	if !p.addTicker(ticker) {
		return nil
	}

	go func() {
		for {
			select {
			case <-p.done:
				return
			case <-ticker.Chan():
				s.sync(ctx, p, runner)
			}
		}
	}()

	return nil
}

// sync reports the play session of the project. Syncs of the same project
// within the dedup window are collapsed into one host call.
func (s *Scheduler) sync(ctx context.Context, p *project, runner string) {
	if p.isStopped() {
		return
	}

	cfg := xcontext.Configs(ctx).Sync
	executed := false
	_, err := querycache.Fetch(ctx, s.cache, common.SyncPlaySessionKey(p.id),
		querycache.Options{StaleTime: cfg.DedupWindow.Duration},
		func(ctx context.Context) (bool, error) {
			executed = true
			if err := s.host.SyncPlaySession(ctx, p.id, runner); err != nil {
				return false, err
			}

			return true, nil
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sync play session of project %s: %v", p.id, err)
		common.IncCounter(common.PlaySessionSyncsTotal, "error")
		return
	}

	if !executed {
		return
	}

	keys := []querycache.Key{}
	for _, id := range p.getQuestIDs() {
		keys = append(keys, common.PlayStreakKey(id))
	}
	s.cache.Invalidate(ctx, keys...)

	p.resetSession(s.clock.Now())
	common.IncCounter(common.PlaySessionSyncsTotal, "success")
	xcontext.Logger(ctx).Debugf("Synced play session of project %s with runner %s", p.id, runner)
}

// Stop cancels every timer of the project. It is safe to call it more than
// once or for a project which was never started.
func (s *Scheduler) Stop(projectID string) {
	if p, ok := s.projects.LoadAndDelete(projectID); ok {
		p.stop()
	}
}

func (s *Scheduler) StopAll() {
	s.projects.Range(func(id string, p *project) bool {
		s.projects.Delete(id)
		p.stop()
		return true
	})
}

// SessionStartedAt returns the time the project was started or last synced.
func (s *Scheduler) SessionStartedAt(projectID string) (time.Time, bool) {
	p, ok := s.projects.Load(projectID)
	if !ok {
		return time.Time{}, false
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.sessionStart, true
}

// SyncWithExternalSource asks the host to pull the play streak of the quest
// from its external tracker.
func (s *Scheduler) SyncWithExternalSource(ctx context.Context, questID int64) error {
	if err := s.host.SyncPlayStreakWithExternalSource(ctx, questID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sync quest %d with external source: %v", questID, err)
		return err
	}

	s.cache.Invalidate(ctx, common.PlayStreakKey(questID), common.PendingExternalSyncKey(questID))
	return nil
}

func (s *Scheduler) PendingExternalSync(ctx context.Context, questID int64) (bool, error) {
	return querycache.Fetch(ctx, s.cache, common.PendingExternalSyncKey(questID),
		querycache.Options{StaleTime: xcontext.Configs(ctx).Quest.FreshnessTTL.Duration},
		func(ctx context.Context) (bool, error) {
			return s.host.GetPendingExternalSync(ctx, questID)
		})
}
